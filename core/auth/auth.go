// Package auth guards the /api group. The public catalog endpoints are
// skipped via config.GetAuthSkipperPaths; everything else needs basic,
// key, or kv-backed token credentials depending on AUTH_TYPE.
package auth

import (
	"os"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"primos.GO/config"
	"primos.GO/core/kv"
)

// TokenKeyPrefix is where issued API tokens live in the kv store. The
// stored value names the token owner.
const TokenKeyPrefix = "api_token:"

// Middleware returns the auth middleware based on AUTH_TYPE env var.
func Middleware(store kv.Store) echo.MiddlewareFunc {
	skipper := buildSkipper()
	authType := os.Getenv("AUTH_TYPE")
	switch authType {
	case "key":
		return keyAuth(skipper)
	case "token":
		return tokenAuth(store, skipper)
	default:
		return basicAuth(skipper)
	}
}

func buildSkipper() middleware.Skipper {
	skipPaths := config.GetAuthSkipperPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if path == skip {
				return true
			}
			if prefix, ok := strings.CutSuffix(skip, "/*"); ok && strings.HasPrefix(path, prefix+"/") {
				return true
			}
		}
		return false
	}
}

func basicAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	return middleware.BasicAuthWithConfig(middleware.BasicAuthConfig{
		Validator: func(username, password string, c echo.Context) (bool, error) {
			return username == os.Getenv("API_USER") && password == os.Getenv("API_PASS"), nil
		},
		Skipper: skipper,
	})
}

func keyAuth(skipper middleware.Skipper) echo.MiddlewareFunc {
	apiKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(key string, c echo.Context) (bool, error) {
			return key == apiKey, nil
		},
		Skipper: skipper,
	})
}

func tokenAuth(store kv.Store, skipper middleware.Skipper) echo.MiddlewareFunc {
	staticKey := os.Getenv("API_KEY")
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Validator: func(token string, c echo.Context) (bool, error) {
			if staticKey != "" && token == staticKey {
				c.Set("auth_type", "static")
				return true, nil
			}
			owner, found, err := store.Get(TokenKeyPrefix + token)
			if err != nil || !found {
				return false, nil
			}
			c.Set("auth_type", "token")
			c.Set("token_owner", owner)
			return true, nil
		},
		Skipper: skipper,
	})
}
