// Package custom shows how a drop-in module plugs into the extension
// registries: a GraphQL field, a CLI command, a cron job, and an HTTP
// route, all registered from init().
package custom

import (
	"context"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"primos.GO/api"
	"primos.GO/cmd"
	"primos.GO/config"
	"primos.GO/cron"
	gqlregistry "primos.GO/graphql/registry"
)

func init() {
	// GraphQL extension: the store's contact channels, for headless
	// clients that render their own checkout buttons.
	gqlregistry.Register("storeChannels", func(ctx context.Context, args map[string]interface{}) (interface{}, error) {
		config.LoadAppConfig()
		return map[string]string{
			"whatsapp":  "https://wa.me/" + config.AppConfig.StorePhone,
			"email":     "mailto:" + config.AppConfig.StoreEmail,
			"instagram": config.AppConfig.InstagramURL,
			"facebook":  config.AppConfig.FacebookURL,
		}, nil
	})

	// CLI command
	cmd.Register(&cobra.Command{
		Use:   "store:channels",
		Short: "Print the store's checkout and social channels",
		Run: func(c *cobra.Command, args []string) {
			config.LoadAppConfig()
			fmt.Println("whatsapp:", "https://wa.me/"+config.AppConfig.StorePhone)
			fmt.Println("email:", config.AppConfig.StoreEmail)
			fmt.Println("instagram:", config.AppConfig.InstagramURL)
			fmt.Println("facebook:", config.AppConfig.FacebookURL)
		},
	})

	// Cron job
	cron.Register("promoreport", "@every 1h", func(args ...string) {
		fmt.Println("promoreport: storefront alive", args)
	})

	// HTTP route with access to the service bundle
	api.RegisterRoute(func(e *echo.Echo, app *api.App) {
		e.GET("/custom/promocoes/count", func(c echo.Context) error {
			return c.JSON(http.StatusOK, map[string]int{
				"count": len(app.Catalog.Promotions()),
			})
		})
	})
}
