//go:build !cli
// +build !cli

package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"primos.GO/api"
	_ "primos.GO/api/cart"
	_ "primos.GO/api/catalog"
	cartService "primos.GO/cart"
	"primos.GO/catalog"
	"primos.GO/checkout"
	"primos.GO/config"
	"primos.GO/core/auth"
	"primos.GO/core/kv"
	_ "primos.GO/custom"
	"primos.GO/graphqlserver"
	"primos.GO/html"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	cfg := config.AppConfig

	// Redis backs the CSV cache and carts when reachable; memory otherwise.
	config.InitRedis()
	var store kv.Store = kv.NewMemory()
	kvStatus := "Redis not configured, using in-memory storage."
	if config.RedisClient != nil {
		if err := config.RedisClient.Ping(config.RedisCtx()).Err(); err == nil {
			store = kv.NewRedis(config.RedisClient)
			kvStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil
			kvStatus = "Redis configured but not reachable, using in-memory storage."
		}
	}
	log.Println(kvStatus)

	// Catalog: cache-first load, background refresh keeps it current.
	catalogStore := catalog.NewStore(cfg.PageSize)
	search := catalog.GetSearchService(catalogStore)
	fetch := catalog.FetchFile(cfg.CatalogPath)
	if cfg.CatalogURL != "" {
		fetch = catalog.FetchHTTP(cfg.CatalogURL)
	}
	loader := catalog.NewLoader(catalogStore, catalog.NewCSVCache(store, cfg.CacheTTL), fetch).
		WithSearch(search)
	if err := loader.Load(config.RedisCtx()); err != nil {
		log.Fatalf("failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d products, %d categories", catalogStore.Len(), len(catalogStore.Categories()))
	go func() {
		if err := search.IndexProducts(config.RedisCtx(), catalogStore.Products()); err != nil {
			log.Printf("[warn] elasticsearch index: %v", err)
		}
	}()

	app := &api.App{
		Catalog: catalogStore,
		Loader:  loader,
		Search:  search,
		Carts:   cartService.NewService(store),
		Channels: checkout.Channels{
			StoreName:    cfg.StoreName,
			Phone:        cfg.StorePhone,
			Email:        cfg.StoreEmail,
			SiteURL:      cfg.SiteURL,
			InstagramURL: cfg.InstagramURL,
			FacebookURL:  cfg.FacebookURL,
		},
	}

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.Renderer = html.NewTemplate()
	html.RegisterStorefrontRoutes(e, app)
	e.Static("/images", "images")

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(store))
	api.ApplyModules(apiGroup, app)

	schema, err := graphqlserver.NewSchema(app)
	if err != nil {
		log.Fatalf("failed to parse GraphQL schema: %v", err)
	}
	e.Any("/graphql", echo.WrapHandler(graphqlserver.Handler(schema)))

	api.ApplyRoutes(e, app)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
