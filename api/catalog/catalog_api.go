package catalog

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"primos.GO/api"
	catalogStore "primos.GO/catalog"
	"primos.GO/config"
)

func init() {
	api.RegisterModule(RegisterCatalogRoutes)
}

// RegisterCatalogRoutes exposes the catalog read API under /api/catalog.
func RegisterCatalogRoutes(apiGroup *echo.Group, app *api.App) {
	g := apiGroup.Group("/catalog")

	// GET /api/catalog – snapshot summary
	g.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"total":      app.Catalog.Len(),
			"categories": app.Catalog.Categories(),
			"generation": app.Catalog.Generation(),
		})
	})

	// GET /api/catalog/categories – home-page category cards
	g.GET("/categories", func(c echo.Context) error {
		cards := app.Catalog.HomeCategories(config.AppConfig.MaxHomeCategories)
		return c.JSON(http.StatusOK, echo.Map{"categories": cards})
	})

	// GET /api/catalog/category/:id – the displayed page of one category
	g.GET("/category/:id", func(c echo.Context) error {
		id := c.Param("id")
		products, hasMore := app.Catalog.GetPage(id)
		if len(products) == 0 {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "category not found or empty"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"category": id,
			"label":    catalogStore.TitleizeCategory(app.Catalog.Label(id)),
			"products": products,
			"has_more": hasMore,
		})
	})

	// POST /api/catalog/category/:id/more – advance the pagination cursor
	g.POST("/category/:id/more", func(c echo.Context) error {
		id := c.Param("id")
		products, hasMore := app.Catalog.LoadMore(id)
		return c.JSON(http.StatusOK, echo.Map{
			"category": id,
			"products": products,
			"has_more": hasMore,
		})
	})

	// GET /api/catalog/product/:code
	g.GET("/product/:code", func(c echo.Context) error {
		p, ok := app.Catalog.ByCode(c.Param("code"))
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		return c.JSON(http.StatusOK, p)
	})

	// GET /api/catalog/search?q=...&limit=N
	g.GET("/search", func(c echo.Context) error {
		start := time.Now()

		q := c.QueryParam("q")
		if q == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "q is required"})
		}
		limit := config.AppConfig.MaxSearchResults
		if raw := c.QueryParam("limit"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 && n < limit {
				limit = n
			}
		}

		var results []catalogStore.Product
		if app.Search != nil {
			results = app.Search.Search(c.Request().Context(), q, limit)
		} else {
			results = app.Catalog.Search(q, limit)
		}

		duration := time.Since(start).Milliseconds()
		c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
		return c.JSON(http.StatusOK, echo.Map{
			"query":   q,
			"results": results,
			"count":   len(results),
		})
	})

	// GET /api/catalog/promotions
	g.GET("/promotions", func(c echo.Context) error {
		promos := app.Catalog.Promotions()
		return c.JSON(http.StatusOK, echo.Map{"products": promos, "count": len(promos)})
	})

	// GET /api/catalog/highlights
	g.GET("/highlights", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{
			"products": app.Catalog.Highlights(config.AppConfig.MaxHighlights),
		})
	})

	// POST /api/catalog/filter – filter panel over the full snapshot
	g.POST("/filter", func(c echo.Context) error {
		var body struct {
			Categories []string `json:"categories"`
			Brands     []string `json:"brands"`
			MinPrice   *float64 `json:"min_price"`
			MaxPrice   *float64 `json:"max_price"`
			PromoOnly  bool     `json:"promo_only"`
			Query      string   `json:"query"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		results := app.Catalog.Filter(catalogStore.Filters{
			Categories: body.Categories,
			Brands:     body.Brands,
			MinPrice:   body.MinPrice,
			MaxPrice:   body.MaxPrice,
			PromoOnly:  body.PromoOnly,
			Query:      body.Query,
		})
		return c.JSON(http.StatusOK, echo.Map{"products": results, "count": len(results)})
	})

	// POST /api/catalog/refresh – force a fetch + snapshot rebuild
	g.POST("/refresh", func(c echo.Context) error {
		start := time.Now()
		if app.Loader == nil {
			return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "loader not configured"})
		}
		if err := app.Loader.Load(c.Request().Context()); err != nil {
			return c.JSON(http.StatusBadGateway, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"total":               app.Catalog.Len(),
			"generation":          app.Catalog.Generation(),
			"request_duration_ms": time.Since(start).Milliseconds(),
		})
	})
}
