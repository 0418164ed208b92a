// Package html renders the server-side storefront pages.
package html

import (
	"embed"
	"html/template"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"primos.GO/api"
	"primos.GO/catalog"
	"primos.GO/config"
)

//go:embed templates/*.html
var templatesFS embed.FS

type Template struct {
	Templates *template.Template
}

func (t *Template) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.Templates.ExecuteTemplate(w, name, data)
}

// NewTemplate parses the embedded storefront templates.
func NewTemplate() *Template {
	t := template.Must(template.New("").Funcs(Funcs()).ParseFS(templatesFS, "templates/*.html"))
	return &Template{Templates: t}
}

// Funcs returns the template helpers shared by all pages.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"titleize": catalog.TitleizeCategory,
		"slug":     catalog.Slugify,
		"image": func(p catalog.Product, variant string) string {
			return p.ResolveImage(config.AppConfig.MediaDir, variant, config.AppConfig.Placeholder)
		},
	}
}

// RegisterStorefrontRoutes registers the HTML storefront pages.
func RegisterStorefrontRoutes(e *echo.Echo, app *api.App) {
	base := func(title string) map[string]interface{} {
		return map[string]interface{}{
			"Title":      title,
			"Query":      "",
			"StoreName":  config.AppConfig.StoreName,
			"Categories": app.Catalog.HomeCategories(config.AppConfig.MaxHomeCategories),
			"Instagram":  config.AppConfig.InstagramURL,
			"Facebook":   config.AppConfig.FacebookURL,
		}
	}

	// Home: category cards plus one highlight per category
	e.GET("/", func(c echo.Context) error {
		data := base(config.AppConfig.StoreName)
		data["Highlights"] = app.Catalog.Highlights(config.AppConfig.MaxHighlights)
		data["Promotions"] = app.Catalog.Promotions()
		return c.Render(http.StatusOK, "home.html", data)
	})

	// Category page: the displayed prefix; ?mais=1 advances the cursor
	e.GET("/categoria/:id", func(c echo.Context) error {
		id := c.Param("id")
		var products []catalog.Product
		var hasMore bool
		if c.QueryParam("mais") != "" {
			products, hasMore = app.Catalog.LoadMore(id)
		} else {
			products, hasMore = app.Catalog.GetPage(id)
		}
		if len(products) == 0 {
			return c.String(http.StatusNotFound, "Categoria não encontrada")
		}
		data := base(catalog.TitleizeCategory(app.Catalog.Label(id)))
		data["CategoryID"] = id
		data["Products"] = products
		data["HasMore"] = hasMore
		return c.Render(http.StatusOK, "category.html", data)
	})

	// Product detail
	e.GET("/produto/:codigo", func(c echo.Context) error {
		p, ok := app.Catalog.ByCode(c.Param("codigo"))
		if !ok {
			return c.String(http.StatusNotFound, "Produto não encontrado")
		}
		data := base(p.DisplayName())
		data["Product"] = p
		return c.Render(http.StatusOK, "product.html", data)
	})

	// Promotions page
	e.GET("/promocoes", func(c echo.Context) error {
		data := base("Promoções")
		data["Products"] = app.Catalog.Promotions()
		return c.Render(http.StatusOK, "promos.html", data)
	})

	// Search results
	e.GET("/busca", func(c echo.Context) error {
		q := c.QueryParam("q")
		var results []catalog.Product
		if q != "" {
			if app.Search != nil {
				results = app.Search.Search(c.Request().Context(), q, config.AppConfig.MaxSearchResults)
			} else {
				results = app.Catalog.Search(q, config.AppConfig.MaxSearchResults)
			}
		}
		data := base("Busca")
		data["Query"] = q
		data["Results"] = results
		return c.Render(http.StatusOK, "search.html", data)
	})
}
