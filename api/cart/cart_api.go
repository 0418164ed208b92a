package cart

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"primos.GO/api"
	"primos.GO/checkout"
)

func init() {
	api.RegisterModule(RegisterCartRoutes)
}

// sessionID reads the storefront session header; empty means the shared
// default cart.
func sessionID(c echo.Context) string {
	return c.Request().Header.Get("X-Cart-ID")
}

func cartJSON(c echo.Context, app *api.App, id string) error {
	crt := app.Carts.Get(id)
	return c.JSON(http.StatusOK, echo.Map{
		"items":      crt.Lines(),
		"total":      crt.Total(),
		"item_count": crt.ItemCount(),
	})
}

// RegisterCartRoutes exposes the cart API under /api/cart.
func RegisterCartRoutes(apiGroup *echo.Group, app *api.App) {
	g := apiGroup.Group("/cart")

	// GET /api/cart
	g.GET("", func(c echo.Context) error {
		return cartJSON(c, app, sessionID(c))
	})

	// POST /api/cart/items – add by product code
	g.POST("/items", func(c echo.Context) error {
		var body struct {
			Code     string `json:"codigo"`
			Quantity int    `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Code == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "codigo is required"})
		}
		p, ok := app.Catalog.ByCode(body.Code)
		if !ok {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "product not found"})
		}
		app.Carts.Get(sessionID(c)).Add(p, body.Quantity)
		return cartJSON(c, app, sessionID(c))
	})

	// PATCH /api/cart/items/:code – set the exact quantity
	g.PATCH("/items/:code", func(c echo.Context) error {
		var body struct {
			Quantity int `json:"quantity"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		app.Carts.Get(sessionID(c)).SetQuantity(c.Param("code"), body.Quantity)
		return cartJSON(c, app, sessionID(c))
	})

	// DELETE /api/cart/items/:code
	g.DELETE("/items/:code", func(c echo.Context) error {
		app.Carts.Get(sessionID(c)).Remove(c.Param("code"))
		return cartJSON(c, app, sessionID(c))
	})

	// DELETE /api/cart
	g.DELETE("", func(c echo.Context) error {
		app.Carts.Get(sessionID(c)).Clear()
		return cartJSON(c, app, sessionID(c))
	})

	// GET /api/cart/checkout – outbound hand-off links for the current cart
	g.GET("/checkout", func(c echo.Context) error {
		crt := app.Carts.Get(sessionID(c))
		if crt.Len() == 0 {
			return c.JSON(http.StatusConflict, echo.Map{"error": "cart is empty"})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"order_code":   checkout.OrderCode(),
			"summary":      checkout.Summary(crt),
			"whatsapp_url": app.Channels.WhatsAppURL(crt),
			"mailto_url":   app.Channels.MailtoURL(crt),
			"instagram":    app.Channels.Instagram(),
			"facebook":     app.Channels.Facebook(),
		})
	})
}
