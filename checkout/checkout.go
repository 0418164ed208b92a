// Package checkout formats an order summary and builds the hand-off links
// for the external channels (WhatsApp, email, social profiles). It only
// builds strings; nothing here performs network calls.
package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"primos.GO/cart"
	"primos.GO/catalog"
)

// Channels carries the store's outbound contact configuration.
type Channels struct {
	StoreName    string
	Phone        string // digits only, country code included
	Email        string
	SiteURL      string
	InstagramURL string
	FacebookURL  string
}

// Summary renders the itemized order: one "Nx name - unit price" line per
// cart entry plus the total.
func Summary(c *cart.Cart) string {
	var b strings.Builder
	for _, l := range c.Lines() {
		unit := l.PriceRaw
		if unit == 0 && l.Price != "" {
			if v, err := catalog.CleanPrice(l.Price); err == nil {
				unit = v
			}
		}
		fmt.Fprintf(&b, "%dx %s - %s\n", l.Quantity, l.Name, catalog.FormatPrice(unit))
	}
	fmt.Fprintf(&b, "\nTotal: %s", catalog.FormatPrice(c.Total()))
	return b.String()
}

// WhatsAppURL builds the wa.me link with the order pre-filled.
func (ch Channels) WhatsAppURL(c *cart.Cart) string {
	msg := fmt.Sprintf("Pedido %s\n\nOlá! Gostaria de fazer um pedido através do site:\n\n%s\n\nSite: %s",
		ch.StoreName, Summary(c), ch.SiteURL)
	return "https://wa.me/" + ch.Phone + "?text=" + url.QueryEscape(msg)
}

// MailtoURL builds the mailto link with subject and body pre-filled.
func (ch Channels) MailtoURL(c *cart.Cart) string {
	subject := "Pedido via site - " + ch.StoreName
	body := fmt.Sprintf("Gostaria de fazer o seguinte pedido:\n\n%s", Summary(c))
	return "mailto:" + ch.Email +
		"?subject=" + url.QueryEscape(subject) +
		"&body=" + url.QueryEscape(body)
}

// Social profile hand-offs carry no payload; the shopper pastes the
// summary into a direct message.
func (ch Channels) Instagram() string { return ch.InstagramURL }
func (ch Channels) Facebook() string  { return ch.FacebookURL }

// OrderCode issues the pickup reference shown on presential checkout.
func OrderCode() string {
	return fmt.Sprintf("%d", time.Now().UnixMilli())
}
