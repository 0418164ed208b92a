// Package catalog holds the product catalog: CSV parsing, the in-memory
// store with per-category pagination, search, and the cached loader.
package catalog

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Product is one sellable item, keyed by Code. The display price (Price)
// is always derived from PriceRaw, never hand-entered.
type Product struct {
	Code        string  `json:"codigo" mapstructure:"codigo"`
	Name        string  `json:"nome" mapstructure:"nome"`
	Category    string  `json:"categoria" mapstructure:"categoria"` // lower-cased grouping key
	Price       string  `json:"preco" mapstructure:"preco"`         // formatted, e.g. "R$ 49,90"
	PriceRaw    float64 `json:"precoRaw" mapstructure:"precoRaw"`
	Stock       int     `json:"qt" mapstructure:"qt"`
	Description string  `json:"descricao,omitempty" mapstructure:"descricao"`
	Brand       string  `json:"marca,omitempty" mapstructure:"marca"`
	OnPromotion bool    `json:"promocao" mapstructure:"promocao"`
	Image       string  `json:"imagem,omitempty" mapstructure:"imagem"`
}

// InStock reports whether the advisory stock count allows ordering.
func (p Product) InStock() bool {
	return p.Stock > 0
}

// DisplayName prefixes the brand when present.
func (p Product) DisplayName() string {
	if p.Brand != "" {
		return p.Brand + " " + p.Name
	}
	return p.Name
}

// Image variant directories, by naming convention.
const (
	VariantThumbnail = "thumbnail"
	VariantMedium    = "medium"
	VariantLarge     = "large"
)

// ImageCandidates returns the ordered image paths to try for a variant:
// the explicit filename, the product-code file, the category slug, then
// the placeholder.
func (p Product) ImageCandidates(mediaDir, variant, placeholder string) []string {
	var out []string
	if p.Image != "" {
		if strings.HasPrefix(p.Image, "http") {
			return []string{p.Image}
		}
		out = append(out, mediaDir+"/"+variant+"/"+p.Image)
	} else if p.Code != "" {
		out = append(out, mediaDir+"/"+variant+"/"+p.Code+".webp")
	}
	if slug := Slugify(p.Category); slug != "" {
		out = append(out, mediaDir+"/"+variant+"/"+slug+".webp")
	}
	return append(out, placeholder)
}

// ResolveImage walks the candidate chain and returns the first path that
// exists on disk. The final candidate (remote URL or placeholder) is
// returned without checking.
func (p Product) ResolveImage(mediaDir, variant, placeholder string) string {
	cands := p.ImageCandidates(mediaDir, variant, placeholder)
	for _, c := range cands[:len(cands)-1] {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return cands[len(cands)-1]
}

// ParsePrice parses a decimal-comma price field ("1234,56").
func ParsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty price")
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
}

// CleanPrice recovers a numeric value from a display price string
// ("R$ 1.234,56"). Used when totaling legacy cart lines.
func CleanPrice(s string) (float64, error) {
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.Join(strings.Fields(s), "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}

var brl = message.NewPrinter(language.BrazilianPortuguese)

// FormatPrice renders a value the way the store displays it: pt-BR
// grouping, two decimals ("R$ 1.234,56").
func FormatPrice(v float64) string {
	return "R$ " + brl.Sprint(number.Decimal(v, number.Scale(2)))
}

var foldTransformer = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold lower-cases and strips diacritics for accent-insensitive matching.
func Fold(s string) string {
	out, _, err := transform.String(foldTransformer, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// Slugify turns a label into a filename-safe slug ("Periféricos" -> "perifericos").
func Slugify(s string) string {
	s = Fold(s)
	var b strings.Builder
	lastDash := true // suppress leading dash
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// TitleizeCategory renders a category label for tabs and headings.
func TitleizeCategory(s string) string {
	if s == "" {
		return s
	}
	r := []rune(strings.ToLower(s))
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
