package catalog

import "strings"

// Filters combines the storefront filter panel inputs. Zero-value fields
// are inactive.
type Filters struct {
	Categories []string
	Brands     []string
	MinPrice   *float64
	MaxPrice   *float64
	PromoOnly  bool
	Query      string
}

// Search scans the full snapshot (not the paginated subset) for products
// whose text fields contain the query, case- and diacritic-insensitive.
// Results are capped at limit and returned in CSV order.
func (s *Store) Search(query string, limit int) []Product {
	if limit <= 0 {
		limit = 8
	}
	q := Fold(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, p := range s.products {
		if len(out) >= limit {
			break
		}
		if matchesQuery(p, q) {
			out = append(out, p)
		}
	}
	return out
}

// Filter applies the filter panel over the full snapshot and returns a
// fresh unpaginated result list.
func (s *Store) Filter(f Filters) []Product {
	q := Fold(strings.TrimSpace(f.Query))

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if len(f.Categories) > 0 && !contains(f.Categories, p.Category) {
			continue
		}
		if len(f.Brands) > 0 && (p.Brand == "" || !contains(f.Brands, p.Brand)) {
			continue
		}
		if f.MinPrice != nil && p.PriceRaw < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && p.PriceRaw > *f.MaxPrice {
			continue
		}
		if f.PromoOnly && !p.OnPromotion {
			continue
		}
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func matchesQuery(p Product, folded string) bool {
	haystack := Fold(strings.Join([]string{p.Name, p.Description, p.Brand, p.Category, p.Code}, " "))
	return strings.Contains(haystack, folded)
}
