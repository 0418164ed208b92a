package catalog

import "sync"

// Store owns the authoritative in-memory product list and per-category
// pagination state. A snapshot is replaced wholesale on Load; it is never
// mutated in place.
type Store struct {
	mu         sync.RWMutex
	products   []Product
	categories []string          // first-seen order
	labels     map[string]string // category key -> display label
	pages      map[string]*pageState
	generation uint64
	pageSize   int
}

// pageState is the pagination cursor for one category bucket.
type pageState struct {
	displayed int
	hasMore   bool
}

func NewStore(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = 30
	}
	return &Store{
		labels:   make(map[string]string),
		pages:    make(map[string]*pageState),
		pageSize: pageSize,
	}
}

// Load replaces all products, recomputes the category set in first-seen
// order, and discards pagination state for categories no longer present.
// Returns the new generation number.
func (s *Store) Load(products []Product) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = products
	s.categories = s.categories[:0]
	seen := make(map[string]bool, len(s.labels))
	for k := range s.labels {
		delete(s.labels, k)
	}
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		s.categories = append(s.categories, p.Category)
		s.labels[p.Category] = p.Category
	}
	for cat := range s.pages {
		if !seen[cat] {
			delete(s.pages, cat)
		}
	}
	s.generation++
	return s.generation
}

// Generation returns the snapshot generation counter. Background refreshes
// compare it to discard stale results.
func (s *Store) Generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// Products returns a copy of the full snapshot.
func (s *Store) Products() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

// Len returns the snapshot size.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.products)
}

// Categories returns the distinct category keys in first-seen order.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// Label returns the display label for a category key.
func (s *Store) Label(category string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if l, ok := s.labels[category]; ok {
		return l
	}
	return category
}

// ByCategory returns every product of a category, in CSV order.
func (s *Store) ByCategory(category string) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byCategoryLocked(category)
}

func (s *Store) byCategoryLocked(category string) []Product {
	var out []Product
	for _, p := range s.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// ByCode finds a product by its code.
func (s *Store) ByCode(code string) (Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.products {
		if p.Code == code {
			return p, true
		}
	}
	return Product{}, false
}

// GetPage returns the currently displayed prefix of a category and whether
// more pages remain. The first access initializes the bucket with one page.
func (s *Store) GetPage(category string) ([]Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getPageLocked(category)
}

func (s *Store) getPageLocked(category string) ([]Product, bool) {
	all := s.byCategoryLocked(category)
	st, ok := s.pages[category]
	if !ok {
		// unknown categories get no cursor; arbitrary URL lookups must
		// not grow the page map
		if len(all) == 0 {
			return nil, false
		}
		st = &pageState{
			displayed: min(s.pageSize, len(all)),
			hasMore:   len(all) > s.pageSize,
		}
		s.pages[category] = st
	}
	if st.displayed > len(all) {
		st.displayed = len(all)
	}
	return all[:st.displayed], st.hasMore
}

// LoadMore appends the next page-sized slice to a category's displayed
// prefix. hasMore is recomputed as (len(slice) == pageSize): a final page
// of exactly pageSize items reads as "maybe more" until one extra empty
// fetch. A no-op once hasMore is false.
func (s *Store) LoadMore(category string) ([]Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.pages[category]
	if !ok || !st.hasMore {
		return s.getPageLocked(category)
	}

	all := s.byCategoryLocked(category)
	next := all[st.displayed:min(st.displayed+s.pageSize, len(all))]
	st.displayed += len(next)
	st.hasMore = len(next) == s.pageSize
	return all[:st.displayed], st.hasMore
}

// Promotions returns every product flagged on-promotion.
func (s *Store) Promotions() []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Product
	for _, p := range s.products {
		if p.OnPromotion {
			out = append(out, p)
		}
	}
	return out
}

// Highlights returns the first product of each category, up to max.
func (s *Store) Highlights(max int) []Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]bool)
	var out []Product
	for _, p := range s.products {
		if seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p)
		if len(out) >= max {
			break
		}
	}
	return out
}

// CategorySummary is a home-page category card.
type CategorySummary struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// HomeCategories returns category cards in first-seen order, up to max.
func (s *Store) HomeCategories(max int) []CategorySummary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	counts := make(map[string]int, len(s.categories))
	for _, p := range s.products {
		counts[p.Category]++
	}
	var out []CategorySummary
	for _, c := range s.categories {
		out = append(out, CategorySummary{ID: c, Label: TitleizeCategory(s.labels[c]), Count: counts[c]})
		if len(out) >= max {
			break
		}
	}
	return out
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
