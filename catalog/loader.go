package catalog

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
)

// FetchFunc retrieves the raw CSV text.
type FetchFunc func(ctx context.Context) (string, error)

// FetchHTTP fetches the CSV from a URL.
func FetchHTTP(url string) FetchFunc {
	return func(ctx context.Context) (string, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			return "", err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return "", fmt.Errorf("HTTP %d", resp.StatusCode)
		}
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
}

// FetchFile reads the CSV from the local filesystem.
func FetchFile(path string) FetchFunc {
	return func(_ context.Context) (string, error) {
		body, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(body), nil
	}
}

// Loader fills the store from the cache or a fetch. On a cache hit it
// loads immediately and refreshes in the background; the refresh result is
// discarded when the store generation moved in the meantime.
type Loader struct {
	store  *Store
	cache  *CSVCache
	fetch  FetchFunc
	search *SearchService // optional; memo flushed on reload

	// background runs fn asynchronously; tests swap it for a
	// synchronous version.
	background func(fn func())
}

func NewLoader(store *Store, cache *CSVCache, fetch FetchFunc) *Loader {
	return &Loader{
		store:      store,
		cache:      cache,
		fetch:      fetch,
		background: func(fn func()) { go fn() },
	}
}

// WithSearch attaches a search service whose memo is flushed on reload.
func (l *Loader) WithSearch(s *SearchService) *Loader {
	l.search = s
	return l
}

// Load populates the store: cached text renders immediately and triggers a
// silent background refresh; otherwise the CSV is fetched now. A failed
// fetch leaves the current state in place.
func (l *Loader) Load(ctx context.Context) error {
	if cached, ok := l.cache.Read(); ok {
		if products := Parse(cached); len(products) > 0 {
			gen := l.applySnapshot(products)
			l.background(func() { l.Refresh(context.Background(), cached, gen) })
			return nil
		}
	}

	text, err := l.fetch(ctx)
	if err != nil {
		log.Printf("[warn] catalog fetch: %v", err)
		return err
	}
	products := Parse(text)
	if len(products) == 0 {
		return fmt.Errorf("catalog: no valid products in CSV")
	}
	l.applySnapshot(products)
	l.cache.Write(text)
	return nil
}

// Refresh refetches the CSV, rewrites the cache, and re-applies the
// snapshot only when the text changed and the store still shows the
// generation the refresh was scheduled against.
func (l *Loader) Refresh(ctx context.Context, prevText string, gen uint64) {
	text, err := l.fetch(ctx)
	if err != nil {
		log.Printf("[warn] catalog background refresh: %v", err)
		return
	}
	products := Parse(text)
	if len(products) == 0 {
		return
	}
	l.cache.Write(text)
	if text == prevText {
		return
	}
	if l.store.Generation() != gen {
		log.Printf("catalog background refresh: stale result discarded (generation moved)")
		return
	}
	l.applySnapshot(products)
}

func (l *Loader) applySnapshot(products []Product) uint64 {
	gen := l.store.Load(products)
	if l.search != nil {
		l.search.FlushMemo()
	}
	return gen
}
