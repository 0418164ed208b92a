package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"primos.GO/core/kv"
)

func fetchText(text string) FetchFunc {
	return func(context.Context) (string, error) { return text, nil }
}

func fetchErr(err error) FetchFunc {
	return func(context.Context) (string, error) { return "", err }
}

// syncLoader runs background refreshes inline for deterministic tests.
func syncLoader(store *Store, cache *CSVCache, fetch FetchFunc) *Loader {
	l := NewLoader(store, cache, fetch)
	l.background = func(fn func()) { fn() }
	return l
}

func TestLoader_ColdCacheFetches(t *testing.T) {
	store := NewStore(30)
	cache := NewCSVCache(kv.NewMemory(), time.Minute)
	text := csvWith("A1;Mouse;perifericos;49,90;10;;;nao;")

	l := syncLoader(store, cache, fetchText(text))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("store.Len = %d, want 1", store.Len())
	}
	if cached, ok := cache.Read(); !ok || cached != text {
		t.Error("fetched text should be cached")
	}
}

func TestLoader_CacheHitRendersAndRefreshes(t *testing.T) {
	store := NewStore(30)
	cache := NewCSVCache(kv.NewMemory(), time.Minute)
	oldText := csvWith("A1;Mouse;perifericos;49,90;10;;;nao;")
	newText := csvWith(
		"A1;Mouse;perifericos;49,90;10;;;nao;",
		"A2;Teclado;perifericos;150,00;5;;;nao;",
	)
	cache.Write(oldText)

	l := syncLoader(store, cache, fetchText(newText))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// synchronous background refresh already applied the new snapshot
	if store.Len() != 2 {
		t.Errorf("store.Len = %d, want 2 after refresh", store.Len())
	}
	if cached, _ := cache.Read(); cached != newText {
		t.Error("refresh should rewrite the cache")
	}
}

func TestLoader_RefreshUnchangedTextDoesNotReload(t *testing.T) {
	store := NewStore(30)
	cache := NewCSVCache(kv.NewMemory(), time.Minute)
	text := csvWith("A1;Mouse;perifericos;49,90;10;;;nao;")
	cache.Write(text)

	l := syncLoader(store, cache, fetchText(text))
	if err := l.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	// one Load from cache; identical refresh text must not bump generation
	if g := store.Generation(); g != 1 {
		t.Errorf("generation = %d, want 1", g)
	}
}

func TestLoader_StaleRefreshDiscarded(t *testing.T) {
	store := NewStore(30)
	cache := NewCSVCache(kv.NewMemory(), time.Minute)
	staleText := csvWith("A9;Velho;antigos;1,00;1;;;nao;")

	// catalog was reloaded (generation moved) after the refresh was scheduled
	gen := store.Load(Parse(csvWith("A1;Mouse;perifericos;49,90;10;;;nao;")))
	store.Load(Parse(csvWith("A2;Teclado;perifericos;150,00;5;;;nao;")))

	l := syncLoader(store, cache, fetchText(staleText))
	l.Refresh(context.Background(), "", gen)

	products := store.Products()
	if len(products) != 1 || products[0].Code != "A2" {
		t.Errorf("stale refresh applied: %v", products)
	}
	// the cache is still rewritten — only the in-memory apply is skipped
	if cached, ok := cache.Read(); !ok || cached != staleText {
		t.Error("refresh should still rewrite the cache")
	}
}

func TestLoader_FetchFailureLeavesStateInPlace(t *testing.T) {
	store := NewStore(30)
	cache := NewCSVCache(kv.NewMemory(), time.Minute)
	store.Load(Parse(csvWith("A1;Mouse;perifericos;49,90;10;;;nao;")))

	l := syncLoader(store, cache, fetchErr(errors.New("network down")))
	if err := l.Load(context.Background()); err == nil {
		t.Fatal("Load: want error on cold cache + failed fetch")
	}
	if store.Len() != 1 {
		t.Errorf("failed fetch must not clear the store: len = %d", store.Len())
	}
}

func TestLoader_RefreshFetchFailureIsSilent(t *testing.T) {
	store := NewStore(30)
	cache := NewCSVCache(kv.NewMemory(), time.Minute)
	gen := store.Load(Parse(csvWith("A1;Mouse;perifericos;49,90;10;;;nao;")))

	l := syncLoader(store, cache, fetchErr(errors.New("network down")))
	l.Refresh(context.Background(), "", gen) // must not panic or clear state
	if store.Len() != 1 {
		t.Errorf("store.Len = %d, want 1", store.Len())
	}
}

func TestLoader_EmptyCSVIsError(t *testing.T) {
	store := NewStore(30)
	cache := NewCSVCache(kv.NewMemory(), time.Minute)
	l := syncLoader(store, cache, fetchText("only-header"))
	if err := l.Load(context.Background()); err == nil {
		t.Fatal("Load: want error for CSV without valid products")
	}
}
