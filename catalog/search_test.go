package catalog

import (
	"context"
	"fmt"
	"testing"
)

func searchFixture() *Store {
	s := NewStore(30)
	s.Load([]Product{
		{Code: "A1", Name: "Mouse Gamer", Category: "perifericos", Brand: "Logitech", PriceRaw: 49.90},
		{Code: "A2", Name: "Teclado Mecânico", Category: "perifericos", Brand: "Redragon", PriceRaw: 150, OnPromotion: true},
		{Code: "B1", Name: "Memória RAM 8GB", Category: "componentes", Description: "DDR4 2666MHz", PriceRaw: 120},
		{Code: "B2", Name: "Placa de Vídeo RTX", Category: "componentes", Brand: "Galax", PriceRaw: 1500, OnPromotion: true},
	})
	return s
}

func TestSearch_DiacriticInsensitive(t *testing.T) {
	s := searchFixture()
	for _, q := range []string{"memoria", "MEMÓRIA", "Memória"} {
		got := s.Search(q, 8)
		if len(got) != 1 || got[0].Code != "B1" {
			t.Errorf("Search(%q) = %v, want [B1]", q, got)
		}
	}
}

func TestSearch_MatchesAllTextFields(t *testing.T) {
	s := searchFixture()
	cases := map[string]string{
		"mouse":     "A1", // name
		"ddr4":      "B1", // description
		"galax":     "B2", // brand
		"a2":        "A2", // code
	}
	for q, want := range cases {
		got := s.Search(q, 8)
		if len(got) != 1 || got[0].Code != want {
			t.Errorf("Search(%q) = %v, want [%s]", q, got, want)
		}
	}
}

func TestSearch_CategoryField(t *testing.T) {
	s := searchFixture()
	got := s.Search("perifericos", 8)
	if len(got) != 2 {
		t.Errorf("Search(perifericos) = %d results, want 2", len(got))
	}
}

func TestSearch_Cap(t *testing.T) {
	s := NewStore(30)
	var products []Product
	for i := 0; i < 20; i++ {
		products = append(products, Product{Code: fmt.Sprintf("C%d", i), Name: "Cabo HDMI", Category: "cabos"})
	}
	s.Load(products)
	if got := s.Search("cabo", 8); len(got) != 8 {
		t.Errorf("Search cap: len = %d, want 8", len(got))
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	s := searchFixture()
	if got := s.Search("   ", 8); got != nil {
		t.Errorf("Search(blank) = %v, want nil", got)
	}
}

func TestFilter_Combined(t *testing.T) {
	s := searchFixture()
	min, max := 100.0, 200.0
	got := s.Filter(Filters{
		Categories: []string{"perifericos"},
		MinPrice:   &min,
		MaxPrice:   &max,
	})
	if len(got) != 1 || got[0].Code != "A2" {
		t.Errorf("Filter = %v, want [A2]", got)
	}
}

func TestFilter_PromoOnly(t *testing.T) {
	s := searchFixture()
	got := s.Filter(Filters{PromoOnly: true})
	if len(got) != 2 {
		t.Errorf("Filter promo = %d, want 2", len(got))
	}
}

func TestFilter_Brand(t *testing.T) {
	s := searchFixture()
	got := s.Filter(Filters{Brands: []string{"Logitech"}})
	if len(got) != 1 || got[0].Code != "A1" {
		t.Errorf("Filter brand = %v, want [A1]", got)
	}
}

func TestFilter_QueryWithFilters(t *testing.T) {
	s := searchFixture()
	got := s.Filter(Filters{Categories: []string{"componentes"}, Query: "rtx"})
	if len(got) != 1 || got[0].Code != "B2" {
		t.Errorf("Filter = %v, want [B2]", got)
	}
}

func TestFold(t *testing.T) {
	if Fold("Periféricos") != "perifericos" {
		t.Errorf("Fold = %q", Fold("Periféricos"))
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Periféricos":    "perifericos",
		"Placa de Vídeo": "placa-de-video",
		"  GPUs!!  ":     "gpus",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSearchService_FallbackAndMemo(t *testing.T) {
	s := searchFixture()
	svc := NewSearchService(s) // no ES configured in tests
	ctx := context.Background()
	got := svc.Search(ctx, "mouse", 8)
	if len(got) != 1 || got[0].Code != "A1" {
		t.Fatalf("Search = %v, want [A1]", got)
	}
	// memoized second call returns the same result
	got2 := svc.Search(ctx, "mouse", 8)
	if len(got2) != 1 || got2[0].Code != "A1" {
		t.Fatalf("memoized Search = %v, want [A1]", got2)
	}
	// reload flushes the memo; a new snapshot changes results
	s.Load([]Product{{Code: "Z9", Name: "Mousepad", Category: "perifericos"}})
	svc.FlushMemo()
	got3 := svc.Search(ctx, "mouse", 8)
	if len(got3) != 1 || got3[0].Code != "Z9" {
		t.Fatalf("post-flush Search = %v, want [Z9]", got3)
	}
}
