package graphqlserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"primos.GO/api"
	"primos.GO/catalog"
	"primos.GO/config"
)

func newSchema(t *testing.T) (*RootResolver, *api.App) {
	t.Helper()
	config.LoadAppConfig()

	store := catalog.NewStore(2)
	store.Load(catalog.Parse(strings.Join([]string{
		"codigo;nome;categoria;preco;qt;descricao;marca;promocao",
		"A1;Mouse Gamer;Perifericos;49,90;10;;Logi;nao",
		"A2;Teclado;Perifericos;150,00;0;;Dell;sim",
		"A3;Headset;Perifericos;99,00;4;;;nao",
		"B1;Memória DDR4;Hardware;199,00;3;;Kingston;nao",
	}, "\n")))

	app := &api.App{Catalog: store}
	return &RootResolver{App: app}, app
}

func TestQuery_ProductsPagination(t *testing.T) {
	root, _ := newSchema(t)
	q := root.Query()

	two := int32(2)
	one := int32(1)
	page, err := q.Products(context.Background(), ProductsArgs{Category: "perifericos", PageSize: &two, CurrentPage: &one})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 2 || page.TotalCount != 3 || !page.HasMore {
		t.Errorf("page = %d items total=%d hasMore=%v", len(page.Items), page.TotalCount, page.HasMore)
	}

	second := int32(2)
	page, err = q.Products(context.Background(), ProductsArgs{Category: "perifericos", PageSize: &two, CurrentPage: &second})
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.HasMore {
		t.Errorf("second page = %d items hasMore=%v, want 1 false", len(page.Items), page.HasMore)
	}
}

func TestQuery_Product(t *testing.T) {
	root, _ := newSchema(t)
	q := root.Query()

	p, err := q.Product(context.Background(), ProductArgs{Codigo: "A2"})
	if err != nil {
		t.Fatal(err)
	}
	if p == nil || p.Nome != "Teclado" || p.InStock || !p.Promocao {
		t.Errorf("product = %+v", p)
	}

	if missing, _ := q.Product(context.Background(), ProductArgs{Codigo: "ZZ"}); missing != nil {
		t.Errorf("missing product = %+v, want nil", missing)
	}
}

func TestQuery_SearchFoldsAccents(t *testing.T) {
	root, _ := newSchema(t)
	results, err := root.Query().Search(context.Background(), SearchArgs{Query: "memoria"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Codigo != "B1" {
		t.Errorf("results = %+v", results)
	}
}

func TestQuery_Categories(t *testing.T) {
	root, _ := newSchema(t)
	cards, err := root.Query().Categories(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(cards) != 2 || cards[0].ID != "perifericos" || cards[0].Count != 3 {
		t.Errorf("cards = %+v", cards)
	}
	if cards[0].Label != "Perifericos" {
		t.Errorf("label = %q, want titleized", cards[0].Label)
	}
}

func TestSchema_ParsesAndExecutes(t *testing.T) {
	_, app := newSchema(t)
	schema, err := NewSchema(app)
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}

	resp := schema.Exec(context.Background(), `{ promotions { codigo preco } }`, "", nil)
	if len(resp.Errors) > 0 {
		t.Fatalf("exec errors: %v", resp.Errors)
	}
	var data struct {
		Promotions []struct {
			Codigo string `json:"codigo"`
			Preco  string `json:"preco"`
		} `json:"promotions"`
	}
	if err := json.Unmarshal(resp.Data, &data); err != nil {
		t.Fatal(err)
	}
	if len(data.Promotions) != 1 || data.Promotions[0].Codigo != "A2" {
		t.Errorf("promotions = %+v", data.Promotions)
	}
}
