package models

import "primos.GO/catalog"

// Product is the GraphQL view of a catalog product. Field names mirror the
// CSV columns so storefront queries read the same in REST and GraphQL.
type Product struct {
	Codigo    string  `json:"codigo"`
	Nome      string  `json:"nome"`
	Categoria string  `json:"categoria"`
	Preco     string  `json:"preco"`
	PrecoRaw  float64 `json:"precoRaw"`
	Qt        int32   `json:"qt"`
	Descricao string  `json:"descricao"`
	Marca     string  `json:"marca"`
	Promocao  bool    `json:"promocao"`
	Imagem    string  `json:"imagem"`
	Slug      string  `json:"slug"`
	InStock   bool    `json:"inStock"`
}

// FromCatalog maps a catalog product into the GraphQL model.
func FromCatalog(p catalog.Product) *Product {
	return &Product{
		Codigo:    p.Code,
		Nome:      p.Name,
		Categoria: p.Category,
		Preco:     p.Price,
		PrecoRaw:  p.PriceRaw,
		Qt:        int32(p.Stock),
		Descricao: p.Description,
		Marca:     p.Brand,
		Promocao:  p.OnPromotion,
		Imagem:    p.Image,
		Slug:      catalog.Slugify(p.Name),
		InStock:   p.InStock(),
	}
}

// FromCatalogList maps a product slice.
func FromCatalogList(ps []catalog.Product) []*Product {
	out := make([]*Product, len(ps))
	for i, p := range ps {
		out[i] = FromCatalog(p)
	}
	return out
}

// CategoryCard is a home-page category tile.
type CategoryCard struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Count int32  `json:"count"`
}

// ProductPage is a stateless page of one category.
type ProductPage struct {
	Items      []*Product `json:"items"`
	TotalCount int32      `json:"totalCount"`
	HasMore    bool       `json:"hasMore"`
}
