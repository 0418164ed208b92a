// Package graphqlserver wires the storefront services into a graph-gophers
// schema served over the relay handler.
package graphqlserver

import (
	"context"
	"encoding/json"

	gql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"

	"primos.GO/api"
	"primos.GO/config"
	"primos.GO/graphql"
	gqlmodels "primos.GO/graphql/models"
	"primos.GO/graphql/registry"
)

// RootResolver is the root for graphql-go.
type RootResolver struct {
	App *api.App
}

// Query returns the query resolver.
func (r *RootResolver) Query() *QueryResolver {
	return &QueryResolver{app: r.App}
}

// QueryResolver implements Query fields over the catalog store.
type QueryResolver struct {
	app *api.App
}

// ProductsArgs matches the products query arguments.
type ProductsArgs struct {
	Category    string
	PageSize    *int32
	CurrentPage *int32
}

// Products pages one category statelessly: the REST API owns the
// incremental load-more cursor, GraphQL clients pass explicit pages.
func (r *QueryResolver) Products(ctx context.Context, args ProductsArgs) (*gqlmodels.ProductPage, error) {
	ps := config.AppConfig.PageSize
	if args.PageSize != nil && *args.PageSize > 0 {
		ps = int(*args.PageSize)
	}
	cp := 1
	if args.CurrentPage != nil && *args.CurrentPage > 0 {
		cp = int(*args.CurrentPage)
	}

	all := r.app.Catalog.ByCategory(args.Category)
	start := (cp - 1) * ps
	if start > len(all) {
		start = len(all)
	}
	end := start + ps
	if end > len(all) {
		end = len(all)
	}
	return &gqlmodels.ProductPage{
		Items:      gqlmodels.FromCatalogList(all[start:end]),
		TotalCount: int32(len(all)),
		HasMore:    end < len(all),
	}, nil
}

// ProductArgs matches the product query arguments.
type ProductArgs struct {
	Codigo string
}

func (r *QueryResolver) Product(ctx context.Context, args ProductArgs) (*gqlmodels.Product, error) {
	p, ok := r.app.Catalog.ByCode(args.Codigo)
	if !ok {
		return nil, nil
	}
	return gqlmodels.FromCatalog(p), nil
}

func (r *QueryResolver) Categories(ctx context.Context) ([]*gqlmodels.CategoryCard, error) {
	cards := r.app.Catalog.HomeCategories(config.AppConfig.MaxHomeCategories)
	out := make([]*gqlmodels.CategoryCard, len(cards))
	for i, c := range cards {
		out[i] = &gqlmodels.CategoryCard{ID: c.ID, Label: c.Label, Count: int32(c.Count)}
	}
	return out, nil
}

// SearchArgs matches the search query arguments.
type SearchArgs struct {
	Query string
	Limit *int32
}

func (r *QueryResolver) Search(ctx context.Context, args SearchArgs) ([]*gqlmodels.Product, error) {
	limit := config.AppConfig.MaxSearchResults
	if args.Limit != nil && *args.Limit > 0 && int(*args.Limit) < limit {
		limit = int(*args.Limit)
	}
	if r.app.Search != nil {
		return gqlmodels.FromCatalogList(r.app.Search.Search(ctx, args.Query, limit)), nil
	}
	return gqlmodels.FromCatalogList(r.app.Catalog.Search(args.Query, limit)), nil
}

func (r *QueryResolver) Promotions(ctx context.Context) ([]*gqlmodels.Product, error) {
	return gqlmodels.FromCatalogList(r.app.Catalog.Promotions()), nil
}

func (r *QueryResolver) Highlights(ctx context.Context) ([]*gqlmodels.Product, error) {
	return gqlmodels.FromCatalogList(r.app.Catalog.Highlights(config.AppConfig.MaxHighlights)), nil
}

// ExtensionArgs for _extension(name, args).
type ExtensionArgs struct {
	Name string
	Args *string
}

func (r *QueryResolver) Extension(ctx context.Context, args ExtensionArgs) (*string, error) {
	var m map[string]interface{}
	if args.Args != nil && *args.Args != "" {
		_ = json.Unmarshal([]byte(*args.Args), &m)
	}
	if m == nil {
		m = make(map[string]interface{})
	}
	out, err := registry.Resolve(ctx, args.Name, m)
	if err != nil {
		return nil, err
	}
	b, err := json.Marshal(out)
	if err != nil {
		return nil, err
	}
	s := string(b)
	return &s, nil
}

// NewSchema parses the schema and returns a graphql-go Schema.
func NewSchema(app *api.App) (*gql.Schema, error) {
	return gql.ParseSchema(graphql.Schema(), &RootResolver{App: app}, gql.UseFieldResolvers())
}

// Handler returns an http.Handler for GraphQL (relay format).
func Handler(schema *gql.Schema) *relay.Handler {
	return &relay.Handler{Schema: schema}
}
