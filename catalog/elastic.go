package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/elastic/go-elasticsearch/v8"

	"primos.GO/core/cache"
)

var (
	searchServiceInstance *SearchService
	searchServiceOnce     sync.Once
)

// GetSearchService returns the singleton SearchService bound to a store.
func GetSearchService(store *Store) *SearchService {
	searchServiceOnce.Do(func() {
		searchServiceInstance = NewSearchService(store)
	})
	return searchServiceInstance
}

// SearchService answers storefront search queries. When Elasticsearch is
// configured it queries the product index; otherwise (or on any ES error)
// it falls back to the in-memory snapshot scan, memoizing recent results.
type SearchService struct {
	client *elasticsearch.Client
	store  *Store
	memo   *cache.Cache
	index  string
}

// searchMemoTTL bounds how long a memoized result can outlive its query.
const searchMemoTTL = int64(60)

// TagSearch marks memoized search entries so a catalog reload can flush
// them in one call.
const TagSearch = "search"

func NewSearchService(store *Store) *SearchService {
	s := &SearchService{
		store: store,
		memo:  cache.NewCache(),
		index: indexName(),
	}
	host := os.Getenv("ELASTICSEARCH_HOST")
	if host == "" {
		return s
	}
	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{host}})
	if err != nil {
		log.Printf("[warn] elasticsearch client: %v", err)
		return s
	}
	s.client = client
	return s
}

func indexName() string {
	if idx := os.Getenv("ELASTICSEARCH_INDEX"); idx != "" {
		return idx
	}
	return "primos_catalog"
}

// Search returns up to limit products matching query.
func (s *SearchService) Search(ctx context.Context, query string, limit int) []Product {
	if limit <= 0 {
		limit = 8
	}
	if s.client != nil {
		if hits, err := s.searchES(ctx, query, limit); err == nil {
			return hits
		} else {
			log.Printf("[warn] elasticsearch search, falling back to scan: %v", err)
		}
	}

	key := fmt.Sprintf("search|%s|%d", Fold(query), limit)
	if v, ok := s.memo.Get(key); ok {
		return v.([]Product)
	}
	out := s.store.Search(query, limit)
	s.memo.Set(key, out, searchMemoTTL, []string{TagSearch})
	return out
}

// FlushMemo drops memoized results; called after a catalog reload.
func (s *SearchService) FlushMemo() {
	s.memo.DeleteByTag(TagSearch)
}

func (s *SearchService) searchES(ctx context.Context, query string, limit int) ([]Product, error) {
	body := map[string]interface{}{
		"size": limit,
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"nome^3", "marca^2", "descricao", "categoria", "codigo"},
			},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return nil, err
	}

	res, err := s.client.Search(
		s.client.Search.WithContext(ctx),
		s.client.Search.WithIndex(s.index),
		s.client.Search.WithBody(&buf),
	)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch error: %s", res.String())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

// IndexProducts bulk-indexes the snapshot into Elasticsearch. A no-op when
// ES is not configured.
func (s *SearchService) IndexProducts(ctx context.Context, products []Product) error {
	if s.client == nil {
		return nil
	}
	var buf bytes.Buffer
	for _, p := range products {
		meta := fmt.Sprintf(`{"index":{"_index":%q,"_id":%q}}`, s.index, p.Code)
		doc, err := json.Marshal(p)
		if err != nil {
			return err
		}
		buf.WriteString(meta)
		buf.WriteByte('\n')
		buf.Write(doc)
		buf.WriteByte('\n')
	}
	res, err := s.client.Bulk(bytes.NewReader(buf.Bytes()), s.client.Bulk.WithContext(ctx))
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch bulk: %s", res.String())
	}
	return nil
}
