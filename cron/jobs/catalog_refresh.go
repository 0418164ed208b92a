// Package jobs holds the scheduled job bodies wired into config.CronJobs.
package jobs

import (
	"context"
	"log"
	"time"

	"primos.GO/catalog"
	"primos.GO/config"
	"primos.GO/core/kv"
)

func init() {
	config.RegisterCronJob("catalogrefresh", "0 * * * *", CatalogRefreshJob)
}

// CatalogRefreshJob refetches the catalog CSV and rewrites the shared
// cache entry. Server processes pick the fresh snapshot up through their
// own background refresh; the job itself is standalone so it also works
// from `cron:start --job catalogrefresh`.
func CatalogRefreshJob(args ...string) {
	config.LoadAppConfig()
	cfg := config.AppConfig

	var store kv.Store = kv.NewMemory()
	if config.RedisClient != nil {
		store = kv.NewRedis(config.RedisClient)
	}
	cache := catalog.NewCSVCache(store, cfg.CacheTTL)

	fetch := catalog.FetchFile(cfg.CatalogPath)
	if cfg.CatalogURL != "" {
		fetch = catalog.FetchHTTP(cfg.CatalogURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, err := fetch(ctx)
	if err != nil {
		log.Printf("[warn] catalogrefresh: fetch failed: %v", err)
		return
	}
	products := catalog.Parse(text)
	if len(products) == 0 {
		log.Printf("[warn] catalogrefresh: CSV yielded no valid products, cache left as-is")
		return
	}
	cache.Write(text)
	log.Printf("catalogrefresh: cached %d products", len(products))
}
