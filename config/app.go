package config

import (
	"os"
	"strconv"
	"sync"
	"time"
)

// AppConfig holds global application configuration
var AppConfig *Config
var once sync.Once

type Config struct {
	AppName string
	Port    string
	Env     string
	Debug   bool

	// Catalog
	CatalogURL  string // remote CSV location; empty means read CatalogPath
	CatalogPath string
	PageSize    int
	CacheTTL    time.Duration

	// Search and home page caps
	MaxSearchResults  int
	MaxHighlights     int
	MaxHomeCategories int

	// Media
	MediaDir    string
	Placeholder string

	// Checkout channels
	StoreName    string
	StorePhone   string // digits only, country code included
	StoreEmail   string
	SiteURL      string
	InstagramURL string
	FacebookURL  string
}

// LoadAppConfig initializes the global AppConfig variable
func LoadAppConfig() {
	once.Do(func() {
		AppConfig = &Config{
			AppName: GetEnv("APP_NAME", "primos-storefront"),
			Port:    os.Getenv("PORT"),
			Env:     os.Getenv("APP_ENV"),
			Debug:   os.Getenv("DEBUG") == "true",

			CatalogURL:  os.Getenv("CATALOG_URL"),
			CatalogPath: GetEnv("CATALOG_PATH", "data/products.csv"),
			PageSize:    getEnvInt("CATALOG_PAGE_SIZE", 30),
			CacheTTL:    time.Duration(getEnvInt("CATALOG_CACHE_TTL_MIN", 30)) * time.Minute,

			MaxSearchResults:  getEnvInt("MAX_SEARCH_RESULTS", 8),
			MaxHighlights:     getEnvInt("MAX_HIGHLIGHTS", 8),
			MaxHomeCategories: getEnvInt("MAX_HOME_CATEGORIES", 8),

			MediaDir:    GetEnv("MEDIA_DIR", "images/products"),
			Placeholder: GetEnv("PLACEHOLDER_IMAGE", "images/placeholder.png"),

			StoreName:    GetEnv("STORE_NAME", "Primos Informática"),
			StorePhone:   GetEnv("STORE_PHONE", "556133406740"),
			StoreEmail:   GetEnv("STORE_EMAIL", "marketing.primosinfo@gmail.com"),
			SiteURL:      GetEnv("SITE_URL", "https://onehamada.github.io/Primos-Informatica/"),
			InstagramURL: GetEnv("INSTAGRAM_URL", "https://www.instagram.com/primosinformaticadf/"),
			FacebookURL:  GetEnv("FACEBOOK_URL", "https://www.facebook.com/profile.php?id=61573835540802"),
		}
	})
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
