package config

// GetAuthSkipperPaths returns a list of paths to skip authentication for
func GetAuthSkipperPaths() []string {
	// Public shopper surface (catalog, cart and GraphQL need no auth)
	return []string{"/api/catalog", "/api/catalog/*", "/api/cart", "/api/cart/*", "/graphql"}
}
