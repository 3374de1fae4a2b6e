package auth

// publicPaths lists URL paths that bypass authentication. These are
// infrastructure endpoints that must answer without credentials.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
}

// IsPublicPath reports whether the given path is a public infrastructure
// endpoint that should bypass auth.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
