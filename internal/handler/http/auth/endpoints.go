package auth

import "strings"

// PublicEndpoints lists the paths reachable without a token:
// orchestration probes, the Prometheus scrape target, and the token
// endpoint itself. The public directory routes are not listed here; they
// are mounted outside the Authz wrapper, and adding /bookstores here
// would also open POST on the same path.
var PublicEndpoints = []string{
	"/health",
	"/ready",
	"/live",
	"/metrics",
	"/auth/token",
}

// IsPublicEndpoint reports whether path may skip authentication.
//
// An entry ending in '/' matches as a prefix. All other entries match
// exactly, with an optional trailing slash or query string, so /health
// covers /health?format=json but neither /health/detail nor /healthcheck.
func IsPublicEndpoint(path string) bool {
	for _, endpoint := range PublicEndpoints {
		if strings.HasSuffix(endpoint, "/") {
			if strings.HasPrefix(path, endpoint) {
				return true
			}
			continue
		}
		switch {
		case path == endpoint,
			path == endpoint+"/",
			strings.HasPrefix(path, endpoint+"?"):
			return true
		}
	}
	return false
}
