package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves a request path and method to its tier. Paths ending
// in "/" match as prefixes, so "/api/v1/analyze/" would also cover
// "/api/v1/analyze/batch". Returns nil when no tier applies.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	// Health probes are never metered.
	if path == "/api/v1/health" && method == "GET" {
		return &EndpointConfig{}
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method == method && strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}
