package ratelimit

import (
	"net/http"
	"time"

	"github.com/jonathan/skillsage/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// FromSettings builds a limiter configuration from the loaded service settings.
func FromSettings(s config.RateLimitConfig) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}

	defaultLimit := s.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 1000
	}
	defaultWindow := s.DefaultWindow
	if defaultWindow <= 0 {
		defaultWindow = time.Minute
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       toSet(s.Whitelist),
		Blacklist:       toSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// AI provider calls
		{Path: "/assessment/questions", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 5},
		{Path: "/assessment/recommendations", Method: http.MethodPost, Limit: 20, Window: time.Hour, Burst: 5},

		// Credential checks
		{Path: "/auth/login", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/register", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/auth/password", Method: http.MethodPut, Limit: 10, Window: time.Minute, Burst: 5},

		// Resume parsing and URL fetches
		{Path: "/profile/resume", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},

		// Everything else uses the default limit; /health and /metrics are unlimited
	}
}

func toSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, item := range list {
		if item != "" {
			result[item] = true
		}
	}
	return result
}
