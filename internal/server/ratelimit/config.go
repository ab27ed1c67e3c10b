package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route tier.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends with "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// key identifies the bucket family shared by every path in the tier.
func (c *EndpointConfig) key() string {
	return c.Method + " " + c.Path
}

// LoadConfig reads the limiter configuration from RATE_LIMIT_* variables.
// Unparseable values keep their defaults.
func LoadConfig() *Config {
	if !env("RATE_LIMIT_ENABLED", true, strconv.ParseBool) {
		return &Config{Enabled: false}
	}

	endpoints := DefaultEndpointConfigs()
	overrides := map[string]int{
		evaluationPrefix: env("RATE_LIMIT_EVALUATION_LIMIT", 0, strconv.Atoi),
		batchPrefix:      env("RATE_LIMIT_BATCH_LIMIT", 0, strconv.Atoi),
	}
	for i := range endpoints {
		if limit := overrides[endpoints[i].Path]; limit > 0 {
			endpoints[i].Limit = limit
		}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    env("RATE_LIMIT_DEFAULT_LIMIT", 1000, strconv.Atoi),
		DefaultWindow:   env("RATE_LIMIT_DEFAULT_WINDOW", time.Minute, time.ParseDuration),
		CleanupInterval: env("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute, time.ParseDuration),
		Whitelist:       parseIPList(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseIPList(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: endpoints,
	}
}

const (
	evaluationPrefix = "/evaluations/resume/"
	batchPrefix      = "/evaluations/job/"
)

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: LLM-backed evaluation (strictest limits)
		{Path: batchPrefix, Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: evaluationPrefix, Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},

		// Tier 2: Write operations
		{Path: "/jobs", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "PUT", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/jobs/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/resumes/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},
		{Path: "/evaluations/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Tier 3: Stateless scoring
		{Path: "/score", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/rank", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},

		// Reads use the default limit; /health and /metrics are unlimited
	}
}

func env[T any](key string, fallback T, parse func(string) (T, error)) T {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := parse(raw)
	if err != nil {
		return fallback
	}
	return v
}

func parseIPList(list string) map[string]bool {
	set := map[string]bool{}
	for ip := range strings.SplitSeq(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
