// Package config provides configuration loading and validation for the server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Default and MergeWithDefaults.
const (
	DefaultPort               = 8080
	DefaultConcurrency        = 4
	DefaultPassThreshold      = 60.0
	DefaultKafkaTopic         = "shortlist.evaluations"
	DefaultCacheTTLExtraction = 24 * time.Hour
	DefaultCacheTTLEvaluation = 2 * time.Hour
)

// Duration is a time.Duration that reads "2h"-style strings from JSON and YAML.
type Duration time.Duration

// UnmarshalJSON accepts a duration string or a number of seconds.
func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		return d.parse(s)
	}
	var secs float64
	if err := json.Unmarshal(data, &secs); err != nil {
		return fmt.Errorf("invalid duration %s", string(data))
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// MarshalJSON writes the duration as a string.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalYAML accepts a duration string.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.parse(value.Value)
}

func (d *Duration) parse(s string) error {
	parsed, err := time.ParseDuration(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config represents the service configuration loaded from a JSON or YAML file and
// the environment. All fields are optional; missing values use defaults.
type Config struct {
	// Server
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Storage
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`

	// Gemini API key; empty disables the LLM extractor and evaluator
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// Redis response cache; empty address disables caching
	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`

	// Kafka evaluation events; no brokers disables publishing
	KafkaBrokers []string `json:"kafka_brokers,omitempty" yaml:"kafka_brokers,omitempty"`
	KafkaTopic   string   `json:"kafka_topic,omitempty" yaml:"kafka_topic,omitempty"`

	// Evaluation
	Concurrency        int      `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`       // Parallel evaluations per batch
	PassThreshold      float64  `json:"pass_threshold,omitempty" yaml:"pass_threshold,omitempty"` // Baseline score for "OK to Proceed"
	CacheTTLExtraction Duration `json:"cache_ttl_extraction,omitempty" yaml:"cache_ttl_extraction,omitempty"`
	CacheTTLEvaluation Duration `json:"cache_ttl_evaluation,omitempty" yaml:"cache_ttl_evaluation,omitempty"`

	// Logging
	LogJSON bool `json:"log_json,omitempty" yaml:"log_json,omitempty"`
	Debug   bool `json:"debug,omitempty" yaml:"debug,omitempty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Port:               DefaultPort,
		KafkaTopic:         DefaultKafkaTopic,
		Concurrency:        DefaultConcurrency,
		PassThreshold:      DefaultPassThreshold,
		CacheTTLExtraction: Duration(DefaultCacheTTLExtraction),
		CacheTTLEvaluation: Duration(DefaultCacheTTLEvaluation),
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overlays values from the environment onto c. Set variables always win.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		c.DatabaseURL = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		c.RedisPassword = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.KafkaBrokers = splitList(v)
	}
	if v := os.Getenv("KAFKA_TOPIC"); v != "" {
		c.KafkaTopic = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config error: invalid PORT %q", v)
		}
		c.Port = port
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Debug = strings.EqualFold(v, "debug")
	}
	if v := os.Getenv("LOG_JSON"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("config error: invalid LOG_JSON %q", v)
		}
		c.LogJSON = b
	}
	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}
	if c.PassThreshold < 0 || c.PassThreshold > 100 {
		return fmt.Errorf("config error: 'pass_threshold' must be between 0 and 100")
	}
	if c.CacheTTLExtraction < 0 {
		return fmt.Errorf("config error: 'cache_ttl_extraction' must be non-negative")
	}
	if c.CacheTTLEvaluation < 0 {
		return fmt.Errorf("config error: 'cache_ttl_evaluation' must be non-negative")
	}
	if c.RedisDB < 0 {
		return fmt.Errorf("config error: 'redis_db' must be non-negative")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.RedisPassword == "" {
		result.RedisPassword = defaults.RedisPassword
	}
	if result.KafkaTopic == "" {
		result.KafkaTopic = defaults.KafkaTopic
	}
	if len(result.KafkaBrokers) == 0 {
		result.KafkaBrokers = defaults.KafkaBrokers
	}

	// Numeric fields: use default if zero
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.RedisDB == 0 {
		result.RedisDB = defaults.RedisDB
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}
	if result.PassThreshold == 0 {
		result.PassThreshold = defaults.PassThreshold
	}
	if result.CacheTTLExtraction == 0 {
		result.CacheTTLExtraction = defaults.CacheTTLExtraction
	}
	if result.CacheTTLEvaluation == 0 {
		result.CacheTTLEvaluation = defaults.CacheTTLEvaluation
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (env and CLI flags always win for bools)

	return result
}

// Load reads the optional file at path, overlays the environment and fills defaults.
func Load(path string) (Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	merged := cfg.MergeWithDefaults(Default())
	if err := merged.Validate(); err != nil {
		return Config{}, err
	}
	return merged, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
