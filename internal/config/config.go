package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Corpus source kinds.
const (
	SourceFile  = "file"
	SourceStore = "store"
)

// Config holds the cribdex API configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	Database DatabaseConfig `yaml:"database"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// CorpusConfig says where the question corpus comes from.
type CorpusConfig struct {
	Source string `yaml:"source"` // file, store (default: file)
	Path   string `yaml:"path"`   // file source: .json, .yaml or .yml
	Key    string `yaml:"key"`    // store source: key holding the corpus document
	Format string `yaml:"format"` // store source: json, yaml (default: json)
	Watch  bool   `yaml:"watch"`  // file source: reload on change
}

// DatabaseConfig holds the key-value store connection. Only needed for the store source.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis, valkey (default: redis)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// SearchConfig holds ranking tunables. A nil field keeps the engine default;
// a set field is used as is, zero included.
type SearchConfig struct {
	FullScoringMaxCandidates *int     `yaml:"full_scoring_max_candidates"`
	FuzzyThreshold           *float64 `yaml:"fuzzy_threshold"`
	MinFuzzyTokenLength      *int     `yaml:"min_fuzzy_token_length"`
	FuzzyLengthWindow        *int     `yaml:"fuzzy_length_window"`
	MaxFuzzyTextWords        *int     `yaml:"max_fuzzy_text_words"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Corpus.Source == "" {
		c.Corpus.Source = SourceFile
	}
	if c.Corpus.Source == SourceStore {
		if c.Corpus.Key == "" {
			c.Corpus.Key = "cribdex:corpus"
		}
		if c.Corpus.Format == "" {
			c.Corpus.Format = "json"
		}
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Corpus.Source {
	case SourceFile:
		if c.Corpus.Path == "" {
			return fmt.Errorf("corpus.path is required for the file source")
		}
	case SourceStore:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for the store source")
		}
		if c.Corpus.Watch {
			return fmt.Errorf("corpus.watch is only supported for the file source")
		}
		switch c.Corpus.Format {
		case "json", "yaml":
		default:
			return fmt.Errorf("corpus.format must be \"json\" or \"yaml\", got %q", c.Corpus.Format)
		}
	default:
		return fmt.Errorf("corpus.source must be %q or %q, got %q", SourceFile, SourceStore, c.Corpus.Source)
	}

	switch c.Database.Driver {
	case "redis", "valkey":
	default:
		return fmt.Errorf("database.driver must be \"redis\" or \"valkey\", got %q", c.Database.Driver)
	}

	s := c.Search
	if s.FuzzyThreshold != nil && (*s.FuzzyThreshold < 0 || *s.FuzzyThreshold >= 1) {
		return fmt.Errorf("search.fuzzy_threshold must be in [0, 1), got %v", *s.FuzzyThreshold)
	}
	if s.FullScoringMaxCandidates != nil && *s.FullScoringMaxCandidates < 0 {
		return fmt.Errorf("search.full_scoring_max_candidates must not be negative, got %d", *s.FullScoringMaxCandidates)
	}
	if s.FuzzyLengthWindow != nil && *s.FuzzyLengthWindow < 0 {
		return fmt.Errorf("search.fuzzy_length_window must not be negative, got %d", *s.FuzzyLengthWindow)
	}
	if s.MinFuzzyTokenLength != nil && *s.MinFuzzyTokenLength < 1 {
		return fmt.Errorf("search.min_fuzzy_token_length must be at least 1, got %d", *s.MinFuzzyTokenLength)
	}
	if s.MaxFuzzyTextWords != nil && *s.MaxFuzzyTextWords < 1 {
		return fmt.Errorf("search.max_fuzzy_text_words must be at least 1, got %d", *s.MaxFuzzyTextWords)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
