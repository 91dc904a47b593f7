package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/devindex/internal/domain/category"
)

// Config holds the devindex configuration shared by every command.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Auth     AuthConfig     `yaml:"auth"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Index    IndexConfig    `yaml:"index"`
	Build    BuildConfig    `yaml:"build"`
	Stem     StemConfig     `yaml:"stem"`
	Search   SearchConfig   `yaml:"search"`
	Ingest   IngestConfig   `yaml:"ingest"`
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

// DatabaseConfig holds search engine connection settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // redis
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// IndexConfig holds the engine index layout and paging.
type IndexConfig struct {
	Name        string `yaml:"name"`
	KeyPrefix   string `yaml:"key_prefix"`
	PageSize    int    `yaml:"page_size"`
	MaxPageSize int    `yaml:"max_page_size"`
}

// BuildConfig holds the corpus build settings.
type BuildConfig struct {
	Output   string        `yaml:"output"`
	Manifest string        `yaml:"manifest"`
	Workers  int           `yaml:"workers"`
	AutoStem *bool         `yaml:"auto_stem"`
	Sources  SourcesConfig `yaml:"sources"`
}

// SourcesConfig locates the raw content of each category. An empty location skips the category.
type SourcesConfig struct {
	SVGIcons    string         `yaml:"svg_icons"`
	PNGIcons    string         `yaml:"png_icons"`
	Emoji       string         `yaml:"emoji"`
	MCP         string         `yaml:"mcp"`
	Tools       string         `yaml:"tools"`
	TLDR        MarkdownSource `yaml:"tldr"`
	Cheatsheets MarkdownSource `yaml:"cheatsheets"`
}

// MarkdownSource is a directory of markdown pages matched by a doublestar pattern.
type MarkdownSource struct {
	Root    string `yaml:"root"`
	Pattern string `yaml:"pattern"`
}

// StemConfig holds stemming settings.
type StemConfig struct {
	Workers int `yaml:"workers"`
}

// SearchConfig holds the interactive client settings.
type SearchConfig struct {
	ServerURL       string            `yaml:"server_url"`
	APIKey          string            `yaml:"api_key"`
	DebounceMs      int               `yaml:"debounce_ms"`
	CategoryAliases map[string]string `yaml:"category_aliases"`
}

// IngestConfig holds engine write settings.
type IngestConfig struct {
	BatchSize  int     `yaml:"batch_size"`
	RatePerSec float64 `yaml:"rate_per_sec"` // batches per second, 0 = unlimited
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
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

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "redis"
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Index.Name == "" {
		c.Index.Name = "devindex"
	}
	if c.Index.KeyPrefix == "" {
		c.Index.KeyPrefix = "devindex:doc:"
	}
	if c.Index.PageSize <= 0 {
		c.Index.PageSize = 100
	}
	if c.Index.MaxPageSize <= 0 {
		c.Index.MaxPageSize = 1000
	}
	if c.Build.Output == "" {
		c.Build.Output = "data/corpus.json"
	}
	if c.Build.Manifest == "" {
		c.Build.Manifest = "data/manifest.db"
	}
	if c.Build.Workers <= 0 {
		c.Build.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Build.AutoStem == nil {
		on := true
		c.Build.AutoStem = &on
	}
	if c.Stem.Workers <= 0 {
		c.Stem.Workers = runtime.GOMAXPROCS(0)
	}
	if c.Search.ServerURL == "" {
		c.Search.ServerURL = fmt.Sprintf("http://localhost:%d", c.HTTP.Port)
	}
	if c.Search.DebounceMs <= 0 {
		c.Search.DebounceMs = 300
	}
	if c.Search.CategoryAliases == nil {
		c.Search.CategoryAliases = map[string]string{"emojis": string(category.Emoji)}
	}
	if c.Ingest.BatchSize <= 0 {
		c.Ingest.BatchSize = 500
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Database.Driver != "redis" {
		return fmt.Errorf("database.driver must be \"redis\", got %q", c.Database.Driver)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Index.PageSize > c.Index.MaxPageSize {
		return fmt.Errorf("index.page_size %d exceeds index.max_page_size %d", c.Index.PageSize, c.Index.MaxPageSize)
	}
	if c.Ingest.RatePerSec < 0 {
		return fmt.Errorf("ingest.rate_per_sec must not be negative, got %v", c.Ingest.RatePerSec)
	}
	for label, literal := range c.Search.CategoryAliases {
		if label == "" {
			return fmt.Errorf("search.category_aliases: empty label")
		}
		if !category.Category(literal).IsValid() {
			return fmt.Errorf("search.category_aliases.%s: unknown category %q", label, literal)
		}
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
