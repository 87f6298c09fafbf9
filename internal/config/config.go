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

// Config holds the docsift configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Search   SearchConfig   `yaml:"search"`
	Body     BodyConfig     `yaml:"body"`
	Judge    JudgeConfig    `yaml:"judge"`
	Cache    CacheConfig    `yaml:"cache"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Auth     AuthConfig     `yaml:"auth"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// AuthConfig holds API authentication settings. An empty key list disables
// authentication.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// SearchConfig holds search backend settings.
type SearchConfig struct {
	BaseURL    string `yaml:"base_url"`
	PageSize   int    `yaml:"page_size"`
	TimeoutSec int    `yaml:"timeout_sec"`
	UseCursor  bool   `yaml:"use_cursor"` // cursorMark paging instead of offsets
}

// BodyConfig holds OCR body-text fetch settings.
type BodyConfig struct {
	BaseURL          string `yaml:"base_url"`
	TimeoutSec       int    `yaml:"timeout_sec"`
	MaxChars         int    `yaml:"max_chars"`
	SkipFetch        bool   `yaml:"skip_fetch"` // offline mode: empty bodies
	FetchConcurrency int    `yaml:"fetch_concurrency"`
}

// JudgeConfig holds generative judge settings.
type JudgeConfig struct {
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	Model             string `yaml:"model"`
	TimeoutSec        int    `yaml:"timeout_sec"`
	RequestsPerMinute int    `yaml:"requests_per_minute"` // 0 = unlimited
	BatchSize         int    `yaml:"batch_size"`
	PromptContentMax  int    `yaml:"prompt_content_chars"`
}

// CacheConfig holds optional body-text cache settings. Empty addrs disables
// the cache entirely.
type CacheConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	TTLHours         int      `yaml:"ttl_hours"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// PipelineConfig holds run-shape settings.
type PipelineConfig struct {
	TargetPerStrategy int `yaml:"target_per_strategy"`
	SummarizeTop      int `yaml:"summarize_top"`
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

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
	if c.HTTP.Port <= 0 {
		c.HTTP.Port = 8080
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 30
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		// Research runs are long; the handler holds the connection open.
		c.HTTP.WriteTimeoutSec = 600
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Search.BaseURL == "" {
		c.Search.BaseURL = "https://metadata.idl.ucsf.edu/solr/ltdl3/query"
	}
	if c.Search.PageSize <= 0 {
		c.Search.PageSize = 100
	}
	if c.Search.TimeoutSec <= 0 {
		c.Search.TimeoutSec = 30
	}
	if c.Body.BaseURL == "" {
		c.Body.BaseURL = "https://download.industrydocuments.ucsf.edu/"
	}
	if c.Body.TimeoutSec <= 0 {
		c.Body.TimeoutSec = 10
	}
	if c.Body.MaxChars <= 0 {
		c.Body.MaxChars = 99300
	}
	if c.Body.FetchConcurrency <= 0 {
		c.Body.FetchConcurrency = 4
	}
	if c.Judge.Model == "" {
		c.Judge.Model = "gpt-4o-mini"
	}
	if c.Judge.TimeoutSec <= 0 {
		c.Judge.TimeoutSec = 120
	}
	if c.Judge.BatchSize <= 0 {
		c.Judge.BatchSize = 5
	}
	if c.Cache.TTLHours <= 0 {
		c.Cache.TTLHours = 7 * 24
	}
	if c.Cache.ReadinessTimeout <= 0 {
		c.Cache.ReadinessTimeout = 10
	}
	if c.Pipeline.TargetPerStrategy <= 0 {
		c.Pipeline.TargetPerStrategy = 25
	}
	if c.Pipeline.SummarizeTop <= 0 {
		c.Pipeline.SummarizeTop = 3
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if c.Judge.APIKey == "" {
		return fmt.Errorf("judge.api_key is required")
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
