package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the voicecart configuration.
type Config struct {
	HTTP      HTTPConfig      `yaml:"http"`
	CORS      CORSConfig      `yaml:"cors"`
	Database  DatabaseConfig  `yaml:"database"`
	Storage   StorageConfig   `yaml:"storage"`
	Embedding EmbeddingConfig `yaml:"embedding"`
	Search    SearchConfig    `yaml:"search"`
	Realtime  RealtimeConfig  `yaml:"realtime"`
	Index     IndexConfig     `yaml:"index"`
	Logging   LoggingConfig   `yaml:"logging"`
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

// CORSConfig holds the browser origin allow-list.
type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxAgeSec      int      `yaml:"max_age_sec"`
}

// DatabaseConfig holds Redis connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Username         string   `yaml:"username"`
	Password         string   `yaml:"password"`
	DB               int      `yaml:"db"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
	DialTimeoutMS    int      `yaml:"dial_timeout_ms"`
	WriteTimeoutMS   int      `yaml:"write_timeout_ms"`
}

// StorageConfig holds embedding cache settings.
type StorageConfig struct {
	EmbeddingCache    bool `yaml:"embedding_cache"`
	EmbeddingCacheTTL int  `yaml:"embedding_cache_ttl_hours"` // 0 = keep forever
}

// EmbeddingConfig holds the embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `yaml:"provider"`
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	Model      string `yaml:"model"`
	Dimensions int    `yaml:"dimensions"`
	TimeoutMS  int    `yaml:"timeout_ms"`
	// SeedRPS paces provider calls made by the seed command; 0 = unpaced.
	SeedRPS float64 `yaml:"seed_requests_per_sec"`
}

// SearchConfig holds hybrid ranking parameters.
type SearchConfig struct {
	VectorWeight          float64 `yaml:"vector_weight"`
	TextWeight            float64 `yaml:"text_weight"`
	RankConstant          int     `yaml:"rank_constant"`
	VectorTopK            int     `yaml:"vector_top_k"`
	NumCandidates         int     `yaml:"num_candidates"`
	TextTopK              int     `yaml:"text_top_k"`
	MaxResults            int     `yaml:"max_results"`
	BranchTimeoutMS       int     `yaml:"branch_timeout_ms"`
	CategoryFiltersVector bool    `yaml:"category_filters_vector"`
}

// RealtimeConfig holds realtime voice session settings.
type RealtimeConfig struct {
	APIKey     string `yaml:"api_key"`
	BaseURL    string `yaml:"base_url"`
	TimeoutSec int    `yaml:"timeout_sec"`
}

// IndexConfig holds the catalog FT index settings.
type IndexConfig struct {
	HNSWM           int     `yaml:"hnsw_m"`
	HNSWEFConstruct int     `yaml:"hnsw_ef_construction"`
	TitleWeight     float64 `yaml:"title_weight"`
}

// Load reads configuration from a YAML file by environment name (local, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	return Parse(data)
}

// Parse decodes YAML config bytes, expanding ${VAR} references, then applies
// defaults and validates.
func Parse(data []byte) (Config, error) {
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
// Weights are only defaulted when both are unset, so a single zero weight disables a branch.
func (c *Config) ApplyDefaults() {
	if c.HTTP.Port == 0 {
		c.HTTP.Port = 3000
	}
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 30
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.CORS.MaxAgeSec <= 0 {
		c.CORS.MaxAgeSec = 300
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Database.DialTimeoutMS <= 0 {
		c.Database.DialTimeoutMS = 2000
	}
	if c.Database.WriteTimeoutMS <= 0 {
		c.Database.WriteTimeoutMS = 3000
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = "openai"
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = "text-embedding-3-small"
	}
	if c.Embedding.Dimensions == 0 {
		c.Embedding.Dimensions = 1536
	}
	if c.Embedding.TimeoutMS <= 0 {
		c.Embedding.TimeoutMS = 2000
	}
	if c.Search.VectorWeight == 0 && c.Search.TextWeight == 0 {
		c.Search.VectorWeight = 0.1
		c.Search.TextWeight = 0.9
	}
	if c.Search.RankConstant == 0 {
		c.Search.RankConstant = 60
	}
	if c.Search.VectorTopK <= 0 {
		c.Search.VectorTopK = 20
	}
	if c.Search.NumCandidates <= 0 {
		c.Search.NumCandidates = 100
	}
	if c.Search.TextTopK <= 0 {
		c.Search.TextTopK = 20
	}
	if c.Search.MaxResults <= 0 {
		c.Search.MaxResults = 10
	}
	if c.Search.BranchTimeoutMS <= 0 {
		c.Search.BranchTimeoutMS = 3000
	}
	if c.Realtime.TimeoutSec <= 0 {
		c.Realtime.TimeoutSec = 10
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 16
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 200
	}
	if c.Index.TitleWeight <= 0 {
		c.Index.TitleWeight = 2
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if c.Embedding.Dimensions <= 0 {
		return fmt.Errorf("embedding.dimensions must be positive, got %d", c.Embedding.Dimensions)
	}
	if c.Embedding.SeedRPS < 0 {
		return fmt.Errorf("embedding.seed_requests_per_sec must be non-negative")
	}
	if c.Search.VectorWeight < 0 || c.Search.TextWeight < 0 {
		return fmt.Errorf("search weights must be non-negative")
	}
	if c.Search.VectorWeight == 0 && c.Search.TextWeight == 0 {
		return fmt.Errorf("search.vector_weight and search.text_weight must not both be 0")
	}
	if c.Search.RankConstant <= 0 {
		return fmt.Errorf("search.rank_constant must be positive, got %d", c.Search.RankConstant)
	}
	if c.Search.NumCandidates < c.Search.VectorTopK {
		return fmt.Errorf("search.num_candidates (%d) must be >= search.vector_top_k (%d)",
			c.Search.NumCandidates, c.Search.VectorTopK)
	}
	return nil
}

// EmbeddingTimeout is the per-query embedding deadline.
func (c *Config) EmbeddingTimeout() time.Duration {
	return time.Duration(c.Embedding.TimeoutMS) * time.Millisecond
}

// BranchTimeout is the per-branch store deadline.
func (c *Config) BranchTimeout() time.Duration {
	return time.Duration(c.Search.BranchTimeoutMS) * time.Millisecond
}

// EmbeddingCacheTTL is the embedding cache entry lifetime; zero keeps entries forever.
func (c *Config) EmbeddingCacheTTL() time.Duration {
	return time.Duration(c.Storage.EmbeddingCacheTTL) * time.Hour
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
		expr := string(match[2 : len(match)-1])
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
