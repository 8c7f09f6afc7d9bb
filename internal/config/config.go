package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Cache    CacheConfig    `mapstructure:"cache"`
	TMDB     TMDBConfig     `mapstructure:"tmdb"`
	Search   SearchConfig   `mapstructure:"search"`
	Enrich   EnrichConfig   `mapstructure:"enrich"`
	Resolver ResolverConfig `mapstructure:"resolver"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// DatabaseConfig holds the local SQLite database configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Path   string `mapstructure:"path"`
}

// CacheConfig holds the external cache configuration. When Addr is empty
// the in-process cache is used instead of Redis.
type CacheConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// TMDBConfig holds the primary metadata provider configuration.
type TMDBConfig struct {
	APIKey       string `mapstructure:"api_key"`
	BaseURL      string `mapstructure:"base_url"`
	ImageBaseURL string `mapstructure:"image_base_url"`
	Timeout      int    `mapstructure:"timeout"` // seconds
}

// SearchConfig holds the secondary and tertiary web-search provider
// configuration.
type SearchConfig struct {
	DuckDuckGoBaseURL string `mapstructure:"duckduckgo_base_url"`
	SerpAPIKey        string `mapstructure:"serpapi_key"`
	SerpAPIBaseURL    string `mapstructure:"serpapi_base_url"`
	TavilyAPIKey      string `mapstructure:"tavily_key"`
	TavilyBaseURL     string `mapstructure:"tavily_base_url"`
	Timeout           int    `mapstructure:"timeout"` // seconds, per provider call
	CacheTTLHours     int    `mapstructure:"cache_ttl_hours"`
}

// EnrichConfig holds the creative-text provider chain configuration.
type EnrichConfig struct {
	OpenRouterKey  string `mapstructure:"openrouter_key"`
	GroqKey        string `mapstructure:"groq_key"`
	GroqBaseURL    string `mapstructure:"groq_base_url"`
	MistralKey     string `mapstructure:"mistral_key"`
	MistralBaseURL string `mapstructure:"mistral_base_url"`
	Preferred      string `mapstructure:"preferred"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"` // per provider call
}

// ResolverConfig holds the entity-resolution confidence thresholds.
// The defaults were tuned empirically; change them only with test coverage.
type ResolverConfig struct {
	ConfidentScore float64 `mapstructure:"confident_score"`
	ConfidentGap   float64 `mapstructure:"confident_gap"`
	SoloScore      float64 `mapstructure:"solo_score"`
	MaxCandidates  int     `mapstructure:"max_candidates"`
}

// Default returns a Config with default values.
func Default() *Config {
	cfg := &Config{}
	v := viper.New()
	setDefaults(v)
	_ = v.Unmarshal(cfg)
	return cfg
}

// Load reads configuration from file and environment variables.
// Priority: environment variables > config file > defaults
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("$HOME/.screenscout")
	}

	v.SetEnvPrefix("SCREENSCOUT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return cfg, nil
}

// setDefaults sets default values in viper
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	v.SetDefault("database.path", "./data/screenscout.db")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.path", "")

	v.SetDefault("cache.addr", "")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)

	v.SetDefault("tmdb.api_key", "")
	v.SetDefault("tmdb.base_url", "https://api.themoviedb.org/3")
	v.SetDefault("tmdb.image_base_url", "https://image.tmdb.org/t/p")
	v.SetDefault("tmdb.timeout", 10)

	v.SetDefault("search.duckduckgo_base_url", "https://html.duckduckgo.com/html")
	v.SetDefault("search.serpapi_key", "")
	v.SetDefault("search.serpapi_base_url", "https://serpapi.com/search")
	v.SetDefault("search.tavily_key", "")
	v.SetDefault("search.tavily_base_url", "https://api.tavily.com/search")
	v.SetDefault("search.timeout", 10)
	v.SetDefault("search.cache_ttl_hours", 6)

	v.SetDefault("enrich.openrouter_key", "")
	v.SetDefault("enrich.groq_key", "")
	v.SetDefault("enrich.groq_base_url", "https://api.groq.com/openai/v1")
	v.SetDefault("enrich.mistral_key", "")
	v.SetDefault("enrich.mistral_base_url", "https://api.mistral.ai/v1")
	v.SetDefault("enrich.preferred", "")
	v.SetDefault("enrich.timeout_seconds", 9)

	v.SetDefault("resolver.confident_score", 0.8)
	v.SetDefault("resolver.confident_gap", 0.15)
	v.SetDefault("resolver.solo_score", 0.6)
	v.SetDefault("resolver.max_candidates", 10)
}

// Address returns the server address string.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
