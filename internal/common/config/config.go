// internal/common/config/config.go
package config

import (
	"fmt"
	"strings"
	"time"

	"schema-engine/internal/common/errors"
)

// Config is the main application configuration struct. The generation core
// consumes it fully resolved; only the loader touches files and environment.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Generation GenerationConfig `mapstructure:"generation"`
	Validation ValidationConfig `mapstructure:"validation"`
	APIs       APIsConfig       `mapstructure:"apis"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// GenerationConfig holds the parameters of one generation run.
type GenerationConfig struct {
	MaxProducts             int  `mapstructure:"max_products"`
	EnableAIFeatures        bool `mapstructure:"enable_ai_features"`
	EnableReviewIntegration bool `mapstructure:"enable_review_integration"`
	IncludeVariants         bool `mapstructure:"include_variants"`
	Concurrency             int  `mapstructure:"concurrency"`
	AdapterTimeout          int  `mapstructure:"adapter_timeout"` // milliseconds
}

// ValidationConfig holds the validator switches.
type ValidationConfig struct {
	StrictPlatformCheck bool   `mapstructure:"strict_platform_check"`
	DetailedValidation  bool   `mapstructure:"detailed_validation"`
	RulesetPath         string `mapstructure:"ruleset_path"`
}

// APIsConfig holds settings for the optional enrichment integrations.
type APIsConfig struct {
	Enhancement struct {
		BaseURL string `mapstructure:"base_url"`
		APIKey  string `mapstructure:"api_key"`
		Model   string `mapstructure:"model"`
		Timeout int    `mapstructure:"timeout"` // milliseconds
	} `mapstructure:"enhancement"`

	Reviews struct {
		BaseURL  string `mapstructure:"base_url"`
		APIKey   string `mapstructure:"api_key"`
		Platform string `mapstructure:"platform"`
		Timeout  int    `mapstructure:"timeout"`   // milliseconds
		CacheTTL int    `mapstructure:"cache_ttl"` // seconds
	} `mapstructure:"reviews"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Addresses []string `mapstructure:"addresses"`
	Username  string   `mapstructure:"username"`
	Password  string   `mapstructure:"password"`
	URL       string   `mapstructure:"url"`
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// AdapterBudget returns the per-call budget for adapter invocations.
func (g GenerationConfig) AdapterBudget() time.Duration {
	if g.AdapterTimeout <= 0 {
		return 10 * time.Second
	}
	return time.Duration(g.AdapterTimeout) * time.Millisecond
}

// Validate checks the generation parameters. A run never starts on failure.
func (c *Config) Validate() error {
	var problems []string

	if c.Generation.MaxProducts < 0 {
		problems = append(problems, "generation.max_products must not be negative")
	}
	if c.Generation.Concurrency < 0 {
		problems = append(problems, "generation.concurrency must not be negative")
	}
	if c.Generation.AdapterTimeout < 0 {
		problems = append(problems, "generation.adapter_timeout must not be negative")
	}
	if c.APIs.Enhancement.Timeout < 0 {
		problems = append(problems, "apis.enhancement.timeout must not be negative")
	}
	if c.APIs.Reviews.Timeout < 0 {
		problems = append(problems, "apis.reviews.timeout must not be negative")
	}
	if c.Generation.EnableAIFeatures && c.APIs.Enhancement.BaseURL != "" && !strings.HasPrefix(c.APIs.Enhancement.BaseURL, "http") {
		problems = append(problems, "apis.enhancement.base_url must be an http(s) URL")
	}

	if len(problems) > 0 {
		return errors.NewConfigInvalidError(strings.Join(problems, "; "))
	}
	return nil
}

// ApplyDefaults fills the settings a resolved config may leave at zero.
func (c *Config) ApplyDefaults() {
	if c.Generation.MaxProducts == 0 {
		c.Generation.MaxProducts = 250
	}
	if c.Generation.Concurrency == 0 {
		c.Generation.Concurrency = 4
	}
	if c.Generation.AdapterTimeout == 0 {
		c.Generation.AdapterTimeout = 10000
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
}
