// internal/common/config/config_test.go
package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-engine/internal/common/errors"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "negative max products",
			mutate:  func(c *Config) { c.Generation.MaxProducts = -1 },
			wantErr: true,
		},
		{
			name:    "negative concurrency",
			mutate:  func(c *Config) { c.Generation.Concurrency = -2 },
			wantErr: true,
		},
		{
			name:    "negative adapter timeout",
			mutate:  func(c *Config) { c.Generation.AdapterTimeout = -100 },
			wantErr: true,
		},
		{
			name: "bad enhancement url with ai enabled",
			mutate: func(c *Config) {
				c.Generation.EnableAIFeatures = true
				c.APIs.Enhancement.BaseURL = "not a url"
			},
			wantErr: true,
		},
		{
			name: "bad enhancement url ignored with ai disabled",
			mutate: func(c *Config) {
				c.APIs.Enhancement.BaseURL = "not a url"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.ApplyDefaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsConfigError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_ApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, 250, cfg.Generation.MaxProducts)
	assert.Equal(t, 4, cfg.Generation.Concurrency)
	assert.Equal(t, 10000, cfg.Generation.AdapterTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestGenerationConfig_AdapterBudget(t *testing.T) {
	assert.Equal(t, 10*time.Second, GenerationConfig{}.AdapterBudget())
	assert.Equal(t, 250*time.Millisecond, GenerationConfig{AdapterTimeout: 250}.AdapterBudget())
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	dsn := PostgresConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "engine",
		Password: "secret",
		Database: "schemas",
		SSLMode:  "disable",
	}.GetDSN()

	assert.Equal(t, "host=localhost port=5432 user=engine password=secret dbname=schemas sslmode=disable", dsn)
}

func TestElasticsearchConfig_GetURL(t *testing.T) {
	assert.Equal(t, "http://es:9200", ElasticsearchConfig{URL: "http://es:9200"}.GetURL())
	assert.Equal(t, "http://a:9200", ElasticsearchConfig{Addresses: []string{"http://a:9200", "http://b:9200"}}.GetURL())
	assert.Equal(t, "", ElasticsearchConfig{}.GetURL())
}
