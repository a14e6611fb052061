package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellerbridge/marketplace-proxy/internal/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, "environment: production\n"))
	require.NoError(t, err)

	assert.Equal(t, config.EnvProduction, cfg.Environment)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "1M", cfg.Server.BodyLimit)
	assert.Equal(t, "https://api.trendyol.com/sapigw", cfg.Marketplace.ProductionURL)
	assert.Equal(t, "https://stageapi.trendyol.com/stagesapigw", cfg.Marketplace.StagingURL)
	assert.Equal(t, "index.html", cfg.Static.Index)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_FullConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load(writeConfig(t, `
environment: development
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 10s
  write_timeout: 15s
  body_limit: 2M
marketplace:
  staging: true
  timeout: 5s
cors:
  allowed_origins:
    - http://localhost:3000
    - https://panel.example.com
static:
  dir: ./web
logging:
  level: debug
  format: json
`))
	require.NoError(t, err)

	assert.Equal(t, config.EnvDevelopment, cfg.Environment)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "2M", cfg.Server.BodyLimit)
	assert.True(t, cfg.Marketplace.Staging)
	assert.Equal(t,
		[]string{"http://localhost:3000", "https://panel.example.com"},
		cfg.CORS.AllowedOrigins,
	)
	assert.Equal(t, "./web", cfg.Static.Dir)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_EnvExpansion(t *testing.T) {
	t.Setenv("TEST_MARKETPLACE_URL", "https://sandbox.example.com/api")

	cfg, err := config.Load(writeConfig(t, `
environment: production
marketplace:
  production_url: ${TEST_MARKETPLACE_URL}
`))
	require.NoError(t, err)
	assert.Equal(t, "https://sandbox.example.com/api", cfg.Marketplace.ProductionURL)
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid environment",
			content: "environment: qa\n",
			wantErr: "environment must be",
		},
		{
			name:    "invalid logging format",
			content: "environment: production\nlogging:\n  format: xml\n",
			wantErr: "logging.format",
		},
		{
			name:    "malformed yaml",
			content: "environment: [unclosed\n",
			wantErr: "parsing config YAML",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config file")
}

func TestMarketplaceConfig_BaseURL(t *testing.T) {
	t.Parallel()

	m := config.MarketplaceConfig{
		ProductionURL: "https://api.example.com",
		StagingURL:    "https://stage.example.com",
	}
	assert.Equal(t, "https://api.example.com", m.BaseURL())

	m.Staging = true
	assert.Equal(t, "https://stage.example.com", m.BaseURL())
}

func TestFromEnv(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("MARKETPLACE_PRODUCTION_URL", "https://api.example.com")
	t.Setenv("MARKETPLACE_STAGING_URL", "https://stage.example.com")
	t.Setenv("MARKETPLACE_STAGING", "true")

	cfg := config.FromEnv()

	assert.Equal(t, config.EnvDevelopment, cfg.Environment)
	assert.True(t, cfg.Marketplace.Staging)
	assert.Equal(t, "https://stage.example.com", cfg.Marketplace.BaseURL())
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("MARKETPLACE_PRODUCTION_URL", "")
	t.Setenv("MARKETPLACE_STAGING_URL", "")
	t.Setenv("MARKETPLACE_STAGING", "")

	cfg := config.FromEnv()

	assert.Equal(t, config.EnvProduction, cfg.Environment)
	assert.False(t, cfg.Marketplace.Staging)
	assert.Equal(t, "https://api.trendyol.com/sapigw", cfg.Marketplace.BaseURL())
}
