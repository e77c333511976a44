package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080},
		Store:  StoreConfig{Backend: "sqlite", DSN: "./medintake.db", Table: "document_records"},
		OCR:    OCRConfig{BaseURL: "http://ocr.local", MaxSyncBytes: 10_000_000, Timeout: 60 * time.Second},
		LLM:    LLMConfig{Provider: "claude", BaseURL: "http://llm.local", Timeout: 45 * time.Second},
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg := LoadConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "document_records", cfg.Store.Table)
	assert.EqualValues(t, 10_000_000, cfg.OCR.MaxSyncBytes)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.False(t, cfg.LLM.StrictSchema)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("RECORD_STORE", "postgres")
	t.Setenv("RECORD_STORE_DSN", "postgres://localhost/medintake")
	t.Setenv("OCR_MAX_SYNC_BYTES", "5000000")
	t.Setenv("OCR_TIMEOUT", "30s")
	t.Setenv("LLM_PROVIDER", "auto")
	t.Setenv("LLM_AUTO_PROVIDER", "mistral")
	t.Setenv("LLM_STRICT_SCHEMA", "true")

	cfg := LoadConfig()
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "postgres", cfg.Store.Backend)
	assert.Equal(t, "postgres://localhost/medintake", cfg.Store.DSN)
	assert.EqualValues(t, 5_000_000, cfg.OCR.MaxSyncBytes)
	assert.Equal(t, 30*time.Second, cfg.OCR.Timeout)
	assert.Equal(t, "auto", cfg.LLM.Provider)
	assert.Equal(t, "mistral", cfg.LLM.AutoProvider)
	assert.True(t, cfg.LLM.StrictSchema)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	t.Setenv("OCR_TIMEOUT", "soon")

	cfg := LoadConfig()
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 60*time.Second, cfg.OCR.Timeout)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown backend", func(c *Config) { c.Store.Backend = "dynamo" }},
		{"missing dsn", func(c *Config) { c.Store.DSN = "" }},
		{"missing ocr url", func(c *Config) { c.OCR.BaseURL = "" }},
		{"missing llm url", func(c *Config) { c.LLM.BaseURL = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			var appErr *AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, "CONFIG_ERROR", appErr.Code)
		})
	}
}
