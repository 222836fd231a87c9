package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitializeConfig_Defaults(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.Equal(t, 10, config.Upload.MaxSizeMB)
	assert.Equal(t, int64(10*1024*1024), config.MaxUploadBytes())
	assert.Equal(t, "", config.Upload.DefaultCurrency)
	assert.Equal(t, "Other", config.Upload.DefaultCategory)
	assert.Equal(t, "Transaction", config.Upload.DefaultDescription)
	assert.Equal(t, ',', config.Delimiter())
	assert.False(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-flash", config.AI.Model)
	assert.Equal(t, 30*time.Second, config.AITimeout())
	assert.Equal(t, 800, config.AI.MaxOutputTokens)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, "categories.yaml", config.Categories.File)
}

func TestInitializeConfig_EnvironmentVariables(t *testing.T) {
	clearTestEnvVars(t)
	t.Chdir(t.TempDir())

	testEnvVars := map[string]string{
		"CASHA_LOG_LEVEL":               "debug",
		"CASHA_LOG_FORMAT":              "json",
		"CASHA_CSV_DELIMITER":           ";",
		"CASHA_UPLOAD_MAX_SIZE_MB":      "5",
		"CASHA_UPLOAD_DEFAULT_CURRENCY": "idr",
		"CASHA_AI_ENABLED":              "true",
		"CASHA_AI_MODEL":                "gemini-1.5-pro",
		"GEMINI_API_KEY":                "test-api-key",
	}
	for key, value := range testEnvVars {
		t.Setenv(key, value)
	}

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, ';', config.Delimiter())
	assert.Equal(t, 5, config.Upload.MaxSizeMB)
	assert.Equal(t, "IDR", config.Upload.DefaultCurrency)
	assert.True(t, config.AI.Enabled)
	assert.Equal(t, "gemini-1.5-pro", config.AI.Model)
	assert.Equal(t, "test-api-key", config.AI.APIKey)
}

func TestInitializeConfig_ConfigFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()

	configContent := `
log:
  level: "warn"
  format: "json"
upload:
  max_size_mb: 2
  default_category: "Lainnya"
  default_description: "Transaksi"
server:
  addr: "127.0.0.1:9000"
`
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte(configContent), 0644))
	t.Chdir(tempDir)

	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "warn", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, 2, config.Upload.MaxSizeMB)
	assert.Equal(t, "Lainnya", config.Upload.DefaultCategory)
	assert.Equal(t, "Transaksi", config.Upload.DefaultDescription)
	assert.Equal(t, "127.0.0.1:9000", config.Server.Addr)
}

func TestInitializeConfig_EnvOverridesFile(t *testing.T) {
	clearTestEnvVars(t)
	tempDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tempDir, "config.yaml"), []byte("log:\n  level: warn\n"), 0644))
	t.Chdir(tempDir)
	t.Setenv("CASHA_LOG_LEVEL", "error")

	config, err := InitializeConfig()
	require.NoError(t, err)
	assert.Equal(t, "error", config.Log.Level)
}

func TestLoad_ExplicitFile(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("csv:\n  delimiter: \"|\"\n"), 0644))

	v := viper.New()
	v.SetConfigFile(path)
	config, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, '|', config.Delimiter())
}

func TestLoad_MalformedFile(t *testing.T) {
	clearTestEnvVars(t)
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unclosed"), 0644))

	v := viper.New()
	v.SetConfigFile(path)
	_, err := Load(v)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid defaults", func(c *Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "invalid log level"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "invalid log format"},
		{"size too small", func(c *Config) { c.Upload.MaxSizeMB = 0 }, "upload.max_size_mb"},
		{"size too large", func(c *Config) { c.Upload.MaxSizeMB = 101 }, "upload.max_size_mb"},
		{"unknown currency", func(c *Config) { c.Upload.DefaultCurrency = "CHF" }, "not a supported currency"},
		{"long delimiter", func(c *Config) { c.CSV.Delimiter = ";;" }, "single character"},
		{"ai without key", func(c *Config) { c.AI.Enabled = true }, "GEMINI_API_KEY"},
		{"ai bad timeout", func(c *Config) {
			c.AI.Enabled, c.AI.APIKey, c.AI.TimeoutSeconds = true, "k", 0
		}, "ai.timeout_seconds"},
		{"empty addr", func(c *Config) { c.Server.Addr = "" }, "server.addr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Defaults()
			tt.mutate(c)
			err := validateConfig(c)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func clearTestEnvVars(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"CASHA_LOG_LEVEL",
		"CASHA_LOG_FORMAT",
		"CASHA_CSV_DELIMITER",
		"CASHA_UPLOAD_MAX_SIZE_MB",
		"CASHA_UPLOAD_DEFAULT_CURRENCY",
		"CASHA_UPLOAD_DEFAULT_CATEGORY",
		"CASHA_UPLOAD_DEFAULT_DESCRIPTION",
		"CASHA_AI_ENABLED",
		"CASHA_AI_MODEL",
		"CASHA_AI_TIMEOUT_SECONDS",
		"CASHA_SERVER_ADDR",
		"CASHA_CATEGORIES_FILE",
		"GEMINI_API_KEY",
	} {
		t.Setenv(key, "")
	}
}
