package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	config, err := load("")
	require.NoError(t, err)

	assert.Equal(t, DriverSQLite, config.DatabaseDriver)
	assert.Equal(t, "data/agency.db", config.DatabaseDbPath)
	assert.Equal(t, 8280, config.ServerPort)
	assert.Equal(t, 60, config.StorageURLExpirySeconds)
	assert.False(t, config.StorageEnabled())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_DB_PATH", ":memory:")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("STORAGE_BUCKET", "agency-files")
	t.Setenv("STORAGE_REGION", "us-east-1")

	config, err := load("")
	require.NoError(t, err)

	assert.Equal(t, 9000, config.ServerPort)
	assert.Equal(t, ":memory:", config.DatabaseDbPath)
	assert.True(t, config.AuthEnabled)
	assert.True(t, config.StorageEnabled())
}

func TestLoad_EnvFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("COMPANY_NAME=Acme Mutual\nDATABASE_CACHE_PORT=6380\n"), 0o600))

	config, err := load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "Acme Mutual", config.CompanyName)
	assert.Equal(t, 6380, config.DatabaseCachePort)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		errorMsg string
	}{
		{
			name:   "valid sqlite",
			config: Config{DatabaseDriver: DriverSQLite, DatabaseDbPath: ":memory:", ServerPort: 80},
		},
		{
			name:     "sqlite without path",
			config:   Config{DatabaseDriver: DriverSQLite, ServerPort: 80},
			errorMsg: "DATABASE_DB_PATH",
		},
		{
			name:     "postgres without host",
			config:   Config{DatabaseDriver: DriverPostgres, DatabaseName: "agency", ServerPort: 80},
			errorMsg: "DATABASE_HOST",
		},
		{
			name:     "unknown driver",
			config:   Config{DatabaseDriver: "mysql", ServerPort: 80},
			errorMsg: "unsupported DATABASE_DRIVER",
		},
		{
			name:     "missing port",
			config:   Config{DatabaseDriver: DriverSQLite, DatabaseDbPath: "x.db"},
			errorMsg: "SERVER_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errorMsg)
		})
	}
}

func TestCorsOrigins(t *testing.T) {
	config := Config{ServerCorsOrigins: "http://a.test, http://b.test,,"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.CorsOrigins())
}
