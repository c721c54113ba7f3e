package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		wantPrefix string
		wantDebug  bool
		check      func(t *testing.T, cfg *Config)
	}{
		{
			name:       "defaults",
			env:        map[string]string{},
			wantPrefix: "dev_",
			wantDebug:  true,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "8080", cfg.Port)
				assert.Equal(t, StoreDriverPostgres, cfg.StoreDriver)
				assert.Equal(t, int32(25), cfg.DBMaxConns)
				assert.Empty(t, cfg.SupabaseJWKSURL)
			},
		},
		{
			name:       "prod",
			env:        map[string]string{"ENVIRONMENT": "prod", "SUPABASE_URL": "https://x.supabase.co"},
			wantPrefix: "prod_",
			wantDebug:  false,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "https://x.supabase.co/auth/v1/.well-known/jwks.json", cfg.SupabaseJWKSURL)
			},
		},
		{
			name:       "explicit prefix and sizes",
			env:        map[string]string{"TABLE_PREFIX": "custom_", "DB_MAX_CONNS": "4", "LOG_MAX_FILES": "oops"},
			wantPrefix: "custom_",
			wantDebug:  true,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, int32(4), cfg.DBMaxConns)
				assert.Equal(t, 10, cfg.LogMaxFiles)
			},
		},
	}

	keys := []string{"ENVIRONMENT", "SUPABASE_URL", "TABLE_PREFIX", "DB_MAX_CONNS", "LOG_MAX_FILES", "DEBUG", "PORT", "STORE_DRIVER"}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, k := range keys {
				t.Setenv(k, tt.env[k])
			}
			cfg := Load()
			assert.Equal(t, tt.wantPrefix, cfg.TablePrefix)
			assert.Equal(t, tt.wantDebug, cfg.Debug)
			tt.check(t, cfg)
		})
	}
}

func TestAllowDevAuth(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want bool
	}{
		{name: "dev memory with user", cfg: Config{Environment: "dev", StoreDriver: StoreDriverMemory, DevUserID: "u"}, want: true},
		{name: "dev sqlite with user", cfg: Config{Environment: "dev", StoreDriver: StoreDriverSQLite, DevUserID: "u"}, want: true},
		{name: "dev postgres", cfg: Config{Environment: "dev", StoreDriver: StoreDriverPostgres, DevUserID: "u"}},
		{name: "prod memory", cfg: Config{Environment: "prod", StoreDriver: StoreDriverMemory, DevUserID: "u"}},
		{name: "no user", cfg: Config{Environment: "dev", StoreDriver: StoreDriverMemory}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cfg.AllowDevAuth())
		})
	}
}

func TestCleanupOldLogs(t *testing.T) {
	dir := t.TempDir()
	for i := 1; i <= 5; i++ {
		name := filepath.Join(dir, fmt.Sprintf("sylo-2026-01-0%dT00-00-00.log", i))
		require.NoError(t, os.WriteFile(name, nil, 0644))
	}

	require.NoError(t, cleanupOldLogs(dir, 2))

	left, err := filepath.Glob(filepath.Join(dir, "sylo-*.log"))
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "sylo-2026-01-04T00-00-00.log"),
		filepath.Join(dir, "sylo-2026-01-05T00-00-00.log"),
	}, left)
}

func TestNewLogger_WithLogDir(t *testing.T) {
	dir := t.TempDir()
	logger, closer, err := NewLogger(&Config{Environment: "prod", LogDir: dir, LogMaxFiles: 3})
	require.NoError(t, err)
	logger.Info("hello")
	require.NoError(t, closer.Close())

	files, err := filepath.Glob(filepath.Join(dir, "sylo-*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"hello"`)
}
