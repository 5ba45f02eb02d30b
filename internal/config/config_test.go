package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	os.Unsetenv("DATABASE_URI")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "mongodb", cfg.DBAdapter)
	assert.Equal(t, "", cfg.DatabaseURI)
	assert.Equal(t, ".", cfg.FilesRoot)
	assert.False(t, cfg.AutoMigrate)
}

func TestLoad_JSONThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cms.json")
	body := `{"port":"4000","dbAdapter":"postgres","filesRoot":"/srv","databaseUri":"ignored"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("CMS_PORT", "5000")
	t.Setenv("DATABASE_URI", "postgres://u:p@h/db")
	t.Setenv("CMS_AUTO_MIGRATE", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "5000", cfg.Port, "env wins over json")
	assert.Equal(t, "postgres", cfg.DBAdapter)
	assert.Equal(t, "/srv", cfg.FilesRoot)
	assert.Equal(t, "postgres://u:p@h/db", cfg.DatabaseURI)
	assert.True(t, cfg.AutoMigrate)
}

func TestLoad_DatabaseURIOnlyFromEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cms.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"DatabaseURI":"mongodb://json"}`), 0o600))
	t.Setenv("DATABASE_URI", "")
	os.Unsetenv("DATABASE_URI")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.DatabaseURI)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{`), 0o600))

	_, err := Load(path)
	require.Error(t, err)

	t.Setenv("CMS_AUTO_MIGRATE", "maybe")
	_, err = Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env:")
}
