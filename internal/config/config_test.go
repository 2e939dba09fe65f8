package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_ExistingFile(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: https://api.example.com\ntimeout: 5s\ntoken_keys: [admin_token]\n"), 0644)

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://api.example.com", cfg.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, []string{"admin_token"}, cfg.TokenKeys)
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "", cfg.APIURL)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("{{bad yaml"), 0644)

	_, err := Load(dir)
	assert.Error(t, err)
}

func TestSave_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{APIURL: "https://api.example.com", Timeout: 3 * time.Second, RequireJWT: true}

	require.NoError(t, Save(dir, cfg))

	loaded, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_CreatesFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "subdir")
	cfg := &Config{APIURL: "https://api.example.com"}

	require.NoError(t, Save(dir, cfg))
	_, err := os.Stat(filepath.Join(dir, "config.yaml"))
	assert.NoError(t, err)
}

func TestResolve_Defaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvRequireJWT, "")

	cfg, err := Resolve(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.RequireJWT)
}

func TestResolve_Precedence(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("api_url: https://file.example.com/\ntimeout: 5s\nlog_level: info\n"), 0644)
	os.WriteFile(filepath.Join(dir, ".env"), []byte("DOLPHIN_API_URL=https://dotenv.example.com\nDOLPHIN_TIMEOUT=7s\n"), 0644)
	t.Setenv(EnvAPIURL, "https://env.example.com/")
	t.Setenv(EnvTimeout, "")
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvRequireJWT, "true")

	cfg, err := Resolve(dir)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.RequireJWT)
}

func TestResolve_BadTimeout(t *testing.T) {
	t.Setenv(EnvTimeout, "soon")

	_, err := Resolve(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvTimeout)
}
