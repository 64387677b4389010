package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.InetHost)
	assert.Equal(t, 8085, cfg.Port)
	assert.False(t, cfg.Verbose)
	assert.False(t, cfg.Keepalive)
	assert.Equal(t, 0, cfg.RateLimit)
	assert.Equal(t, 60*time.Second, cfg.RateCooldown)
	assert.Equal(t, 10000, cfg.RateMaxSources)
}

func TestParseRateLimitFlags(t *testing.T) {
	cfg, err := Parse([]string{"--rate-limit", "50", "--rate-cooldown", "5", "--rate-max-sources", "100"})
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.RateLimit)
	assert.Equal(t, 5*time.Second, cfg.RateCooldown)
	assert.Equal(t, 100, cfg.RateMaxSources)
}

func TestParseFlagsOverrideDefaults(t *testing.T) {
	cfg, err := Parse([]string{"--port", "9090", "--verbose", "--keepalive", "--syspath", "/a", "--syspath", "/b"})
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.Keepalive)
	assert.Equal(t, []string{"/a", "/b"}, cfg.SysPaths)
}

func TestAddrCombinesHostAndPort(t *testing.T) {
	cfg := Server{InetHost: "127.0.0.1", Port: 8085}
	assert.Equal(t, "127.0.0.1:8085", cfg.Addr())
}

func TestConfigFileSuppliesDefaultsUnlessFlagSet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slimrelay.yaml")
	contents := "port: 9100\ninethost: 10.0.0.1\nverbose: true\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Parse([]string{"--config", path})
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "10.0.0.1", cfg.InetHost)
	assert.True(t, cfg.Verbose)

	cfg2, err := Parse([]string{"--config", path, "--port", "7777"})
	require.NoError(t, err)
	assert.Equal(t, 7777, cfg2.Port)
	assert.Equal(t, "10.0.0.1", cfg2.InetHost)
}
