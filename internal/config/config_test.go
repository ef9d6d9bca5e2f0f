package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aristath/finanalysis/pkg/formulas"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"LOG_LEVEL", "GO_PORT", "DEV_MODE", "IRR_GUESS", "IRR_MAX_ITERATIONS", "IRR_TOLERANCE"} {
		t.Setenv(key, "")
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8001, cfg.Port)
	assert.False(t, cfg.DevMode)
	assert.Equal(t, formulas.DefaultIRROptions(), cfg.IRR.Options())
}

func TestLoad_FromEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("GO_PORT", "9100")
	t.Setenv("DEV_MODE", "true")
	t.Setenv("IRR_GUESS", "0.05")
	t.Setenv("IRR_MAX_ITERATIONS", "250")
	t.Setenv("IRR_TOLERANCE", "1e-9")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 9100, cfg.Port)
	assert.True(t, cfg.DevMode)
	assert.Equal(t, 0.05, cfg.IRR.Guess)
	assert.Equal(t, 250, cfg.IRR.MaxIterations)
	assert.Equal(t, 1e-9, cfg.IRR.Tolerance)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	// godotenv does not override variables that are already set, even empty ones
	for _, key := range []string{"GO_PORT", "IRR_MAX_ITERATIONS"} {
		require.NoError(t, os.Unsetenv(key))
	}
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GO_PORT=8123\nIRR_MAX_ITERATIONS=42\n"), 0o644))
	chdir(t, dir)
	defer os.Unsetenv("GO_PORT")
	defer os.Unsetenv("IRR_MAX_ITERATIONS")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Port)
	assert.Equal(t, 42, cfg.IRR.MaxIterations)
}

func TestLoad_MalformedValuesFallBack(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("GO_PORT", "not-a-port")
	t.Setenv("IRR_TOLERANCE", "tiny")
	t.Setenv("DEV_MODE", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8001, cfg.Port)
	assert.Equal(t, formulas.DefaultIRRTolerance, cfg.IRR.Tolerance)
	assert.False(t, cfg.DevMode)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LogLevel: "info",
			Port:     8001,
			IRR:      IRRConfig{Guess: 0.1, MaxIterations: 100, Tolerance: 1e-6},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero port", func(c *Config) { c.Port = 0 }, "GO_PORT"},
		{"port out of range", func(c *Config) { c.Port = 70000 }, "GO_PORT"},
		{"zero iterations", func(c *Config) { c.IRR.MaxIterations = 0 }, "IRR_MAX_ITERATIONS"},
		{"negative tolerance", func(c *Config) { c.IRR.Tolerance = -1e-6 }, "IRR_TOLERANCE"},
		{"guess at -100%", func(c *Config) { c.IRR.Guess = -1 }, "IRR_GUESS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_InvalidConfiguration(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("IRR_MAX_ITERATIONS", "-5")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}
