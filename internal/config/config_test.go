package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pointLoadAt directs Load to a config file (or to a missing one) and clears
// the env vars the tests toggle.
func pointLoadAt(t *testing.T, path string) {
	t.Helper()
	t.Setenv("CRYPTOLENS_CONFIG", path)
	for _, key := range []string{
		"CRYPTOLENS_LOGGING_LEVEL",
		"CRYPTOLENS_LOGGING_FORMAT",
		"CRYPTOLENS_PATHS_REPORTS_DIR",
		"CRYPTOLENS_GENERATION_DAYS",
		"CRYPTOLENS_GENERATION_SEED",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	pointLoadAt(t, filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "reports", cfg.Paths.ReportsDir)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, 365, cfg.Generation.Days)
	assert.Equal(t, 20000.0, cfg.Generation.BasePrice)
	assert.Equal(t, uint64(0), cfg.Generation.Seed)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
logging:
  level: debug
generation:
  days: 30
  seed: 99
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	pointLoadAt(t, path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	// Unset file fields keep their defaults.
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 30, cfg.Generation.Days)
	assert.Equal(t, uint64(99), cfg.Generation.Seed)
	assert.Equal(t, 20000.0, cfg.Generation.BasePrice)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("generation:\n  days: 30\n"), 0644))
	pointLoadAt(t, path)
	t.Setenv("CRYPTOLENS_GENERATION_DAYS", "7")
	t.Setenv("CRYPTOLENS_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Generation.Days)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad log level", map[string]string{"CRYPTOLENS_LOGGING_LEVEL": "verbose"}},
		{"bad log format", map[string]string{"CRYPTOLENS_LOGGING_FORMAT": "xml"}},
		{"negative days", map[string]string{"CRYPTOLENS_GENERATION_DAYS": "-5"}},
		{"zero base price", map[string]string{"CRYPTOLENS_GENERATION_BASE_PRICE": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pointLoadAt(t, filepath.Join(t.TempDir(), "missing.yaml"))
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging: [not a map"), 0644))
	pointLoadAt(t, path)

	_, err := Load()
	assert.Error(t, err)
}

func TestMarketConfig(t *testing.T) {
	gen := Default().Generation
	mc := gen.MarketConfig()

	assert.Equal(t, gen.Days, mc.Days)
	assert.Equal(t, gen.BasePrice, mc.BasePrice)
	assert.Equal(t, gen.TrendTotal, mc.TrendTotal)
	assert.Equal(t, gen.Volatility, mc.Volatility)
	assert.Equal(t, gen.VolumeMu, mc.VolumeMu)
	assert.Equal(t, gen.VolumeSigma, mc.VolumeSigma)
	assert.Equal(t, gen.Seed, mc.Seed)
}

func TestSetupLogger(t *testing.T) {
	t.Run("json format", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Format = "json"

		var buf bytes.Buffer
		logger := cfg.SetupLogger(&buf)
		logger.Info("hello", "key", "value")

		assert.Contains(t, buf.String(), `"msg":"hello"`)
		assert.Contains(t, buf.String(), `"key":"value"`)
	})

	t.Run("text format", func(t *testing.T) {
		cfg := Default()

		var buf bytes.Buffer
		logger := cfg.SetupLogger(&buf)
		logger.Info("hello")

		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filtering", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = "error"

		var buf bytes.Buffer
		logger := cfg.SetupLogger(&buf)
		logger.Info("dropped")
		logger.Error("kept")

		assert.NotContains(t, buf.String(), "dropped")
		assert.Contains(t, buf.String(), "kept")
	})
}
