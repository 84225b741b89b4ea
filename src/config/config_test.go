package config

import (
	"os"
	"path/filepath"
	"testing"

	"crypto-sniper/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

func validModelConfig() *models.MConfig {
	return &models.MConfig{
		Name:     "crypto-sniper",
		Host:     "127.0.0.1",
		Port:     8000,
		LogLevel: "INFO",
		Storage: models.MStorageConfig{
			DBType:        "sqlite",
			DBPath:        "test.db",
			RetentionDays: 7,
		},
		Network: models.MNetworkConfig{
			RequestTimeout: 10,
		},
		Monitor: models.MMonitorConfig{
			Symbols:        []string{"BTCUSDT"},
			Candidates:     []string{"BTCUSDT", "ETHUSDT"},
			Interval:       "1m",
			Limit:          120,
			MinBars:        60,
			RefreshSeconds: 20,
			Sources:        []string{"binance", "okx"},
			HistoryDepth:   64,
		},
		Notify: models.MNotifyConfig{
			Enabled:        true,
			TimeoutSeconds: 5,
		},
		Grids: map[string]models.MGridParams{
			"BTCUSDT": {LowerPct: 3, UpperPct: 3, GridCount: 10},
		},
	}
}

// -----------------------------------------------------------------------------

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg := &Config{MConfig: validModelConfig()}
	assert.NoError(t, cfg.Validate())
}

// -----------------------------------------------------------------------------

func TestValidateRejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.MConfig)
	}{
		{"empty name", func(m *models.MConfig) { m.Name = "" }},
		{"privileged port", func(m *models.MConfig) { m.Port = 80 }},
		{"port too high", func(m *models.MConfig) { m.Port = 70000 }},
		{"sqlite without path", func(m *models.MConfig) { m.Storage.DBPath = "" }},
		{"zero retention", func(m *models.MConfig) { m.Storage.RetentionDays = 0 }},
		{"zero timeout", func(m *models.MConfig) { m.Network.RequestTimeout = 0 }},
		{"refresh below slider floor", func(m *models.MConfig) { m.Monitor.RefreshSeconds = 14 }},
		{"refresh above slider ceiling", func(m *models.MConfig) { m.Monitor.RefreshSeconds = 61 }},
		{"min bars above limit", func(m *models.MConfig) { m.Monitor.MinBars = 121 }},
		{"no sources", func(m *models.MConfig) { m.Monitor.Sources = nil }},
		{"no symbols", func(m *models.MConfig) { m.Monitor.Symbols = nil }},
		{"symbol outside candidates", func(m *models.MConfig) { m.Monitor.Symbols = []string{"DOGEUSDT"} }},
		{"zero grid count", func(m *models.MConfig) {
			m.Grids["BTCUSDT"] = models.MGridParams{LowerPct: 3, UpperPct: 3}
		}},
		{"negative grid bound", func(m *models.MConfig) {
			m.Grids["BTCUSDT"] = models.MGridParams{LowerPct: -3, UpperPct: 3, GridCount: 10}
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := validModelConfig()
			tc.mutate(m)
			cfg := &Config{MConfig: m}
			assert.Error(t, cfg.Validate())
		})
	}
}

// -----------------------------------------------------------------------------

func TestNewConfigAppliesDefaults(t *testing.T) {
	yaml := `
name: "crypto-sniper"
host: "127.0.0.1"
port: 8000
storage:
  db_type: "sqlite"
  db_path: "test.db"
network:
  timeout: 10
monitor:
  symbols: ["BTCUSDT"]
  candidates: ["BTCUSDT"]
  refresh_seconds: 20
  sources: ["binance"]
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0644))

	cfg, err := NewConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "1m", cfg.Monitor.Interval)
	assert.Equal(t, 120, cfg.Monitor.Limit)
	assert.Equal(t, 60, cfg.Monitor.MinBars)
	assert.Equal(t, 64, cfg.Monitor.HistoryDepth)
	assert.Equal(t, 5, cfg.Notify.TimeoutSeconds)
	assert.Equal(t, 7, cfg.Storage.RetentionDays)
}

// -----------------------------------------------------------------------------

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestSaveRoundTrip(t *testing.T) {
	cfg := &Config{MConfig: validModelConfig()}
	path := filepath.Join(t.TempDir(), "saved.yaml")

	require.NoError(t, cfg.Save(path))

	loaded, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, loaded.Name)
	assert.Equal(t, cfg.Monitor.Symbols, loaded.Monitor.Symbols)
	assert.Equal(t, cfg.Grids["BTCUSDT"], loaded.Grids["BTCUSDT"])
}

// -----------------------------------------------------------------------------

func TestGridParams(t *testing.T) {
	cfg := &Config{MConfig: validModelConfig()}

	g, ok := cfg.GridParams("BTCUSDT")
	require.True(t, ok)
	assert.Equal(t, 10, g.GridCount)

	_, ok = cfg.GridParams("ETHUSDT")
	assert.False(t, ok)
}
