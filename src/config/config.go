package config

import (
	"fmt"
	"os"

	"crypto-sniper/src/models"

	"gopkg.in/yaml.v3"
)

// -----------------------------------------------------------------------------

// Bounds on the tick period; mirrors the dashboard refresh slider.
const (
	MinRefreshSeconds = 15
	MaxRefreshSeconds = 60
)

// Config wraps models.MConfig and provides business logic methods
type Config struct {
	*models.MConfig
}

// -----------------------------------------------------------------------------

// NewConfig creates a new MConfig instance from YAML file
func NewConfig(configPath string) (*Config, error) {
	// 1. Read the YAML file content
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file '%s': %w", configPath, err)
	}

	// 2. Unmarshal data into the models struct
	var modelConfig models.MConfig
	if err := yaml.Unmarshal(data, &modelConfig); err != nil {
		return nil, fmt.Errorf("failed to parse config from YAML: %w", err)
	}

	config := &Config{MConfig: &modelConfig}
	config.applyDefaults()

	// 3. Validate the loaded configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// -----------------------------------------------------------------------------

func (c *Config) applyDefaults() {
	if c.Monitor.Interval == "" {
		c.Monitor.Interval = "1m"
	}
	if c.Monitor.Limit == 0 {
		c.Monitor.Limit = 120
	}
	if c.Monitor.MinBars == 0 {
		c.Monitor.MinBars = 60
	}
	if c.Monitor.HistoryDepth == 0 {
		c.Monitor.HistoryDepth = 64
	}
	if c.Notify.TimeoutSeconds == 0 {
		c.Notify.TimeoutSeconds = 5
	}
	if c.Storage.RetentionDays == 0 {
		c.Storage.RetentionDays = 7
	}
}

// -----------------------------------------------------------------------------

// Validate performs basic configuration validation
func (c *Config) Validate() error {
	// Validate App configuration (Flattened)
	if c.Name == "" {
		return fmt.Errorf("application name cannot be empty")
	}

	// Validate Server configuration (Flattened)
	if c.Host == "" {
		return fmt.Errorf("server host cannot be empty")
	}
	if c.Port <= 1024 || c.Port > 65535 {
		return fmt.Errorf("invalid server port number: %d (must be between 1025 and 65535)", c.Port)
	}

	// Validate Storage configuration
	if c.Storage.DBType == "" {
		return fmt.Errorf("database type cannot be empty")
	}
	if c.Storage.DBType == "sqlite" && c.Storage.DBPath == "" {
		return fmt.Errorf("database path cannot be empty for sqlite")
	}
	if c.Storage.RetentionDays <= 0 {
		return fmt.Errorf("retention days must be greater than 0")
	}

	// Validate Network configuration
	if c.Network.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be greater than 0")
	}

	// Validate Monitor configuration
	if c.Monitor.RefreshSeconds < MinRefreshSeconds || c.Monitor.RefreshSeconds > MaxRefreshSeconds {
		return fmt.Errorf("refresh seconds %d out of range [%d, %d]",
			c.Monitor.RefreshSeconds, MinRefreshSeconds, MaxRefreshSeconds)
	}
	if c.Monitor.Limit <= 0 {
		return fmt.Errorf("candle limit must be greater than 0")
	}
	if c.Monitor.MinBars <= 0 || c.Monitor.MinBars > c.Monitor.Limit {
		return fmt.Errorf("min bars %d must be in range [1, %d]", c.Monitor.MinBars, c.Monitor.Limit)
	}
	if len(c.Monitor.Sources) == 0 {
		return fmt.Errorf("at least one quote source must be configured")
	}
	if len(c.Monitor.Symbols) == 0 {
		return fmt.Errorf("at least one watch symbol must be configured")
	}
	if len(c.Monitor.Candidates) > 0 {
		for _, sym := range c.Monitor.Symbols {
			if !contains(c.Monitor.Candidates, sym) {
				return fmt.Errorf("watch symbol '%s' is not in the candidate list", sym)
			}
		}
	}

	// Validate Grid parameter table
	for sym, g := range c.Grids {
		if g.GridCount <= 0 {
			return fmt.Errorf("grid count for '%s' must be greater than 0", sym)
		}
		if g.LowerPct <= 0 || g.UpperPct <= 0 {
			return fmt.Errorf("grid bounds for '%s' must be greater than 0", sym)
		}
	}

	return nil
}

// -----------------------------------------------------------------------------

// Save persists the current configuration to the specified YAML file path
func (c *Config) Save(configPath string) error {
	// 1. Marshal the struct to YAML
	data, err := yaml.Marshal(c.MConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config to YAML: %w", err)
	}

	// 2. Write to file (0644 permissions)
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config to file '%s': %w", configPath, err)
	}

	return nil
}

// -----------------------------------------------------------------------------

// GridParams looks up the static grid parameters for a symbol.
func (c *Config) GridParams(symbol string) (models.MGridParams, bool) {
	g, ok := c.Grids[symbol]
	return g, ok
}

// -----------------------------------------------------------------------------

func contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}
