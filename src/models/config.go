package models

// MConfig Structure
type MConfig struct {
	Name     string                 `yaml:"name"`
	Host     string                 `yaml:"host"`
	Port     int                    `yaml:"port"`
	LogLevel string                 `yaml:"log_level"`
	Storage  MStorageConfig         `yaml:"storage"`
	Network  MNetworkConfig         `yaml:"network"`
	Monitor  MMonitorConfig         `yaml:"monitor"`
	Notify   MNotifyConfig          `yaml:"notify"`
	Grids    map[string]MGridParams `yaml:"grids"`
}

type MStorageConfig struct {
	DBType             string `yaml:"db_type"`
	DBPath             string `yaml:"db_path"`
	DBConnectionString string `yaml:"db_connection_string"`
	RetentionDays      int    `yaml:"retention_days"`
}

type MNetworkConfig struct {
	Enabled        bool     `yaml:"enabled"`
	Proxies        []string `yaml:"proxies"`
	RequestTimeout int      `yaml:"timeout"`
	UserAgent      string   `yaml:"user_agent"`
}

type MMonitorConfig struct {
	Symbols        []string `yaml:"symbols"`         // active watch-list
	Candidates     []string `yaml:"candidates"`      // selectable universe
	Interval       string   `yaml:"interval"`        // candle bucket, e.g. "1m"
	Limit          int      `yaml:"limit"`           // window length per fetch
	MinBars        int      `yaml:"min_bars"`        // below this, signals are undefined
	RefreshSeconds int      `yaml:"refresh_seconds"` // tick period, bounded 15..60
	AutoRefresh    bool     `yaml:"auto_refresh"`
	Sources        []string `yaml:"sources"` // fallback priority order
	HistoryDepth   int      `yaml:"history_depth"`
}

type MNotifyConfig struct {
	Enabled        bool `yaml:"enabled"`
	TimeoutSeconds int  `yaml:"timeout_seconds"`
}
