package config

// Config is the top-level configuration carrier.
type Config struct {
	App     AppConfig     `toml:"app"`
	Catalog CatalogConfig `toml:"catalog"`
	Fetch   FetchConfig   `toml:"fetch"`
	Chart   ChartConfig   `toml:"chart"`
}

type AppConfig struct {
	Env      string `toml:"env"`
	LogLevel string `toml:"log_level"`
	HTTPAddr string `toml:"http_addr"`
	LogPath  string `toml:"log_path"`
}

// CatalogConfig controls the asset universes.
type CatalogConfig struct {
	CoinGeckoURL  string   `toml:"coingecko_url"`
	Pages         int      `toml:"pages"`
	PaceMillis    int      `toml:"pace_millis"`
	TTLSeconds    int      `toml:"ttl_seconds"`
	EquitiesFile  string   `toml:"equities_file"`
	DenylistExtra []string `toml:"denylist_extra"`
}

// FetchConfig controls the series fetch boundary.
type FetchConfig struct {
	CoinGeckoURL   string `toml:"coingecko_url"`
	YahooURL       string `toml:"yahoo_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	PaddingDays    int    `toml:"padding_days"`
	TTLSeconds     int    `toml:"ttl_seconds"`
	Workers        int    `toml:"workers"`
}

// ChartConfig controls presentation defaults.
type ChartConfig struct {
	DefaultDays     int  `toml:"default_days"`
	SnapshotEnabled bool `toml:"snapshot_enabled"`
}
