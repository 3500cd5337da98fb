package config

const (
	defaultAppEnv       = "dev"
	defaultAppLogLevel  = "info"
	defaultAppHTTPAddr  = ":8781"
	defaultCoinGeckoURL = "https://api.coingecko.com/api/v3"
	defaultYahooURL     = "https://query1.finance.yahoo.com"

	defaultCatalogPages   = 4
	defaultCatalogPaceMs  = 1400
	defaultCatalogTTLSecs = 3600

	defaultFetchTimeoutSecs = 15
	defaultFetchPaddingDays = 210
	defaultFetchTTLSecs     = 300
	defaultFetchWorkers     = 4

	defaultChartDays = 90
)

func (c *Config) applyDefaults() {
	c.App.applyDefaults()
	c.Catalog.applyDefaults()
	c.Fetch.applyDefaults()
	c.Chart.applyDefaults()
}

func (a *AppConfig) applyDefaults() {
	if a.Env == "" {
		a.Env = defaultAppEnv
	}
	if a.LogLevel == "" {
		a.LogLevel = defaultAppLogLevel
	}
	if a.HTTPAddr == "" {
		a.HTTPAddr = defaultAppHTTPAddr
	}
}

func (c *CatalogConfig) applyDefaults() {
	if c.CoinGeckoURL == "" {
		c.CoinGeckoURL = defaultCoinGeckoURL
	}
	if c.Pages <= 0 {
		c.Pages = defaultCatalogPages
	}
	if c.PaceMillis <= 0 {
		c.PaceMillis = defaultCatalogPaceMs
	}
	if c.TTLSeconds <= 0 {
		c.TTLSeconds = defaultCatalogTTLSecs
	}
}

func (f *FetchConfig) applyDefaults() {
	if f.CoinGeckoURL == "" {
		f.CoinGeckoURL = defaultCoinGeckoURL
	}
	if f.YahooURL == "" {
		f.YahooURL = defaultYahooURL
	}
	if f.TimeoutSeconds <= 0 {
		f.TimeoutSeconds = defaultFetchTimeoutSecs
	}
	if f.PaddingDays <= 0 {
		f.PaddingDays = defaultFetchPaddingDays
	}
	if f.TTLSeconds <= 0 {
		f.TTLSeconds = defaultFetchTTLSecs
	}
	if f.Workers <= 0 || f.Workers > defaultFetchWorkers {
		f.Workers = defaultFetchWorkers
	}
}

func (c *ChartConfig) applyDefaults() {
	if c.DefaultDays <= 0 {
		c.DefaultDays = defaultChartDays
	}
}
