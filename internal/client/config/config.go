package config

import "time"

const (
	DefaultAPIBaseURL = "https://api.document-verifier.ru/v1"
	// MockAPIBaseURL is used when USE_MOCK_SERVER=true.
	MockAPIBaseURL = "http://localhost:8000/v1"
)

// Backend kinds.
const (
	BackendREST   = "rest"
	BackendLegacy = "legacy"
)

// Config holds runtime settings for the verifier CLI.
//
// Fields:
//   - APIBaseURL / Backend: where and how to reach the registry.
//   - VerifyPath / DocumentPath: endpoints of the legacy backend.
//   - RequestTimeout: limit for a single HTTP attempt.
//   - MaxRetries: total attempts per logical request.
//   - InitialBackoff / MaxBackoff / BackoffJitterPercent: retry delays.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - DatabasePath / DataDir: local journal file and export directory root.
//   - CacheRetentionDays: age after which offline snapshots are dropped.
type Config struct {
	APIBaseURL           string
	UseMockServer        bool
	Backend              string
	VerifyPath           string
	DocumentPath         string
	RequestTimeout       time.Duration
	MaxRetries           int
	InitialBackoff       time.Duration
	MaxBackoff           time.Duration
	BackoffJitterPercent int
	OnlineCheckInterval  time.Duration
	DatabasePath         string
	DataDir              string
	CacheRetentionDays   int
	LogLevel             string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = DefaultAPIBaseURL
	c.Backend = BackendREST
	c.VerifyPath = "/verify"
	c.DocumentPath = "/document"
	c.RequestTimeout = 10 * time.Second
	c.MaxRetries = 3
	c.InitialBackoff = time.Second
	c.MaxBackoff = 30 * time.Second
	c.OnlineCheckInterval = 15 * time.Second
	c.DatabasePath = "verifier.db"
	c.DataDir = "."
	c.CacheRetentionDays = 30
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
