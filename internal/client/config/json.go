package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docverifier/internal/flagx"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Values are
// copied into the runtime Config only when present.
type JsonConfig struct {
	APIBaseURL           string         `json:"api_base_url"`
	UseMockServer        bool           `json:"use_mock_server"`
	Backend              string         `json:"backend"`
	VerifyPath           string         `json:"verify_path"`
	DocumentPath         string         `json:"document_path"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	MaxRetries           int            `json:"max_retries"`
	InitialBackoff       timex.Duration `json:"initial_backoff"`
	MaxBackoff           timex.Duration `json:"max_backoff"`
	BackoffJitterPercent int            `json:"backoff_jitter_percent"`
	OnlineCheckInterval  timex.Duration `json:"online_check_interval"`
	DatabasePath         string         `json:"database_path"`
	DataDir              string         `json:"data_dir"`
	CacheRetentionDays   int            `json:"cache_retention_days"`
	LogLevel             string         `json:"log_level"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.Backend, jc.Backend)
	setString(&cfg.VerifyPath, jc.VerifyPath)
	setString(&cfg.DocumentPath, jc.DocumentPath)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.DataDir, jc.DataDir)
	setString(&cfg.LogLevel, jc.LogLevel)

	if jc.UseMockServer {
		cfg.UseMockServer = true
		cfg.APIBaseURL = MockAPIBaseURL
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.InitialBackoff.Duration > 0 {
		cfg.InitialBackoff = jc.InitialBackoff.Duration
	}
	if jc.MaxBackoff.Duration > 0 {
		cfg.MaxBackoff = jc.MaxBackoff.Duration
	}
	if jc.OnlineCheckInterval.Duration > 0 {
		cfg.OnlineCheckInterval = jc.OnlineCheckInterval.Duration
	}
	if jc.MaxRetries > 0 {
		cfg.MaxRetries = jc.MaxRetries
	}
	if jc.BackoffJitterPercent > 0 {
		cfg.BackoffJitterPercent = jc.BackoffJitterPercent
	}
	if jc.CacheRetentionDays > 0 {
		cfg.CacheRetentionDays = jc.CacheRetentionDays
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
