package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docverifier/internal/flagx"
	"github.com/dmitrijs2005/docverifier/internal/timex"
)

// JsonConfig is the on-disk shape of the server config. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrHTTP   string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC   string         `json:"endpoint_addr_grpc"`
	DatabaseDSN        string         `json:"database_dsn"`
	SecretKey          string         `json:"secret_key"`
	AdminTokenValidity timex.Duration `json:"admin_token_validity"`
	ExpiryWarningDays  int            `json:"expiry_warning_days"`
	MinPinLength       int            `json:"min_pin_length"`
	AllowedOrigins     []string       `json:"allowed_origins"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	Environment        string         `json:"environment"`
	LogLevel           string         `json:"log_level"`
	S3RootUser         string         `json:"s3_root_user"`
	S3RootPassword     string         `json:"s3_root_password"`
	S3Bucket           string         `json:"s3_bucket"`
	S3Region           string         `json:"s3_region"`
	S3BaseEndpoint     string         `json:"s3_base_endpoint"`
	AttachmentURLTTL   timex.Duration `json:"attachment_url_ttl"`
}

// parseJson overlays config with the file named by -c/-config. Keys missing
// from the file keep their current values. An unreadable or invalid file
// panics, like a bad flag does.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.Environment, c.Environment)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AdminTokenValidity.Duration > 0 {
		config.AdminTokenValidity = c.AdminTokenValidity.Duration
	}
	if c.RequestTimeout.Duration > 0 {
		config.RequestTimeout = c.RequestTimeout.Duration
	}
	if c.AttachmentURLTTL.Duration > 0 {
		config.AttachmentURLTTL = c.AttachmentURLTTL.Duration
	}
	if c.ExpiryWarningDays > 0 {
		config.ExpiryWarningDays = c.ExpiryWarningDays
	}
	if c.MinPinLength > 0 {
		config.MinPinLength = c.MinPinLength
	}
	if len(c.AllowedOrigins) > 0 {
		config.AllowedOrigins = c.AllowedOrigins
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
