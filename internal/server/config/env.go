package config

import (
	"net"
	"os"

	"github.com/dmitrijs2005/docverifier/internal/flagx"
)

// parseEnv applies the deployment environment variables.
func parseEnv(config *Config) {
	host, port := os.Getenv("API_HOST"), os.Getenv("API_PORT")
	if host != "" || port != "" {
		curHost, curPort, err := net.SplitHostPort(config.EndpointAddrHTTP)
		if err != nil {
			curHost, curPort = "", "8000"
		}
		if host == "" {
			host = curHost
		}
		if port == "" {
			port = curPort
		}
		config.EndpointAddrHTTP = net.JoinHostPort(host, port)
	}

	flagx.EnvString("GRPC_ADDR", &config.EndpointAddrGRPC)
	flagx.EnvString("DATABASE_URL", &config.DatabaseDSN)
	flagx.EnvString("JWT_SECRET_KEY", &config.SecretKey)
	flagx.EnvHours("JWT_EXPIRATION_HOURS", &config.AdminTokenValidity)
	flagx.EnvInt("EXPIRY_WARNING_DAYS", &config.ExpiryWarningDays)
	flagx.EnvInt("MIN_PIN_LENGTH", &config.MinPinLength)
	flagx.EnvList("ALLOWED_ORIGINS", &config.AllowedOrigins)
	flagx.EnvSeconds("REQUEST_TIMEOUT", &config.RequestTimeout)
	flagx.EnvString("ENVIRONMENT", &config.Environment)
	flagx.EnvString("LOG_LEVEL", &config.LogLevel)
	flagx.EnvString("S3_ROOT_USER", &config.S3RootUser)
	flagx.EnvString("S3_ROOT_PASSWORD", &config.S3RootPassword)
	flagx.EnvString("S3_BUCKET", &config.S3Bucket)
	flagx.EnvString("S3_REGION", &config.S3Region)
	flagx.EnvString("S3_BASE_ENDPOINT", &config.S3BaseEndpoint)
}
