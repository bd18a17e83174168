package config

import "github.com/dmitrijs2005/docverifier/internal/flagx"

func parseEnv(cfg *Config) {
	flagx.EnvString("API_BASE_URL", &cfg.APIBaseURL)
	flagx.EnvBool("USE_MOCK_SERVER", &cfg.UseMockServer)
	if cfg.UseMockServer {
		cfg.APIBaseURL = MockAPIBaseURL
	}

	flagx.EnvString("API_BACKEND", &cfg.Backend)
	flagx.EnvString("API_VERIFY_PATH", &cfg.VerifyPath)
	flagx.EnvString("API_DOCUMENT_PATH", &cfg.DocumentPath)
	flagx.EnvSeconds("HTTP_TIMEOUT", &cfg.RequestTimeout)
	flagx.EnvInt("MAX_RETRIES", &cfg.MaxRetries)
	flagx.EnvString("VERIFIER_DB_PATH", &cfg.DatabasePath)
	flagx.EnvString("VERIFIER_DATA_DIR", &cfg.DataDir)
	flagx.EnvString("LOG_LEVEL", &cfg.LogLevel)
}
