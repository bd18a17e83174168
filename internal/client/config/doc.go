// Package config loads runtime configuration for the verifier CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment variables (API_BASE_URL, USE_MOCK_SERVER, HTTP_TIMEOUT,
//     MAX_RETRIES, ...).
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   API base URL
//	-b string   backend kind: rest or legacy
//	-r int      total attempts per request
//	-t int      per-request timeout (seconds)
//	-i int      online status check interval (seconds)
//	-db string  path of the local SQLite database
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8000/v1",
//	  "request_timeout": "10s",
//	  "max_retries": 3,
//	  "online_check_interval": "15s"
//	}
package config
