package flagx

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// The Env* helpers overlay a config field with an environment variable when
// it is set and parseable. Unparseable values are ignored so a stray variable
// never replaces a good default.

func EnvString(key string, dst *string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func EnvInt(key string, dst *int) {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
			*dst = n
		}
	}
}

func EnvBool(key string, dst *bool) {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
			*dst = b
		}
	}
}

// EnvSeconds reads an integer number of seconds, or a Go duration string.
func EnvSeconds(key string, dst *time.Duration) {
	envDuration(key, dst, time.Second)
}

// EnvHours reads an integer number of hours, or a Go duration string.
func EnvHours(key string, dst *time.Duration) {
	envDuration(key, dst, time.Hour)
}

func envDuration(key string, dst *time.Duration, unit time.Duration) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return
	}
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		*dst = time.Duration(n) * unit
		return
	}
	if d, err := time.ParseDuration(v); err == nil {
		*dst = d
	}
}

// EnvList splits a comma-separated variable, dropping empty items.
func EnvList(key string, dst *[]string) {
	v, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(v) == "" {
		return
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	*dst = out
}
