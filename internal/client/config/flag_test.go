package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "http://127.0.0.1:8000/v1", "-r", "5", "-t", "3", "-i", "10", "-db", "x.db"}, expectPanic: false,
			expected: &Config{APIBaseURL: "http://127.0.0.1:8000/v1", MaxRetries: 5, RequestTimeout: 3 * time.Second, OnlineCheckInterval: 10 * time.Second, DatabasePath: "x.db"}},
		{name: "Test2 foreign flags ignored", args: []string{"cmd", "-zzz", "1", "-b", "legacy"}, expectPanic: false,
			expected: &Config{Backend: "legacy"}},
		{name: "Test3 incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
