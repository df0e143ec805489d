package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	t.Cleanup(func() { os.Args = orig })
	os.Args = args
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080/api/auth", c.AuthEndpointURL)
	assert.Equal(t, "127.0.0.1:50051", c.HealthAddr)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.NotEmpty(t, c.DataDir)
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"auth_endpoint_url":     "https://json.example/api/auth",
		"health_addr":           "json.example:1",
		"online_check_interval": "7s",
	})
	withArgs(t, "cmd", "-c", path, "-g", "flag.example:2", "-d", "/tmp/tp")

	cfg := LoadConfig()
	require.NotNil(t, cfg)

	want := &Config{
		AuthEndpointURL:     "https://json.example/api/auth",
		HealthAddr:          "flag.example:2",
		OnlineCheckInterval: 7 * time.Second,
		DataDir:             "/tmp/tp",
		RequestTimeout:      10 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "https://forum.example/api/auth", "-g", "forum.example:9090", "-i", "10", "-d", "/var/tp", "-t", "5"},
			expected: &Config{
				AuthEndpointURL:     "https://forum.example/api/auth",
				HealthAddr:          "forum.example:9090",
				OnlineCheckInterval: 10 * time.Second,
				DataDir:             "/var/tp",
				RequestTimeout:      5 * time.Second,
			},
		},
		{
			name:     "unknown flags are ignored",
			args:     []string{"cmd", "-x", "1", "-i", "2"},
			expected: &Config{OnlineCheckInterval: 2 * time.Second},
		},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "1s"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withArgs(t, tt.args...)
			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
