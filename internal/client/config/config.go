package config

import (
	"time"

	"github.com/dmitrijs2005/tpforum/internal/filex"
)

// Config holds runtime settings for the forum client.
//
// Fields:
//   - AuthEndpointURL: URL the login/registration form is POSTed to.
//   - HealthAddr: host:port of the server's gRPC health service.
//   - OnlineCheckInterval: how often the client checks server reachability.
//   - DataDir: directory holding the local session database.
//   - RequestTimeout: upper bound for one auth request.
type Config struct {
	AuthEndpointURL     string
	HealthAddr          string
	OnlineCheckInterval time.Duration
	DataDir             string
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.AuthEndpointURL = "http://127.0.0.1:8080/api/auth"
	c.HealthAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.DataDir = filex.DefaultDataDir()
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
