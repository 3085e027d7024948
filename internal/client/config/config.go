package config

import "time"

// Config holds runtime settings for the EduStream CLI.
type Config struct {
	// ServerEndpointAddr is the base URL of the storefront API.
	ServerEndpointAddr string
	// LocalDBPath is the SQLite file holding the session and cart.
	LocalDBPath         string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "http://127.0.0.1:8080"
	c.LocalDBPath = "edustream.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then environment, JSON and flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
