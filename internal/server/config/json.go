package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/edustream/internal/flagx"
	"github.com/dmitrijs2005/edustream/internal/timex"
)

// JsonConfig is the on-disk shape of the server config file. Durations use
// timex.Duration so both "15m" and integer nanoseconds are accepted.
// Absent fields leave the current value untouched.
type JsonConfig struct {
	EndpointAddrHTTP            string         `json:"endpoint_addr_http"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	RefreshGraceDuration        timex.Duration `json:"refresh_grace_duration"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	StrictPricing               *bool          `json:"strict_pricing"`
	AllowedOrigins              []string       `json:"allowed_origins"`
}

// parseJson loads the file named by -c/-config, if any, into config.
// Read or decode failures panic.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = c.EndpointAddrHTTP
	}
	if c.DatabaseDSN != "" {
		config.DatabaseDSN = c.DatabaseDSN
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.RefreshGraceDuration.Duration != 0 {
		config.RefreshGraceDuration = c.RefreshGraceDuration.Duration
	}
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	if c.StrictPricing != nil {
		config.StrictPricing = *c.StrictPricing
	}
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
}
