package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/edustream/internal/flagx"
	"github.com/joho/godotenv"
)

// Environment variables understood by parseEnv.
const (
	envHTTPAddr       = "EDU_HTTP_ADDR"
	envDatabaseDSN    = "EDU_DATABASE_DSN"
	envSecretKey      = "EDU_SECRET_KEY"
	envAccessTokenTTL = "EDU_ACCESS_TOKEN_TTL"
	envRefreshGrace   = "EDU_REFRESH_GRACE"
	envBcryptCost     = "EDU_BCRYPT_COST"
	envStrictPricing  = "EDU_STRICT_PRICING"
	envAllowedOrigins = "EDU_ALLOWED_ORIGINS"
)

// loadDotenv seeds the process environment from the file named by -env, or
// from ./.env when present. Variables already set are not overwritten.
func loadDotenv() error {
	if path := flagx.EnvFileFlags(); path != "" {
		return godotenv.Load(path)
	}
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// parseEnv overlays Config with EDU_* variables. Malformed values panic,
// matching the JSON and flag stages.
func parseEnv(cfg *Config) {
	if err := loadDotenv(); err != nil {
		panic(err)
	}

	if v, ok := os.LookupEnv(envHTTPAddr); ok {
		cfg.EndpointAddrHTTP = v
	}
	if v, ok := os.LookupEnv(envDatabaseDSN); ok {
		cfg.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv(envSecretKey); ok {
		cfg.SecretKey = v
	}
	if v, ok := os.LookupEnv(envAccessTokenTTL); ok {
		cfg.AccessTokenValidityDuration = mustDuration(envAccessTokenTTL, v)
	}
	if v, ok := os.LookupEnv(envRefreshGrace); ok {
		cfg.RefreshGraceDuration = mustDuration(envRefreshGrace, v)
	}
	if v, ok := os.LookupEnv(envBcryptCost); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			panic(envBcryptCost + ": " + err.Error())
		}
		cfg.BcryptCost = n
	}
	if v, ok := os.LookupEnv(envStrictPricing); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(envStrictPricing + ": " + err.Error())
		}
		cfg.StrictPricing = b
	}
	if v, ok := os.LookupEnv(envAllowedOrigins); ok {
		cfg.AllowedOrigins = splitList(v)
	}
}

func mustDuration(name, v string) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		panic(name + ": " + err.Error())
	}
	return d
}

func splitList(v string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
