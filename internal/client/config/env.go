package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/dmitrijs2005/edustream/internal/flagx"
	"github.com/joho/godotenv"
)

const (
	envServerURL      = "EDU_SERVER_URL"
	envLocalDB        = "EDU_LOCAL_DB"
	envRequestTimeout = "EDU_REQUEST_TIMEOUT"
)

func parseEnv(cfg *Config) {
	if path := flagx.EnvFileFlags(); path != "" {
		if err := godotenv.Load(path); err != nil {
			panic(err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	if v, ok := os.LookupEnv(envServerURL); ok {
		cfg.ServerEndpointAddr = v
	}
	if v, ok := os.LookupEnv(envLocalDB); ok {
		cfg.LocalDBPath = v
	}
	if v, ok := os.LookupEnv(envRequestTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(fmt.Errorf("%s: %w", envRequestTimeout, err))
		}
		cfg.RequestTimeout = d
	}
}
