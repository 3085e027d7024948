package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/edustream/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-s string   token HMAC secret key
//	-t int      token validity, minutes
//	-g int      refresh grace window, minutes
//	-b int      bcrypt cost
//	-p bool     strict pricing (use -p=true)
//	-o string   comma separated CORS origins
//
// Arguments are pre-filtered with flagx.FilterArgs so that -c/-config and
// -env do not trip the parser.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-g", "-b", "-p", "-o"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")

	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	refreshGrace := fs.Int("g", int(config.RefreshGraceDuration.Minutes()), "refresh grace window (in minutes)")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.StrictPricing, "p", config.StrictPricing, "reprice orders from the catalog")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
	config.RefreshGraceDuration = time.Duration(*refreshGrace) * time.Minute
	config.AllowedOrigins = splitList(*origins)
}
