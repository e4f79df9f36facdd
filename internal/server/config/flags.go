package config

import (
	"flag"
	"os"
	"time"

	"github.com/akorchagin/authgate/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-k string   token HMAC key
//	-b int      bcrypt cost
//	-v int      default token validity, days
//	-t int      store operation timeout, seconds
//	-m int      max open DB connections
//	-i int      max idle DB connections
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-b", "-v", "-t", "-m", "-i"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TokenHashKey, "k", config.TokenHashKey, "token hash key")

	fs.IntVar(&config.BcryptCost, "b", config.BcryptCost, "bcrypt cost")
	fs.IntVar(&config.TokenValidityDays, "v", config.TokenValidityDays, "token validity (in days)")

	storeTimeout := fs.Int("t", int(config.StoreTimeout.Seconds()), "store operation timeout (in seconds)")

	fs.IntVar(&config.MaxOpenConns, "m", config.MaxOpenConns, "max open db connections")
	fs.IntVar(&config.MaxIdleConns, "i", config.MaxIdleConns, "max idle db connections")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.StoreTimeout = time.Duration(*storeTimeout) * time.Second
}
