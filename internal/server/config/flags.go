package config

import (
	"flag"
	"os"
	"time"

	"github.com/antonk9218/authd/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   PostgreSQL DSN
//	-k string   private key file (PEM)
//	-s string   private key passphrase
//	-u string   public key file (PEM)
//	-l int      lock duration, milliseconds
//	-t int      token validity, hours
//
// Notes:
//   - The function first filters os.Args to only the flags it recognizes using
//     flagx.FilterArgs, avoiding collisions with other components.
//   - Duration flags are accepted as integers and then converted
//     to time.Duration values.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-s", "-u", "-l", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.PrivateKeyFile, "k", config.PrivateKeyFile, "private key file")
	fs.StringVar(&config.PrivateKeyPassphrase, "s", config.PrivateKeyPassphrase, "private key passphrase")
	fs.StringVar(&config.PublicKeyFile, "u", config.PublicKeyFile, "public key file")

	lockDuration := fs.Int("l", int(config.LockDuration.Milliseconds()), "lock_duration (in milliseconds)")
	tokenValidity := fs.Int("t", int(config.TokenValidity.Hours()), "token_validity (in hours)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.LockDuration = time.Duration(*lockDuration) * time.Millisecond
	config.TokenValidity = time.Duration(*tokenValidity) * time.Hour
}
