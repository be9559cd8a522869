package config

import (
	"flag"
	"log"
	"os"
	"time"

	"shelflog/internal/flagx"
)

// parseFlags overlays settings from command-line flags. Unknown flags are
// filtered out beforehand so that config-file flags handled elsewhere do not
// break parsing.
func parseFlags(cfg *Config) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)

	addr := fs.String("a", cfg.EndpointAddrHTTP, "address and port of the HTTP endpoint")
	dsn := fs.String("d", cfg.DatabaseDSN, "database connection string")
	key := fs.String("k", cfg.SecretKey, "secret key for signing session tokens")
	sessMin := fs.Int("t", int(cfg.SessionValidityDuration.Minutes()), "session validity duration in minutes")
	secure := fs.Bool("s", cfg.SecureCookies, "set the Secure flag on session cookies")

	allowed := []string{"-a", "-d", "-k", "-t", "-s"}
	if err := fs.Parse(flagx.FilterArgs(os.Args[1:], allowed)); err != nil {
		log.Printf("error parsing flags: %v", err)
		return
	}

	cfg.EndpointAddrHTTP = *addr
	cfg.DatabaseDSN = *dsn
	cfg.SecretKey = *key
	cfg.SessionValidityDuration = time.Duration(*sessMin) * time.Minute
	cfg.SecureCookies = *secure
}
