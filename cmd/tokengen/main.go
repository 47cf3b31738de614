package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/mfcarvalho/orders-api/internal/auth"
	"github.com/mfcarvalho/orders-api/internal/config"
)

// tokengen mints a bearer token for the protected endpoints, signed with the
// same secret the API reads from the environment.
func main() {
	subject := flag.String("subject", "", "subject claim for the token (required)")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to the configured TTL")
	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "usage: tokengen -subject <id> [-ttl 30m]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	lifetime := cfg.JWT.TokenTTL
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := auth.GenerateToken(cfg.JWT.Secret, *subject, lifetime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "expires: %s\n", time.Now().Add(lifetime).Format(time.RFC3339))
}
