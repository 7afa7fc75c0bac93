// Command tokengen issues a bearer token for an order-intake client.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/baharkarakas/payment-reconciler/internal/auth"
	"github.com/baharkarakas/payment-reconciler/internal/config"
)

func main() {
	cfg := config.Load()

	client := flag.String("client", "", "client id to embed in the token (required)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime, 0 for no expiry")
	flag.Parse()

	if *client == "" {
		fmt.Fprintln(os.Stderr, "tokengen: -client is required")
		flag.Usage()
		os.Exit(2)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "tokengen: JWT_SECRET is not set")
		os.Exit(1)
	}

	tok, exp, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, *ttl).Issue(*client)
	if err != nil {
		fmt.Fprintln(os.Stderr, "tokengen:", err)
		os.Exit(1)
	}
	fmt.Println(tok)
	if !exp.IsZero() {
		fmt.Fprintln(os.Stderr, "expires", exp.UTC().Format(time.RFC3339))
	}
}
