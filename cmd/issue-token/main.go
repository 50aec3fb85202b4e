// Command issue-token prints a signed bearer token for a calling service.
//
//	JWT_SIGNING_KEY=... issue-token -subject svc-invoices -ttl 24h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	jwttoken "tradeverify/internal/jwt_token"
	"tradeverify/internal/platform/config"
)

func main() {
	subject := flag.String("subject", "", "calling service identity (required)")
	scope := flag.String("scope", "verify", "scope claim")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if cfg.Server.JWTSigningKey == "" {
		fmt.Fprintln(os.Stderr, "JWT_SIGNING_KEY is required")
		os.Exit(1)
	}

	svc := jwttoken.NewJWTService(cfg.Server.JWTSigningKey, cfg.Server.JWTIssuer, cfg.Server.JWTAudience)
	token, err := svc.IssueToken(*subject, *scope, *ttl)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(token)
}
