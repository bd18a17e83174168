// Command tokengen mints admin tokens for the document-management endpoints.
//
//	tokengen -s <secret> -sub ops -ttl 24h
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dmitrijs2005/docverifier/internal/server/auth"
)

// devSecret matches the server default when JWT_SECRET_KEY is not set.
const devSecret = "your-secret-key-change-in-production"

type tokenOutput struct {
	Token     string `json:"token"`
	Type      string `json:"type"`
	Subject   string `json:"subject"`
	ExpiresIn string `json:"expires_in"`
}

func main() {
	fs := flag.NewFlagSet("tokengen", flag.ExitOnError)
	secret := fs.String("s", envOr("JWT_SECRET_KEY", devSecret), "HS256 signing secret")
	subject := fs.String("sub", "admin", "Token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "Token time-to-live")
	asJSON := fs.Bool("json", false, "Output as JSON")
	_ = fs.Parse(os.Args[1:])

	token, err := auth.GenerateAdminToken(*subject, []byte(*secret), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}

	if !*asJSON {
		fmt.Println(token)
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(tokenOutput{Token: token, Type: "Bearer", Subject: *subject, ExpiresIn: ttl.String()})
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
