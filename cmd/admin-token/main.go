// Command admin-token mints an admin JWT for a given user id. Useful for
// bootstrapping the first admin and for exercising the mutation endpoints
// locally.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/owakeel/golf-music-backend/internal/config"
	"github.com/owakeel/golf-music-backend/pkg/token"
)

func main() {
	userID := flag.String("user", "", "user record id (e.g. user:abc123)")
	role := flag.String("role", "admin", "role claim to embed")
	expiry := flag.Duration("expiry", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "usage: admin-token -user <record-id> [-role admin] [-expiry 24h]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	svc := token.NewService(cfg.JWT.Secret, cfg.JWT.Issuer, *expiry)
	signed, err := svc.Generate(*userID, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(signed)
}
