// Command admintoken mints a bearer token for the Click transaction history
// endpoint using the configured JWT secret.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/example/clickpay/internal/config"
	"github.com/example/clickpay/internal/utils"
)

func main() {
	adminID := flag.String("admin", "", "admin id (uuid); a random one is generated when empty")
	ttl := flag.Duration("ttl", 0, "token lifetime; defaults to JWT_TTL_HOURS")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	id := uuid.New()
	if *adminID != "" {
		if id, err = uuid.Parse(*adminID); err != nil {
			log.Fatalf("invalid -admin: %v", err)
		}
	}

	lifetime := cfg.TokenExpires
	if *ttl > 0 {
		lifetime = *ttl
	}

	token, err := utils.GenerateToken(cfg.JWTSecret, id, lifetime)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}

	fmt.Fprintf(os.Stderr, "admin %s, expires in %s\n", id, lifetime.Round(time.Minute))
	fmt.Println(token)
}
