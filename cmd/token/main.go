// Command token prints a signed access token for the write guard.
//
//	token -sub alice -role editor -ttl 24h
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/game-catalog/internal/config"
	"github.com/iliyamo/game-catalog/internal/utils"
)

func main() {
	sub := flag.String("sub", "catalog-admin", "token subject")
	role := flag.String("role", "admin", "role claim (admin or editor)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg := config.Load()
	tok, err := utils.NewAccessToken(cfg.JWTSecret, *sub, *role, *ttl)
	if err != nil {
		log.Fatalf("token: %v", err)
	}
	fmt.Println(tok.Token)
	log.Printf("expires %s", tok.Exp.Format(time.RFC3339))
}
