// Command migrate applies or reverts the embedded schema migrations.
//
//	migrate -up            apply every pending migration (the default)
//	migrate -down 1        revert the last applied migration
//	migrate -status        list migrations and whether they are applied
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/iliyamo/game-catalog/internal/config"
	"github.com/iliyamo/game-catalog/internal/database"
	"github.com/iliyamo/game-catalog/internal/database/migrations"
)

func main() {
	up := flag.Bool("up", false, "apply pending migrations")
	down := flag.Int("down", 0, "revert the last N applied migrations")
	status := flag.Bool("status", false, "print migration status")
	flag.Parse()

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	switch {
	case *status:
		list, err := database.Status(ctx, db, migrations.FS, ".")
		if err != nil {
			log.Fatalf("status: %v", err)
		}
		for _, m := range list {
			state := "pending"
			if m.Applied {
				state = "applied"
			}
			fmt.Printf("%-8s %s\n", state, m.Name)
		}
	case *down > 0 && !*up:
		reverted, err := database.MigrateDown(ctx, db, migrations.FS, ".", *down)
		for _, name := range reverted {
			log.Printf("reverted %s", name)
		}
		if err != nil {
			log.Fatalf("down: %v", err)
		}
	default:
		applied, err := database.MigrateUp(ctx, db, migrations.FS, ".")
		for _, name := range applied {
			log.Printf("applied %s", name)
		}
		if err != nil {
			log.Fatalf("up: %v", err)
		}
		if len(applied) == 0 {
			log.Printf("nothing to apply")
		}
	}
}
