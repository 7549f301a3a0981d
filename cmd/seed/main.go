// Command seed fills the catalogue with demo data.  Pass -reset to remove
// existing games, categories and developers first.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/iliyamo/game-catalog/internal/config"
	"github.com/iliyamo/game-catalog/internal/database"
	"github.com/iliyamo/game-catalog/internal/database/migrations"
	"github.com/iliyamo/game-catalog/internal/repository"
	"github.com/iliyamo/game-catalog/internal/seed"
)

func main() {
	reset := flag.Bool("reset", false, "delete existing catalogue data before seeding")
	flag.Parse()

	cfg := config.Load()
	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if cfg.DBAutoMigrate {
		if _, err := database.MigrateUp(ctx, db, migrations.FS, "."); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}

	s := &seed.Seeder{
		Developers: repository.NewGameDeveloperRepo(db),
		Categories: repository.NewCategoryRepo(db),
		Games:      repository.NewGameRepo(db),
		Inventory:  repository.NewInventoryRepo(db),
	}
	sum, err := s.Run(ctx, *reset)
	if err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Printf("seeded %d developers, %d categories, %d games", sum.Developers, sum.Categories, sum.Games)
}
