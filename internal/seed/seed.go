// Package seed loads the demo catalogue: ten developers, nine categories,
// thirty games and one inventory row per game.
package seed

import (
	"context"
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-catalog/internal/model"
	"github.com/iliyamo/game-catalog/internal/repository"
)

// Seeder writes fixtures through the regular repositories.
type Seeder struct {
	Developers *repository.GameDeveloperRepo
	Categories *repository.CategoryRepo
	Games      *repository.GameRepo
	Inventory  *repository.InventoryRepo
}

// Summary counts what Run inserted.
type Summary struct {
	Developers int
	Categories int
	Games      int
	Inventory  int
}

// Run inserts the fixtures.  With reset, existing games, categories and
// developers are removed first (inventory goes with its games).
func (s *Seeder) Run(ctx context.Context, reset bool) (Summary, error) {
	var sum Summary
	if reset {
		if err := s.clear(ctx); err != nil {
			return sum, fmt.Errorf("clear data: %w", err)
		}
	}

	developers := make(map[string]string, len(developerNames))
	for _, name := range developerNames {
		d := &model.GameDeveloper{Name: name}
		if err := s.Developers.Create(ctx, d); err != nil {
			return sum, fmt.Errorf("seed developer %q: %w", name, err)
		}
		developers[name] = d.ID
		sum.Developers++
	}
	log.Printf("seed: %d game developers", sum.Developers)

	categories := make(map[string]string, len(categoryNames))
	for _, name := range categoryNames {
		c := &model.Category{Name: name}
		if err := s.Categories.Create(ctx, c); err != nil {
			return sum, fmt.Errorf("seed category %q: %w", name, err)
		}
		categories[name] = c.ID
		sum.Categories++
	}
	log.Printf("seed: %d categories", sum.Categories)

	for _, f := range gameFixtures {
		devID, ok := developers[f.Developer]
		if !ok {
			return sum, fmt.Errorf("seed game %q: unknown developer %q", f.Name, f.Developer)
		}
		catID, ok := categories[f.Category]
		if !ok {
			return sum, fmt.Errorf("seed game %q: unknown category %q", f.Name, f.Category)
		}
		price := decimal.RequireFromString(f.Price)
		g := &model.Game{
			Name:        f.Name,
			Developer:   model.Ref{ID: devID},
			Category:    model.Ref{ID: catID},
			MinCPU:      decimal.RequireFromString(f.MinCPU),
			MinMemory:   f.MinMemory,
			Multiplayer: f.Multiplayer,
			ReleaseYear: f.ReleaseYear,
			Price:       price,
			Amount:      f.Amount,
		}
		if err := s.Games.Create(ctx, g); err != nil {
			return sum, fmt.Errorf("seed game %q: %w", f.Name, err)
		}
		sum.Games++

		inv := &model.Inventory{GameID: g.ID, Units: int(f.Amount), Price: price}
		if err := s.Inventory.Create(ctx, inv); err != nil {
			return sum, fmt.Errorf("seed inventory for %q: %w", f.Name, err)
		}
		sum.Inventory++
	}
	log.Printf("seed: %d games, %d inventory rows", sum.Games, sum.Inventory)
	return sum, nil
}

// clear removes games before their parents so no foreign key blocks the
// delete.
func (s *Seeder) clear(ctx context.Context) error {
	games, err := s.Games.List(ctx)
	if err != nil {
		return err
	}
	if len(games) > 0 {
		ids := make([]string, len(games))
		for i, g := range games {
			ids[i] = g.ID
		}
		if err := s.Games.DeleteMany(ctx, ids); err != nil {
			return err
		}
	}

	cats, err := s.Categories.List(ctx)
	if err != nil {
		return err
	}
	if len(cats) > 0 {
		ids := make([]string, len(cats))
		for i, c := range cats {
			ids[i] = c.ID
		}
		if err := s.Categories.DeleteMany(ctx, ids); err != nil {
			return err
		}
	}

	devs, err := s.Developers.List(ctx)
	if err != nil {
		return err
	}
	if len(devs) > 0 {
		ids := make([]string, len(devs))
		for i, d := range devs {
			ids[i] = d.ID
		}
		if err := s.Developers.DeleteMany(ctx, ids); err != nil {
			return err
		}
	}
	log.Printf("seed: cleared %d games, %d categories, %d developers", len(games), len(cats), len(devs))
	return nil
}
