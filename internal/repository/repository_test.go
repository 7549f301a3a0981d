package repository

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/game-catalog/internal/database"
	"github.com/iliyamo/game-catalog/internal/database/migrations"
	"github.com/iliyamo/game-catalog/internal/model"
)

func openStore(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if _, err := database.MigrateUp(context.Background(), db, migrations.FS, "."); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// stepClock returns base, base+1s, base+2s, ... on successive calls.
func stepClock(base time.Time) Clock {
	n := 0
	return func() time.Time {
		t := base.Add(time.Duration(n) * time.Second)
		n++
		return t
	}
}

var testBase = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type fixture struct {
	db         *sql.DB
	developers *GameDeveloperRepo
	categories *CategoryRepo
	games      *GameRepo
	inventory  *InventoryRepo
}

func newFixture(t *testing.T) fixture {
	db := openStore(t)
	clock := stepClock(testBase)
	return fixture{
		db:         db,
		developers: NewGameDeveloperRepo(db).WithClock(clock),
		categories: NewCategoryRepo(db).WithClock(clock),
		games:      NewGameRepo(db).WithClock(clock),
		inventory:  NewInventoryRepo(db),
	}
}

func (f fixture) developer(t *testing.T, name string) *model.GameDeveloper {
	t.Helper()
	d := &model.GameDeveloper{Name: name}
	if err := f.developers.Create(context.Background(), d); err != nil {
		t.Fatalf("create developer %q: %v", name, err)
	}
	return d
}

func (f fixture) category(t *testing.T, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name}
	if err := f.categories.Create(context.Background(), c); err != nil {
		t.Fatalf("create category %q: %v", name, err)
	}
	return c
}

func (f fixture) game(t *testing.T, name string, dev *model.GameDeveloper, cat *model.Category) *model.Game {
	t.Helper()
	g := &model.Game{
		Name:        name,
		Developer:   model.Ref{ID: dev.ID},
		Category:    model.Ref{ID: cat.ID},
		MinCPU:      decimal.RequireFromString("2.50"),
		MinMemory:   4096,
		Multiplayer: true,
		ReleaseYear: 2004,
		Price:       decimal.RequireFromString("19.99"),
		Amount:      10,
	}
	if err := f.games.Create(context.Background(), g); err != nil {
		t.Fatalf("create game %q: %v", name, err)
	}
	return g
}

func TestGameDeveloperCreateAndGet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := f.developer(t, "Valve")
	if d.ID == "" {
		t.Fatal("expected generated id")
	}
	if !d.CreatedAt.Equal(testBase) || !d.UpdatedAt.Equal(d.CreatedAt) {
		t.Fatalf("timestamps = %s / %s, want both %s", d.CreatedAt, d.UpdatedAt, testBase)
	}

	got, err := f.developers.GetByID(ctx, d.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Valve" || !got.CreatedAt.Equal(d.CreatedAt) {
		t.Fatalf("get = %+v, want %+v", got, d)
	}
	if got.GamesCount != nil {
		t.Fatal("GetByID should not populate GamesCount")
	}
}

func TestGetUnknownIDReturnsNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	const id = "00000000-0000-0000-0000-000000000000"

	if _, err := f.developers.GetByID(ctx, id); !errors.Is(err, ErrGameDeveloperNotFound) {
		t.Fatalf("developer get err = %v", err)
	}
	if _, err := f.categories.GetByID(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("category get err = %v", err)
	}
	if _, err := f.games.GetByID(ctx, id); !errors.Is(err, ErrGameNotFound) {
		t.Fatalf("game get err = %v", err)
	}
	if err := f.games.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("game delete err = %v", err)
	}
}

func TestUpdateRefreshesUpdatedAt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	d := f.developer(t, "Valve")
	created := d.CreatedAt
	d.Name = "Valve Corporation"
	if err := f.developers.Update(ctx, d); err != nil {
		t.Fatalf("update: %v", err)
	}
	if d.Name != "Valve Corporation" {
		t.Fatalf("name = %q", d.Name)
	}
	if !d.CreatedAt.Equal(created) {
		t.Fatalf("createdAt changed: %s -> %s", created, d.CreatedAt)
	}
	if !d.UpdatedAt.After(created) {
		t.Fatalf("updatedAt %s not after createdAt %s", d.UpdatedAt, created)
	}
}

func TestListOrdersNewestFirstWithGamesCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	valve := f.developer(t, "Valve")
	blizzard := f.developer(t, "Blizzard")
	shooter := f.category(t, "Shooter")
	strategy := f.category(t, "Strategy")
	f.game(t, "Half-Life", valve, shooter)
	f.game(t, "Portal", valve, shooter)
	f.game(t, "StarCraft", blizzard, strategy)

	devs, err := f.developers.List(ctx)
	if err != nil {
		t.Fatalf("list developers: %v", err)
	}
	if len(devs) != 2 || devs[0].ID != blizzard.ID || devs[1].ID != valve.ID {
		t.Fatalf("developer order = %v, want Blizzard then Valve", names(devs))
	}
	if *devs[0].GamesCount != 1 || *devs[1].GamesCount != 2 {
		t.Fatalf("gamesCount = %d/%d, want 1/2", *devs[0].GamesCount, *devs[1].GamesCount)
	}

	cats, err := f.categories.List(ctx)
	if err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if len(cats) != 2 || cats[0].Name != "Strategy" || *cats[1].GamesCount != 2 {
		t.Fatalf("categories = %+v", cats)
	}

	empty := f.category(t, "Puzzle")
	cats, _ = f.categories.List(ctx)
	if cats[0].ID != empty.ID || *cats[0].GamesCount != 0 {
		t.Fatalf("new category should be first with zero games, got %+v", cats[0])
	}

	games, err := f.games.List(ctx)
	if err != nil {
		t.Fatalf("list games: %v", err)
	}
	if len(games) != 3 || games[0].Name != "StarCraft" {
		t.Fatalf("games order wrong: first = %q", games[0].Name)
	}
}

func names(devs []*model.GameDeveloper) []string {
	out := make([]string, len(devs))
	for i, d := range devs {
		out[i] = d.Name
	}
	return out
}

func TestGameRoundTripEmbedsReferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	valve := f.developer(t, "Valve")
	shooter := f.category(t, "Shooter")
	g := f.game(t, "Half-Life", valve, shooter)

	if g.Developer.Name != "Valve" || g.Category.Name != "Shooter" {
		t.Fatalf("refs = %+v / %+v", g.Developer, g.Category)
	}
	got, err := f.games.GetByID(ctx, g.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !got.MinCPU.Equal(decimal.RequireFromString("2.5")) || !got.Price.Equal(decimal.RequireFromString("19.99")) {
		t.Fatalf("decimals = %s / %s", got.MinCPU, got.Price)
	}
	if got.MinMemory != 4096 || !got.Multiplayer || got.ReleaseYear != 2004 || got.Amount != 10 {
		t.Fatalf("game = %+v", got)
	}
}

func TestDuplicateGameNamePerDeveloperConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	valve := f.developer(t, "Valve")
	other := f.developer(t, "Other")
	shooter := f.category(t, "Shooter")
	f.game(t, "Half-Life", valve, shooter)

	dup := &model.Game{Name: "Half-Life", Developer: model.Ref{ID: valve.ID}, Category: model.Ref{ID: shooter.ID}, ReleaseYear: 1998}
	if err := f.games.Create(ctx, dup); !errors.Is(err, ErrConflict) {
		t.Fatalf("duplicate create err = %v, want ErrConflict", err)
	}

	// same name under another developer is allowed
	f.game(t, "Half-Life", other, shooter)
}

func TestDeleteReferencedDeveloperConflicts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	valve := f.developer(t, "Valve")
	shooter := f.category(t, "Shooter")
	g := f.game(t, "Half-Life", valve, shooter)

	err := f.developers.Delete(ctx, valve.ID)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("delete referenced developer err = %v, want ErrConflict", err)
	}
	if got, want := err.Error(), "conflict: game developer is still referenced by other records"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
	err = f.categories.DeleteMany(ctx, []string{shooter.ID})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("bulk delete referenced category err = %v, want ErrConflict", err)
	}
	if got, want := err.Error(), "conflict: one or more categories are still referenced by other records"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}

	if err := f.games.Delete(ctx, g.ID); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if err := f.developers.Delete(ctx, valve.ID); err != nil {
		t.Fatalf("delete developer after its games: %v", err)
	}
}

func TestCreateWithMissingReferenceConflicts(t *testing.T) {
	f := newFixture(t)
	shooter := f.category(t, "Shooter")

	g := &model.Game{
		Name:        "Orphan",
		Developer:   model.Ref{ID: "11111111-1111-1111-1111-111111111111"},
		Category:    model.Ref{ID: shooter.ID},
		MinCPU:      decimal.RequireFromString("1"),
		MinMemory:   256,
		ReleaseYear: 2000,
		Price:       decimal.RequireFromString("5"),
	}
	err := f.games.Create(context.Background(), g)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
	if got, want := err.Error(), "conflict: game references a record that does not exist"; got != want {
		t.Fatalf("message = %q, want %q", got, want)
	}
}

func TestDeleteManyIsAllOrNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	a := f.developer(t, "A")
	b := f.developer(t, "B")
	const missing = "11111111-1111-1111-1111-111111111111"

	err := f.developers.DeleteMany(ctx, []string{a.ID, missing, b.ID})
	var miss *MissingIDsError
	if !errors.As(err, &miss) {
		t.Fatalf("err = %v, want *MissingIDsError", err)
	}
	if len(miss.IDs) != 1 || miss.IDs[0] != missing {
		t.Fatalf("missing ids = %v", miss.IDs)
	}
	if !errors.Is(err, ErrNotFound) {
		t.Fatal("MissingIDsError should match ErrNotFound")
	}

	devs, _ := f.developers.List(ctx)
	if len(devs) != 2 {
		t.Fatalf("developers after failed bulk delete = %d, want 2", len(devs))
	}

	// duplicates collapse
	if err := f.developers.DeleteMany(ctx, []string{a.ID, a.ID, b.ID}); err != nil {
		t.Fatalf("bulk delete: %v", err)
	}
	devs, _ = f.developers.List(ctx)
	if len(devs) != 0 {
		t.Fatalf("developers after bulk delete = %d, want 0", len(devs))
	}
}

func TestDeletingGameCascadesInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	g := f.game(t, "Portal", f.developer(t, "Valve"), f.category(t, "Puzzle"))
	inv := &model.Inventory{GameID: g.ID, Units: 5, Price: decimal.RequireFromString("9.99")}
	if err := f.inventory.Create(ctx, inv); err != nil {
		t.Fatalf("create inventory: %v", err)
	}
	if err := f.inventory.Create(ctx, &model.Inventory{GameID: g.ID, Units: 1}); !errors.Is(err, ErrConflict) {
		t.Fatalf("second inventory row err = %v, want ErrConflict", err)
	}
	got, err := f.inventory.GetByGameID(ctx, g.ID)
	if err != nil || got.Units != 5 {
		t.Fatalf("get inventory = %+v, %v", got, err)
	}

	if err := f.games.DeleteMany(ctx, []string{g.ID}); err != nil {
		t.Fatalf("delete game: %v", err)
	}
	if _, err := f.inventory.GetByGameID(ctx, g.ID); !errors.Is(err, ErrInventoryNotFound) {
		t.Fatalf("inventory after game delete err = %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	db := openStore(t)
	repo := NewHealthRepo(db)
	if err := repo.Check(context.Background()); err != nil {
		t.Fatalf("check: %v", err)
	}
	_ = db.Close()
	if err := repo.Check(context.Background()); err == nil {
		t.Fatal("expected error on closed db")
	}
}

func TestMissingIDsErrorMessage(t *testing.T) {
	err := &MissingIDsError{Entity: "Games", IDs: []string{"a", "b"}}
	if got, want := err.Error(), "Games with IDs a, b not found"; got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}
