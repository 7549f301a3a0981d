package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"reflect"
	"testing"
	"testing/fstest"

	"github.com/iliyamo/game-catalog/internal/database/migrations"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func queryInt64(t *testing.T, db *sql.DB, query string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.QueryRow(query, args...).Scan(&n); err != nil {
		t.Fatalf("query %q: %v", query, err)
	}
	return n
}

func TestMigrateUpAppliesEmbeddedMigrations(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	applied, err := MigrateUp(ctx, db, migrations.FS, ".")
	if err != nil {
		t.Fatalf("migrate up: %v", err)
	}
	if len(applied) != 7 {
		t.Fatalf("applied = %d migrations, want 7: %v", len(applied), applied)
	}
	if applied[0] != "1762962370535_create_game_developers" {
		t.Fatalf("first migration = %q, want create_game_developers", applied[0])
	}

	for _, table := range []string{"game_developers", "categories", "games", "inventory"} {
		if n := queryInt64(t, db, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table); n != 1 {
			t.Fatalf("table %s missing after migrate up", table)
		}
	}
	// columns added by later migrations must be selectable
	if _, err := db.Exec("SELECT release_year, price, amount FROM games"); err != nil {
		t.Fatalf("select added columns: %v", err)
	}

	again, err := MigrateUp(ctx, db, migrations.FS, ".")
	if err != nil {
		t.Fatalf("second migrate up: %v", err)
	}
	if len(again) != 0 {
		t.Fatalf("second run applied %v, want nothing", again)
	}
	if n := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); n != 7 {
		t.Fatalf("schema_migrations rows = %d, want 7", n)
	}
}

func TestMigrateDownRevertsNewestFirst(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()
	if _, err := MigrateUp(ctx, db, migrations.FS, "."); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	reverted, err := MigrateDown(ctx, db, migrations.FS, ".", 2)
	if err != nil {
		t.Fatalf("migrate down: %v", err)
	}
	want := []string{"1762971050000_add_amount_to_games", "1762971040000_add_price_to_games"}
	if !reflect.DeepEqual(reverted, want) {
		t.Fatalf("reverted = %v, want %v", reverted, want)
	}
	if _, err := db.Exec("SELECT amount FROM games"); err == nil {
		t.Fatal("expected amount column to be dropped")
	}

	status, err := Status(ctx, db, migrations.FS, ".")
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	pending := 0
	for _, s := range status {
		if !s.Applied {
			pending++
		}
	}
	if pending != 2 {
		t.Fatalf("pending = %d, want 2", pending)
	}

	applied, err := MigrateUp(ctx, db, migrations.FS, ".")
	if err != nil {
		t.Fatalf("re-apply: %v", err)
	}
	if len(applied) != 2 {
		t.Fatalf("re-applied %v, want the two reverted migrations", applied)
	}
}

func TestMigrateDownWithZeroStepsIsNoop(t *testing.T) {
	db := openTestDB(t)
	reverted, err := MigrateDown(context.Background(), db, migrations.FS, ".", 0)
	if err != nil || len(reverted) != 0 {
		t.Fatalf("MigrateDown(0) = %v, %v; want nothing", reverted, err)
	}
}

func TestFailedMigrationIsNotRecorded(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	bad := fstest.MapFS{
		"001_bad.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nCREAT TABLE things(id INT);")},
	}
	if _, err := MigrateUp(ctx, db, bad, "."); err == nil {
		t.Fatal("expected bad migration to fail")
	}
	if n := queryInt64(t, db, "SELECT COUNT(*) FROM schema_migrations"); n != 0 {
		t.Fatalf("failed migration recorded %d rows", n)
	}
}

func TestSplitSections(t *testing.T) {
	up, down := splitSections("-- +migrate Up\nCREATE TABLE a(id INT);\n-- +migrate Down\nDROP TABLE a;\n")
	if got := splitStatements(up); !reflect.DeepEqual(got, []string{"CREATE TABLE a(id INT)"}) {
		t.Fatalf("up statements = %q", got)
	}
	if got := splitStatements(down); !reflect.DeepEqual(got, []string{"DROP TABLE a"}) {
		t.Fatalf("down statements = %q", got)
	}

	up, down = splitSections("CREATE TABLE b(id INT);")
	if down != "" || len(splitStatements(up)) != 1 {
		t.Fatalf("file without markers: up=%q down=%q", up, down)
	}
}

func TestSplitStatementsDropsCommentsAndBlanks(t *testing.T) {
	got := splitStatements(`
-- leading comment
CREATE TABLE a (id INT);

-- another
CREATE INDEX idx_a ON a (id);
;`)
	want := []string{"CREATE TABLE a (id INT)", "CREATE INDEX idx_a ON a (id)"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("statements = %q, want %q", got, want)
	}
}
