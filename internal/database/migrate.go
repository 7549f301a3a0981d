package database

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

const migrationTable = "schema_migrations"

const (
	upMarker   = "-- +migrate Up"
	downMarker = "-- +migrate Down"
)

// Migration is one embedded schema change with its reverting statements.
type Migration struct {
	Name string
	Up   []string
	Down []string
}

// MigrationStatus pairs a migration name with whether it has been applied.
type MigrationStatus struct {
	Name    string
	Applied bool
}

// LoadMigrations reads every *.sql file under root in filename order. The
// timestamp prefix of each file defines the apply order.
func LoadMigrations(migrationFS fs.FS, root string) ([]Migration, error) {
	root = strings.TrimSpace(root)
	if root == "" {
		root = "."
	}
	entries, err := fs.ReadDir(migrationFS, root)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	out := make([]Migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(migrationFS, path.Join(root, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		up, down := splitSections(string(content))
		out = append(out, Migration{
			Name: strings.TrimSuffix(name, ".sql"),
			Up:   splitStatements(up),
			Down: splitStatements(down),
		})
	}
	return out, nil
}

// MigrateUp applies every pending migration and returns the names applied.
func MigrateUp(ctx context.Context, db *sql.DB, migrationFS fs.FS, root string) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}
	migrations, err := LoadMigrations(migrationFS, root)
	if err != nil {
		return nil, err
	}
	if err := ensureMigrationTable(ctx, db); err != nil {
		return nil, err
	}
	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	var done []string
	for _, m := range migrations {
		if _, ok := applied[m.Name]; ok {
			continue
		}
		if err := runMigration(ctx, db, m.Name, m.Up, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO "+migrationTable+" (name, applied_at) VALUES (?, ?)",
				m.Name, time.Now().UTC().UnixMilli())
			return err
		}); err != nil {
			return done, err
		}
		done = append(done, m.Name)
	}
	return done, nil
}

// MigrateDown reverts the last steps applied migrations, newest first, and
// returns the names reverted.
func MigrateDown(ctx context.Context, db *sql.DB, migrationFS fs.FS, root string, steps int) ([]string, error) {
	if db == nil {
		return nil, fmt.Errorf("sql db is required")
	}
	if steps <= 0 {
		return nil, nil
	}
	migrations, err := LoadMigrations(migrationFS, root)
	if err != nil {
		return nil, err
	}
	if err := ensureMigrationTable(ctx, db); err != nil {
		return nil, err
	}
	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}

	var done []string
	for i := len(migrations) - 1; i >= 0 && len(done) < steps; i-- {
		m := migrations[i]
		if _, ok := applied[m.Name]; !ok {
			continue
		}
		if err := runMigration(ctx, db, m.Name, m.Down, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM "+migrationTable+" WHERE name = ?", m.Name)
			return err
		}); err != nil {
			return done, err
		}
		done = append(done, m.Name)
	}
	return done, nil
}

// Status lists every known migration with its applied state.
func Status(ctx context.Context, db *sql.DB, migrationFS fs.FS, root string) ([]MigrationStatus, error) {
	migrations, err := LoadMigrations(migrationFS, root)
	if err != nil {
		return nil, err
	}
	if err := ensureMigrationTable(ctx, db); err != nil {
		return nil, err
	}
	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, 0, len(migrations))
	for _, m := range migrations {
		_, ok := applied[m.Name]
		out = append(out, MigrationStatus{Name: m.Name, Applied: ok})
	}
	return out, nil
}

func runMigration(ctx context.Context, db *sql.DB, name string, stmts []string, record func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin migration transaction %s: %w", name, err)
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if !IsAlreadyExistsError(err) {
				_ = tx.Rollback()
				return fmt.Errorf("exec migration %s: %w", name, err)
			}
		}
	}
	if err := record(tx); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %s: %w", name, err)
	}
	return nil
}

func ensureMigrationTable(ctx context.Context, db *sql.DB) error {
	createSQL := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    name VARCHAR(255) NOT NULL PRIMARY KEY,
    applied_at BIGINT NOT NULL
)`, migrationTable)
	if _, err := db.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("ensure migration table: %w", err)
	}
	return nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]struct{}, error) {
	rows, err := db.QueryContext(ctx, "SELECT name FROM "+migrationTable)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()

	out := map[string]struct{}{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		out[name] = struct{}{}
	}
	return out, rows.Err()
}

// splitSections returns the SQL in the Up and Down sections. A file without
// markers is treated as up-only.
func splitSections(content string) (up, down string) {
	upIdx := strings.Index(content, upMarker)
	downIdx := strings.Index(content, downMarker)
	switch {
	case upIdx == -1 && downIdx == -1:
		return content, ""
	case downIdx == -1:
		return content[upIdx+len(upMarker):], ""
	case upIdx == -1:
		return content[:downIdx], content[downIdx+len(downMarker):]
	case upIdx < downIdx:
		return content[upIdx+len(upMarker) : downIdx], content[downIdx+len(downMarker):]
	default:
		return content[upIdx+len(upMarker):], content[downIdx+len(downMarker) : upIdx]
	}
}

// splitStatements breaks a section into single statements. The MySQL driver
// rejects multi-statement Exec calls unless the DSN opts in.
func splitStatements(section string) []string {
	var out []string
	for _, part := range strings.Split(section, ";") {
		var lines []string
		for _, line := range strings.Split(part, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" || strings.HasPrefix(trimmed, "--") {
				continue
			}
			lines = append(lines, line)
		}
		stmt := strings.TrimSpace(strings.Join(lines, "\n"))
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}

// IsAlreadyExistsError reports whether this error indicates idempotent DDL success.
func IsAlreadyExistsError(err error) bool {
	if err == nil {
		return false
	}
	value := strings.ToLower(err.Error())
	return strings.Contains(value, "already exists") ||
		strings.Contains(value, "duplicate column name") ||
		strings.Contains(value, "duplicate key name")
}
