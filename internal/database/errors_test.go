package database

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestViolationDetectionMySQL(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !IsUniqueViolation(dup) {
		t.Fatal("1062 should be a unique violation")
	}
	if IsForeignKeyViolation(dup) {
		t.Fatal("1062 should not be a foreign key violation")
	}
	for _, n := range []uint16{1451, 1452, 1216, 1217} {
		err := &mysql.MySQLError{Number: n}
		if !IsForeignKeyViolation(err) {
			t.Fatalf("%d should be a foreign key violation", n)
		}
	}
	if IsUniqueViolation(nil) || IsForeignKeyViolation(nil) {
		t.Fatal("nil is not a violation")
	}
}

func TestViolationDetectionSQLite(t *testing.T) {
	db := openTestDB(t)
	stmts := []string{
		"CREATE TABLE parent (id TEXT PRIMARY KEY)",
		"CREATE TABLE child (id TEXT PRIMARY KEY, parent_id TEXT NOT NULL REFERENCES parent (id))",
		"INSERT INTO parent (id) VALUES ('p1')",
		"INSERT INTO child (id, parent_id) VALUES ('c1', 'p1')",
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			t.Fatalf("exec %q: %v", s, err)
		}
	}

	_, err := db.Exec("INSERT INTO parent (id) VALUES ('p1')")
	if !IsUniqueViolation(err) {
		t.Fatalf("duplicate primary key: got %v, want unique violation", err)
	}

	_, err = db.Exec("DELETE FROM parent WHERE id = 'p1'")
	if !IsForeignKeyViolation(err) {
		t.Fatalf("delete referenced row: got %v, want foreign key violation", err)
	}

	if IsUniqueViolation(errors.New("boom")) {
		t.Fatal("plain error is not a violation")
	}
}

func TestIsAlreadyExistsError(t *testing.T) {
	cases := map[string]bool{
		"table games already exists":            true,
		"Error 1060: Duplicate column name 'x'": true,
		"Error 1061: Duplicate key name 'idx'":  true,
		"syntax error":                          false,
	}
	for msg, want := range cases {
		if got := IsAlreadyExistsError(errors.New(msg)); got != want {
			t.Fatalf("IsAlreadyExistsError(%q) = %v, want %v", msg, got, want)
		}
	}
}
