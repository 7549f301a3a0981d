package database

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for constraint violations.
const (
	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlRowIsReferenced2   = 1217
	mysqlNoReferencedRow    = 1452
	mysqlNoReferencedRowOld = 1216
)

// IsUniqueViolation reports whether err was raised by a UNIQUE or PRIMARY
// KEY constraint on either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether err was raised by a FOREIGN KEY
// constraint, in either direction (missing parent or still-referenced row).
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		switch me.Number {
		case mysqlRowIsReferenced, mysqlRowIsReferenced2, mysqlNoReferencedRow, mysqlNoReferencedRowOld:
			return true
		}
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
