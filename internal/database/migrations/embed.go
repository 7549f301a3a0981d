package migrations

import "embed"

// FS contains the catalogue schema migrations. The statements are written in
// the SQL subset shared by MySQL and SQLite.
//
//go:embed *.sql
var FS embed.FS
