// Package model holds the catalogue entities as they are exposed over the
// REST API.  Field names follow the JSON contract (camelCase) while the
// comments name the backing column.
package model

import "github.com/shopspring/decimal"

func init() {
    // Prices and CPU requirements are JSON numbers, not quoted strings.
    decimal.MarshalJSONWithoutQuotes = true
}

// Ref is the embedded {id, name} form used when one entity references another.
type Ref struct {
    ID   string `json:"id"`
    Name string `json:"name"`
}
