package handler

import (
    "bytes"
    "encoding/json"

    "github.com/labstack/echo/v4"
    "github.com/shopspring/decimal"

    "github.com/iliyamo/game-catalog/internal/validation"
)

// Request bodies use pointer fields so a partial update can tell an absent
// field (nil) from a zero value.  An explicit null is not absent: it is
// recorded in nulls and rejected by validate.

// nullFields returns, in the order given, the fields of the JSON object b
// whose value is a literal null.
func nullFields(b []byte, fields ...string) ([]string, error) {
    var raw map[string]json.RawMessage
    if err := json.Unmarshal(b, &raw); err != nil {
        return nil, err
    }
    var out []string
    for _, f := range fields {
        if v, ok := raw[f]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
            out = append(out, f)
        }
    }
    return out, nil
}

func rejectNulls(v *validation.Validator, nulls []string) {
    for _, f := range nulls {
        v.Add(f, "must not be null")
    }
}

// jsonNumber is a decimal that only accepts an unquoted JSON number.  Any
// other value leaves it marked invalid so validation reports the field
// instead of failing the whole body.
type jsonNumber struct {
    decimal.Decimal
    invalid bool
}

func (n *jsonNumber) UnmarshalJSON(b []byte) error {
    b = bytes.TrimSpace(b)
    if len(b) == 0 || (b[0] != '-' && (b[0] < '0' || b[0] > '9')) {
        n.invalid = true
        return nil
    }
    d, err := decimal.NewFromString(string(b))
    if err != nil {
        n.invalid = true
        return nil
    }
    n.Decimal = d
    return nil
}

func checkNumber(v *validation.Validator, field string, n *jsonNumber) {
    switch {
    case n == nil:
    case n.invalid:
        v.Add(field, "must be a number")
    default:
        v.Decimal(field, &n.Decimal)
    }
}

// nameRequest is the create/update body for developers and categories.
type nameRequest struct {
    Name  *string `json:"name"`
    nulls []string
}

func (r *nameRequest) UnmarshalJSON(b []byte) error {
    type plain nameRequest
    if err := json.Unmarshal(b, (*plain)(r)); err != nil {
        return err
    }
    nulls, err := nullFields(b, "name")
    r.nulls = nulls
    return err
}

func (r *nameRequest) validate(partial bool) error {
    var v validation.Validator
    rejectNulls(&v, r.nulls)
    if len(r.nulls) > 0 {
        return v.Err()
    }
    if partial || v.Required("name", r.Name != nil) {
        v.Name("name", r.Name)
    }
    return v.Err()
}

// gameRequest is the create/update body for games.
type gameRequest struct {
    Name        *string     `json:"name"`
    DeveloperID *string     `json:"developerId"`
    CategoryID  *string     `json:"categoryId"`
    MinCPU      *jsonNumber `json:"minCpu"`
    MinMemory   *int64      `json:"minMemory"`
    Multiplayer *bool       `json:"multiplayer"`
    ReleaseYear *int        `json:"releaseYear"`
    Price       *jsonNumber `json:"price"`
    Amount      *int64      `json:"amount"`
    nulls       []string
}

var gameFields = []string{
    "name", "developerId", "categoryId", "minCpu", "minMemory",
    "multiplayer", "releaseYear", "price", "amount",
}

func (r *gameRequest) UnmarshalJSON(b []byte) error {
    type plain gameRequest
    if err := json.Unmarshal(b, (*plain)(r)); err != nil {
        return err
    }
    nulls, err := nullFields(b, gameFields...)
    r.nulls = nulls
    return err
}

func (r *gameRequest) validate(partial bool) error {
    var v validation.Validator
    rejectNulls(&v, r.nulls)
    if len(r.nulls) > 0 {
        return v.Err()
    }
    if !partial {
        v.Required("name", r.Name != nil)
        v.Required("developerId", r.DeveloperID != nil)
        v.Required("categoryId", r.CategoryID != nil)
        v.Required("minCpu", r.MinCPU != nil)
        v.Required("minMemory", r.MinMemory != nil)
        v.Required("releaseYear", r.ReleaseYear != nil)
        v.Required("price", r.Price != nil)
    }
    v.Name("name", r.Name)
    v.UUID("developerId", r.DeveloperID)
    v.UUID("categoryId", r.CategoryID)
    checkNumber(&v, "minCpu", r.MinCPU)
    v.NonNegativeInt("minMemory", r.MinMemory)
    v.IntRange("releaseYear", r.ReleaseYear, validation.MinReleaseYear, validation.MaxReleaseYear)
    checkNumber(&v, "price", r.Price)
    v.NonNegativeInt("amount", r.Amount)
    return v.Err()
}

// bulkDeleteRequest is the body of POST /<resource>/bulk-delete.
type bulkDeleteRequest struct {
    IDs []string `json:"ids"`
}

func (r *bulkDeleteRequest) validate() error {
    var v validation.Validator
    v.IDs("ids", r.IDs)
    return v.Err()
}

// pathID reads and normalizes the :id route parameter.
func pathID(c echo.Context) (string, error) {
    id, err := validation.ParseID(c.Param("id"))
    if err != nil {
        var v validation.Validator
        v.Add("id", "must be a UUID")
        return "", v.Err()
    }
    return id, nil
}
