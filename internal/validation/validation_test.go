package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNameTrimsAndBoundsLength(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		valid bool
	}{
		{"  Valve  ", "Valve", true},
		{"", "", false},
		{"   ", "", false},
		{strings.Repeat("a", 255), strings.Repeat("a", 255), true},
		{strings.Repeat("a", 256), strings.Repeat("a", 256), false},
		{strings.Repeat("é", 255), strings.Repeat("é", 255), true},
	}
	for _, tc := range cases {
		var v Validator
		value := tc.in
		v.Name("name", &value)
		if got := v.Err() == nil; got != tc.valid {
			t.Fatalf("Name(%d chars) valid = %v, want %v", len(tc.in), got, tc.valid)
		}
		if value != tc.want {
			t.Fatalf("Name(%q) normalized to %q, want %q", tc.in, value, tc.want)
		}
	}
}

func TestParseID(t *testing.T) {
	id, err := ParseID("A0EEBC99-9C0B-4EF8-BB6D-6BB9BD380A11")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if id != "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11" {
		t.Fatalf("id = %q, want lower case", id)
	}
	for _, bad := range []string{"", "123", "not-a-uuid-not-a-uuid-not-a-uuid-123", "{a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11}", "a0eebc999c0b4ef8bb6d6bb9bd380a11"} {
		if _, err := ParseID(bad); err == nil {
			t.Fatalf("ParseID(%q) accepted", bad)
		}
	}
}

func TestNumericChecks(t *testing.T) {
	var v Validator
	neg := decimal.RequireFromString("-0.01")
	zero := decimal.Zero
	negInt := int64(-1)
	year := 1969
	okYear := 2100

	v.Decimal("price", &neg)
	v.Decimal("minCpu", &zero)
	v.NonNegativeInt("minMemory", &negInt)
	v.IntRange("releaseYear", &year, MinReleaseYear, MaxReleaseYear)
	v.IntRange("releaseYear2", &okYear, MinReleaseYear, MaxReleaseYear)
	v.NonNegativeInt("amount", nil)

	var verr *Error
	if !errors.As(v.Err(), &verr) {
		t.Fatalf("expected *Error, got %v", v.Err())
	}
	got := map[string]bool{}
	for _, f := range verr.Fields {
		got[f.Field] = true
	}
	if len(verr.Fields) != 3 || !got["price"] || !got["minMemory"] || !got["releaseYear"] {
		t.Fatalf("fields = %+v, want price, minMemory, releaseYear", verr.Fields)
	}
}

func TestDecimalRoundsToColumnScale(t *testing.T) {
	var v Validator
	cpu := decimal.RequireFromString("1.234")
	price := decimal.RequireFromString("0.005")
	v.Decimal("minCpu", &cpu)
	v.Decimal("price", &price)
	if err := v.Err(); err != nil {
		t.Fatalf("in-range decimals rejected: %v", err)
	}
	if !cpu.Equal(decimal.RequireFromString("1.23")) {
		t.Fatalf("minCpu = %s, want 1.23", cpu)
	}
	if !price.Equal(decimal.RequireFromString("0.01")) {
		t.Fatalf("price = %s, want 0.01", price)
	}

	// rounding up must not slip past the column bound
	huge := decimal.RequireFromString("99999999.995")
	limit := decimal.RequireFromString("99999999.99")
	v = Validator{}
	v.Decimal("price", &huge)
	v.Decimal("minCpu", &limit)
	var verr *Error
	if !errors.As(v.Err(), &verr) || len(verr.Fields) != 1 || verr.Fields[0].Field != "price" {
		t.Fatalf("err = %v, want a single price failure", v.Err())
	}
}

func TestIDs(t *testing.T) {
	var v Validator
	v.IDs("ids", nil)
	if v.Err() == nil {
		t.Fatal("empty id list accepted")
	}

	v = Validator{}
	ids := []string{"A0EEBC99-9C0B-4EF8-BB6D-6BB9BD380A11", "nope"}
	v.IDs("ids", ids)
	var verr *Error
	if !errors.As(v.Err(), &verr) || len(verr.Fields) != 1 || verr.Fields[0].Field != "ids[1]" {
		t.Fatalf("err = %v, want a single ids[1] failure", v.Err())
	}
	if ids[0] != "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11" {
		t.Fatalf("ids[0] not normalized: %q", ids[0])
	}
}

func TestRequired(t *testing.T) {
	var v Validator
	if v.Required("name", false) {
		t.Fatal("Required(false) returned true")
	}
	if !v.Required("other", true) {
		t.Fatal("Required(true) returned false")
	}
	if err := v.Err(); err == nil || !strings.Contains(err.Error(), "name is required") {
		t.Fatalf("err = %v", err)
	}
}
