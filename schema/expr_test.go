package schema

import (
	stderrors "errors"
	"strings"
	"testing"

	"github.com/spoolkit/spool/errors"
)

func TestParseTypeExpr(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"u32be", "u32be"},
		{"bool", "bool"},
		{"string<u8>", "string<u8>"},
		{"list<u8, string<u16le>>", "list<u8, string<u16le>>"},
		{"array<4, f64be>", "array<4, f64be>"},
		{"map<uvar32le, cstring, option<u8>>", "map<uvar32le, cstring, option<u8>>"},
		{"tuple<u8, u16be, rest>", "tuple<u8, u16be, rest>"},
		{"  list < u8 ,\tstring<u8> > ", "list<u8, string<u8>>"},
		{"list<u8,u8>", "list<u8, u8>"},
		{"my_type-v2", "my_type-v2"},
		{"42", "42"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			e, err := parseTypeExpr(tt.src)
			if err != nil {
				t.Fatalf("parseTypeExpr(%q) failed: %v", tt.src, err)
			}
			if got := e.String(); got != tt.want {
				t.Errorf("parseTypeExpr(%q) = %s, want %s", tt.src, got, tt.want)
			}
		})
	}
}

func TestParseTypeExpr_Structure(t *testing.T) {
	e, err := parseTypeExpr("array<12, list<u8, point>>")
	if err != nil {
		t.Fatalf("parseTypeExpr failed: %v", err)
	}
	if e.name != "array" || len(e.args) != 2 {
		t.Fatalf("parsed %s, want array with 2 args", e.String())
	}
	if !e.args[0].lit || e.args[0].num != 12 {
		t.Errorf("args[0] = %s, want literal 12", e.args[0].String())
	}
	inner := e.args[1]
	if inner.name != "list" || len(inner.args) != 2 || inner.args[1].name != "point" {
		t.Errorf("args[1] = %s, want list<u8, point>", inner.String())
	}
}

func TestParseTypeExpr_Errors(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		detail string
	}{
		{"empty", "", "unexpected end"},
		{"only spaces", "   ", "unexpected end"},
		{"unclosed bracket", "list<u8", "missing '>'"},
		{"trailing close", "u8>", "trailing"},
		{"trailing junk", "u8 extra", "trailing"},
		{"leading bracket", "<u8>", `unexpected '<' at position 0`},
		{"missing comma", "list<u8 u16be>", "unexpected 'u'"},
		{"empty argument", "list<u8,>", "unexpected '>'"},
		{"integer overflow", "array<99999999999999999999, u8>", "invalid integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseTypeExpr(tt.src)
			if err == nil {
				t.Fatalf("parseTypeExpr(%q) succeeded, want error", tt.src)
			}
			var e *errors.Error
			if !stderrors.As(err, &e) || e.Kind != errors.KindInvalidSchema {
				t.Fatalf("parseTypeExpr(%q) err = %v, want invalid_schema", tt.src, err)
			}
			if !strings.Contains(e.Detail, tt.detail) {
				t.Errorf("detail = %q, want it to mention %q", e.Detail, tt.detail)
			}
		})
	}
}
