package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spoolkit/spool/errors"
)

// typeExpr is one node of a parsed type expression: an identifier with
// optional angle-bracket parameters, or a bare integer literal (array
// arity).
type typeExpr struct {
	name string
	args []typeExpr
	num  uint64
	lit  bool
}

func (e typeExpr) String() string {
	if e.lit {
		return strconv.FormatUint(e.num, 10)
	}
	if len(e.args) == 0 {
		return e.name
	}
	parts := make([]string, len(e.args))
	for i, a := range e.args {
		parts[i] = a.String()
	}
	return e.name + "<" + strings.Join(parts, ", ") + ">"
}

// parseTypeExpr parses expressions like "u32be", "list<u8, string<u16le>>"
// or "array<4, f64be>". Identifiers start with a letter or underscore and
// may contain letters, digits, dashes, and underscores.
func parseTypeExpr(src string) (typeExpr, error) {
	p := &exprParser{src: src}
	e, err := p.expr()
	if err != nil {
		return typeExpr{}, err
	}
	p.space()
	if p.pos != len(src) {
		return typeExpr{}, errors.InvalidSchema(nil, fmt.Sprintf("trailing %q in type expression %q", src[p.pos:], src))
	}
	return e, nil
}

type exprParser struct {
	src string
	pos int
}

func (p *exprParser) space() {
	for p.pos < len(p.src) && (p.src[p.pos] == ' ' || p.src[p.pos] == '\t') {
		p.pos++
	}
}

func (p *exprParser) expr() (typeExpr, error) {
	p.space()
	if p.pos >= len(p.src) {
		return typeExpr{}, errors.InvalidSchema(nil, fmt.Sprintf("unexpected end of type expression %q", p.src))
	}
	if c := p.src[p.pos]; c >= '0' && c <= '9' {
		return p.integer()
	}

	name, err := p.ident()
	if err != nil {
		return typeExpr{}, err
	}
	e := typeExpr{name: name}

	p.space()
	if p.pos >= len(p.src) || p.src[p.pos] != '<' {
		return e, nil
	}
	p.pos++
	for {
		arg, err := p.expr()
		if err != nil {
			return typeExpr{}, err
		}
		e.args = append(e.args, arg)

		p.space()
		if p.pos >= len(p.src) {
			return typeExpr{}, errors.InvalidSchema(nil, fmt.Sprintf("missing '>' in type expression %q", p.src))
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case '>':
			p.pos++
			return e, nil
		default:
			return typeExpr{}, errors.InvalidSchema(nil, fmt.Sprintf("unexpected %q at position %d in type expression %q", p.src[p.pos], p.pos, p.src))
		}
	}
}

func (p *exprParser) ident() (string, error) {
	start := p.pos
	if !isIdentStart(p.src[p.pos]) {
		return "", errors.InvalidSchema(nil, fmt.Sprintf("unexpected %q at position %d in type expression %q", p.src[p.pos], p.pos, p.src))
	}
	p.pos++
	for p.pos < len(p.src) && isIdentPart(p.src[p.pos]) {
		p.pos++
	}
	return p.src[start:p.pos], nil
}

func (p *exprParser) integer() (typeExpr, error) {
	start := p.pos
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	n, err := strconv.ParseUint(p.src[start:p.pos], 10, 64)
	if err != nil {
		return typeExpr{}, errors.InvalidSchema(nil, fmt.Sprintf("invalid integer %q in type expression %q", p.src[start:p.pos], p.src))
	}
	return typeExpr{num: n, lit: true}, nil
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9' || c == '-'
}
