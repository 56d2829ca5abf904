package lang

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"
)

// Grammar tokens of the lambda text form.
const (
	tokenQuote  = '\''
	tokenMember = '.'
	tokenNot    = "!"
	tokenEqual  = "==="
	tokenAnd    = "&&"
	tokenOr     = "||"
	tokenArrow  = " => "
	tokenComma  = ","
)

// binary writes "(left op right)".
func binary(dst *strings.Builder, left Node, op string, right Node) {
	dst.WriteByte('(')
	left.text(dst)
	dst.WriteByte(' ')
	dst.WriteString(op)
	dst.WriteByte(' ')
	right.text(dst)
	dst.WriteByte(')')
}

// literal returns the textual form of a constant. Quotes inside the text are
// not escaped.
func literal(v any) string {
	if v == nil {
		return "null"
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		if rv.IsNil() {
			return "null"
		}
	}

	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}

	return fmt.Sprint(v)
}

// isIdentifier reports whether s can be rendered as a bare identifier.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}

	for i, r := range s {
		switch {
		case r == '_' || r == '$' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}

	return true
}
