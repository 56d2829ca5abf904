package lang

import (
	"reflect"
	"strings"
)

// constant is implemented by every [Value], regardless of its type.
type constant interface {
	Node
	constant() any
}

// Value is a literal constant captured at construction.
//
// Every literal compiles to single-quoted text, whatever its type: 42 renders
// as '42' and true as 'true'. Embedded quote characters are written as is.
type Value[T any] struct {
	value T
}

// NewValue returns a literal holding v.
func NewValue[T any](v T) *Value[T] {
	return &Value[T]{value: v}
}

// Value returns the constant held by the literal.
func (v *Value[T]) Value() T { return v.value }

func (*Value[T]) Kind() Kind { return KindValue }

func (*Value[T]) Type() reflect.Type { return reflect.TypeFor[T]() }

func (v *Value[T]) Compile() string { return compile(v) }

func (v *Value[T]) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(v, b, opts)
}

func (v *Value[T]) text(dst *strings.Builder) {
	dst.WriteByte(tokenQuote)
	dst.WriteString(literal(v.value))
	dst.WriteByte(tokenQuote)
}

func (v *Value[T]) eval(*evalContext) (any, error) { return v.value, nil }

func (v *Value[T]) constant() any { return v.value }

func (*Value[T]) children() []Node { return nil }

func (*Value[T]) result() (_ T) { return }
