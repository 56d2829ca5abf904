package lang

import (
	"log/slog"
	"reflect"
	"strings"
)

// Param is implemented by every [Parameter], regardless of its result type.
// A lambda declares its parameters as a list of Param.
type Param interface {
	Node
	Name() string
	param()
}

// Parameter is a placeholder for a value supplied when a lambda is invoked.
//
// A Parameter is constructed once and then referenced both in the parameter
// list of the lambda that declares it and anywhere inside that lambda's body.
// Two parameters with the same name are still distinct declarations.
type Parameter[P any] struct {
	name string
}

// NewParameter returns a parameter with the given identifier name.
func NewParameter[P any](name string) (*Parameter[P], error) {
	if !isIdentifier(name) {
		return nil, ErrInvalidIdentifier.With(
			slog.String("kind", KindParameter.String()),
			slog.String("name", name),
		)
	}

	return &Parameter[P]{name: name}, nil
}

// MustParameter is like [NewParameter] but panics if name is invalid.
func MustParameter[P any](name string) *Parameter[P] {
	p, err := NewParameter[P](name)
	if err != nil {
		panic(err)
	}

	return p
}

// Name returns the parameter's identifier.
func (p *Parameter[P]) Name() string { return p.name }

func (*Parameter[P]) Kind() Kind { return KindParameter }

func (*Parameter[P]) Type() reflect.Type { return reflect.TypeFor[P]() }

func (p *Parameter[P]) Compile() string { return compile(p) }

func (p *Parameter[P]) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(p, b, opts)
}

func (p *Parameter[P]) text(dst *strings.Builder) { dst.WriteString(p.name) }

func (p *Parameter[P]) eval(ctx *evalContext) (any, error) {
	v, ok := ctx.bindings[p.name]
	if !ok {
		return nil, ErrUnboundParameter.With(
			slog.String("name", p.name),
			slog.Any("bound", sortedKeys(ctx.bindings)),
		)
	}

	return v, nil
}

func (*Parameter[P]) children() []Node { return nil }

func (*Parameter[P]) result() (_ P) { return }

func (*Parameter[P]) param() {}
