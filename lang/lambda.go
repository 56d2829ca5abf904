package lang

import (
	"log/slog"
	"reflect"
	"strings"
)

// Func is the callable produced by evaluating a [Lambda]. Arguments bind to
// the lambda's parameters positionally.
type Func func(args ...any) (any, error)

// Lambda is an anonymous function of one or more declared parameters.
type Lambda[R any] struct {
	params []Param
	body   Expr[R]
}

// NewLambda returns a lambda evaluating body over params, in declaration
// order.
//
// The body must reference each declared parameter through the same instance
// passed in params. Parameters not declared here are left for an enclosing
// lambda (or the caller's bindings) to supply; see [Check].
func NewLambda[R any](body Expr[R], params ...Param) (*Lambda[R], error) {
	if len(params) == 0 {
		return nil, ErrEmptyParameters
	}

	if isNil(body) {
		return nil, ErrNilOperand.With(slog.String("kind", KindLambda.String()))
	}

	scope := make(map[string]Param, len(params))
	names := make([]string, 0, len(params))

	for i, p := range params {
		if isNil(p) {
			return nil, ErrNilOperand.With(
				slog.String("kind", KindLambda.String()),
				slog.Int("parameter", i),
			)
		}

		if _, dup := scope[p.Name()]; dup {
			return nil, ErrDuplicateParameter.With(
				slog.String("name", p.Name()),
				slog.Any("parameters", append(names, p.Name())),
			)
		}

		scope[p.Name()] = p
		names = append(names, p.Name())
	}

	err := resolve(body, scope, func(Param) error { return nil })
	if err != nil {
		return nil, err
	}

	return &Lambda[R]{
		params: append([]Param(nil), params...),
		body:   body,
	}, nil
}

// MustLambda is like [NewLambda] but panics if the lambda is invalid.
func MustLambda[R any](body Expr[R], params ...Param) *Lambda[R] {
	l, err := NewLambda(body, params...)
	if err != nil {
		panic(err)
	}

	return l
}

// Params returns the declared parameters in declaration order.
func (l *Lambda[R]) Params() []Param { return append([]Param(nil), l.params...) }

// Body returns the lambda body.
func (l *Lambda[R]) Body() Expr[R] { return l.body }

// Func returns the callable form of l, closed over the bindings b.
func (l *Lambda[R]) Func(b Bindings, opts ...Option) Func {
	return l.bind(newEvalContext(b, opts))
}

func (*Lambda[R]) Kind() Kind { return KindLambda }

func (*Lambda[R]) Type() reflect.Type { return funcType }

func (l *Lambda[R]) Compile() string { return compile(l) }

func (l *Lambda[R]) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(l, b, opts)
}

func (l *Lambda[R]) text(dst *strings.Builder) {
	dst.WriteByte('(')

	for i, p := range l.params {
		if i > 0 {
			dst.WriteString(tokenComma)
		}

		p.text(dst)
	}

	dst.WriteByte(')')
	dst.WriteString(tokenArrow)
	l.body.text(dst)
}

func (l *Lambda[R]) eval(ctx *evalContext) (any, error) {
	return l.bind(ctx), nil
}

// bind captures ctx and returns the callable form of l.
func (l *Lambda[R]) bind(ctx *evalContext) Func {
	captured := ctx.extend(nil, nil)

	return func(args ...any) (any, error) {
		if len(args) != len(l.params) {
			return nil, ErrArityMismatch.With(
				slog.Int("expected", len(l.params)),
				slog.Int("got", len(args)),
			)
		}

		return captured.extend(l.params, args).visit(l.body)
	}
}

func (l *Lambda[R]) declared() []Param { return l.params }

func (l *Lambda[R]) bodyNode() Node { return l.body }

func (l *Lambda[R]) children() []Node {
	nodes := make([]Node, 0, len(l.params)+1)
	for _, p := range l.params {
		nodes = append(nodes, p)
	}

	return append(nodes, l.body)
}

func (*Lambda[R]) result() (_ Func) { return }

var funcType = reflect.TypeFor[Func]()

// Predicate adapts a single-parameter boolean lambda into a typed predicate
// closed over the bindings b.
func Predicate[P any](
	l *Lambda[bool],
	b Bindings,
	opts ...Option,
) (func(P) (bool, error), error) {
	if l == nil {
		return nil, ErrNilOperand.With(slog.String("kind", KindLambda.String()))
	}

	if len(l.params) != 1 {
		return nil, ErrArityMismatch.With(
			slog.Int("expected", 1),
			slog.Int("got", len(l.params)),
		)
	}

	if have, want := reflect.TypeFor[P](), l.params[0].Type(); !compatible(have, want) {
		return nil, ErrTypeMismatch.With(
			slog.String("parameter", l.params[0].Name()),
			slog.String("have", have.String()),
			slog.String("want", want.String()),
		)
	}

	fn := l.Func(b, opts...)

	return func(arg P) (bool, error) {
		v, err := fn(arg)
		if err != nil {
			return false, err
		}

		ok, isBool := v.(bool)
		if !isBool {
			return false, ErrTypeMismatch.With(
				slog.String("kind", KindLambda.String()),
				slog.String("have", resultTypeName(v)),
				slog.String("want", boolType.String()),
			)
		}

		return ok, nil
	}, nil
}
