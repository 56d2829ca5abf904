package lang

import (
	"log/slog"
	"reflect"
	"strings"
)

var boolType = reflect.TypeFor[bool]()

// Not is the logical negation of a boolean operand.
type Not struct {
	operand Expr[bool]
}

// NewNot returns the negation of operand.
func NewNot(operand Expr[bool]) (*Not, error) {
	if isNil(operand) {
		return nil, ErrNilOperand.With(slog.String("kind", KindNot.String()))
	}

	return &Not{operand: operand}, nil
}

// MustNot is like [NewNot] but panics if operand is nil.
func MustNot(operand Expr[bool]) *Not {
	n, err := NewNot(operand)
	if err != nil {
		panic(err)
	}

	return n
}

// Operand returns the negated expression.
func (n *Not) Operand() Expr[bool] { return n.operand }

func (*Not) Kind() Kind { return KindNot }

func (*Not) Type() reflect.Type { return boolType }

func (n *Not) Compile() string { return compile(n) }

func (n *Not) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(n, b, opts)
}

func (n *Not) text(dst *strings.Builder) {
	dst.WriteString(tokenNot)
	n.operand.text(dst)
}

func (n *Not) eval(ctx *evalContext) (any, error) {
	v, err := ctx.boolean(n.operand, KindNot)
	if err != nil {
		return nil, err
	}

	return !v, nil
}

func (n *Not) children() []Node { return []Node{n.operand} }

func (*Not) result() (_ bool) { return }

// Equal compares its operands with strict equality: operands of different
// dynamic types are never equal.
type Equal struct {
	left, right Node
}

// NewEqual returns the strict equality comparison of left and right.
//
// T is usually given explicitly:
//
//	eq, err := lang.NewEqual[string](name, lang.NewValue("Ashot"))
//
// When T is an interface type, both operands' result types must still agree
// unless one of them is itself an interface type.
func NewEqual[T any](left, right Expr[T]) (*Equal, error) {
	if isNil(left) || isNil(right) {
		return nil, ErrNilOperand.With(slog.String("kind", KindEqual.String()))
	}

	lt, rt := left.Type(), right.Type()
	if lt.Kind() != reflect.Interface && rt.Kind() != reflect.Interface &&
		lt != rt {
		return nil, ErrTypeMismatch.With(
			slog.String("kind", KindEqual.String()),
			slog.String("left", lt.String()),
			slog.String("right", rt.String()),
		)
	}

	return &Equal{left: left, right: right}, nil
}

// MustEqual is like [NewEqual] but panics if the comparison is invalid.
func MustEqual[T any](left, right Expr[T]) *Equal {
	e, err := NewEqual(left, right)
	if err != nil {
		panic(err)
	}

	return e
}

// Left returns the left operand.
func (e *Equal) Left() Node { return e.left }

// Right returns the right operand.
func (e *Equal) Right() Node { return e.right }

func (*Equal) Kind() Kind { return KindEqual }

func (*Equal) Type() reflect.Type { return boolType }

func (e *Equal) Compile() string { return compile(e) }

func (e *Equal) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(e, b, opts)
}

func (e *Equal) text(dst *strings.Builder) {
	binary(dst, e.left, tokenEqual, e.right)
}

func (e *Equal) eval(ctx *evalContext) (any, error) {
	l, err := ctx.visit(e.left)
	if err != nil {
		return nil, err
	}

	r, err := ctx.visit(e.right)
	if err != nil {
		return nil, err
	}

	return strictEqual(l, r), nil
}

func (e *Equal) children() []Node { return []Node{e.left, e.right} }

func (*Equal) result() (_ bool) { return }

// And is the short-circuit conjunction of two boolean operands.
type And struct {
	left, right Expr[bool]
}

// NewAnd returns the conjunction of left and right.
func NewAnd(left, right Expr[bool]) (*And, error) {
	if isNil(left) || isNil(right) {
		return nil, ErrNilOperand.With(slog.String("kind", KindAnd.String()))
	}

	return &And{left: left, right: right}, nil
}

// MustAnd is like [NewAnd] but panics if an operand is nil.
func MustAnd(left, right Expr[bool]) *And {
	a, err := NewAnd(left, right)
	if err != nil {
		panic(err)
	}

	return a
}

// Left returns the left operand.
func (a *And) Left() Expr[bool] { return a.left }

// Right returns the right operand.
func (a *And) Right() Expr[bool] { return a.right }

func (*And) Kind() Kind { return KindAnd }

func (*And) Type() reflect.Type { return boolType }

func (a *And) Compile() string { return compile(a) }

func (a *And) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(a, b, opts)
}

func (a *And) text(dst *strings.Builder) {
	binary(dst, a.left, tokenAnd, a.right)
}

func (a *And) eval(ctx *evalContext) (any, error) {
	l, err := ctx.boolean(a.left, KindAnd)
	if err != nil {
		return nil, err
	}

	if !l {
		return false, nil
	}

	r, err := ctx.boolean(a.right, KindAnd)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (a *And) children() []Node { return []Node{a.left, a.right} }

func (*And) result() (_ bool) { return }

// Or is the short-circuit disjunction of two boolean operands.
type Or struct {
	left, right Expr[bool]
}

// NewOr returns the disjunction of left and right.
func NewOr(left, right Expr[bool]) (*Or, error) {
	if isNil(left) || isNil(right) {
		return nil, ErrNilOperand.With(slog.String("kind", KindOr.String()))
	}

	return &Or{left: left, right: right}, nil
}

// MustOr is like [NewOr] but panics if an operand is nil.
func MustOr(left, right Expr[bool]) *Or {
	o, err := NewOr(left, right)
	if err != nil {
		panic(err)
	}

	return o
}

// Left returns the left operand.
func (o *Or) Left() Expr[bool] { return o.left }

// Right returns the right operand.
func (o *Or) Right() Expr[bool] { return o.right }

func (*Or) Kind() Kind { return KindOr }

func (*Or) Type() reflect.Type { return boolType }

func (o *Or) Compile() string { return compile(o) }

func (o *Or) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(o, b, opts)
}

func (o *Or) text(dst *strings.Builder) {
	binary(dst, o.left, tokenOr, o.right)
}

func (o *Or) eval(ctx *evalContext) (any, error) {
	l, err := ctx.boolean(o.left, KindOr)
	if err != nil {
		return nil, err
	}

	if l {
		return true, nil
	}

	r, err := ctx.boolean(o.right, KindOr)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func (o *Or) children() []Node { return []Node{o.left, o.right} }

func (*Or) result() (_ bool) { return }

// strictEqual compares two runtime values without type coercion.
func strictEqual(l, r any) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}

	lt := reflect.TypeOf(l)
	if lt != reflect.TypeOf(r) {
		return false
	}

	if lt.Comparable() && comparableValue(reflect.ValueOf(l)) {
		return l == r
	}

	return reflect.DeepEqual(l, r)
}

// comparableValue reports whether v can be compared with == without a
// runtime panic. A comparable struct or array may still hold an interface
// whose dynamic value is not comparable.
func comparableValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			return true
		}

		e := v.Elem()

		return e.Type().Comparable() && comparableValue(e)

	case reflect.Struct:
		for i := range v.NumField() {
			if !comparableValue(v.Field(i)) {
				return false
			}
		}

	case reflect.Array:
		for i := range v.Len() {
			if !comparableValue(v.Index(i)) {
				return false
			}
		}
	}

	return true
}
