package lang

import (
	"log/slog"
	"reflect"
	"strings"
)

// Node is an immutable element of an expression tree.
//
// The set of implementations is closed: only the node types declared in this
// package satisfy Node. Every method is a pure function of the tree, so a
// Node may be shared freely between goroutines.
type Node interface {
	// Kind returns the variant of the node.
	Kind() Kind

	// Type returns the runtime form of the node's result type.
	Type() reflect.Type

	// Compile returns the lambda grammar text of the node and its subtree.
	Compile() string

	// Evaluate interprets the node with the given parameter bindings.
	Evaluate(b Bindings, opts ...Option) (any, error)

	// text writes the grammar text of the node to dst.
	text(dst *strings.Builder)

	// eval interprets the node in the given evaluation context.
	eval(ctx *evalContext) (any, error)

	// children returns the child nodes in rendering order.
	children() []Node
}

// Expr is a Node whose result has static type R.
//
// R is never stored; it only constrains which nodes may be composed.
type Expr[R any] interface {
	Node
	result() R
}

// compile renders n into a new string.
func compile(n Node) string {
	var dst strings.Builder
	n.text(&dst)

	return dst.String()
}

// cast re-types a node without changing its text or behavior.
type cast[R any] struct {
	Node
}

func (cast[R]) result() (_ R) { return }

func (c cast[R]) unwrap() Node { return c.Node }

// Cast returns n as an Expr[R].
//
// If n already has static type R it is returned unchanged. Otherwise n is
// accepted when its result type is assignable to R or is an interface type,
// in which case the value is checked during evaluation instead.
func Cast[R any](n Node) (Expr[R], error) {
	if isNil(n) {
		return nil, ErrNilOperand.With(slog.String("cast", typeName[R]()))
	}

	if e, ok := n.(Expr[R]); ok {
		return e, nil
	}

	want := reflect.TypeFor[R]()
	if !compatible(n.Type(), want) {
		return nil, ErrTypeMismatch.With(
			slog.String("kind", n.Kind().String()),
			slog.String("have", n.Type().String()),
			slog.String("want", want.String()),
		)
	}

	return cast[R]{Node: unwrap(n)}, nil
}

// MustCast is like [Cast] but panics if the node cannot be re-typed.
func MustCast[R any](n Node) Expr[R] {
	e, err := Cast[R](n)
	if err != nil {
		panic(err)
	}

	return e
}

// unwrap strips any re-typing views from n.
func unwrap(n Node) Node {
	for {
		w, ok := n.(interface{ unwrap() Node })
		if !ok {
			return n
		}

		n = w.unwrap()
	}
}

// Walk traverses a tree in depth-first order, calling visit for each node
// before its children. Children of a node are skipped when visit returns
// false.
func Walk(n Node, visit func(Node) bool) {
	if isNil(n) {
		return
	}

	n = unwrap(n)
	if !visit(n) {
		return
	}

	for _, c := range n.children() {
		Walk(c, visit)
	}
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	if n == nil {
		return true
	}

	v := reflect.ValueOf(n)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// compatible reports whether a value of static type have may be used where
// type want is expected.
func compatible(have, want reflect.Type) bool {
	return have.AssignableTo(want) || have.Kind() == reflect.Interface
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
