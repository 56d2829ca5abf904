package lang

import (
	"log/slog"
	"reflect"
	"strconv"
	"strings"
)

// ArrayIndex projects the element at a fixed position of its source sequence.
type ArrayIndex[I any] struct {
	source Expr[[]I]
	index  int
}

// NewArrayIndex returns a projection of element index from source.
func NewArrayIndex[I any](source Expr[[]I], index int) (*ArrayIndex[I], error) {
	if isNil(source) {
		return nil, ErrNilOperand.With(
			slog.String("kind", KindArrayIndex.String()),
			slog.Int("index", index),
		)
	}

	if index < 0 {
		return nil, ErrNegativeIndex.With(slog.Int("index", index))
	}

	return &ArrayIndex[I]{source: source, index: index}, nil
}

// MustArrayIndex is like [NewArrayIndex] but panics if the projection is
// invalid.
func MustArrayIndex[I any](source Expr[[]I], index int) *ArrayIndex[I] {
	a, err := NewArrayIndex(source, index)
	if err != nil {
		panic(err)
	}

	return a
}

// Source returns the indexed sequence expression.
func (a *ArrayIndex[I]) Source() Expr[[]I] { return a.source }

// Index returns the element position.
func (a *ArrayIndex[I]) Index() int { return a.index }

func (*ArrayIndex[I]) Kind() Kind { return KindArrayIndex }

func (*ArrayIndex[I]) Type() reflect.Type { return reflect.TypeFor[I]() }

func (a *ArrayIndex[I]) Compile() string { return compile(a) }

func (a *ArrayIndex[I]) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(a, b, opts)
}

func (a *ArrayIndex[I]) text(dst *strings.Builder) {
	a.source.text(dst)
	dst.WriteByte('[')
	dst.WriteString(strconv.Itoa(a.index))
	dst.WriteByte(']')
}

func (a *ArrayIndex[I]) eval(ctx *evalContext) (any, error) {
	src, err := ctx.visit(a.source)
	if err != nil {
		return nil, err
	}

	return elementOf(src, a.index)
}

func (a *ArrayIndex[I]) children() []Node { return []Node{a.source} }

func (*ArrayIndex[I]) result() (_ I) { return }

// elementOf returns the element at index of a runtime sequence value.
func elementOf(v any, index int) (any, error) {
	rv := reflect.ValueOf(v)

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, ErrNilValue.With(slog.Int("index", index))
		}

		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.String:
	case reflect.Invalid:
		return nil, ErrNilValue.With(slog.Int("index", index))
	default:
		return nil, ErrTypeMismatch.With(
			slog.String("kind", KindArrayIndex.String()),
			slog.String("have", rv.Type().String()),
		)
	}

	if rv.Kind() == reflect.String {
		runes := []rune(rv.String())
		if index >= len(runes) {
			return nil, outOfRange(index, len(runes))
		}

		return string(runes[index]), nil
	}

	if index >= rv.Len() {
		return nil, outOfRange(index, rv.Len())
	}

	return rv.Index(index).Interface(), nil
}

func outOfRange(index, length int) error {
	return ErrIndexOutOfRange.With(
		slog.Int("index", index),
		slog.Int("length", length),
	)
}
