package lang

import (
	"log/slog"
	"reflect"
	"strings"

	"github.com/sahilm/fuzzy"
)

// maxSuggestions limits the member names reported by ErrUnknownMember.
const maxSuggestions = 3

// Member projects the named field of its source.
//
// F is the static type of the source and M the type of the field.
type Member[F, M any] struct {
	source Expr[F]
	field  string
}

// NewMember returns a projection of field from source.
//
// The result type M comes first so that it can be given alone wherever the
// source type F is inferred:
//
//	name, err := lang.NewMember[string, User](user, "Name")
//
// When F is a struct (or pointer to struct), field must name one of its
// exported fields and that field's type must be assignable to M. Map sources
// with string keys accept any field whose element type is assignable to M.
// Interface-typed sources are checked during evaluation.
func NewMember[M, F any](source Expr[F], field string) (*Member[F, M], error) {
	if isNil(source) {
		return nil, ErrNilOperand.With(
			slog.String("kind", KindMember.String()),
			slog.String("field", field),
		)
	}

	if !isIdentifier(field) {
		return nil, ErrInvalidIdentifier.With(
			slog.String("kind", KindMember.String()),
			slog.String("field", field),
		)
	}

	err := checkMember(reflect.TypeFor[F](), field, reflect.TypeFor[M]())
	if err != nil {
		return nil, err
	}

	return &Member[F, M]{source: source, field: field}, nil
}

// MustMember is like [NewMember] but panics if the projection is invalid.
func MustMember[M, F any](source Expr[F], field string) *Member[F, M] {
	m, err := NewMember[M](source, field)
	if err != nil {
		panic(err)
	}

	return m
}

// Source returns the expression whose member is projected.
func (m *Member[F, M]) Source() Expr[F] { return m.source }

// Field returns the projected member name.
func (m *Member[F, M]) Field() string { return m.field }

func (*Member[F, M]) Kind() Kind { return KindMember }

func (*Member[F, M]) Type() reflect.Type { return reflect.TypeFor[M]() }

func (m *Member[F, M]) Compile() string { return compile(m) }

func (m *Member[F, M]) Evaluate(b Bindings, opts ...Option) (any, error) {
	return evaluate(m, b, opts)
}

func (m *Member[F, M]) text(dst *strings.Builder) {
	m.source.text(dst)
	dst.WriteByte(tokenMember)
	dst.WriteString(m.field)
}

func (m *Member[F, M]) eval(ctx *evalContext) (any, error) {
	src, err := ctx.visit(m.source)
	if err != nil {
		return nil, err
	}

	return memberOf(src, m.field)
}

func (m *Member[F, M]) children() []Node { return []Node{m.source} }

func (*Member[F, M]) result() (_ M) { return }

// checkMember verifies that a value of static type from has a member named
// field whose type is usable as want.
func checkMember(from reflect.Type, field string, want reflect.Type) error {
	for from.Kind() == reflect.Pointer {
		from = from.Elem()
	}

	var have reflect.Type

	switch from.Kind() {
	case reflect.Interface:
		return nil

	case reflect.Struct:
		f, ok := from.FieldByName(field)
		if !ok || !f.IsExported() {
			return unknownMember(from, field, exportedFields(from))
		}

		have = f.Type

	case reflect.Map:
		if from.Key().Kind() != reflect.String {
			return unknownMember(from, field, nil)
		}

		have = from.Elem()

	default:
		return unknownMember(from, field, nil)
	}

	if !compatible(have, want) {
		return ErrTypeMismatch.With(
			slog.String("kind", KindMember.String()),
			slog.String("field", field),
			slog.String("have", have.String()),
			slog.String("want", want.String()),
		)
	}

	return nil
}

// memberOf returns the named member of a runtime value.
func memberOf(v any, field string) (any, error) {
	rv := reflect.ValueOf(v)

	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			break
		}

		rv = rv.Elem()
	}

	if !rv.IsValid() || isNilValue(rv) {
		return nil, ErrNilValue.With(slog.String("field", field))
	}

	switch rv.Kind() {
	case reflect.Struct:
		f, ok := rv.Type().FieldByName(field)
		if !ok || !f.IsExported() {
			return nil, unknownMember(rv.Type(), field, exportedFields(rv.Type()))
		}

		fv, err := rv.FieldByIndexErr(f.Index)
		if err != nil {
			return nil, ErrNilValue.With(slog.String("field", field))
		}

		return fv.Interface(), nil

	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, unknownMember(rv.Type(), field, nil)
		}

		e := rv.MapIndex(reflect.ValueOf(field).Convert(rv.Type().Key()))
		if !e.IsValid() {
			keys := make([]string, 0, rv.Len())
			for _, k := range rv.MapKeys() {
				keys = append(keys, k.String())
			}

			return nil, unknownMember(rv.Type(), field, keys)
		}

		return e.Interface(), nil

	default:
		return nil, unknownMember(rv.Type(), field, nil)
	}
}

func isNilValue(rv reflect.Value) bool {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map:
		return rv.IsNil()
	default:
		return false
	}
}

func exportedFields(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())

	for i := range t.NumField() {
		if f := t.Field(i); f.IsExported() {
			names = append(names, f.Name)
		}
	}

	return names
}

// unknownMember builds ErrUnknownMember, suggesting close matches among
// candidates.
func unknownMember(t reflect.Type, field string, candidates []string) error {
	attrs := []slog.Attr{
		slog.String("type", t.String()),
		slog.String("field", field),
	}

	if len(candidates) > 0 {
		var similar []string

		for _, m := range fuzzy.Find(field, candidates) {
			similar = append(similar, m.Str)
			if len(similar) == maxSuggestions {
				break
			}
		}

		if len(similar) > 0 {
			attrs = append(attrs, slog.Any("did_you_mean", similar))
		}
	}

	return ErrUnknownMember.With(attrs...)
}
