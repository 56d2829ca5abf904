package lang

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/klauspost/readahead"
)

// Keys of the tree document form.
const (
	docSource = "source"
	docField  = "field"
	docIndex  = "index"
	docParams = "params"
	docBody   = "body"
)

// docKey returns the document key of kind k.
func docKey(k Kind) string { return strings.ToLower(k.String()) }

// ToMap converts a tree into its document form: nested maps, slices and
// constants suitable for YAML or JSON encoding.
//
// Each node becomes a single-key map named after its kind:
//
//	{lambda: {params: [u], body: {not: {equal: [
//	    {member: {source: {parameter: u}, field: Name}},
//	    {value: Ashot}]}}}}
func ToMap(n Node) map[string]any {
	if isNil(n) {
		return nil
	}

	n = unwrap(n)
	key := docKey(n.Kind())

	switch n.Kind() {
	case KindParameter:
		return map[string]any{key: n.(Param).Name()}

	case KindValue:
		return map[string]any{key: n.(constant).constant()}

	case KindMember:
		return map[string]any{key: map[string]any{
			docSource: ToMap(n.children()[0]),
			docField:  n.(interface{ Field() string }).Field(),
		}}

	case KindArrayIndex:
		return map[string]any{key: map[string]any{
			docSource: ToMap(n.children()[0]),
			docIndex:  n.(interface{ Index() int }).Index(),
		}}

	case KindNot:
		return map[string]any{key: ToMap(n.children()[0])}

	case KindEqual, KindAnd, KindOr:
		c := n.children()

		return map[string]any{key: []any{ToMap(c[0]), ToMap(c[1])}}

	case KindLambda:
		l := n.(lambda)

		names := make([]any, 0, len(l.declared()))
		for _, p := range l.declared() {
			names = append(names, p.Name())
		}

		return map[string]any{key: map[string]any{
			docParams: names,
			docBody:   ToMap(l.bodyNode()),
		}}

	default:
		return nil
	}
}

// FromMap builds a tree from its document form (see [ToMap]).
//
// A {parameter: name} reference resolves to the instance declared by the
// innermost enclosing lambda with that name. References no lambda declares
// share a single free parameter per name, to be supplied by the bindings at
// evaluation. Decoded nodes are typed dynamically: their static result type
// is any (bool for operators), and types are checked during evaluation.
func FromMap(doc any) (Node, error) {
	d := &decoder{free: make(map[string]Param)}

	return d.node(doc, "$")
}

// Decode reads a YAML (or JSON) tree document from r and builds its tree.
func Decode(ctx context.Context, r io.Reader) (Node, error) {
	// Wrap reader with async read-ahead so decoding overlaps slow sources.
	ra := readahead.NewReader(r)
	defer ra.Close()

	data, err := io.ReadAll(ra)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", "reader"))
	}

	var doc any

	err = yaml.UnmarshalContext(ctx, data, &doc)
	if err != nil {
		return nil, ErrDecode.Wrap(err)
	}

	return FromMap(doc)
}

// DecodeString builds a tree from a YAML (or JSON) tree document.
func DecodeString(ctx context.Context, s string) (Node, error) {
	return Decode(ctx, strings.NewReader(s))
}

// decoder tracks lambda scopes while a document is decoded.
type decoder struct {
	scopes []map[string]Param
	free   map[string]Param
}

func (d *decoder) node(doc any, path string) (Node, error) {
	m, ok := asMap(doc)
	if !ok || len(m) != 1 {
		return nil, decodeError(path, "node must be a mapping with exactly one kind key")
	}

	for key, arg := range m {
		kind, ok := ParseKind(key)
		if !ok {
			return nil, decodeError(path, "unknown node kind "+strconv.Quote(key))
		}

		path += "." + docKey(kind)

		n, err := d.kind(kind, arg, path)
		if err != nil {
			if errors.Is(err, ErrDecode) {
				return nil, err
			}

			return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
		}

		return n, nil
	}

	return nil, decodeError(path, "empty node")
}

func (d *decoder) kind(kind Kind, arg any, path string) (Node, error) {
	switch kind {
	case KindParameter:
		name, ok := arg.(string)
		if !ok {
			return nil, decodeError(path, "parameter name must be a string")
		}

		return d.parameter(name)

	case KindValue:
		return NewValue(arg), nil

	case KindMember:
		m, ok := asMap(arg)
		if !ok {
			return nil, decodeError(path, "member must be a mapping of source and field")
		}

		field, ok := m[docField].(string)
		if !ok {
			return nil, decodeError(path, "member field must be a string")
		}

		src, err := d.typed(m[docSource], path+"."+docSource)
		if err != nil {
			return nil, err
		}

		return NewMember[any](src, field)

	case KindArrayIndex:
		m, ok := asMap(arg)
		if !ok {
			return nil, decodeError(path, "arrayindex must be a mapping of source and index")
		}

		index, ok := asInt(m[docIndex])
		if !ok {
			return nil, decodeError(path, "arrayindex index must be an integer")
		}

		src, err := d.node(m[docSource], path+"."+docSource)
		if err != nil {
			return nil, err
		}

		seq, err := Cast[[]any](src)
		if err != nil {
			return nil, err
		}

		return NewArrayIndex(seq, index)

	case KindNot:
		operand, err := d.boolean(arg, path)
		if err != nil {
			return nil, err
		}

		return NewNot(operand)

	case KindEqual, KindAnd, KindOr:
		return d.binary(kind, arg, path)

	case KindLambda:
		return d.lambda(arg, path)

	default:
		return nil, decodeError(path, "unsupported node kind")
	}
}

func (d *decoder) parameter(name string) (Node, error) {
	for i := len(d.scopes) - 1; i >= 0; i-- {
		if p, ok := d.scopes[i][name]; ok {
			return p, nil
		}
	}

	if p, ok := d.free[name]; ok {
		return p, nil
	}

	p, err := NewParameter[any](name)
	if err != nil {
		return nil, err
	}

	d.free[name] = p

	return p, nil
}

func (d *decoder) binary(kind Kind, arg any, path string) (Node, error) {
	pair, ok := arg.([]any)
	if !ok || len(pair) != 2 {
		return nil, decodeError(path, docKey(kind)+" must be a list of two operands")
	}

	if kind == KindEqual {
		left, err := d.typed(pair[0], path+"[0]")
		if err != nil {
			return nil, err
		}

		right, err := d.typed(pair[1], path+"[1]")
		if err != nil {
			return nil, err
		}

		return NewEqual(left, right)
	}

	left, err := d.boolean(pair[0], path+"[0]")
	if err != nil {
		return nil, err
	}

	right, err := d.boolean(pair[1], path+"[1]")
	if err != nil {
		return nil, err
	}

	if kind == KindAnd {
		return NewAnd(left, right)
	}

	return NewOr(left, right)
}

func (d *decoder) lambda(arg any, path string) (Node, error) {
	m, ok := asMap(arg)
	if !ok {
		return nil, decodeError(path, "lambda must be a mapping of params and body")
	}

	list, ok := m[docParams].([]any)
	if !ok {
		return nil, decodeError(path, "lambda params must be a list of names")
	}

	params := make([]Param, 0, len(list))
	scope := make(map[string]Param, len(list))

	for i, v := range list {
		name, ok := v.(string)
		if !ok {
			return nil, decodeError(
				fmt.Sprintf("%s.%s[%d]", path, docParams, i),
				"parameter name must be a string",
			)
		}

		p, err := NewParameter[any](name)
		if err != nil {
			return nil, err
		}

		params = append(params, p)
		scope[name] = p
	}

	d.scopes = append(d.scopes, scope)
	body, err := d.typed(m[docBody], path+"."+docBody)
	d.scopes = d.scopes[:len(d.scopes)-1]

	if err != nil {
		return nil, err
	}

	return NewLambda(body, params...)
}

func (d *decoder) typed(doc any, path string) (Expr[any], error) {
	n, err := d.node(doc, path)
	if err != nil {
		return nil, err
	}

	return Cast[any](n)
}

func (d *decoder) boolean(doc any, path string) (Expr[bool], error) {
	n, err := d.node(doc, path)
	if err != nil {
		return nil, err
	}

	b, err := Cast[bool](n)
	if err != nil {
		return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
	}

	return b, nil
}

func decodeError(path, reason string) error {
	return ErrDecode.With(
		slog.String("path", path),
		slog.String("reason", reason),
	)
}

// asMap accepts both string-keyed and generic mappings.
func asMap(doc any) (map[string]any, bool) {
	switch m := doc.(type) {
	case map[string]any:
		return m, true

	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			s, ok := k.(string)
			if !ok {
				return nil, false
			}

			out[s] = v
		}

		return out, true

	default:
		return nil, false
	}
}

// asInt accepts any integral number a decoder may produce.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}

		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}

		return int(n), true
	default:
		return 0, false
	}
}
