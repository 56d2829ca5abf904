package lang

import (
	"log/slog"
	"math"
	"reflect"
	"strings"

	"github.com/expr-lang/expr/ast"
)

// Dialect selects the grammar a tree is rendered in.
type Dialect int

const (
	// DialectLambda is the native JS-like lambda grammar produced by
	// [Node.Compile].
	DialectLambda Dialect = iota

	// DialectExpr is the expression syntax of github.com/expr-lang/expr.
	DialectExpr
)

// Dialects lists every supported dialect.
var Dialects = []Dialect{DialectLambda, DialectExpr}

// String returns the dialect name.
func (d Dialect) String() string {
	switch d {
	case DialectLambda:
		return "lambda"
	case DialectExpr:
		return "expr"
	default:
		return "unknown"
	}
}

// ParseDialect returns the Dialect named by s, ignoring case.
func ParseDialect(s string) (Dialect, bool) {
	for _, d := range Dialects {
		if strings.EqualFold(d.String(), s) {
			return d, true
		}
	}

	return 0, false
}

// CompileDialect renders n in dialect d.
func CompileDialect(n Node, d Dialect) (string, error) {
	if isNil(n) {
		return "", ErrNilOperand
	}

	switch d {
	case DialectLambda:
		return n.Compile(), nil

	case DialectExpr:
		node, err := ExprNode(n)
		if err != nil {
			return "", err
		}

		return node.String(), nil

	default:
		return "", ErrUnsupportedDialect.With(slog.Int("dialect", int(d)))
	}
}

// ExprNode translates n into an expr-lang syntax tree.
//
// expr-lang has no anonymous functions with named parameters, so a lambda is
// only accepted at the root: it translates to its body, with the parameters
// left as identifiers for the expr-lang environment to supply. Literals must
// be nil, booleans, numbers or strings. Equality becomes "==", whose
// expr-lang semantics compare numbers across types.
func ExprNode(n Node) (ast.Node, error) {
	if isNil(n) {
		return nil, ErrNilOperand
	}

	if l, ok := unwrap(n).(lambda); ok {
		n = l.bodyNode()
	}

	return exprNode(n)
}

func exprNode(n Node) (ast.Node, error) {
	n = unwrap(n)

	switch n.Kind() {
	case KindParameter:
		return &ast.IdentifierNode{Value: n.(Param).Name()}, nil

	case KindValue:
		return exprLiteral(n.(constant).constant())

	case KindMember:
		src, err := exprNode(n.children()[0])
		if err != nil {
			return nil, err
		}

		field := n.(interface{ Field() string }).Field()

		return &ast.MemberNode{
			Node:     src,
			Property: &ast.StringNode{Value: field},
		}, nil

	case KindArrayIndex:
		src, err := exprNode(n.children()[0])
		if err != nil {
			return nil, err
		}

		index := n.(interface{ Index() int }).Index()

		return &ast.MemberNode{
			Node:     src,
			Property: &ast.IntegerNode{Value: index},
		}, nil

	case KindNot:
		operand, err := exprNode(n.children()[0])
		if err != nil {
			return nil, err
		}

		return &ast.UnaryNode{Operator: "!", Node: operand}, nil

	case KindEqual, KindAnd, KindOr:
		c := n.children()

		left, err := exprNode(c[0])
		if err != nil {
			return nil, err
		}

		right, err := exprNode(c[1])
		if err != nil {
			return nil, err
		}

		return &ast.BinaryNode{
			Operator: exprOperator[n.Kind()],
			Left:     left,
			Right:    right,
		}, nil

	default:
		return nil, ErrUnsupportedDialect.With(
			slog.String("dialect", DialectExpr.String()),
			slog.String("kind", n.Kind().String()),
		)
	}
}

var exprOperator = map[Kind]string{
	KindEqual: "==",
	KindAnd:   "&&",
	KindOr:    "||",
}

func exprLiteral(v any) (ast.Node, error) {
	if v == nil {
		return &ast.NilNode{}, nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Bool:
		return &ast.BoolNode{Value: rv.Bool()}, nil

	case reflect.String:
		return &ast.StringNode{Value: rv.String()}, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return &ast.IntegerNode{Value: int(rv.Int())}, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if rv.Uint() > math.MaxInt {
			return nil, ErrUnsupportedDialect.With(
				slog.String("dialect", DialectExpr.String()),
				slog.String("kind", KindValue.String()),
				slog.Uint64("value", rv.Uint()),
			)
		}

		return &ast.IntegerNode{Value: int(rv.Uint())}, nil

	case reflect.Float32, reflect.Float64:
		return &ast.FloatNode{Value: rv.Float()}, nil

	default:
		return nil, ErrUnsupportedDialect.With(
			slog.String("dialect", DialectExpr.String()),
			slog.String("kind", KindValue.String()),
			slog.String("type", rv.Type().String()),
		)
	}
}
