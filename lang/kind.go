package lang

import "strings"

// Kind identifies the variant of an expression node.
type Kind int

const (
	// KindParameter is a placeholder bound by an enclosing lambda.
	KindParameter Kind = iota

	// KindMember is a named field projection.
	KindMember

	// KindArrayIndex is a positional element projection.
	KindArrayIndex

	// KindValue is a literal constant.
	KindValue

	// KindNot is a logical negation.
	KindNot

	// KindEqual is a strict equality comparison.
	KindEqual

	// KindAnd is a logical conjunction.
	KindAnd

	// KindOr is a logical disjunction.
	KindOr

	// KindLambda is an anonymous function over declared parameters.
	KindLambda
)

// Kinds lists every node kind in declaration order.
var Kinds = []Kind{
	KindParameter,
	KindMember,
	KindArrayIndex,
	KindValue,
	KindNot,
	KindEqual,
	KindAnd,
	KindOr,
	KindLambda,
}

// String returns a string representation of the node kind.
func (k Kind) String() string {
	switch k {
	case KindParameter:
		return "Parameter"
	case KindMember:
		return "Member"
	case KindArrayIndex:
		return "ArrayIndex"
	case KindValue:
		return "Value"
	case KindNot:
		return "Not"
	case KindEqual:
		return "Equal"
	case KindAnd:
		return "And"
	case KindOr:
		return "Or"
	case KindLambda:
		return "Lambda"
	default:
		return "Unknown"
	}
}

// ParseKind returns the Kind named by s, ignoring case.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if strings.EqualFold(k.String(), s) {
			return k, true
		}
	}

	return 0, false
}
