package lang

import (
	"log/slog"
	"maps"
)

// lambda is implemented by every [Lambda], regardless of its result type.
type lambda interface {
	Node
	declared() []Param
	bodyNode() Node
}

// resolve walks n with scope mapping each visible parameter name to its
// declaring instance. References to undeclared names are passed to free.
func resolve(n Node, scope map[string]Param, free func(Param) error) error {
	switch n := unwrap(n).(type) {
	case Param:
		decl, ok := scope[n.Name()]
		if !ok {
			return free(n)
		}

		if decl != n {
			return ErrShadowedParameter.With(slog.String("name", n.Name()))
		}

		return nil

	case lambda:
		inner := maps.Clone(scope)
		if inner == nil {
			inner = make(map[string]Param)
		}

		for _, p := range n.declared() {
			inner[p.Name()] = p
		}

		return resolve(n.bodyNode(), inner, free)

	default:
		for _, c := range n.children() {
			if err := resolve(c, scope, free); err != nil {
				return err
			}
		}

		return nil
	}
}

// Check verifies that n is a closed tree: every parameter it references is
// declared by an enclosing lambda, through the same instance.
func Check(n Node) error {
	if isNil(n) {
		return ErrNilOperand
	}

	return resolve(n, nil, func(p Param) error {
		return ErrUnscopedParameter.With(slog.String("name", p.Name()))
	})
}

// FreeParameters returns the parameters referenced by n that no enclosing
// lambda declares, in order of first occurrence. Evaluating n requires a
// binding for each of them.
func FreeParameters(n Node) []Param {
	if isNil(n) {
		return nil
	}

	var free []Param

	seen := make(map[Param]bool)

	_ = resolve(n, nil, func(p Param) error {
		if !seen[p] {
			seen[p] = true
			free = append(free, p)
		}

		return nil
	})

	return free
}
