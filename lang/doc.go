// Package lang builds typed, immutable expression trees and renders them as
// JS-like lambda text, or evaluates them directly.
//
// # Nodes
//
// A tree is composed bottom-up from a closed set of node kinds:
//
//   - [Parameter]: a placeholder bound by an enclosing [Lambda]
//   - [Value]: a literal constant
//   - [Member]: a named field of its source
//   - [ArrayIndex]: a fixed element of its source sequence
//   - [Not], [Equal], [And], [Or]: logical operators
//   - [Lambda]: an anonymous function of declared parameters
//
// Every node is an [Expr] of some result type R. Constructors use R to reject
// ill-typed trees at compile time where possible and validate the rest (member
// names, interface-typed operands) when the node is built.
//
//	u := lang.MustParameter[User]("u")
//	name := lang.MustMember[string, User](u, "Name")
//	eq := lang.MustEqual[string](name, lang.NewValue("Ashot"))
//	fn := lang.MustLambda[bool](lang.MustNot(eq), u)
//
//	fn.Compile() // (u) => !(u.Name === 'Ashot')
//
// # Grammar
//
// Compiled text follows these rules:
//
//	Parameter   name
//	Value       'text'            (always quoted, never escaped)
//	Member      source.field
//	ArrayIndex  source[index]
//	Not         !operand
//	Equal       (left === right)
//	And         (left && right)
//	Or          (left || right)
//	Lambda      (p1,p2,...) => body
//
// Binary operators are always parenthesized, so the text never depends on the
// consumer's precedence table. Identical trees compile to identical bytes.
//
// # Evaluation
//
// [Node.Evaluate] interprets a tree directly against [Bindings]; compiled text
// is never executed. A lambda evaluates to a [Func] that binds its arguments
// positionally. [Predicate] adapts a boolean lambda to a typed Go function.
//
// # Parameters
//
// A parameter is declared once, by the lambda that lists it, and referenced by
// identity everywhere in that lambda's body. [NewLambda] rejects a body that
// references a different instance under a declared name, and [Check] verifies
// that a whole tree is closed.
//
// # Documents
//
// [ToMap] and [FromMap] convert trees to and from a map form that encodes as
// YAML or JSON (see [Decode], [FormatYAML], [FormatJSON]). [CompileDialect]
// renders a tree as expr-lang syntax, and [Fingerprint] hashes compiled text.
package lang
