package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// FormatJSON writes the document form of n as JSON to the writer.
func FormatJSON(w io.Writer, n Node, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(ToMap(n), "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(ToMap(n))
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the document form of n as YAML to the writer.
// An indent of zero selects flow style.
func FormatYAML(ctx context.Context, w io.Writer, n Node, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, ToMap(n), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// Outline is one line of the printed form of a tree.
type Outline struct {
	Depth  int
	Kind   Kind
	Detail string
}

// Outlines returns an iterator over the lines of the printed form of n, in
// depth-first order. A lambda lists its parameters in its own line rather
// than as children.
func Outlines(n Node) iter.Seq[Outline] {
	return func(yield func(Outline) bool) {
		if !isNil(n) {
			outline(n, 0, yield)
		}
	}
}

func outline(n Node, depth int, yield func(Outline) bool) bool {
	n = unwrap(n)
	line := Outline{Depth: depth, Kind: n.Kind()}

	children := n.children()

	switch n.Kind() {
	case KindParameter:
		line.Detail = n.(Param).Name()

	case KindValue:
		line.Detail = n.Compile()

	case KindMember:
		line.Detail = string(tokenMember) + n.(interface{ Field() string }).Field()

	case KindArrayIndex:
		line.Detail = "[" + strconv.Itoa(n.(interface{ Index() int }).Index()) + "]"

	case KindLambda:
		l := n.(lambda)

		names := make([]string, 0, len(l.declared()))
		for _, p := range l.declared() {
			names = append(names, p.Name())
		}

		line.Detail = "(" + strings.Join(names, tokenComma) + ")"
		children = []Node{l.bodyNode()}

	case KindEqual:
		line.Detail = tokenEqual

	case KindAnd:
		line.Detail = tokenAnd

	case KindOr:
		line.Detail = tokenOr

	case KindNot:
		line.Detail = tokenNot
	}

	if !yield(line) {
		return false
	}

	for _, c := range children {
		if !outline(c, depth+1, yield) {
			return false
		}
	}

	return true
}

// Print writes an indented outline of n to the writer.
func Print(w io.Writer, n Node) error {
	for line := range Outlines(n) {
		_, err := fmt.Fprintf(w, "%s%s %s\n",
			strings.Repeat("  ", line.Depth), line.Kind, line.Detail)
		if err != nil {
			return err
		}
	}

	return nil
}
