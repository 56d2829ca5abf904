package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ardnew/lambdex/lang"
)

// Tree prints the node structure of a tree.
type Tree struct {
	Source `embed:""`
}

// Run executes the tree command.
func (t *Tree) Run(ctx context.Context, s *Streams) error {
	n, err := t.decode(ctx, s.In)
	if err != nil {
		return err
	}

	r := lipgloss.NewRenderer(s.Out)
	kind := r.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	detail := r.NewStyle().Foreground(lipgloss.Color("3"))
	enum := r.NewStyle().Foreground(lipgloss.Color("8")).PaddingRight(1)

	var (
		root  *tree.Tree
		stack []*tree.Tree
	)

	for line := range lang.Outlines(n) {
		label := kind.Render(line.Kind.String())
		if line.Detail != "" {
			label += " " + detail.Render(line.Detail)
		}

		node := tree.Root(label).EnumeratorStyle(enum)

		stack = stack[:line.Depth]
		if len(stack) == 0 {
			root = node
		} else {
			stack[len(stack)-1].Child(node)
		}

		stack = append(stack, node)
	}

	if root == nil {
		return nil
	}

	if _, err = fmt.Fprintln(s.Out, root); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
