package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ardnew/lambdex/lang"
	"github.com/ardnew/lambdex/log"
)

// Compile prints the compiled text of a tree.
type Compile struct {
	Dialect     string `default:"lambda" enum:"lambda,expr" help:"Output syntax (${enum})."  short:"d"`
	Fingerprint bool   `                                    help:"Prefix the text with its 64-bit fingerprint." short:"F"`

	Source `embed:""`
}

// Run executes the compile command.
func (c *Compile) Run(ctx context.Context, s *Streams) error {
	n, err := c.decode(ctx, s.In)
	if err != nil {
		return err
	}

	d, _ := lang.ParseDialect(c.Dialect)

	text, err := lang.CompileDialect(n, d)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "compile"))
	}

	log.DebugContext(ctx, "compiled",
		slog.String("dialect", d.String()),
		slog.Int("length", len(text)),
	)

	if c.Fingerprint {
		_, err = fmt.Fprintf(s.Out, "%016x %s\n", lang.Fingerprint(n), text)
	} else {
		_, err = fmt.Fprintln(s.Out, text)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}
