package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/lambdex/lang"
)

// Fmt re-emits a tree document in canonical form.
type Fmt struct {
	Format string `default:"yaml" enum:"yaml,json" help:"Output format (${enum})."                   short:"f"`
	Indent int    `default:"2"                     help:"Indent width; 0 selects compact output."  short:"i"`

	Source `embed:""`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context, s *Streams) error {
	n, err := f.decode(ctx, s.In)
	if err != nil {
		return err
	}

	if f.Format == "json" {
		err = lang.FormatJSON(s.Out, n, f.Indent)
	} else {
		err = lang.FormatYAML(ctx, s.Out, n, f.Indent)
	}

	if err != nil {
		return ErrWriteOutput.Wrap(err).
			With(slog.String("format", f.Format))
	}

	return nil
}
