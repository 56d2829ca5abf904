package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/lambdex/lang"
)

// Streams are the standard streams of a command.
type Streams struct {
	In  io.Reader
	Out io.Writer
}

// StdStreams returns the process's standard input and output.
func StdStreams() *Streams { return &Streams{In: os.Stdin, Out: os.Stdout} }

type contextKey struct{}

// WithContext returns a copy of ctx carrying the parsed command line.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(contextKey{}).(*kong.Context)

	return ktx
}

// stdinSource names standard input as a source.
const stdinSource = "-"

// Source is the positional tree document argument shared by all commands.
type Source struct {
	Source string `arg:"" default:"-" help:"Tree document file or '-' for stdin." name:"source"`
}

// decode reads and builds the tree named by s.
func (s Source) decode(ctx context.Context, in io.Reader) (lang.Node, error) {
	if s.Source == "" || s.Source == stdinSource {
		return lang.Decode(ctx, in)
	}

	file, err := os.Open(s.Source)
	if err != nil {
		return nil, ErrOpenSource.Wrap(err).
			With(slog.String("file", s.Source))
	}
	defer file.Close()

	n, err := lang.Decode(ctx, file)
	if err != nil {
		return nil, lang.WrapError(err).
			With(slog.String("file", s.Source))
	}

	return n, nil
}
