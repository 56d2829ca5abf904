package cmd

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/lambdex/lang"
	"github.com/ardnew/lambdex/log"
)

// Eval evaluates a tree and prints its result as YAML.
//
// A tree whose root is a lambda evaluates to a callable, which is invoked with
// the given arguments.
type Eval struct {
	Bind     []string `help:"Bind a parameter to a YAML value (name=value)." placeholder:"NAME=VALUE" sep:"none" short:"b"`
	Bindings string   `help:"YAML file mapping parameter names to values."                             short:"B" type:"existingfile"`
	Arg      []string `help:"YAML argument passed to a root lambda."          placeholder:"VALUE"      sep:"none" short:"a"`

	Source `embed:""`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context, s *Streams) error {
	n, err := e.decode(ctx, s.In)
	if err != nil {
		return err
	}

	b, err := e.bindings(ctx)
	if err != nil {
		return err
	}

	args, err := e.args(ctx)
	if err != nil {
		return err
	}

	opts := []lang.Option{
		lang.WithContext(ctx),
		lang.WithLogger(log.Default()),
	}

	result, err := n.Evaluate(b, opts...)
	if err != nil {
		return lang.WrapError(err).
			With(slog.String("command", "eval"))
	}

	fn, callable := result.(lang.Func)

	switch {
	case callable:
		result, err = fn(args...)
		if err != nil {
			return lang.WrapError(err).
				With(slog.String("command", "eval"))
		}

	case len(args) > 0:
		return ErrNotCallable.With(
			slog.String("kind", n.Kind().String()),
			slog.Int("args", len(args)),
		)
	}

	log.DebugContext(ctx, "evaluated",
		slog.String("kind", n.Kind().String()),
		slog.Int("bindings", len(b)),
		slog.Int("args", len(args)),
	)

	out, err := yaml.MarshalContext(ctx, result)
	if err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	if _, err = s.Out.Write(out); err != nil {
		return ErrWriteOutput.Wrap(err)
	}

	return nil
}

// bindings merges the bindings file with --bind flags, which take precedence.
func (e *Eval) bindings(ctx context.Context) (lang.Bindings, error) {
	b := make(lang.Bindings)

	if e.Bindings != "" {
		data, err := os.ReadFile(e.Bindings)
		if err != nil {
			return nil, ErrReadBindings.Wrap(err).
				With(slog.String("file", e.Bindings))
		}

		var doc map[string]any

		if err = yaml.UnmarshalContext(ctx, data, &doc); err != nil {
			return nil, ErrReadBindings.Wrap(err).
				With(slog.String("file", e.Bindings))
		}

		for name, v := range doc {
			b[name] = v
		}
	}

	for _, kv := range e.Bind {
		name, text, ok := strings.Cut(kv, "=")
		if !ok || strings.TrimSpace(name) == "" {
			return nil, ErrInvalidBinding.With(slog.String("bind", kv))
		}

		v, err := parseValue(ctx, text)
		if err != nil {
			return nil, ErrInvalidBinding.Wrap(err).
				With(slog.String("bind", kv))
		}

		b[strings.TrimSpace(name)] = v
	}

	return b, nil
}

func (e *Eval) args(ctx context.Context) ([]any, error) {
	args := make([]any, 0, len(e.Arg))

	for i, text := range e.Arg {
		v, err := parseValue(ctx, text)
		if err != nil {
			return nil, ErrInvalidBinding.Wrap(err).
				With(slog.Int("arg", i), slog.String("value", text))
		}

		args = append(args, v)
	}

	return args, nil
}

// parseValue decodes a single YAML value. Empty text is null.
func parseValue(ctx context.Context, text string) (any, error) {
	var v any

	if err := yaml.UnmarshalContext(ctx, []byte(text), &v); err != nil {
		return nil, err
	}

	return v, nil
}
