package cmd

import (
	"context"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/lambdex/log"
	"github.com/ardnew/lambdex/profile"
)

// Init writes a configuration file holding the current global flag values.
type Init struct {
	Force bool `help:"Overwrite an existing configuration file." short:"f"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) error {
	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.With(slog.String("reason", "no command line"))
	}

	path := ktx.Model.Vars()[ConfigIdentifier]

	_, err := os.Stat(path)
	if err == nil && !i.Force {
		return ErrWriteConfig.Wrap(ErrFileExists).
			With(slog.String("file", path))
	}

	data, err := yaml.MarshalContext(ctx, i.values(ctx))
	if err != nil {
		return ErrWriteConfig.Wrap(err).
			With(slog.String("file", path))
	}

	err = os.WriteFile(path, data, 0o600)
	if err != nil {
		return ErrWriteConfig.Wrap(err).
			With(slog.String("file", path))
	}

	log.DebugContext(ctx, "initialized configuration file",
		slog.String("path", path),
	)

	return nil
}

// values collects the global flags worth persisting.
func (i *Init) values(ctx context.Context) map[string]any {
	ktx := kongContextFrom(ctx)
	skip := []string{"help", "version", profile.Tag}

	values := make(map[string]any)

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(skip, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				values[flag.Name] = v
			}
		case []string:
			if len(v) > 0 {
				values[flag.Name] = v
			}
		default:
			values[flag.Name] = v
		}
	}

	return values
}
