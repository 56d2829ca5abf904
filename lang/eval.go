package lang

import (
	"context"
	"log/slog"
	"maps"

	"github.com/ardnew/lambdex/log"
)

// Bindings maps parameter names to the values they stand for.
type Bindings map[string]any

// Option configures an evaluation.
type Option func(*evalContext)

// WithLogger traces every evaluated node to logger at TRACE level.
func WithLogger(logger log.Logger) Option {
	return func(ctx *evalContext) { ctx.logger = logger }
}

// WithContext sets the context passed to the logger.
func WithContext(c context.Context) Option {
	return func(ctx *evalContext) {
		if c != nil {
			ctx.ctx = c
		}
	}
}

// evalContext holds the state for recursive evaluation.
//
// An evalContext is never modified once evaluation starts; lambdas derive new
// contexts with extend.
type evalContext struct {
	ctx      context.Context
	logger   log.Logger
	bindings Bindings
	depth    int
}

func newEvalContext(b Bindings, opts []Option) *evalContext {
	ctx := &evalContext{
		ctx:      context.Background(),
		bindings: maps.Clone(b),
	}

	for _, opt := range opts {
		opt(ctx)
	}

	return ctx
}

// evaluate interprets n from a fresh context.
func evaluate(n Node, b Bindings, opts []Option) (any, error) {
	return newEvalContext(b, opts).visit(n)
}

// extend returns a copy of ctx with each of params bound to the argument at
// the same position.
func (ctx *evalContext) extend(params []Param, args []any) *evalContext {
	bindings := make(Bindings, len(ctx.bindings)+len(params))
	maps.Copy(bindings, ctx.bindings)

	for i, p := range params {
		bindings[p.Name()] = args[i]
	}

	return &evalContext{
		ctx:      ctx.ctx,
		logger:   ctx.logger,
		bindings: bindings,
		depth:    ctx.depth,
	}
}

// visit evaluates a child node one level deeper than ctx.
func (ctx *evalContext) visit(n Node) (any, error) {
	child := *ctx
	child.depth++

	v, err := n.eval(&child)
	if err != nil {
		ctx.logger.TraceContext(ctx.ctx, "evaluate failed",
			slog.String("kind", n.Kind().String()),
			slog.Int("depth", child.depth),
			slog.Any("error", err),
		)

		return nil, err
	}

	ctx.logger.TraceContext(ctx.ctx, "evaluate",
		slog.String("kind", n.Kind().String()),
		slog.Int("depth", child.depth),
		slog.String("result", resultTypeName(v)),
	)

	return v, nil
}

// boolean evaluates an operand of a logical operator.
func (ctx *evalContext) boolean(n Node, op Kind) (bool, error) {
	v, err := ctx.visit(n)
	if err != nil {
		return false, err
	}

	b, ok := v.(bool)
	if !ok {
		return false, ErrTypeMismatch.With(
			slog.String("kind", op.String()),
			slog.String("have", resultTypeName(v)),
			slog.String("want", boolType.String()),
		)
	}

	return b, nil
}
