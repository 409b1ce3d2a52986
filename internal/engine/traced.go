package engine

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced records one span per engine command.
type Traced struct {
	Engine
	tracer trace.Tracer
}

// NewTraced wraps e. Spans are created from tp.
func NewTraced(e Engine, tp trace.TracerProvider) *Traced {
	return &Traced{Engine: e, tracer: tp.Tracer("dockshell/engine")}
}

func (t *Traced) Execute(ctx context.Context, cmd Command) (Result, error) {
	ctx, span := t.tracer.Start(ctx, "engine."+cmd.Kind.String(),
		trace.WithAttributes(
			attribute.String("engine.command", cmd.String()),
			attribute.Bool("engine.read_only", cmd.ReadOnly()),
		))
	defer span.End()

	res, err := t.Engine.Execute(ctx, cmd)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetAttributes(attribute.Int("engine.reply_bytes", len(res.Text)))
	return res, nil
}

func (t *Traced) SaveProject(ctx context.Context, name string) error {
	ctx, span := t.tracer.Start(ctx, "engine.project-save",
		trace.WithAttributes(attribute.String("engine.project", name)))
	defer span.End()
	if err := t.Engine.SaveProject(ctx, name); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Invalidate forwards to the wrapped engine when it caches replies.
func (t *Traced) Invalidate() {
	if inv, ok := t.Engine.(Invalidator); ok {
		inv.Invalidate()
	}
}
