package app

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/modal/internal/editor"
	"github.com/zjrosen/modal/internal/tracing"
)

// tracedStore wraps the file store in spans. ctx is the span the current
// event runs under; the editor calls the store synchronously from Handle.
type tracedStore struct {
	store  editor.FileStore
	tracer trace.Tracer
	ctx    context.Context
}

func (s *tracedStore) Read(path string) (string, error) {
	var text string
	err := tracing.Run(s.ctx, s.tracer, tracing.SpanFileRead, func(ctx context.Context) error {
		var err error
		text, err = s.store.Read(path)
		if err == nil {
			trace.SpanFromContext(ctx).SetAttributes(attribute.Int(tracing.AttrFileBytes, len(text)))
		}
		return err
	}, attribute.String(tracing.AttrFilePath, path))
	return text, err
}

func (s *tracedStore) Write(path, text string) error {
	return tracing.Run(s.ctx, s.tracer, tracing.SpanFileWrite, func(context.Context) error {
		return s.store.Write(path, text)
	},
		attribute.String(tracing.AttrFilePath, path),
		attribute.Int(tracing.AttrFileBytes, len(text)),
		attribute.Int(tracing.AttrFileLines, strings.Count(text, "\n")+1),
	)
}

func (s *tracedStore) DiffSummary(path, text string) (string, error) {
	var summary string
	err := tracing.Run(s.ctx, s.tracer, tracing.SpanFileDiff, func(context.Context) error {
		var err error
		summary, err = s.store.DiffSummary(path, text)
		return err
	}, attribute.String(tracing.AttrFilePath, path))
	return summary, err
}
