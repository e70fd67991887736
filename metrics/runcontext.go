/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	oteltrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "chainguard.dev/ticketgate"

// RunContext describes the event a validation run is handling.
type RunContext struct {
	RunKey  string // "pr:owner/repo/42"
	Action  string // webhook action: "opened", "synchronize", ...
	HeadSHA string
}

// Repository extracts "owner/repo" from the run key, or "" when the key is
// malformed.
func (r RunContext) Repository() string {
	_, identifier, found := strings.Cut(r.RunKey, ":")
	if !found {
		return ""
	}
	firstSlash := strings.IndexByte(identifier, '/')
	if firstSlash == -1 {
		return ""
	}
	secondSlash := strings.IndexByte(identifier[firstSlash+1:], '/')
	if secondSlash == -1 {
		return ""
	}
	return identifier[:firstSlash+1+secondSlash]
}

// BoundedAttributes appends the attributes of r that are safe to use as
// metric dimensions. The run key and head SHA are left out; they only go on
// spans.
//
// repository is bounded: a deployment watches a fixed set of repositories,
// while pull requests and commits are unlimited. action is one of the
// handled pull_request actions.
func (r RunContext) BoundedAttributes(base []attribute.KeyValue) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, len(base), len(base)+2)
	copy(attrs, base)
	if repo := r.Repository(); repo != "" {
		attrs = append(attrs, attribute.String("repository", repo))
	}
	if r.Action != "" {
		attrs = append(attrs, attribute.String("action", r.Action))
	}
	return attrs
}

type contextKey string

const runContextKey contextKey = "run_context"

// WithRunContext stores r in ctx.
func WithRunContext(ctx context.Context, r RunContext) context.Context {
	return context.WithValue(ctx, runContextKey, r)
}

// GetRunContext returns the RunContext stored in ctx, if any.
func GetRunContext(ctx context.Context) RunContext {
	if r, ok := ctx.Value(runContextKey).(RunContext); ok {
		return r
	}
	return RunContext{}
}

// StartRun opens the span for one validation run, using the RunContext in ctx.
func StartRun(ctx context.Context) (context.Context, oteltrace.Span) {
	r := GetRunContext(ctx)
	tr := otel.Tracer(tracerName, oteltrace.WithInstrumentationVersion("1.0.0"))

	attrs := r.BoundedAttributes(nil)
	if r.RunKey != "" {
		attrs = append(attrs, attribute.String("run_key", r.RunKey))
	}
	if r.HeadSHA != "" {
		attrs = append(attrs, attribute.String("commit_sha", r.HeadSHA))
	}
	return tr.Start(ctx, "ticketgate.validate", oteltrace.WithAttributes(attrs...))
}

// EndRun records err on span and ends it.
func EndRun(span oteltrace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
