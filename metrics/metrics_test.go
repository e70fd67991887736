/*
Copyright 2026 Chainguard, Inc.
SPDX-License-Identifier: Apache-2.0
*/

package metrics

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"go.opentelemetry.io/otel/attribute"
)

func TestRecordValidation(t *testing.T) {
	labels := prometheus.Labels{"result": ResultFail, "kind": "policy", "repository": "acme/metrics-test"}
	before := testutil.ToFloat64(validationCounter.With(labels))

	RecordValidation("acme/metrics-test", ResultFail, "policy")
	RecordValidation("acme/metrics-test", ResultFail, "policy")

	if got, want := testutil.ToFloat64(validationCounter.With(labels))-before, 2.0; got != want {
		t.Errorf("validations: got = %v, wanted = %v", got, want)
	}
}

func TestRecordStatus(t *testing.T) {
	labels := prometheus.Labels{"context": "metrics-test", "state": "success"}
	before := testutil.ToFloat64(statusCounter.With(labels))
	RecordStatus("metrics-test", "success")
	if got := testutil.ToFloat64(statusCounter.With(labels)) - before; got != 1 {
		t.Errorf("statuses: got = %v, wanted = 1", got)
	}

	errLabels := prometheus.Labels{"context": "metrics-test"}
	before = testutil.ToFloat64(statusErrorCounter.With(errLabels))
	RecordStatusError("metrics-test")
	if got := testutil.ToFloat64(statusErrorCounter.With(errLabels)) - before; got != 1 {
		t.Errorf("status errors: got = %v, wanted = 1", got)
	}
}

func TestRecordSuppressed(t *testing.T) {
	labels := prometheus.Labels{"reason": "metrics-test"}
	before := testutil.ToFloat64(suppressedCounter.With(labels))
	RecordSuppressed("metrics-test")
	if got := testutil.ToFloat64(suppressedCounter.With(labels)) - before; got != 1 {
		t.Errorf("suppressed: got = %v, wanted = 1", got)
	}
}

func TestRunContextRepository(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "pull request", key: "pr:acme/widgets/42", want: "acme/widgets"},
		{name: "empty", key: ""},
		{name: "no prefix", key: "acme/widgets/42"},
		{name: "no number", key: "pr:acme/widgets"},
		{name: "owner only", key: "pr:acme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (RunContext{RunKey: tt.key}).Repository(); got != tt.want {
				t.Errorf("Repository() = %q, wanted = %q", got, tt.want)
			}
		})
	}
}

func TestBoundedAttributes(t *testing.T) {
	r := RunContext{RunKey: "pr:acme/widgets/42", Action: "synchronize", HeadSHA: "deadbeef"}
	base := []attribute.KeyValue{attribute.String("mode", "serve")}

	got := r.BoundedAttributes(base)
	want := []attribute.KeyValue{
		attribute.String("mode", "serve"),
		attribute.String("repository", "acme/widgets"),
		attribute.String("action", "synchronize"),
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b attribute.KeyValue) bool { return a == b })); diff != "" {
		t.Errorf("BoundedAttributes() mismatch (-want +got):\n%s", diff)
	}
	if len(base) != 1 {
		t.Errorf("base modified: got len = %d, wanted = 1", len(base))
	}
}

func TestRunContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if got := GetRunContext(ctx); got != (RunContext{}) {
		t.Errorf("GetRunContext(empty) = %+v, wanted zero", got)
	}

	want := RunContext{RunKey: "pr:acme/widgets/42", Action: "opened"}
	ctx = WithRunContext(ctx, want)
	if got := GetRunContext(ctx); got != want {
		t.Errorf("GetRunContext() = %+v, wanted = %+v", got, want)
	}

	// The global tracer provider is a no-op; the span must still be usable.
	ctx, span := StartRun(ctx)
	if ctx == nil || span == nil {
		t.Fatal("StartRun() returned nil")
	}
	EndRun(span, errors.New("boom"))
}
