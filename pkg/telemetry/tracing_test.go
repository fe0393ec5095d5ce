package telemetry

import (
	"context"
	"testing"
)

func TestSetupTracingDefaults(t *testing.T) {
	ctx := context.Background()
	provider, err := SetupTracing(ctx, Options{ServiceName: "affirmly-server", ServiceVersion: "test"})
	if err != nil {
		t.Fatalf("setup tracing failed: %v", err)
	}
	if provider == nil {
		t.Fatal("expected provider")
	}
	if err := provider.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}

func TestSetupTracingWithLogSpans(t *testing.T) {
	ctx := context.Background()
	provider, err := SetupTracing(ctx, Options{
		ServiceName:    "affirmly-server",
		ServiceVersion: "test",
		SampleRatio:    5, // out of range, falls back to 1
		LogSpans:       true,
	})
	if err != nil {
		t.Fatalf("setup tracing failed: %v", err)
	}
	tracer := provider.Tracer("test")
	_, span := tracer.Start(ctx, "log-spans-check")
	span.End()
	if err := provider.Shutdown(ctx); err != nil {
		t.Fatalf("shutdown failed: %v", err)
	}
}
