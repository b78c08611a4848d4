package services_test

import (
	"context"
	"testing"

	"draftline/internal/services"
)

func TestContextHelpers(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithPostID(ctx, "1883")
	ctx = services.WithStage(ctx, "generation")
	ctx = services.WithDay(ctx, "2026-01-26")
	ctx = services.WithRequestID(ctx, "req-123")

	if id, ok := services.PostIDFromContext(ctx); !ok || id != "1883" {
		t.Fatalf("unexpected post id: %v %v", id, ok)
	}
	if stage, ok := services.StageFromContext(ctx); !ok || stage != "generation" {
		t.Fatalf("unexpected stage: %v %v", stage, ok)
	}
	if day, ok := services.DayFromContext(ctx); !ok || day != "2026-01-26" {
		t.Fatalf("unexpected day: %v %v", day, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-123" {
		t.Fatalf("unexpected request id: %v %v", rid, ok)
	}
}

func TestStageBlankPreservesContext(t *testing.T) {
	ctx := context.Background()
	ctx = services.WithStage(ctx, "")
	if _, ok := services.StageFromContext(ctx); ok {
		t.Fatal("expected no stage value")
	}
}
