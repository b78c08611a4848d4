package services

import "context"

type contextKey string

const (
	postIDKey    contextKey = "post_id"
	stageKey     contextKey = "stage"
	dayKey       contextKey = "day"
	requestIDKey contextKey = "request_id"
)

// WithPostID annotates context with the source post identifier being processed.
func WithPostID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, postIDKey, id)
}

// PostIDFromContext extracts the source post identifier if present.
func PostIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(postIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithStage annotates context with the pipeline stage name.
func WithStage(ctx context.Context, stage string) context.Context {
	if stage == "" {
		return ctx
	}
	return context.WithValue(ctx, stageKey, stage)
}

// StageFromContext returns the stage name if present.
func StageFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(stageKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithDay annotates context with the run date (YYYY-MM-DD).
func WithDay(ctx context.Context, day string) context.Context {
	if day == "" {
		return ctx
	}
	return context.WithValue(ctx, dayKey, day)
}

// DayFromContext returns the run date if present.
func DayFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(dayKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
