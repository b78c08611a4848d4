// Package logging assembles the structured slog loggers used across draftline.
//
// It owns the console and JSON handlers, level and output plumbing, and
// context-aware helpers that tag lines with the stage, run date, post ID, and
// correlation ID. A no-op logger is provided for tests and wiring code.
package logging
