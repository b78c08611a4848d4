package generation

import (
	"context"
	"errors"
	"fmt"

	"draftline/internal/post"
)

// Completer is the generative text model: one system directive plus one user
// instruction in, generated text out.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ErrEmptyDraft marks a completion that cleaned down to nothing.
var ErrEmptyDraft = errors.New("model returned an empty draft")

// Generator turns one source post into one cleaned draft text. The directive
// is built once and reused for every post.
type Generator struct {
	completer Completer
	directive string
	handle    string
	target    int
}

// NewGenerator builds a generator with a precomputed directive.
func NewGenerator(completer Completer, directive, handle string, targetLength int) *Generator {
	return &Generator{completer: completer, directive: directive, handle: handle, target: targetLength}
}

// Directive returns the system prompt shared by the batch.
func (g *Generator) Directive() string { return g.directive }

// Generate issues a single model call for src. There is no retry.
func (g *Generator) Generate(ctx context.Context, src post.Post) (string, error) {
	raw, err := g.completer.Complete(ctx, g.directive, UserPrompt(g.handle, src, g.target))
	if err != nil {
		return "", fmt.Errorf("generate draft for %s: %w", src.ID, err)
	}
	text := Clean(raw)
	if text == "" {
		return "", ErrEmptyDraft
	}
	return text, nil
}
