package generation

import (
	"context"
	"errors"
	"testing"

	"draftline/internal/post"
)

type fixedCompleter struct {
	reply string
	err   error
}

func (f fixedCompleter) Complete(context.Context, string, string) (string, error) {
	return f.reply, f.err
}

func TestGeneratorCleansOutput(t *testing.T) {
	gen := NewGenerator(fixedCompleter{reply: `"Tweet: wagmi"`}, "directive", "KRAM_btc", 280)
	text, err := gen.Generate(context.Background(), post.Post{ID: "1", Text: "source"})
	if err != nil || text != "wagmi" {
		t.Fatalf("Generate = %q, %v", text, err)
	}
	if gen.Directive() != "directive" {
		t.Fatalf("unexpected directive %q", gen.Directive())
	}
}

func TestGeneratorEmptyOutput(t *testing.T) {
	gen := NewGenerator(fixedCompleter{reply: `""`}, "directive", "KRAM_btc", 280)
	if _, err := gen.Generate(context.Background(), post.Post{ID: "1"}); !errors.Is(err, ErrEmptyDraft) {
		t.Fatalf("expected ErrEmptyDraft, got %v", err)
	}
}

func TestGeneratorWrapsCompleterError(t *testing.T) {
	cause := errors.New("timeout")
	gen := NewGenerator(fixedCompleter{err: cause}, "directive", "KRAM_btc", 280)
	if _, err := gen.Generate(context.Background(), post.Post{ID: "9"}); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
}
