package generation

import (
	"strings"
	"testing"

	"draftline/internal/post"
	"draftline/internal/voice"
)

func TestBuildDirectiveIncludesProfile(t *testing.T) {
	profile := voice.Profile{
		Tone:     "- Uses emojis: 40% of posts",
		Topics:   []string{"Nft", "Community"},
		Examples: []string{"ex one is long enough", "ex two", "ex three", "ex four", "ex five", "ex six"},
	}
	directive := BuildDirective(Persona{Handle: "KRAM_btc", Description: "You are @KRAM_btc."}, profile, 5, 280)

	for _, want := range []string{
		"You are @KRAM_btc.",
		"Your tone patterns:\n- Uses emojis: 40% of posts",
		"Your main topics: Nft, Community",
		"ex one is long enough\n---\nex two",
		"under 280 characters",
	} {
		if !strings.Contains(directive, want) {
			t.Fatalf("directive missing %q:\n%s", want, directive)
		}
	}
	if strings.Contains(directive, "ex six") {
		t.Fatal("directive should cap examples at five")
	}
}

func TestBuildDirectiveEmptyProfile(t *testing.T) {
	directive := BuildDirective(Persona{Handle: "someone"}, voice.Profile{}, 5, 280)
	if !strings.HasPrefix(directive, "You are @someone.") {
		t.Fatalf("unexpected directive start: %q", directive)
	}
	for _, absent := range []string{"tone patterns", "main topics", "Example posts"} {
		if strings.Contains(directive, absent) {
			t.Fatalf("empty profile should omit %q", absent)
		}
	}
}

func TestUserPromptEmbedsSourceVerbatim(t *testing.T) {
	src := post.Post{Username: "alice", Text: `the "mint" is live`}
	prompt := UserPrompt("KRAM_btc", src, 280)
	for _, want := range []string{"@alice", `the "mint" is live`, "@KRAM_btc", "280"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, prompt)
		}
	}
}
