package candidate

import (
	"strings"
	"testing"

	"draftline/internal/post"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Reason
		ok   bool
	}{
		{"short", "gm", ReasonTooShort, false},
		{"exactly thirty", strings.Repeat("a", 30), "", true},
		{"twenty nine", strings.Repeat("a", 29), ReasonTooShort, false},
		{"retweet", "RT @someone: this is a long enough retweet body", ReasonRetweet, false},
		{"mostly link", "check this https://example.com/very/long/path", ReasonMostlyLink, false},
		{"link plus text", "this drop is going to be huge for holders https://t.co/x", "", true},
		{"runes not bytes", strings.Repeat("é", 29), ReasonTooShort, false},
	}
	f := New(Options{})
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reason, ok := f.Check(post.Post{Text: tc.text})
			if ok != tc.ok || reason != tc.want {
				t.Fatalf("Check(%q) = (%q, %v), want (%q, %v)", tc.text, reason, ok, tc.want, tc.ok)
			}
		})
	}
}

func TestApplyPreservesOrderAndCounts(t *testing.T) {
	posts := []post.Post{
		{ID: "1", Text: "first candidate post with enough text"},
		{ID: "2", Text: "short"},
		{ID: "3", Text: "RT @x: a retweet that is long enough to pass"},
		{ID: "4", Text: "second candidate post with enough text"},
	}
	kept, excluded := Filter{}.Apply(posts)
	if len(kept) != 2 || kept[0].ID != "1" || kept[1].ID != "4" {
		t.Fatalf("unexpected kept %+v", kept)
	}
	if excluded[ReasonTooShort] != 1 || excluded[ReasonRetweet] != 1 {
		t.Fatalf("unexpected excluded %v", excluded)
	}
}

func TestCustomFloors(t *testing.T) {
	f := New(Options{MinLength: 5, MinLengthSansLinks: 3})
	if _, ok := f.Check(post.Post{Text: "hello"}); !ok {
		t.Fatal("expected custom floor to admit five characters")
	}
}
