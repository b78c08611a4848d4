package scrape

import (
	"context"
	"reflect"
	"testing"
)

type stubRunner struct {
	actorID string
	input   any
	items   []map[string]any
}

func (s *stubRunner) RunActor(_ context.Context, actorID string, input any) ([]map[string]any, error) {
	s.actorID = actorID
	s.input = input
	return s.items, nil
}

func TestApifyProviderBuildsSearchInput(t *testing.T) {
	runner := &stubRunner{items: []map[string]any{
		{"id": "1", "text": "a real post"},
		{"noResults": true},
	}}
	provider := NewApifyProvider(runner, "xtdata~twitter-x-scraper", nil)

	records, err := provider.Fetch(context.Background(), Request{Accounts: []string{"alice", "bob"}, MaxItems: 25})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected placeholder item dropped, got %d records", len(records))
	}
	if runner.actorID != "xtdata~twitter-x-scraper" {
		t.Fatalf("unexpected actor %q", runner.actorID)
	}
	want := map[string]any{
		"searchTerms": []string{"from:alice", "from:bob"},
		"maxItems":    25,
		"sort":        "Latest",
	}
	if !reflect.DeepEqual(runner.input, want) {
		t.Fatalf("input = %#v, want %#v", runner.input, want)
	}
}

func TestApifyProviderTimelineInput(t *testing.T) {
	runner := &stubRunner{}
	provider := NewApifyProvider(runner, "shanes~tweet-flash", TimelineInput)
	if _, err := provider.Fetch(context.Background(), Request{Accounts: []string{"kram"}, MaxItems: 100}); err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	input := runner.input.(map[string]any)
	if input["maxTweets"] != 100 {
		t.Fatalf("unexpected input %#v", input)
	}
}

func TestApifyProviderSkipsWithoutAccounts(t *testing.T) {
	runner := &stubRunner{}
	records, err := NewApifyProvider(runner, "actor", nil).Fetch(context.Background(), Request{})
	if err != nil || records != nil {
		t.Fatalf("expected nil result, got %v %v", records, err)
	}
	if runner.input != nil {
		t.Fatal("runner must not be called without accounts")
	}
}
