package scrape

import (
	"context"
	"errors"

	"draftline/internal/post"
)

// ActorRunner runs an actor and returns its dataset items.
type ActorRunner interface {
	RunActor(ctx context.Context, actorID string, input any) ([]map[string]any, error)
}

// InputBuilder turns a Request into actor input.
type InputBuilder func(Request) map[string]any

// SearchInput builds input for search-style scraper actors: one
// "from:<account>" term per account, newest first.
func SearchInput(req Request) map[string]any {
	return map[string]any{
		"searchTerms": searchTerms(req.Accounts),
		"maxItems":    req.MaxItems,
		"sort":        "Latest",
	}
}

// TimelineInput builds input for actors that take a maxTweets cap.
func TimelineInput(req Request) map[string]any {
	return map[string]any{
		"searchTerms": searchTerms(req.Accounts),
		"maxTweets":   req.MaxItems,
	}
}

func searchTerms(accounts []string) []string {
	terms := make([]string, 0, len(accounts))
	for _, account := range accounts {
		terms = append(terms, "from:"+account)
	}
	return terms
}

// ApifyProvider collects posts through an actor run.
type ApifyProvider struct {
	runner  ActorRunner
	actorID string
	input   InputBuilder
}

// NewApifyProvider builds a provider. A nil input builder uses SearchInput.
func NewApifyProvider(runner ActorRunner, actorID string, input InputBuilder) *ApifyProvider {
	if input == nil {
		input = SearchInput
	}
	return &ApifyProvider{runner: runner, actorID: actorID, input: input}
}

func (p *ApifyProvider) Name() string { return "apify" }

func (p *ApifyProvider) Fetch(ctx context.Context, req Request) ([]post.Record, error) {
	if p.runner == nil {
		return nil, errors.New("apify provider: no client configured")
	}
	if len(req.Accounts) == 0 {
		return nil, nil
	}
	items, err := p.runner.RunActor(ctx, p.actorID, p.input(req))
	if err != nil {
		return nil, err
	}
	records := make([]post.Record, 0, len(items))
	for _, item := range items {
		if flag, ok := item["noResults"].(bool); ok && flag {
			continue
		}
		records = append(records, item)
	}
	return records, nil
}
