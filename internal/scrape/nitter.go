package scrape

import (
	"context"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"

	"draftline/internal/post"
)

const nitterUserAgent = "Mozilla/5.0 (compatible; draftline/1.0)"

var statusIDPattern = regexp.MustCompile(`/status/(\d+)`)

// NitterProvider reads account timelines from Nitter RSS feeds, trying each
// instance in order until one answers.
type NitterProvider struct {
	instances []string
	scheme    string
	parser    *gofeed.Parser
	policy    *bluemonday.Policy
}

// NewNitterProvider builds a provider over the given instance hosts.
func NewNitterProvider(instances []string, client *http.Client) *NitterProvider {
	parser := gofeed.NewParser()
	parser.UserAgent = nitterUserAgent
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	parser.Client = client
	return &NitterProvider{
		instances: instances,
		scheme:    "https",
		parser:    parser,
		policy:    bluemonday.StrictPolicy(),
	}
}

func (p *NitterProvider) Name() string { return "nitter" }

func (p *NitterProvider) Fetch(ctx context.Context, req Request) ([]post.Record, error) {
	var records []post.Record
	var lastErr error
	for _, account := range req.Accounts {
		items, err := p.fetchAccount(ctx, account)
		if err != nil {
			lastErr = err
			continue
		}
		count := 0
		for _, item := range items {
			record := p.toRecord(account, item)
			if record == nil {
				continue
			}
			if ts, ok := record["created_at"].(string); ok && !req.Since.IsZero() {
				if parsed, err := time.Parse(time.RFC3339, ts); err == nil && parsed.Before(req.Since) {
					continue
				}
			}
			records = append(records, record)
			count++
			if req.MaxItems > 0 && count >= req.MaxItems {
				break
			}
		}
	}
	if len(records) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return records, nil
}

func (p *NitterProvider) fetchAccount(ctx context.Context, account string) ([]*gofeed.Item, error) {
	var lastErr error
	for _, instance := range p.instances {
		feedURL := fmt.Sprintf("%s://%s/%s/rss", p.scheme, instance, account)
		feed, err := p.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			lastErr = fmt.Errorf("nitter %s: %w", instance, err)
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		if len(feed.Items) > 0 {
			return feed.Items, nil
		}
	}
	if lastErr == nil {
		lastErr = fmt.Errorf("nitter: no instance returned posts for %s", account)
	}
	return nil, lastErr
}

func (p *NitterProvider) toRecord(account string, item *gofeed.Item) post.Record {
	text := p.clean(item.Description)
	if text == "" {
		text = p.clean(item.Title)
	}
	if text == "" {
		return nil
	}
	record := post.Record{
		"text":     text,
		"username": account,
		"url":      item.Link,
	}
	id := item.GUID
	if match := statusIDPattern.FindStringSubmatch(item.Link); match != nil {
		id = match[1]
	} else if match := statusIDPattern.FindStringSubmatch(item.GUID); match != nil {
		id = match[1]
	}
	if id != "" {
		record["id"] = id
	}
	if item.PublishedParsed != nil {
		record["created_at"] = item.PublishedParsed.UTC().Format(time.RFC3339)
	}
	return record
}

func (p *NitterProvider) clean(value string) string {
	sanitized := p.policy.Sanitize(value)
	return strings.Join(strings.Fields(html.UnescapeString(sanitized)), " ")
}
