package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const nitterFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>alice / Nitter</title>
<item>
  <title>ignored title</title>
  <description><![CDATA[<p>gm frens, the <b>mint</b> is live &amp; moving</p>]]></description>
  <pubDate>Mon, 26 Jan 2026 10:00:00 GMT</pubDate>
  <guid>https://nitter.test/alice/status/1111#m</guid>
  <link>https://nitter.test/alice/status/1111#m</link>
</item>
<item>
  <title>old post</title>
  <description>way too old to matter</description>
  <pubDate>Mon, 05 Jan 2026 10:00:00 GMT</pubDate>
  <guid>https://nitter.test/alice/status/2222#m</guid>
  <link>https://nitter.test/alice/status/2222#m</link>
</item>
</channel>
</rss>`

func TestNitterProviderParsesFeed(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if !strings.Contains(r.UserAgent(), "draftline") {
			t.Errorf("unexpected user agent %q", r.UserAgent())
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(nitterFeed))
	}))
	defer server.Close()

	provider := NewNitterProvider([]string{strings.TrimPrefix(server.URL, "http://")}, server.Client())
	provider.scheme = "http"

	since := time.Date(2026, 1, 20, 0, 0, 0, 0, time.UTC)
	records, err := provider.Fetch(context.Background(), Request{Accounts: []string{"alice"}, Since: since})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(paths) != 1 || paths[0] != "/alice/rss" {
		t.Fatalf("unexpected requests %v", paths)
	}
	if len(records) != 1 {
		t.Fatalf("expected stale item filtered, got %d", len(records))
	}
	record := records[0]
	if record["id"] != "1111" {
		t.Fatalf("unexpected id %v", record["id"])
	}
	if record["text"] != "gm frens, the mint is live & moving" {
		t.Fatalf("unexpected text %q", record["text"])
	}
	if record["username"] != "alice" {
		t.Fatalf("unexpected username %v", record["username"])
	}
	if record["created_at"] != "2026-01-26T10:00:00Z" {
		t.Fatalf("unexpected created_at %v", record["created_at"])
	}
}

func TestNitterProviderFallsThroughInstances(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer broken.Close()
	healthy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(nitterFeed))
	}))
	defer healthy.Close()

	provider := NewNitterProvider([]string{
		strings.TrimPrefix(broken.URL, "http://"),
		strings.TrimPrefix(healthy.URL, "http://"),
	}, nil)
	provider.scheme = "http"

	records, err := provider.Fetch(context.Background(), Request{Accounts: []string{"alice"}})
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected both items without a window, got %d", len(records))
	}
}

func TestNitterProviderReportsTotalFailure(t *testing.T) {
	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusBadGateway)
	}))
	defer broken.Close()

	provider := NewNitterProvider([]string{strings.TrimPrefix(broken.URL, "http://")}, nil)
	provider.scheme = "http"
	if _, err := provider.Fetch(context.Background(), Request{Accounts: []string{"alice"}}); err == nil {
		t.Fatal("expected error when every instance fails")
	}
}
