package post

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"draftline/internal/logging"
)

var captureTime = time.Date(2026, 1, 26, 12, 0, 0, 0, time.UTC)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(func() time.Time { return captureTime }, logging.NewNop())
}

func decodeRecords(t *testing.T, raw string) []Record {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var records []Record
	if err := dec.Decode(&records); err != nil {
		t.Fatalf("decode records: %v", err)
	}
	return records
}

func TestNormalizeResolvesAliases(t *testing.T) {
	records := decodeRecords(t, `[{
		"id_str": "1883",
		"full_text": "gm frens feeling good about the mint today",
		"createdAt": "Mon Jan 26 05:48:43 +0000 2026",
		"author": {"userName": "TheCaliApe"},
		"favorite_count": 12,
		"retweets": "3",
		"replyCount": 0,
		"reply_count": 4,
		"extendedEntities": {"media": [{"url": "https://pbs.example/a.jpg"}, {"media_url_https": "https://pbs.example/b.jpg"}]}
	}]`)

	p, reason, defaulted := newTestNormalizer().Normalize(records[0], time.Time{})
	if reason != "" {
		t.Fatalf("unexpected drop %q", reason)
	}
	if defaulted {
		t.Fatal("timestamp should have parsed")
	}
	if p.ID != "1883" || p.Username != "TheCaliApe" {
		t.Fatalf("unexpected identity %+v", p)
	}
	want := time.Date(2026, 1, 26, 5, 48, 43, 0, time.UTC)
	if !p.CreatedAt.Equal(want) {
		t.Fatalf("CreatedAt = %v, want %v", p.CreatedAt, want)
	}
	if p.Engagement != (Engagement{Likes: 12, Shares: 3, Replies: 4}) {
		t.Fatalf("unexpected engagement %+v", p.Engagement)
	}
	if strings.Join(p.MediaURLs, ",") != "https://pbs.example/a.jpg,https://pbs.example/b.jpg" {
		t.Fatalf("unexpected media %v", p.MediaURLs)
	}
	if got := p.Permalink("https://x.com/"); got != "https://x.com/TheCaliApe/status/1883" {
		t.Fatalf("unexpected permalink %q", got)
	}
}

func TestNormalizePrefersFirstMediaLocation(t *testing.T) {
	records := decodeRecords(t, `[{
		"id": 7, "text": "look at this new piece of art everyone",
		"media": [{"media_url_https": "https://pbs.example/top.jpg"}],
		"entities": {"media": [{"media_url_https": "https://pbs.example/nested.jpg"}]}
	}]`)
	p, reason, _ := newTestNormalizer().Normalize(records[0], time.Time{})
	if reason != "" {
		t.Fatalf("unexpected drop %q", reason)
	}
	if len(p.MediaURLs) != 1 || p.MediaURLs[0] != "https://pbs.example/top.jpg" {
		t.Fatalf("unexpected media %v", p.MediaURLs)
	}
	if p.ID != "7" {
		t.Fatalf("numeric id should render without decimals, got %q", p.ID)
	}
	if p.Username != "unknown" {
		t.Fatalf("expected unknown username, got %q", p.Username)
	}
}

func TestNormalizeDropReasons(t *testing.T) {
	cutoff := captureTime.Add(-12 * time.Hour)
	cases := []struct {
		name   string
		record Record
		want   DropReason
	}{
		{"empty record", Record{}, DropEmpty},
		{"no results marker", Record{"noResults": true}, DropEmpty},
		{"blank text", Record{"id": "1", "text": "   "}, DropEmpty},
		{"url only", Record{"id": "1", "text": "https://t.co/xyz"}, DropEmpty},
		{"retweet", Record{"id": "1", "text": "RT @someone: great thread"}, DropRetweet},
		{"stale", Record{"id": "1", "text": "older post text here", "created_at": "2026-01-25T10:00:00Z"}, DropStale},
	}
	n := newTestNormalizer()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, reason, _ := n.Normalize(tc.record, cutoff)
			if reason != tc.want {
				t.Fatalf("reason = %q, want %q", reason, tc.want)
			}
		})
	}
}

func TestNormalizeDefaultsUnparseableTimestamp(t *testing.T) {
	cutoff := captureTime.Add(-12 * time.Hour)
	p, reason, defaulted := newTestNormalizer().Normalize(Record{
		"id": "9", "text": "timestamp is garbage but text is fine", "timestamp": "yesterday-ish",
	}, cutoff)
	if reason != "" {
		t.Fatalf("unexpected drop %q", reason)
	}
	if !defaulted {
		t.Fatal("expected defaulted timestamp")
	}
	if !p.CreatedAt.Equal(captureTime) {
		t.Fatalf("CreatedAt = %v, want capture time", p.CreatedAt)
	}
}

func TestNormalizeAllCountsAndDedupes(t *testing.T) {
	cutoff := captureTime.Add(-12 * time.Hour)
	records := []Record{
		{"id": "1", "text": "first good post about the community", "created_at": "2026-01-26T11:00:00Z", "username": "a"},
		{"id": "1", "text": "first good post about the community", "created_at": "2026-01-26T11:00:00Z", "username": "a"},
		{"id": "2", "text": "RT @x: reshared"},
		{"id": "3", "text": "too old to matter now", "created_at": "2026-01-20T00:00:00Z"},
		{"id": "4", "text": "second good post on defi yields", "created_at": "2026-01-26T10:00:00.000Z", "username": "b"},
		{"noResults": true},
	}
	posts, stats := newTestNormalizer().NormalizeAll(records, cutoff)
	if len(posts) != 2 || posts[0].ID != "1" || posts[1].ID != "4" {
		t.Fatalf("unexpected posts %+v", posts)
	}
	if stats.Input != 6 || stats.Kept != 2 || stats.DroppedTotal() != 4 {
		t.Fatalf("unexpected stats %+v", stats)
	}
	for reason, want := range map[DropReason]int{DropDuplicate: 1, DropRetweet: 1, DropStale: 1, DropEmpty: 1} {
		if stats.Dropped[reason] != want {
			t.Fatalf("dropped[%s] = %d, want %d", reason, stats.Dropped[reason], want)
		}
	}
	if stats.PerAccount["a"] != 1 || stats.PerAccount["b"] != 1 {
		t.Fatalf("unexpected per-account counts %v", stats.PerAccount)
	}
}

func TestNormalizeKeepsPostsWithoutID(t *testing.T) {
	records := []Record{
		{"text": "first post with no id from a hand-built file", "username": "a"},
		{"text": "second post with no id from the same file", "username": "a"},
	}
	posts, stats := newTestNormalizer().NormalizeAll(records, time.Time{})
	if len(posts) != 2 || stats.Kept != 2 || stats.DroppedTotal() != 0 {
		t.Fatalf("posts without ids must be kept, got %d posts, stats %+v", len(posts), stats)
	}
	if posts[0].ID != "" || posts[1].ID != "" {
		t.Fatalf("ids should stay empty, got %q and %q", posts[0].ID, posts[1].ID)
	}
	if got := posts[0].Permalink("https://x.com"); got != "https://x.com/a" {
		t.Fatalf("permalink without id = %q", got)
	}
}

func TestParseTimestampFormats(t *testing.T) {
	want := time.Date(2026, 1, 26, 5, 48, 43, 0, time.UTC)
	for _, value := range []string{
		"2026-01-26T05:48:43Z",
		"2026-01-26T05:48:43.000Z",
		"2026-01-26T05:48:43+00:00",
		"2026-01-26T06:48:43+01:00",
		"2026-01-26T05:48:43",
		"Mon Jan 26 05:48:43 +0000 2026",
	} {
		got, ok := ParseTimestamp(value)
		if !ok {
			t.Fatalf("ParseTimestamp(%q) failed", value)
		}
		if !got.Equal(want) {
			t.Fatalf("ParseTimestamp(%q) = %v, want %v", value, got, want)
		}
	}
	if _, ok := ParseTimestamp("not a date"); ok {
		t.Fatal("expected failure for garbage")
	}
}

func TestNormalizeAcceptsCanonicalPosts(t *testing.T) {
	original := Post{
		ID:         "77",
		Username:   "mookie",
		Text:       "canonical posts survive a second pass through the normalizer",
		CreatedAt:  time.Date(2026, 1, 25, 8, 30, 0, 0, time.UTC),
		Engagement: Engagement{Likes: 4, Shares: 2, Replies: 1},
		MediaURLs:  []string{"https://img.example/a.jpg"},
	}
	data, err := json.Marshal([]Post{original})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	records := decodeRecords(t, string(data))

	got, reason, defaulted := newTestNormalizer().Normalize(records[0], time.Time{})
	if reason != "" || defaulted {
		t.Fatalf("unexpected reason=%q defaulted=%v", reason, defaulted)
	}
	if got.ID != original.ID || got.Username != original.Username || got.Text != original.Text {
		t.Fatalf("identity fields changed: %+v", got)
	}
	if !got.CreatedAt.Equal(original.CreatedAt) {
		t.Fatalf("created_at = %v, want %v", got.CreatedAt, original.CreatedAt)
	}
	if got.Engagement != original.Engagement {
		t.Fatalf("engagement = %+v, want %+v", got.Engagement, original.Engagement)
	}
	if len(got.MediaURLs) != 1 || got.MediaURLs[0] != original.MediaURLs[0] {
		t.Fatalf("media = %v", got.MediaURLs)
	}
}
