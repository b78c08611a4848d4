package post

import (
	"strings"
	"time"

	"draftline/internal/textutil"
)

// Record is one raw post as returned by a scraping provider. Field names vary
// between providers; Normalizer resolves the aliases.
type Record = map[string]any

// Engagement holds the public interaction counters of a post.
type Engagement struct {
	Likes   int `json:"likes"`
	Shares  int `json:"shares"`
	Replies int `json:"replies"`
}

// Total sums all counters.
func (e Engagement) Total() int {
	return e.Likes + e.Shares + e.Replies
}

// Post is the canonical form every downstream stage consumes.
type Post struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Text       string     `json:"text"`
	CreatedAt  time.Time  `json:"created_at"`
	Engagement Engagement `json:"engagement"`
	MediaURLs  []string   `json:"media_urls,omitempty"`
}

// RetweetPrefix marks a reshared post.
const RetweetPrefix = "RT @"

// IsRetweet reports whether the post is a reshare of someone else's post.
func (p Post) IsRetweet() bool {
	return IsRetweetText(p.Text)
}

// IsRetweetText reports whether text starts with the reshare marker.
func IsRetweetText(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), RetweetPrefix)
}

// Permalink builds the public URL of the post, e.g. https://x.com/user/status/123.
func (p Post) Permalink(base string) string {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		base = "https://x.com"
	}
	if p.ID == "" {
		return base + "/" + p.Username
	}
	return base + "/" + p.Username + "/status/" + p.ID
}

// Eligible reports whether the post carries usable text once links are removed.
func (p Post) Eligible() bool {
	return textutil.StripURLs(p.Text) != ""
}
