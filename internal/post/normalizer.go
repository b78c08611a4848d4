package post

import (
	"log/slog"
	"time"

	"draftline/internal/logging"
)

// DropReason explains why a raw record did not become a Post.
type DropReason string

const (
	DropEmpty     DropReason = "empty"
	DropRetweet   DropReason = "retweet"
	DropStale     DropReason = "stale"
	DropDuplicate DropReason = "duplicate"
)

// Stats summarizes one normalization batch.
type Stats struct {
	Input              int
	Kept               int
	Dropped            map[DropReason]int
	TimestampDefaulted int
	PerAccount         map[string]int
}

// DroppedTotal sums all drop reasons.
func (s Stats) DroppedTotal() int {
	total := 0
	for _, n := range s.Dropped {
		total += n
	}
	return total
}

// Normalizer converts raw provider records into canonical posts.
type Normalizer struct {
	now    func() time.Time
	logger *slog.Logger
}

// NewNormalizer builds a Normalizer. A nil clock uses time.Now.
func NewNormalizer(now func() time.Time, logger *slog.Logger) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now, logger: logging.NewComponentLogger(logger, "normalizer")}
}

// Normalize converts one record. Posts created before cutoff are dropped;
// a zero cutoff keeps everything. An unparseable or missing timestamp is
// replaced with the capture time, reported through the defaulted flag.
func (n *Normalizer) Normalize(record Record, cutoff time.Time) (p Post, reason DropReason, defaulted bool) {
	if len(record) == 0 {
		return Post{}, DropEmpty, false
	}
	if flag, ok := record["noResults"].(bool); ok && flag {
		return Post{}, DropEmpty, false
	}

	text := firstString(record, textAliases)
	if text == "" {
		return Post{}, DropEmpty, false
	}
	if IsRetweetText(text) {
		return Post{}, DropRetweet, false
	}

	id := firstString(record, idAliases)

	created, ok := ParseTimestamp(firstString(record, createdAliases))
	if !ok {
		created = n.now().UTC()
		defaulted = true
	}
	if !cutoff.IsZero() && created.Before(cutoff) {
		return Post{}, DropStale, defaulted
	}

	username := firstString(record, usernameAliases)
	if username == "" {
		username = "unknown"
	}

	p = Post{
		ID:        id,
		Username:  username,
		Text:      text,
		CreatedAt: created,
		Engagement: Engagement{
			Likes:   firstCount(record, likeAliases),
			Shares:  firstCount(record, shareAliases),
			Replies: firstCount(record, replyAliases),
		},
		MediaURLs: mediaURLs(record),
	}
	if !p.Eligible() {
		return Post{}, DropEmpty, defaulted
	}
	return p, "", defaulted
}

// NormalizeAll converts a batch, dropping duplicates by id and tallying every
// drop reason. Posts without an id are never treated as duplicates. Input
// order is preserved.
func (n *Normalizer) NormalizeAll(records []Record, cutoff time.Time) ([]Post, Stats) {
	stats := Stats{
		Input:      len(records),
		Dropped:    make(map[DropReason]int),
		PerAccount: make(map[string]int),
	}
	seen := make(map[string]struct{}, len(records))
	posts := make([]Post, 0, len(records))

	for _, record := range records {
		p, reason, defaulted := n.Normalize(record, cutoff)
		if defaulted {
			stats.TimestampDefaulted++
		}
		if reason == "" && p.ID != "" {
			if _, dup := seen[p.ID]; dup {
				reason = DropDuplicate
			}
		}
		if reason != "" {
			stats.Dropped[reason]++
			n.logger.Debug("record dropped", logging.Args(logging.DecisionAttrs("normalize", "dropped", string(reason))...)...)
			continue
		}
		if p.ID != "" {
			seen[p.ID] = struct{}{}
		}
		stats.PerAccount[p.Username]++
		posts = append(posts, p)
	}
	stats.Kept = len(posts)
	if stats.TimestampDefaulted > 0 {
		n.logger.Debug("timestamps defaulted to capture time", logging.Int("count", stats.TimestampDefaulted))
	}
	return posts, stats
}
