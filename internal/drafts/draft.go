package drafts

import (
	"time"

	"github.com/google/uuid"

	"draftline/internal/post"
)

// Status is the review state of a draft.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// ParseStatus validates a status name.
func ParseStatus(value string) (Status, bool) {
	switch Status(value) {
	case StatusPending, StatusApproved, StatusRejected:
		return Status(value), true
	default:
		return "", false
	}
}

// Source references the post a draft was written from.
type Source struct {
	Username string `json:"username"`
	Text     string `json:"text"`
	URL      string `json:"url"`
}

// Draft is one generated candidate awaiting review.
type Draft struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	Source     Source    `json:"source"`
	DraftText  string    `json:"draft_text"`
	Status     Status    `json:"status"`
	Notes      string    `json:"notes"`
	ImagePath  string    `json:"image_path,omitempty"`
	ImageTheme string    `json:"image_theme,omitempty"`
}

// New creates a pending draft with a fresh id. created_at is stored in UTC at
// second precision.
func New(src post.Post, text, permalinkBase string, now time.Time) Draft {
	return Draft{
		ID:        uuid.NewString(),
		CreatedAt: now.UTC().Truncate(time.Second),
		Source: Source{
			Username: src.Username,
			Text:     src.Text,
			URL:      src.Permalink(permalinkBase),
		},
		DraftText: text,
		Status:    StatusPending,
	}
}

// HasImage reports whether the image stage already illustrated the draft.
func (d Draft) HasImage() bool {
	return d.ImagePath != ""
}
