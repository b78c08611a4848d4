// Package candidate decides which normalized posts are worth reacting to.
package candidate

import (
	"draftline/internal/post"
	"draftline/internal/textutil"
)

// Reason names why a post was excluded.
type Reason string

const (
	ReasonTooShort   Reason = "too_short"
	ReasonRetweet    Reason = "retweet"
	ReasonMostlyLink Reason = "mostly_link"
)

// Options holds the length floors. Zero values fall back to the defaults.
type Options struct {
	MinLength          int
	MinLengthSansLinks int
}

const (
	DefaultMinLength          = 30
	DefaultMinLengthSansLinks = 20
)

// Filter is stateless; the zero value uses the default floors.
type Filter struct {
	minLength          int
	minLengthSansLinks int
}

// New builds a Filter from opts.
func New(opts Options) Filter {
	f := Filter{minLength: opts.MinLength, minLengthSansLinks: opts.MinLengthSansLinks}
	if f.minLength <= 0 {
		f.minLength = DefaultMinLength
	}
	if f.minLengthSansLinks <= 0 {
		f.minLengthSansLinks = DefaultMinLengthSansLinks
	}
	return f
}

// Check returns the exclusion reason, or ok=true when the post is a candidate.
// Length is measured in characters.
func (f Filter) Check(p post.Post) (Reason, bool) {
	f = f.withDefaults()
	if textutil.Length(p.Text) < f.minLength {
		return ReasonTooShort, false
	}
	if p.IsRetweet() {
		return ReasonRetweet, false
	}
	if textutil.Length(textutil.StripURLs(p.Text)) < f.minLengthSansLinks {
		return ReasonMostlyLink, false
	}
	return "", true
}

// Apply keeps candidates in input order and counts exclusions per reason.
func (f Filter) Apply(posts []post.Post) ([]post.Post, map[Reason]int) {
	kept := make([]post.Post, 0, len(posts))
	excluded := make(map[Reason]int)
	for _, p := range posts {
		if reason, ok := f.Check(p); !ok {
			excluded[reason]++
			continue
		}
		kept = append(kept, p)
	}
	return kept, excluded
}

func (f Filter) withDefaults() Filter {
	if f.minLength <= 0 || f.minLengthSansLinks <= 0 {
		return New(Options{MinLength: f.minLength, MinLengthSansLinks: f.minLengthSansLinks})
	}
	return f
}
