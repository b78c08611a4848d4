// Package post defines the canonical Post record and the Normalizer that
// turns heterogeneous provider records into it.
//
// Providers disagree on field names (full_text vs text, likeCount vs
// favorite_count, nested author objects), timestamp formats, and where media
// lives. Normalizer resolves all of that in one place, drops retweets,
// stale, empty, and duplicate records, and reports counts per reason.
package post
