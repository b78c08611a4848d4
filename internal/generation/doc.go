// Package generation turns the day's scraped posts into reviewable drafts.
//
// A persona directive is built once per batch from the voice profile. Each
// candidate post then gets exactly one model call, paced by
// generation.delay_seconds; the output is cleaned of wrapping quotes and
// labels and passed through the similarity gate before it becomes a pending
// draft. Accepted drafts go to a dated snapshot and the rolling store.
package generation
