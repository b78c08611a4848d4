// Package drafts owns the Draft model and its two persisted forms: the
// rolling store at dashboard/drafts.json, merged by id, ordered newest first
// and bounded by store.max_drafts, and the per-run dated snapshot that is
// written once and never rewritten.
package drafts
