// Package imagery illustrates drafts: a keyword table maps draft text to a
// scene theme, the theme and the configured character description become an
// image prompt, and the stage writes dashboard/images/<id>.png and records
// the path and theme on the stored draft.
package imagery
