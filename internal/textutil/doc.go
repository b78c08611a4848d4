// Package textutil provides the small text helpers shared by the pipeline:
// URL stripping, rune-aware lengths, case-folded word sets for overlap
// scoring, and filesystem-safe tokens.
package textutil
