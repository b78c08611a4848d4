// Package services defines shared utilities consumed by the pipeline stages
// and their external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp post IDs, stage names, run dates, and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper so stage failures can be
//     classified (fatal configuration problems vs per-item failures).
//
// Sub-packages hold the HTTP clients for the language model, the scraping
// actor platform, and the image generation API.
package services
