// Package notifications pushes pipeline outcomes to ntfy.
//
// A run summary is sent after each full pipeline pass and an alert whenever a
// stage fails. Both are individually switchable in config.toml, and the whole
// service degrades to a no-op when no topic is configured.
package notifications
