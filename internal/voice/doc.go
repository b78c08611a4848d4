// Package voice owns the persona voice profile: the structured YAML document
// produced by analysis of the persona's own posts, the legacy markdown layout
// still accepted on read, and the Profile handed to the draft generator.
package voice
