// Package apify is a small client for the Apify actor platform: start an
// actor run, poll it within a bounded wait, and read the resulting dataset.
//
// The scrape and voice-analysis providers use it to collect recent posts.
package apify
