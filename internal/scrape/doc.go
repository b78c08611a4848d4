// Package scrape collects raw posts from the watched accounts.
//
// Sources are Providers tried in order by a Chain until one yields posts:
// an Apify actor run, public Nitter RSS feeds, or a hand-maintained sample
// file. The scrape Stage normalizes the winning batch within the configured
// look-back window and writes scraped_<day>.json for the generation stage.
package scrape
