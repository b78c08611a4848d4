// Package workflow runs the daily pipeline: scrape, generate, and optionally
// illustrate.
//
// The Runner executes stage handlers in order for one day. Each stage gets a
// correlation id stamped into its context, a run ledger entry, a duration
// observation, and an ntfy alert when it fails. Steps marked AbortOnError stop
// the run; other failures are recorded and the run moves on so cached data from
// a previous scrape can still be drafted. Configuration errors always stop the
// run.
package workflow
