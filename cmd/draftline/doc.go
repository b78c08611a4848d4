// Package main hosts the draftline CLI entrypoint and command graph.
//
// Each pipeline stage has its own command (scrape, analyze, generate,
// images) and "run" chains the daily stages through the workflow runner.
// Review helpers (drafts, history) read the draft store and the run ledger,
// and "check" runs the preflight suite. Configuration resolution, logger
// construction and the metrics recorder live in commandContext so
// subcommands only wire stages.
package main
