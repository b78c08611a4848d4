// Package preflight provides readiness checks for the paths, credentials and
// endpoints draftline depends on.
//
// The CLI "draftline check" command runs RunAll and renders the results; the
// optional LLM ping is the only check that leaves the machine. Credential
// checks are gated by the stages that need them, so a disabled image stage
// never reports a missing image key.
package preflight
