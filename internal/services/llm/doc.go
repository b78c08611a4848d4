// Package llm provides a client for OpenAI-compatible chat completion
// endpoints (OpenRouter by default).
//
// # Entry Points
//
// NewClient: construct client from Config.
// Client.Complete: free-text completion using the configured max_tokens and
// temperature; the draft generator's only model call.
// Client.CompleteJSON: JSON-mode completion.
// Client.HealthCheck: verify API key and model availability.
//
// # Failure Behaviour
//
// Each call sends exactly one request. HTTP errors, empty content, and
// transport failures are returned to the caller unchanged apart from an
// operation prefix; IsEmptyContent distinguishes a blank model answer.
package llm
