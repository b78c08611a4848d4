// Package imagegen talks to an OpenAI-compatible image generation endpoint
// and returns the rendered bytes whether the service answers with a hosted
// URL or an inline base64 payload.
package imagegen
