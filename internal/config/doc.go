// Package config loads, normalizes, and validates draftline configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OPENROUTER_API_KEY and APIFY_API_KEY. Every directory the pipeline touches is
// derived from paths.data_dir unless set explicitly.
//
// Always obtain settings through this package so stages receive an explicit,
// validated Config instead of reading the environment themselves.
package config
