// Package config loads application configuration from environment variables.
//
// All settings use the TASKS_ prefix. The JWT signing secret has no default
// and must be provided; everything else falls back to sensible defaults.
package config
