// Package config loads application configuration from environment variables.
//
// Configuration is read once at process start via Load() and checked with
// Validate(), which reports every failure at once. Missing database settings
// are a startup error, never a runtime one.
package config
