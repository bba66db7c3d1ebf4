// Package config loads registry configuration from YAML, JSON or TOML files
// and from the environment.
//
// Example configuration:
//
//	id: checkout-service
//	log:
//	  level: debug
//	  format: json
//	metrics:
//	  enabled: true
//	one_time:
//	  release: on_attempt
//
// Environment variables (LOCATOR_ID, LOCATOR_LOG_LEVEL, ...) override file
// values; see FromEnv. Watch reloads a file whenever it changes.
//
// Use NewRegistry to build a registry from a Config, or Options to merge the
// configured options with your own.
package config
