// Package config loads runtime configuration from multiple sources (YAML files,
// environment variables, CLI flags) with precedence: CLI flags > Environment
// variables > YAML config > Defaults. It exposes strongly typed settings for
// directories, supported states, service metadata, and logging to the rest of
// the application.
package config
