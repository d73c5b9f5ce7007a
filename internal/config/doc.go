// Package config loads application configuration from built-in defaults, an
// optional YAML file and CRYPTOLENS_* environment variables, in that order of
// precedence (environment wins). It also installs the process slog handler.
package config
