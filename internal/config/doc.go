// Package config loads runtime configuration for the envprops service from
// multiple sources (YAML files, environment variables, CLI flags) with
// precedence: CLI flags > YAML config > Environment variables > Defaults.
// Environment variables are read through the properties resolver, so the
// service's own settings obey the same key rules it enforces for callers.
package config
