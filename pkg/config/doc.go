// Package config loads stowctl's runtime configuration from an optional
// YAML file, with command-line flags taking precedence over whatever the
// file sets.
package config
