// Package config manages user-level settings stored at ~/.listings/config.yaml.
// Values resolve from command-line flags, LISTINGS_* environment variables,
// the config file and built-in defaults, in that order.
package config
