// Package config defines the application configuration structure and
// loading: viper reads an optional config.yaml and LEXI_-prefixed
// environment variables, and the result is validated before use.
package config
