// Package config loads partsearch configuration from YAML files,
// .env files, and environment variables using viper.
//
// Precedence (highest wins): environment variables, .env file, config.yml.
// Environment variables use the PARTSEARCH_ prefix with underscores for
// nesting, e.g. PARTSEARCH_SERVER_PORT=9090 sets server.port.
package config
