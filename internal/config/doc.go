// Package config loads and validates the logging configuration.
//
// Settings come from an optional YAML file and can be overridden with
// LOGFACADE_* environment variables. Validate fills in defaults that depend
// on other fields, such as the format of the chosen backend.
package config
