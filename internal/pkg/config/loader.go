// Package config provides environment-variable loaders with validation and
// fail-open fallback. A misconfigured variable never prevents startup: the
// loader falls back to the default and reports a warning the caller can log.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// ConfigLoadResult is the outcome of loading one configuration value.
// Value holds the loaded (or fallback) value; Warnings carries one message per
// fallback applied; FallbackApplied is true when the default was used because
// validation failed.
type ConfigLoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// fallback builds the result for a set-but-invalid variable.
func fallback(envKey, raw string, err error, defaultValue interface{}) ConfigLoadResult {
	return ConfigLoadResult{
		Value: defaultValue,
		Warnings: []string{fmt.Sprintf(
			"Invalid %s='%s': %v, falling back to default '%v'",
			envKey, raw, err, defaultValue)},
		FallbackApplied: true,
	}
}

// LoadEnvString loads a string from an environment variable, returning the
// default when the variable is unset or empty. No validation is applied.
func LoadEnvString(envKey, defaultValue string) string {
	if value := os.Getenv(envKey); value != "" {
		return value
	}
	return defaultValue
}

// LoadEnvWithFallback loads a string and validates it with the given validator
// (nil skips validation). An unset variable silently yields the default; a set
// but invalid value yields the default plus a warning.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}
	if validator != nil {
		if err := validator(value); err != nil {
			return fallback(envKey, value, err, defaultValue)
		}
	}
	return ConfigLoadResult{Value: value}
}

// LoadEnvDuration loads a time.Duration with the same fallback semantics.
// Parse failures count as validation failures.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}
	d, err := time.ParseDuration(value)
	if err == nil && validator != nil {
		err = validator(d)
	}
	if err != nil {
		return fallback(envKey, value, err, defaultValue)
	}
	return ConfigLoadResult{Value: d}
}

// LoadEnvInt loads an int with the same fallback semantics.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err == nil && validator != nil {
		err = validator(n)
	}
	if err != nil {
		return fallback(envKey, value, err, defaultValue)
	}
	return ConfigLoadResult{Value: n}
}

// LoadEnvBool loads a bool. Accepted spellings follow strconv.ParseBool;
// anything else falls back with a warning.
func LoadEnvBool(envKey string, defaultValue bool) ConfigLoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return ConfigLoadResult{Value: defaultValue}
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback(envKey, value, err, defaultValue)
	}
	return ConfigLoadResult{Value: b}
}
