//go:build !noconfig

package config

// DefaultEnableConfig controls the configuration subsystem: when true
// the YAML file is read at startup and the telemetry period can be
// pushed to the robot at runtime.
const DefaultEnableConfig = true
