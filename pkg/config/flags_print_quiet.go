//go:build quiet

package config

// In quiet builds both output streams default to off. A config file
// or CLI flag can still turn them back on at process start.
const (
	DefaultPrintInfo = false
	DefaultPrintData = false
)
