//go:build !quiet

package config

// Build-time defaults for the output switches. The default build
// enables both the status and telemetry streams; a `-tags quiet`
// build silences them without touching any call site.
const (
	DefaultPrintInfo = true
	DefaultPrintData = true
)
