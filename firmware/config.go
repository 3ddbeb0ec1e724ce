//go:build tinygo

package main

// Build-time configuration. These gate the serial console output and
// the runtime configuration channel; flip them off for builds where
// the UART is disconnected or every microsecond of loop time counts.
const (
	PRINT_INFO    = true // Emit "I ..." status lines
	PRINT_DATA    = true // Emit "D,millis,..." telemetry lines
	ENABLE_CONFIG = true // Accept "C,..." configuration commands over serial
)
