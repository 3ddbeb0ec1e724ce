//go:build tinygo

package main

import "machine"

const (
	// Telemetry timing
	DEFAULT_TELEMETRY_MS = 100  // Telemetry line interval in milliseconds
	MIN_TELEMETRY_MS     = 20   // Fastest period accepted over the config channel
	MAX_TELEMETRY_MS     = 5000 // Slowest period accepted over the config channel
	HEARTBEAT_S          = 5    // Heartbeat info line interval in seconds

	// ADC configuration
	ADC_REFERENCE_MV = 3300 // Reference voltage in millivolts (3.3V)
	ADC_RESOLUTION   = 12   // ADC resolution in bits

	// Battery sense: 2S pack through a 20k/10k divider on A0
	VBAT_DIVIDER_MV = 3 // Multiply the measured millivolts by this to get pack millivolts

	// Pins
	PIN_VBAT = machine.A0
	PIN_LED  = machine.LED

	// Serial configuration
	// Worst case output: "D,4294967295,8.400,99.999\n" = ~27 bytes per line
	// at 50 lines/sec = 1,350 bytes/sec; 115200 baud 8N1 moves 11,520
	// bytes/sec, leaving plenty of headroom for info lines.
	UART_BAUD_RATE = 115200
)
