//go:build tinygo

//go:generate tinygo flash -target=arduino-nano33

package main

import (
	"machine"
	"time"
)

var (
	adcVBat machine.ADC
	uart    = machine.UART0

	// Telemetry timing
	telemetryPeriod = time.Duration(DEFAULT_TELEMETRY_MS) * time.Millisecond
	lastTelemetry   time.Time
	lastHeartbeat   time.Time
	lastLoop        time.Time
	loopMicros      int64

	// Serial buffer for reading config lines
	serialBuffer [32]byte
	serialPos    int
)

func main() {
	// Configure status LED
	PIN_LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	// Configure battery sense ADC
	PIN_VBAT.Configure(machine.PinConfig{Mode: machine.PinInput})
	adcVBat = machine.ADC{Pin: PIN_VBAT}
	adcVBat.Configure(machine.ADCConfig{
		Reference:  ADC_REFERENCE_MV,
		Resolution: ADC_RESOLUTION,
	})

	// Configure UART for the console
	uart.Configure(machine.UARTConfig{
		BaudRate: UART_BAUD_RATE,
	})

	if PRINT_INFO {
		print("I boot: ercolino ready\n")
	}

	now := time.Now()
	lastTelemetry = now
	lastHeartbeat = now
	lastLoop = now

	// Main loop
	for {
		now := time.Now()
		loopMicros = now.Sub(lastLoop).Microseconds()
		lastLoop = now

		// Check for configuration commands (non-blocking)
		if ENABLE_CONFIG {
			processSerial()
		}

		if PRINT_DATA && now.Sub(lastTelemetry) >= telemetryPeriod {
			outputTelemetry()
			lastTelemetry = now
		}

		if PRINT_INFO && now.Sub(lastHeartbeat) >= HEARTBEAT_S*time.Second {
			outputHeartbeat(now)
			lastHeartbeat = now
		}

		// Small delay to prevent a tight loop
		time.Sleep(100 * time.Microsecond)
	}
}

// outputTelemetry prints one "D,<millis>,<vbat>,<loop_ms>" line.
func outputTelemetry() {
	// machine.ADC.Get returns a 16-bit left-justified value
	raw := adcVBat.Get()
	sensedMillivolts := int64(raw) * ADC_REFERENCE_MV >> 16
	packMillivolts := sensedMillivolts * VBAT_DIVIDER_MV

	millis := time.Now().UnixNano() / int64(time.Millisecond)

	print("D,")
	print(millis)
	print(",")
	printMilli(packMillivolts)
	print(",")
	printMilli(loopMicros)
	print("\n")
}

// outputHeartbeat prints one "I heartbeat: up=<seconds>s" line and
// toggles the status LED.
func outputHeartbeat(now time.Time) {
	PIN_LED.Set(!PIN_LED.Get())

	print("I heartbeat: up=")
	print(now.UnixNano() / int64(time.Second))
	print("s\n")
}

// printMilli prints a value expressed in thousandths as a decimal,
// e.g. 7412 -> "7.412". Avoids float formatting on the MCU.
func printMilli(v int64) {
	if v < 0 {
		print("-")
		v = -v
	}
	print(v / 1000)
	print(".")
	frac := v % 1000
	if frac < 100 {
		print("0")
	}
	if frac < 10 {
		print("0")
	}
	print(frac)
}

// processSerial drains the UART and executes complete config lines.
func processSerial() {
	for uart.Buffered() > 0 {
		data, err := uart.ReadByte()
		if err != nil {
			break
		}

		// Newline ends a command
		if data == '\n' || data == '\r' {
			if serialPos > 0 {
				handleCommand(string(serialBuffer[:serialPos]))
			}
			serialPos = 0
			continue
		}

		if serialPos < len(serialBuffer) {
			serialBuffer[serialPos] = data
			serialPos++
		} else {
			// Line too long, discard it
			serialPos = 0
		}
	}
}

// handleCommand executes a single config command. Only
// "C,period,<ms>" is understood.
func handleCommand(line string) {
	const prefix = "C,period,"
	if len(line) <= len(prefix) || line[:len(prefix)] != prefix {
		if PRINT_INFO {
			print("I config: unknown command\n")
		}
		return
	}

	ms := 0
	for i := len(prefix); i < len(line); i++ {
		c := line[i]
		if c < '0' || c > '9' {
			ms = -1
			break
		}
		ms = ms*10 + int(c-'0')
		if ms > MAX_TELEMETRY_MS {
			break
		}
	}

	if ms < MIN_TELEMETRY_MS || ms > MAX_TELEMETRY_MS {
		if PRINT_INFO {
			print("I config: bad period\n")
		}
		return
	}

	telemetryPeriod = time.Duration(ms) * time.Millisecond
	if PRINT_INFO {
		print("I config: period=")
		print(ms)
		print("ms\n")
	}
}
