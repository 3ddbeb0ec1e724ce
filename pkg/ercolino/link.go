package ercolino

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the baud rate the firmware configures its UART with.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the messages channel buffer.
	DefaultBufferSize = 100
)

// Kind identifies the class of a console message.
type Kind uint8

const (
	// Info is a human readable status line ("I ...").
	Info Kind = iota
	// Data is a telemetry record ("D,millis,...").
	Data
)

// Message represents a parsed line from the robot's serial console.
type Message struct {
	Timestamp time.Time     // Host receive time
	Kind      Kind          // Info or Data
	Uptime    time.Duration // Robot uptime (data lines only)
	Text      string        // Payload (info lines only)
	Values    []float32     // Telemetry values (data lines only)
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial represents a connection to the robot over its UART console.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	messages  chan Message
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
}

// New creates a new Serial link with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:      port,
		baudRate:  baudRate,
		bufSize:   bufSize,
		messages:  make(chan Message, bufSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect connects to the serial port and starts reading console lines.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return fmt.Errorf("already connected")
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	// Start reading messages in a goroutine
	go d.readMessages()

	return nil
}

// Close closes the connection and stops reading messages.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	// Cancel context to stop reading goroutine
	d.cancel()

	// Close serial port
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	// Close messages channel
	close(d.messages)

	return nil
}

// Messages returns the channel for reading console messages.
func (d *Serial) Messages() <-chan Message {
	return d.messages
}

// SetTelemetryPeriod sends a configuration command asking the robot to
// emit telemetry every period. The firmware only honors it when its
// configuration channel is compiled in.
func (d *Serial) SetTelemetryPeriod(period time.Duration) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return fmt.Errorf("not connected")
	}
	if period <= 0 {
		return fmt.Errorf("invalid telemetry period: %v", period)
	}

	cmd := fmt.Sprintf("C,period,%d\n", period.Milliseconds())
	if _, err := d.conn.Write([]byte(cmd)); err != nil {
		return fmt.Errorf("failed to send period command: %w", err)
	}

	return nil
}

// IsConnected returns whether the link is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readMessages reads lines from the serial port and parses them into Messages.
func (d *Serial) readMessages() {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readMessages: %v", r)
		}
	}()

	scanner := bufio.NewScanner(d.conn)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				// Scanner stopped (EOF or error)
				if err := scanner.Err(); err != nil {
					if err != io.EOF {
						log.Printf("Error reading from serial port: %v", err)
					}
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			msg, err := parseLine(line)
			if err != nil {
				log.Printf("Failed to parse line '%s': %v", line, err)
				continue
			}
			msg.Timestamp = time.Now()

			if !d.deliver(msg) {
				// Link closed underneath us
				return
			}
		}
	}
}

// deliver sends a message to the channel without blocking. The
// connected check shares the mutex with Close so the send can never
// race the channel close. Returns false once the link is closed.
func (d *Serial) deliver(msg Message) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return false
	}

	select {
	case d.messages <- msg:
	default:
		// Channel full, log and skip
		log.Printf("Messages channel full, dropping message")
	}

	return true
}

// parseLine parses a console line from the robot into a Message.
// Info format:  "I <text>"
// Data format:  "D,<millis>,<v1>[,<v2>...]"
// Example:      "D,123456,7.38,1.20"
func parseLine(line string) (Message, error) {
	switch {
	case strings.HasPrefix(line, "I "):
		return Message{
			Kind: Info,
			Text: strings.TrimSpace(line[2:]),
		}, nil

	case strings.HasPrefix(line, "D,"):
		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			return Message{}, fmt.Errorf("invalid data line: expected at least uptime and one value, got %d fields", len(parts)-1)
		}

		// Parse uptime (robot millis)
		millis, err := strconv.ParseInt(parts[1], 10, 64)
		if err != nil {
			return Message{}, fmt.Errorf("invalid uptime: %w", err)
		}
		if millis < 0 {
			return Message{}, fmt.Errorf("uptime out of range: %d", millis)
		}

		values := make([]float32, 0, len(parts)-2)
		for _, p := range parts[2:] {
			v, err := strconv.ParseFloat(p, 32)
			if err != nil {
				return Message{}, fmt.Errorf("invalid telemetry value '%s': %w", p, err)
			}
			values = append(values, float32(v))
		}

		return Message{
			Kind:   Data,
			Uptime: time.Duration(millis) * time.Millisecond,
			Values: values,
		}, nil
	}

	return Message{}, fmt.Errorf("unknown line prefix")
}
