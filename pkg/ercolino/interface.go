package ercolino

import "time"

// Link defines the interface to an Ercolino robot (real or mocked).
type Link interface {
	Connect() error
	Close() error
	Messages() <-chan Message
	SetTelemetryPeriod(period time.Duration) error
	IsConnected() bool
}

// Ensure Serial implements Link.
var _ Link = (*Serial)(nil)

// Ensure Mock implements Link.
var _ Link = (*Mock)(nil)
