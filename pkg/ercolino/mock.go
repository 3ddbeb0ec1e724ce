package ercolino

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/dmolinelli/ercolino/pkg/config"
)

// Mock simulates a robot console for testing and development. It
// emits heartbeat info lines and noisy battery telemetry in the same
// shape the firmware produces.
type Mock struct {
	cfg *config.MockConfig

	messages  chan Message
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Simulation state
	startTime  time.Time
	dataPeriod time.Duration
	dataTicker *time.Ticker
}

// Ensure Mock implements Link.
var _ Link = (*Mock)(nil)

// NewMock creates a new mocked robot instance.
func NewMock(cfg *config.MockConfig) *Mock {
	if cfg == nil {
		cfg = &config.MockConfig{
			SampleRate:   100 * time.Millisecond,
			InfoPeriod:   5 * time.Second,
			BatteryVolts: 7.4,
			NoiseLevel:   0.01,
		}
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:        cfg,
		messages:   make(chan Message, DefaultBufferSize),
		ctx:        ctx,
		cancel:     cancel,
		connected:  false,
		dataPeriod: cfg.SampleRate,
	}
}

// Connect simulates connecting to the robot.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return fmt.Errorf("already connected")
	}

	m.connected = true
	m.startTime = time.Now()

	// Boot banner, like the firmware prints after reset
	m.emit(Message{
		Timestamp: m.startTime,
		Kind:      Info,
		Text:      "boot: mock robot ready",
	})

	// Start generating messages
	go m.generateMessages()

	return nil
}

// Close stops the mocked robot.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.messages)

	return nil
}

// Messages returns the channel for reading console messages.
func (m *Mock) Messages() <-chan Message {
	return m.messages
}

// SetTelemetryPeriod adjusts the simulated telemetry rate.
func (m *Mock) SetTelemetryPeriod(period time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return fmt.Errorf("not connected")
	}
	if period <= 0 {
		return fmt.Errorf("invalid telemetry period: %v", period)
	}

	m.dataPeriod = period
	if m.dataTicker != nil {
		m.dataTicker.Reset(period)
	}

	return nil
}

// IsConnected returns whether the mock is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateMessages emits simulated console messages until Close.
func (m *Mock) generateMessages() {
	m.mu.Lock()
	m.dataTicker = time.NewTicker(m.dataPeriod)
	dataTicker := m.dataTicker
	m.mu.Unlock()
	defer dataTicker.Stop()

	infoTicker := time.NewTicker(m.cfg.InfoPeriod)
	defer infoTicker.Stop()

	for {
		select {
		case <-m.ctx.Done():
			return
		case <-dataTicker.C:
			m.mu.Lock()
			m.emit(m.generateData())
			m.mu.Unlock()
		case <-infoTicker.C:
			m.mu.Lock()
			m.emit(Message{
				Timestamp: time.Now(),
				Kind:      Info,
				Text:      fmt.Sprintf("heartbeat: uptime=%v", time.Since(m.startTime).Round(time.Second)),
			})
			m.mu.Unlock()
		}
	}
}

// emit sends a message to the channel (non-blocking, drops when full).
// Callers must hold m.mu.
func (m *Mock) emit(msg Message) {
	if !m.connected {
		return
	}
	select {
	case m.messages <- msg:
	default:
		// Channel full, skip
	}
}

// generateData builds a single simulated telemetry message. Callers
// must hold m.mu.
func (m *Mock) generateData() Message {
	now := time.Now()
	elapsed := now.Sub(m.startTime)

	// Battery drains slowly and carries measurement noise
	t := float32(elapsed.Seconds())
	drain := 0.0002 * t // ~0.7 V per hour
	noise := (math32.Sin(t*7.3) + math32.Cos(t*11.9)) * m.cfg.NoiseLevel * 0.5
	vbat := m.cfg.BatteryVolts - drain + noise

	// Main loop time wobbles around 2 ms
	loopMillis := 2.0 + 0.5*math32.Sin(t*3.1)

	return Message{
		Timestamp: now,
		Kind:      Data,
		Uptime:    elapsed.Truncate(time.Millisecond),
		Values:    []float32{vbat, loopMillis},
	}
}
