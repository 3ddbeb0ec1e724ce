package ercolino

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmolinelli/ercolino/pkg/config"
)

func TestNewMock_NilConfig(t *testing.T) {
	m := NewMock(nil)

	require.NotNil(t, m)
	assert.False(t, m.IsConnected())
	assert.Equal(t, 100*time.Millisecond, m.cfg.SampleRate)
	assert.Equal(t, float32(7.4), m.cfg.BatteryVolts)
}

func TestMock_Connect(t *testing.T) {
	m := NewMock(&config.MockConfig{
		SampleRate:   10 * time.Millisecond,
		InfoPeriod:   time.Hour,
		BatteryVolts: 7.4,
		NoiseLevel:   0.01,
	})
	defer m.Close()

	require.NoError(t, m.Connect())
	assert.True(t, m.IsConnected())

	// Second connect must fail
	assert.Error(t, m.Connect())
}

func TestMock_BootBanner(t *testing.T) {
	m := NewMock(&config.MockConfig{
		SampleRate:   time.Hour,
		InfoPeriod:   time.Hour,
		BatteryVolts: 7.4,
	})
	defer m.Close()

	require.NoError(t, m.Connect())

	select {
	case msg := <-m.Messages():
		assert.Equal(t, Info, msg.Kind)
		assert.Contains(t, msg.Text, "boot")
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for boot banner")
	}
}

func TestMock_Telemetry(t *testing.T) {
	m := NewMock(&config.MockConfig{
		SampleRate:   5 * time.Millisecond,
		InfoPeriod:   time.Hour,
		BatteryVolts: 7.4,
		NoiseLevel:   0.01,
	})
	defer m.Close()

	require.NoError(t, m.Connect())

	var data []Message
	deadline := time.After(2 * time.Second)
	for len(data) < 3 {
		select {
		case msg := <-m.Messages():
			if msg.Kind != Data {
				continue
			}
			data = append(data, msg)
		case <-deadline:
			t.Fatal("timed out waiting for telemetry")
		}
	}

	for _, msg := range data {
		require.Len(t, msg.Values, 2)
		// Battery voltage stays near the configured pack voltage
		assert.InDelta(t, 7.4, float64(msg.Values[0]), 0.1)
		assert.False(t, msg.Timestamp.IsZero())
	}

	// Uptime is monotonically non-decreasing
	for i := 1; i < len(data); i++ {
		assert.GreaterOrEqual(t, data[i].Uptime, data[i-1].Uptime)
	}
}

func TestMock_SetTelemetryPeriod(t *testing.T) {
	m := NewMock(&config.MockConfig{
		SampleRate:   time.Hour, // Effectively silent until reconfigured
		InfoPeriod:   time.Hour,
		BatteryVolts: 7.4,
	})
	defer m.Close()

	// Not connected yet
	assert.Error(t, m.SetTelemetryPeriod(10*time.Millisecond))

	require.NoError(t, m.Connect())

	// Invalid period
	assert.Error(t, m.SetTelemetryPeriod(0))
	assert.Error(t, m.SetTelemetryPeriod(-time.Second))

	require.NoError(t, m.SetTelemetryPeriod(5*time.Millisecond))

	deadline := time.After(2 * time.Second)
	for {
		select {
		case msg := <-m.Messages():
			if msg.Kind == Data {
				return // Telemetry flowing at the new period
			}
		case <-deadline:
			t.Fatal("timed out waiting for telemetry after period change")
		}
	}
}
