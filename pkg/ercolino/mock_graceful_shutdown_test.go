package ercolino

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmolinelli/ercolino/pkg/config"
)

// Closing the mock while a consumer drains the channel must not
// panic and must end the stream by closing the channel.
func TestMock_GracefulShutdown(t *testing.T) {
	m := NewMock(&config.MockConfig{
		SampleRate:   time.Millisecond,
		InfoPeriod:   2 * time.Millisecond,
		BatteryVolts: 7.4,
		NoiseLevel:   0.01,
	})

	require.NoError(t, m.Connect())

	var wg sync.WaitGroup
	var received int

	wg.Add(1)
	go func() {
		defer wg.Done()
		for range m.Messages() {
			received++
		}
	}()

	// Let some messages flow, then close mid-stream
	time.Sleep(20 * time.Millisecond)
	require.NoError(t, m.Close())

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("consumer did not finish after Close")
	}

	assert.False(t, m.IsConnected())
	assert.Greater(t, received, 0)

	// Double close is a no-op
	assert.NoError(t, m.Close())
}

// After Close, the generator goroutine must not emit on the closed
// channel even if its tickers were already due.
func TestMock_NoSendAfterClose(t *testing.T) {
	for i := 0; i < 20; i++ {
		m := NewMock(&config.MockConfig{
			SampleRate:   time.Millisecond,
			InfoPeriod:   time.Millisecond,
			BatteryVolts: 7.4,
		})
		require.NoError(t, m.Connect())
		time.Sleep(2 * time.Millisecond)
		require.NoError(t, m.Close())
	}
}
