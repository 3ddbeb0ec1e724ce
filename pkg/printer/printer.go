package printer

import (
	"fmt"
	"io"
	"sync"

	"github.com/dmolinelli/ercolino/pkg/config"
	"github.com/dmolinelli/ercolino/pkg/ercolino"
)

// Printer writes robot console messages to an output stream, honoring
// the resolved output switches. A class whose switch is off produces
// no bytes on the writer but is still counted, so suppression stays
// observable.
type Printer struct {
	flags config.Flags
	out   io.Writer
	stats *Stats

	mu         sync.Mutex
	infoCount  int
	dataCount  int
	suppressed int
}

// Counts reports how many messages a Printer has seen.
type Counts struct {
	Info       int // Info messages received
	Data       int // Data messages received
	Suppressed int // Messages received while their switch was off
}

// New creates a Printer writing to out. When statsWindow is positive,
// a summary line is emitted after every statsWindow telemetry records.
func New(flags config.Flags, out io.Writer, statsWindow int) *Printer {
	p := &Printer{
		flags: flags,
		out:   out,
	}
	if statsWindow > 0 {
		p.stats = NewStats(statsWindow)
	}
	return p
}

// Process consumes messages until the channel is closed. Run it in a
// goroutine when the caller needs to keep going.
func (p *Printer) Process(in <-chan ercolino.Message) {
	for msg := range in {
		p.Handle(msg)
	}
}

// Handle formats and writes a single message.
func (p *Printer) Handle(msg ercolino.Message) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ts := msg.Timestamp.Format("15:04:05.000")

	switch msg.Kind {
	case ercolino.Info:
		p.infoCount++
		if !p.flags.PrintInfo {
			p.suppressed++
			return
		}
		fmt.Fprintf(p.out, "[%s] I %s\n", ts, msg.Text)

	case ercolino.Data:
		p.dataCount++
		if !p.flags.PrintData {
			p.suppressed++
			return
		}
		fmt.Fprintf(p.out, "[%s] D +%s %s\n", ts, msg.Uptime, formatValues(msg.Values))

		if p.stats != nil {
			p.stats.Add(msg.Values)
			if p.stats.Ready() {
				fmt.Fprintf(p.out, "[%s] S %s\n", ts, p.stats.Summary())
				p.stats.Reset()
			}
		}
	}
}

// Counts returns the message counters accumulated so far.
func (p *Printer) Counts() Counts {
	p.mu.Lock()
	defer p.mu.Unlock()

	return Counts{
		Info:       p.infoCount,
		Data:       p.dataCount,
		Suppressed: p.suppressed,
	}
}

// formatValues renders telemetry values space separated with a fixed
// precision, e.g. "7.400 2.100".
func formatValues(values []float32) string {
	out := make([]byte, 0, 8*len(values))
	for i, v := range values {
		if i > 0 {
			out = append(out, ' ')
		}
		out = fmt.Appendf(out, "%.3f", v)
	}
	return string(out)
}
