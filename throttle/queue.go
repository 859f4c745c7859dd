// Package throttle paces outbound bytes to a terminal's modem speed.
//
// A Videotex byte costs nine bit-times on the wire: seven data bits, one
// parity bit and one stop bit. The Queue buffers outbound data and hands
// it back in slices sized so that one slice per tick never exceeds the
// line rate. The Queue keeps no timer of its own; the caller drives it,
// which keeps the pacing policy testable and lets a session loop own the
// clock.
//
// When the tick is shorter than one byte's wire time the per-tick budget
// rounds down to zero, which would stall the queue forever; such
// configurations release one byte per tick instead, overshooting the
// nominal rate. Pick a tick of at least 9e9/bandwidth nanoseconds to
// stay strictly under it.
package throttle

import (
	"fmt"
	"sync"
	"time"

	"github.com/jmadec/minitel/errs"
	"github.com/jmadec/minitel/internal/options"
	"github.com/jmadec/minitel/videotex"
)

const (
	// DefaultBandwidth matches the classic 1200 bps dial-up link.
	DefaultBandwidth = 1200
	// DefaultTickInterval is the pacing granularity.
	DefaultTickInterval = 100 * time.Millisecond
	// DefaultMaxPending bounds the backlog before Enqueue refuses data.
	DefaultMaxPending = 64 * 1024

	bitsPerByte = 9
)

// Queue is a rate-limited FIFO of outbound bytes.
//
// Enqueue appends, Tick pops at most one tick's worth, Drain empties the
// backlog for callers that bypass pacing. All methods are safe for
// concurrent use.
type Queue struct {
	mu         sync.Mutex
	pending    []byte
	perTick    int
	maxPending int
}

// Option customizes a Queue created by NewQueue.
type Option = options.Option[*config]

type config struct {
	bandwidth  int
	tick       time.Duration
	maxPending int
}

// WithBandwidth sets the line rate in bits per second.
func WithBandwidth(bps int) Option {
	return options.New(func(c *config) error {
		if bps <= 0 {
			return fmt.Errorf("%w: %d bps", errs.ErrInvalidBandwidth, bps)
		}
		c.bandwidth = bps
		return nil
	})
}

// WithBaudrate sets the line rate from a protocol baudrate code.
func WithBaudrate(b videotex.Baudrate) Option {
	return options.New(func(c *config) error {
		if b.Hertz() == 0 {
			return fmt.Errorf("%w: unknown baudrate code %d", errs.ErrInvalidBandwidth, b)
		}
		c.bandwidth = b.Hertz()
		return nil
	})
}

// WithTickInterval sets how much wall time one Tick call represents.
func WithTickInterval(d time.Duration) Option {
	return options.New(func(c *config) error {
		if d <= 0 {
			return fmt.Errorf("%w: tick interval %v", errs.ErrInvalidBandwidth, d)
		}
		c.tick = d
		return nil
	})
}

// WithMaxPending bounds the backlog in bytes. Enqueue calls that would
// exceed the bound fail with errs.ErrQueueFull.
func WithMaxPending(n int) Option {
	return options.New(func(c *config) error {
		if n <= 0 {
			return fmt.Errorf("%w: max pending %d", errs.ErrInvalidBandwidth, n)
		}
		c.maxPending = n
		return nil
	})
}

// NewQueue creates a Queue. It fails with errs.ErrInvalidBandwidth when
// an option carries a rate, interval or bound that is not positive.
func NewQueue(opts ...Option) (*Queue, error) {
	cfg := config{
		bandwidth:  DefaultBandwidth,
		tick:       DefaultTickInterval,
		maxPending: DefaultMaxPending,
	}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	perTick := int(int64(cfg.bandwidth) * int64(cfg.tick) / (bitsPerByte * int64(time.Second)))
	if perTick < 1 {
		// A tick shorter than one byte's wire time must still make
		// progress; see the package note on the resulting overshoot.
		perTick = 1
	}

	return &Queue{
		perTick:    perTick,
		maxPending: cfg.maxPending,
	}, nil
}

// BytesPerTick returns the pacing budget of a single Tick.
func (q *Queue) BytesPerTick() int { return q.perTick }

// Len returns the number of pending bytes.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.pending)
}

// Enqueue appends data to the backlog. It copies the slice, so the caller
// may reuse it. Data that would push the backlog past the configured
// bound is refused wholesale with errs.ErrQueueFull.
func (q *Queue) Enqueue(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending)+len(data) > q.maxPending {
		return fmt.Errorf("%w: %d pending + %d new exceeds %d",
			errs.ErrQueueFull, len(q.pending), len(data), q.maxPending)
	}

	q.pending = append(q.pending, data...)

	return nil
}

// Tick returns the next slice of at most BytesPerTick bytes, or nil when
// the backlog is empty. The returned slice is owned by the caller.
func (q *Queue) Tick() []byte {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}

	n := q.perTick
	if n > len(q.pending) {
		n = len(q.pending)
	}

	out := make([]byte, n)
	copy(out, q.pending)
	q.pending = q.pending[:copy(q.pending, q.pending[n:])]

	return out
}

// Drain hands back the whole backlog and clears it. Callers use it to
// flush ahead of urgent out-of-band writes so ordering is preserved.
func (q *Queue) Drain() []byte {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.pending) == 0 {
		return nil
	}

	out := q.pending
	q.pending = nil

	return out
}
