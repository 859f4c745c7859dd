// Package minitel drives Minitel terminals over the Videotex (STUM1B)
// wire protocol.
//
// The package is a session façade over the lower layers:
//
//   - videotex: protocol bytes, attributes, character sets
//   - codec: the stateful row encoder and the resumable stream decoder
//   - screen: retained-mode grids and the diffing renderer
//   - throttle: modem-speed pacing of outbound bytes
//   - capture: binary session recording and replay
//
// # Basic Usage
//
// Drawing a page and pacing it onto a 1200 bps link:
//
//	term, _ := minitel.New(conn, minitel.WithBaudrate(videotex.Baud1200))
//
//	term.Screen().SetText(2, 5, "ANNUAIRE", videotex.AttrState{
//	    Foreground: videotex.ColorWhite,
//	    Background: videotex.ColorBlue,
//	})
//	term.Render()
//
//	for range time.Tick(100 * time.Millisecond) {
//	    if err := term.Tick(); err != nil {
//	        break
//	    }
//	}
//
// Reading what the user typed:
//
//	events, _ := term.ReadEvents(buf)
//	for _, ev := range events {
//	    if ev.Kind == codec.EventKey && ev.Key == videotex.KeyEnvoi {
//	        // form submitted
//	    }
//	}
//
// For fine-grained control over encoding and decoding, use the codec and
// screen packages directly.
package minitel

import (
	"fmt"
	"io"
	"time"

	"github.com/jmadec/minitel/capture"
	"github.com/jmadec/minitel/codec"
	"github.com/jmadec/minitel/internal/options"
	"github.com/jmadec/minitel/screen"
	"github.com/jmadec/minitel/throttle"
	"github.com/jmadec/minitel/videotex"
)

// Terminal is a session with one Minitel over an io.ReadWriter
// transport: a serial line, a TCP connection from a websocket bridge, or
// an in-memory pipe in tests.
//
// Outbound bytes flow desired grid -> Render -> queue -> Tick ->
// transport, so a full-page repaint never floods a slow link. Urgent
// bytes (protocol sequences, bells) can bypass pacing with SendUrgent.
//
// A Terminal is not safe for concurrent use, except that Tick may run in
// a separate pacing goroutine from Enqueue-side calls; the queue
// synchronizes that pair.
type Terminal struct {
	rw       io.ReadWriter
	renderer *screen.Renderer
	queue    *throttle.Queue
	dec      *codec.StreamDecoder
	cap      *capture.Writer
}

// Option customizes a Terminal created by New.
type Option = options.Option[*config]

type config struct {
	cols      int
	rows      int
	queueOpts []throttle.Option
	capture   *capture.Writer
}

// WithGeometry sets the page size. The default is the standard 40x24
// Videotex page.
func WithGeometry(cols, rows int) Option {
	return options.NoError(func(c *config) { c.cols, c.rows = cols, rows })
}

// WithBandwidth sets the outbound line rate in bits per second.
func WithBandwidth(bps int) Option {
	return options.NoError(func(c *config) {
		c.queueOpts = append(c.queueOpts, throttle.WithBandwidth(bps))
	})
}

// WithBaudrate sets the outbound line rate from a protocol baudrate.
func WithBaudrate(b videotex.Baudrate) Option {
	return options.NoError(func(c *config) {
		c.queueOpts = append(c.queueOpts, throttle.WithBaudrate(b))
	})
}

// WithTickInterval sets how much wall time one Tick call represents.
func WithTickInterval(d time.Duration) Option {
	return options.NoError(func(c *config) {
		c.queueOpts = append(c.queueOpts, throttle.WithTickInterval(d))
	})
}

// WithMaxPending bounds the outbound backlog in bytes.
func WithMaxPending(n int) Option {
	return options.NoError(func(c *config) {
		c.queueOpts = append(c.queueOpts, throttle.WithMaxPending(n))
	})
}

// WithCapture records both byte flows of the session into w. The caller
// owns w and closes it once the session ends.
func WithCapture(w *capture.Writer) Option {
	return options.NoError(func(c *config) { c.capture = w })
}

// New creates a Terminal over rw. Invalid pacing configuration surfaces
// here as errs.ErrInvalidBandwidth.
func New(rw io.ReadWriter, opts ...Option) (*Terminal, error) {
	cfg := config{cols: screen.DefaultCols, rows: screen.DefaultRows}
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	queue, err := throttle.NewQueue(cfg.queueOpts...)
	if err != nil {
		return nil, err
	}

	return &Terminal{
		rw:       rw,
		renderer: screen.NewRenderer(screen.WithGeometry(cfg.cols, cfg.rows)),
		queue:    queue,
		dec:      codec.NewStreamDecoder(),
		cap:      cfg.capture,
	}, nil
}

// Screen returns the desired grid. Draw into it, then call Render.
func (t *Terminal) Screen() *screen.Grid {
	return t.renderer.Desired()
}

// Render diffs the desired grid against the committed state and queues
// the update for paced emission. The committed state advances only once
// the queue accepts the bytes; a refused update stays owed and a later
// Render produces it again.
func (t *Terminal) Render() error {
	if err := t.queue.Enqueue(t.renderer.Render()); err != nil {
		return err
	}

	t.renderer.Commit()

	return nil
}

// Tick writes one pacing budget's worth of queued bytes to the
// transport. It returns nil when the queue is empty. Call it on a steady
// interval matching the configured tick.
func (t *Terminal) Tick() error {
	return t.write(t.queue.Tick())
}

// Flush writes the whole backlog immediately, ignoring pacing. Useful
// when the transport has its own flow control.
func (t *Terminal) Flush() error {
	return t.write(t.queue.Drain())
}

// Pending returns the number of queued outbound bytes.
func (t *Terminal) Pending() int {
	return t.queue.Len()
}

// SendUrgent flushes the backlog and then writes data directly, keeping
// byte order intact while skipping pacing for the urgent tail.
func (t *Terminal) SendUrgent(data []byte) error {
	if err := t.Flush(); err != nil {
		return err
	}

	return t.write(data)
}

// ClearScreen blanks both grids and clears the terminal page
// immediately. The clear rides the urgent path so a stale backlog
// cannot repaint ghost content afterwards.
func (t *Terminal) ClearScreen() error {
	return t.SendUrgent(t.renderer.Clear())
}

// ReadEvents reads once from the transport into buf and decodes whatever
// arrived. A short read mid-sequence is fine; the decoder resumes on the
// next call. On transport errors the events decoded so far are returned
// alongside the error.
func (t *Terminal) ReadEvents(buf []byte) ([]codec.Event, error) {
	n, err := t.rw.Read(buf)

	var events []codec.Event
	if n > 0 {
		if t.cap != nil {
			if cerr := t.cap.Record(capture.FromTerminal, buf[:n]); cerr != nil {
				return nil, cerr
			}
		}
		events = t.dec.Decode(buf[:n])
	}

	if err != nil {
		return events, fmt.Errorf("minitel: read: %w", err)
	}

	return events, nil
}

// Locate queues a cursor move to (row, col) in grid coordinates.
func (t *Terminal) Locate(row, col int) error {
	loc := videotex.Locate(row, col)
	return t.queue.Enqueue(loc[:])
}

// ShowCursor queues the cursor-on control.
func (t *Terminal) ShowCursor() error {
	return t.queue.Enqueue([]byte{videotex.Con})
}

// HideCursor queues the cursor-off control.
func (t *Terminal) HideCursor() error {
	return t.queue.Enqueue([]byte{videotex.Coff})
}

// Beep queues the bell control.
func (t *Terminal) Beep() error {
	return t.queue.Enqueue([]byte{videotex.Bel})
}

// SetRollMode queues the protocol sequence switching between roll mode
// (scrolling) and page mode (wrapping to the top row).
func (t *Terminal) SetRollMode(enable bool) error {
	seq := videotex.SetMode(videotex.ModeRoll, enable)
	return t.queue.Enqueue(seq[:])
}

// SetLowercase queues the protocol sequence unlocking or locking
// lowercase keyboard entry.
func (t *Terminal) SetLowercase(enable bool) error {
	seq := videotex.SetMode(videotex.ModeLowercase, enable)
	return t.queue.Enqueue(seq[:])
}

// write sends data to the transport and records it when capturing.
func (t *Terminal) write(data []byte) error {
	if len(data) == 0 {
		return nil
	}

	if t.cap != nil {
		if err := t.cap.Record(capture.ToTerminal, data); err != nil {
			return err
		}
	}

	if _, err := t.rw.Write(data); err != nil {
		return fmt.Errorf("minitel: write: %w", err)
	}

	return nil
}
