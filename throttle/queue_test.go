package throttle

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmadec/minitel/errs"
	"github.com/jmadec/minitel/videotex"
)

func TestNewQueue_Defaults(t *testing.T) {
	q, err := NewQueue()
	require.NoError(t, err)

	// 1200 bps, 100ms tick, 9 bit-times per byte.
	require.Equal(t, 13, q.BytesPerTick())
	require.Equal(t, 0, q.Len())
}

func TestNewQueue_BytesPerTick(t *testing.T) {
	tests := []struct {
		name string
		bps  int
		tick time.Duration
		want int
	}{
		{name: "300 bps", bps: 300, tick: 100 * time.Millisecond, want: 3},
		{name: "4800 bps", bps: 4800, tick: 100 * time.Millisecond, want: 53},
		{name: "9600 bps", bps: 9600, tick: 100 * time.Millisecond, want: 106},
		{name: "one second tick", bps: 1200, tick: time.Second, want: 133},
		{name: "floors below one", bps: 60, tick: 10 * time.Millisecond, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, err := NewQueue(WithBandwidth(tc.bps), WithTickInterval(tc.tick))
			require.NoError(t, err)
			require.Equal(t, tc.want, q.BytesPerTick())
		})
	}
}

func TestNewQueue_FromBaudrate(t *testing.T) {
	q, err := NewQueue(WithBaudrate(videotex.Baud4800))
	require.NoError(t, err)
	require.Equal(t, 53, q.BytesPerTick())
}

func TestNewQueue_InvalidConfig(t *testing.T) {
	_, err := NewQueue(WithBandwidth(0))
	require.ErrorIs(t, err, errs.ErrInvalidBandwidth)

	_, err = NewQueue(WithTickInterval(0))
	require.ErrorIs(t, err, errs.ErrInvalidBandwidth)

	_, err = NewQueue(WithMaxPending(-1))
	require.ErrorIs(t, err, errs.ErrInvalidBandwidth)
}

func TestQueue_TickNeverExceedsBudget(t *testing.T) {
	q, err := NewQueue(WithBandwidth(1200), WithTickInterval(100*time.Millisecond))
	require.NoError(t, err)

	data := bytes.Repeat([]byte{0x41}, 1000)
	require.NoError(t, q.Enqueue(data))

	total := 0
	for {
		chunk := q.Tick()
		if chunk == nil {
			break
		}
		require.LessOrEqual(t, len(chunk), q.BytesPerTick())
		total += len(chunk)
	}

	require.Equal(t, len(data), total)
}

func TestQueue_SubByteTickReleasesOneByte(t *testing.T) {
	// 300 bps and a 10ms tick afford a third of a byte per tick; the
	// queue releases one anyway so the backlog never stalls. This
	// overshoots the nominal rate, as documented in the package note.
	q, err := NewQueue(WithBandwidth(300), WithTickInterval(10*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, 1, q.BytesPerTick())

	require.NoError(t, q.Enqueue([]byte{0x41, 0x42, 0x43}))

	require.Equal(t, []byte{0x41}, q.Tick())
	require.Equal(t, []byte{0x42}, q.Tick())
	require.Equal(t, []byte{0x43}, q.Tick())
	require.Nil(t, q.Tick())
}

func TestQueue_DrainsInExpectedTicks(t *testing.T) {
	q, err := NewQueue(WithBandwidth(900), WithTickInterval(100*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, 10, q.BytesPerTick())

	// 95 bytes at 10 bytes per tick drain in ceil(95/10) = 10 ticks.
	require.NoError(t, q.Enqueue(make([]byte, 95)))

	ticks := 0
	for q.Len() > 0 {
		require.NotNil(t, q.Tick())
		ticks++
	}

	require.Equal(t, 10, ticks)
	require.Nil(t, q.Tick())
}

func TestQueue_PreservesByteOrder(t *testing.T) {
	q, err := NewQueue(WithBandwidth(900), WithTickInterval(100*time.Millisecond))
	require.NoError(t, err)

	var want []byte
	for i := range 40 {
		want = append(want, byte(i))
	}
	require.NoError(t, q.Enqueue(want[:25]))
	require.NoError(t, q.Enqueue(want[25:]))

	var got []byte
	for chunk := q.Tick(); chunk != nil; chunk = q.Tick() {
		got = append(got, chunk...)
	}

	require.Equal(t, want, got)
}

func TestQueue_EnqueueCopiesInput(t *testing.T) {
	q, err := NewQueue()
	require.NoError(t, err)

	data := []byte{1, 2, 3}
	require.NoError(t, q.Enqueue(data))
	data[0] = 99

	require.Equal(t, []byte{1, 2, 3}, q.Drain())
}

func TestQueue_FullRefusesWholesale(t *testing.T) {
	q, err := NewQueue(WithMaxPending(10))
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(make([]byte, 8)))

	// Refused entirely; the backlog is unchanged.
	require.ErrorIs(t, q.Enqueue(make([]byte, 3)), errs.ErrQueueFull)
	require.Equal(t, 8, q.Len())

	require.NoError(t, q.Enqueue(make([]byte, 2)))
	require.Equal(t, 10, q.Len())
}

func TestQueue_Drain(t *testing.T) {
	q, err := NewQueue()
	require.NoError(t, err)

	require.Nil(t, q.Drain())

	require.NoError(t, q.Enqueue([]byte("backlog")))
	require.Equal(t, []byte("backlog"), q.Drain())
	require.Equal(t, 0, q.Len())
	require.Nil(t, q.Tick())
}

func TestQueue_EnqueueEmptyIsNoop(t *testing.T) {
	q, err := NewQueue()
	require.NoError(t, err)

	require.NoError(t, q.Enqueue(nil))
	require.Equal(t, 0, q.Len())
}
