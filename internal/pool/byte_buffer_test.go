package pool

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestByteBuffer_WriteAndReset(t *testing.T) {
	bb := NewByteBuffer(16)

	bb.MustWrite([]byte{0x1B, 0x47})
	bb.MustWriteByte(0x41)

	require.Equal(t, 3, bb.Len())
	require.Equal(t, []byte{0x1B, 0x47, 0x41}, bb.Bytes())

	bb.Reset()
	require.Equal(t, 0, bb.Len())
	require.GreaterOrEqual(t, bb.Cap(), 16)
}

func TestByteBuffer_Grow(t *testing.T) {
	bb := NewByteBuffer(4)
	bb.Grow(1024)

	require.GreaterOrEqual(t, bb.Cap(), 1024)
	require.Equal(t, 0, bb.Len())

	// Growing within capacity must not reallocate.
	before := bb.Cap()
	bb.Grow(8)
	require.Equal(t, before, bb.Cap())
}

func TestByteBufferPool_DiscardsOversized(t *testing.T) {
	p := NewByteBufferPool(8, 64)

	bb := p.Get()
	require.NotNil(t, bb)

	bb.Grow(1024)
	bb.MustWrite(make([]byte, 1024))
	p.Put(bb)

	// The oversized buffer must not come back from the pool.
	next := p.Get()
	require.LessOrEqual(t, next.Cap(), 1024)
	require.Equal(t, 0, next.Len())
}

func TestStreamBufferPool_RoundTrip(t *testing.T) {
	bb := GetStreamBuffer()
	require.NotNil(t, bb)
	require.Equal(t, 0, bb.Len())

	bb.MustWrite([]byte("hello"))
	PutStreamBuffer(bb)

	again := GetStreamBuffer()
	require.Equal(t, 0, again.Len())
	PutStreamBuffer(again)
}
