// Package pool provides pooled growable byte buffers, so that repeated
// record-sized allocations do not churn the garbage collector on hot
// decode paths. The stream reader draws its read buffer from the
// ReadBuffer pool; the PackBuffer pool is sized for packer output, but the
// packer does not draw from it.
package pool

import (
	"io"
	"sync"
)

// Buffer size classes. ReadBuffer sizes track the stream reader's own
// growth contract (§4.F): it starts at 128 KiB and is never grown past
// MAX_RECORD_LEN (10 MiB). PackBuffer sizes track the packer's default
// record length (4096 bytes) with headroom for the 10 MiB record ceiling.
const (
	ReadBufferDefaultSize  = 128 * 1024        // 128KiB, matches StreamState's initial read buffer
	ReadBufferMaxThreshold = 10 * 1024 * 1024  // 10MiB, matches MAX_RECORD_LEN
	PackBufferDefaultSize  = 4096              // matches the packer's default record length
	PackBufferMaxThreshold = 1024 * 1024       // discard pooled buffers larger than this
)

// ByteBuffer is a growable byte slice wrapper with an amortized growth
// strategy, designed to be reused via a Pool instead of reallocated per call.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Cap returns the capacity of the buffer.
func (bb *ByteBuffer) Cap() int {
	return cap(bb.B)
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Slice returns a slice of the buffer from start to end.
// Panics if the indices are out of bounds.
func (bb *ByteBuffer) Slice(start, end int) []byte {
	if start < 0 || end < start || end > cap(bb.B) {
		panic("pool: Slice: invalid indices")
	}

	return bb.B[start:end]
}

// SetLength sets the length of the buffer to n.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) SetLength(n int) {
	if n < 0 || n > cap(bb.B) {
		panic("pool: SetLength: invalid length")
	}
	bb.B = bb.B[:n]
}

// Extend extends the buffer by n bytes if there is sufficient capacity.
func (bb *ByteBuffer) Extend(n int) bool {
	curLen := len(bb.B)
	if cap(bb.B)-curLen < n {
		return false
	}

	bb.B = bb.B[:curLen+n]

	return true
}

// ExtendOrGrow extends the buffer by n bytes, growing it if necessary.
func (bb *ByteBuffer) ExtendOrGrow(n int) {
	if bb.Extend(n) {
		return
	}

	start := len(bb.B)
	bb.Grow(n)
	bb.B = bb.B[:start+n]
}

// DiscardFront removes the first n bytes of the buffer, shifting the
// remainder down to index 0. Used by the stream reader to drop consumed
// record bytes without reallocating.
func (bb *ByteBuffer) DiscardFront(n int) {
	if n <= 0 {
		return
	}

	if n >= len(bb.B) {
		bb.B = bb.B[:0]

		return
	}

	copy(bb.B, bb.B[n:])
	bb.B = bb.B[:len(bb.B)-n]
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<4x default), grow by the default size to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return // Sufficient capacity
	}

	growBy := ReadBufferDefaultSize
	if cap(bb.B) > 4*ReadBufferDefaultSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// Write appends the contents of data to the buffer, growing it as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.MustWrite(data)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers to minimize allocations.
//
// It uses sync.Pool internally to manage the buffers.
// The pool can be configured with a maximum size threshold to avoid retaining
// overly large buffers that could lead to memory bloat.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified default size.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var (
	readBufferPool = NewByteBufferPool(ReadBufferDefaultSize, ReadBufferMaxThreshold)
	packBufferPool = NewByteBufferPool(PackBufferDefaultSize, PackBufferMaxThreshold)
)

// GetReadBuffer retrieves a ByteBuffer from the stream reader's default pool.
func GetReadBuffer() *ByteBuffer {
	return readBufferPool.Get()
}

// PutReadBuffer returns a ByteBuffer to the stream reader's default pool.
func PutReadBuffer(bb *ByteBuffer) {
	readBufferPool.Put(bb)
}

// GetPackBuffer retrieves a ByteBuffer from the packer's default pool.
func GetPackBuffer() *ByteBuffer {
	return packBufferPool.Get()
}

// PutPackBuffer returns a ByteBuffer to the packer's default pool.
func PutPackBuffer(bb *ByteBuffer) {
	packBufferPool.Put(bb)
}
