package buffers

import (
	"sync"
)

const (
	// DefaultSegmentSize is the size of the chunks the parallel CTR path
	// hands to each worker. It is a multiple of the 8-byte cipher block.
	DefaultSegmentSize = 64 * 1024
)

// BufferPool maintains a pool of equally sized byte slices to reduce GC
// pressure when many segments are processed.
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with the specified buffer size
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buf := make([]byte, size)
				return &buf
			},
		},
		size: size,
	}
}

// Size returns the length of the buffers handed out by Get.
func (p *BufferPool) Size() int { return p.size }

// Get retrieves a buffer from the pool. Its contents are not zeroed; callers
// only read the portion they fill.
func (p *BufferPool) Get() []byte {
	buffer := *(p.pool.Get().(*[]byte))
	if cap(buffer) < p.size {
		buffer = make([]byte, p.size)
	}
	return buffer[:p.size]
}

// Put returns a buffer to the pool
func (p *BufferPool) Put(buffer []byte) {
	if buffer == nil || cap(buffer) < p.size {
		return // Don't keep undersized buffers
	}
	buffer = buffer[:p.size]
	p.pool.Put(&buffer)
}

// SegmentPool serves the parallel CTR processor.
var SegmentPool = NewBufferPool(DefaultSegmentSize)
