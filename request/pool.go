package request

import (
	"bytes"
	"sync"
)

// Buffers above this size are not returned to the pool.
const maxPooledBuffer = 64 << 10

var bodyBufferPool = sync.Pool{
	New: func() any {
		return new(bytes.Buffer)
	},
}

// getBodyBuffer retrieves an empty buffer from the pool.
func getBodyBuffer() *bytes.Buffer {
	b := bodyBufferPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// putBodyBuffer returns a buffer to the pool.
func putBodyBuffer(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxPooledBuffer {
		return
	}
	bodyBufferPool.Put(b)
}
