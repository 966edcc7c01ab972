package buffer

import "sync"

const maxPooledCap = 64 << 10

var pool = sync.Pool{New: func() interface{} { return New(defaultCapacity) }}

// Get checks out an empty buffer for exclusive use by the caller.
func Get() *Buffer {
	b := pool.Get().(*Buffer)
	b.Reset()
	return b
}

// Put returns b to the pool; oversized buffers are dropped.
func Put(b *Buffer) {
	if b == nil || b.Cap() > maxPooledCap {
		return
	}
	b.Reset()
	pool.Put(b)
}
