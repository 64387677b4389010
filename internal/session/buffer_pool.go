package session

import "sync"

// bufferPool reuses payload buffers across frames instead of allocating a
// fresh slice per instruction batch. Most SLIM requests are small (a
// handful of instructions), so a modest default capacity covers the
// common case; anything larger just allocates directly and is never
// pooled, the same trade-off as the teacher's fixed 9000-byte datagram
// pool.
var bufferPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, 0, 4096)
		return &buf
	},
}

// getBuffer returns a pooled buffer with at least size capacity, growing a
// fresh one if size exceeds the pooled default. Callers must putBuffer
// when done.
func getBuffer(size int) *[]byte {
	bufPtr := bufferPool.Get().(*[]byte)
	if cap(*bufPtr) < size {
		grown := make([]byte, size)
		return &grown
	}
	*bufPtr = (*bufPtr)[:size]
	return bufPtr
}

// putBuffer returns bufPtr to the pool. Buffers grown past the pool's
// default capacity are simply dropped rather than pooled, to avoid
// letting one oversized request permanently inflate the pool's footprint.
func putBuffer(bufPtr *[]byte) {
	if cap(*bufPtr) > 4096 {
		return
	}
	*bufPtr = (*bufPtr)[:0]
	bufferPool.Put(bufPtr)
}
