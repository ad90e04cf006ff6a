// Package bytebuf implements the owned-buffer handoff used by the stat
// query surface. A Buffer describes a contiguous byte region together with
// its populated length and allocated capacity, and is produced and released
// by exactly one Pool. What the C contract leaves as undefined behavior
// (double free, freeing a buffer from another allocator domain) is reported
// here as an error instead.
package bytebuf

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrBufferReleased is returned when a buffer is released a second time,
	// or read after release.
	ErrBufferReleased = errors.New("bytebuf: buffer already released")

	// ErrForeignBuffer is returned when a buffer is handed to a pool that
	// did not produce it.
	ErrForeignBuffer = errors.New("bytebuf: buffer not produced by this pool")
)

// Buffer is a transferred byte region. It is in one of two states: Live
// (owned by whoever currently holds it, safe to read) or Released
// (terminal). The zero value is not usable; buffers come from a Pool.
//
// A Buffer is exclusively owned and not safe for concurrent use.
type Buffer struct {
	data     []byte
	length   int32
	capacity int32
	owner    *Pool
	released bool
}

// Len returns the number of meaningful bytes. Always 0 <= Len() <= Cap().
func (b *Buffer) Len() int32 { return b.length }

// Cap returns the total allocated size of the region.
func (b *Buffer) Cap() int32 { return b.capacity }

// IsNoData reports whether this is the empty-result sentinel: no region,
// zero length, zero capacity.
func (b *Buffer) IsNoData() bool { return b.data == nil && b.length == 0 && b.capacity == 0 }

// Released reports whether the buffer has been released.
func (b *Buffer) Released() bool { return b.released }

// Bytes returns the populated region, valid for reads of exactly Len()
// bytes. Returns nil once the buffer has been released, and nil for the
// no-data buffer.
func (b *Buffer) Bytes() []byte {
	if b.released {
		return nil
	}
	return b.data[:b.length]
}

// String returns the populated region decoded as UTF-8 text.
func (b *Buffer) String() string {
	return string(b.Bytes())
}

// Pool is an allocator domain. Every buffer it produces must be released
// through the same pool, exactly once. Pool methods are safe for concurrent
// use; individual buffers are not.
type Pool struct {
	mu   sync.Mutex
	live map[*Buffer]struct{}
}

// NewPool creates an empty allocator domain.
func NewPool() *Pool {
	return &Pool{live: make(map[*Buffer]struct{})}
}

// FromBytes wraps data in a live buffer, taking ownership of the slice.
// The caller must not mutate data afterwards. A nil or empty slice still
// produces a tracked buffer (length 0) backed by the given slice; use
// NoData for the empty-result sentinel.
func (p *Pool) FromBytes(data []byte) *Buffer {
	b := &Buffer{
		data:     data,
		length:   mustInt32(len(data), "length"),
		capacity: mustInt32(cap(data), "capacity"),
		owner:    p,
	}
	p.track(b)
	return b
}

// FromString copies s into a new live buffer.
func (p *Pool) FromString(s string) *Buffer {
	return p.FromBytes([]byte(s))
}

// NoData produces the empty-result sentinel: no region, zero length, zero
// capacity. It is live and must still be released exactly once.
func (p *Pool) NoData() *Buffer {
	b := &Buffer{owner: p}
	p.track(b)
	return b
}

// Release frees b and moves it to the Released state. Releasing the
// no-data buffer is a no-op on the region but still consumes the buffer.
// A second release returns ErrBufferReleased; a buffer produced elsewhere
// (or a nil buffer) returns ErrForeignBuffer.
func (p *Pool) Release(b *Buffer) error {
	if b == nil {
		return ErrForeignBuffer
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if b.released {
		return ErrBufferReleased
	}
	if b.owner != p {
		return ErrForeignBuffer
	}
	delete(p.live, b)
	b.released = true
	b.data = nil
	return nil
}

// Live returns the number of buffers produced by this pool that have not
// been released yet.
func (p *Pool) Live() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

func (p *Pool) track(b *Buffer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.live[b] = struct{}{}
}

func mustInt32(v int, what string) int32 {
	if v < 0 || v > 1<<31-1 {
		panic(fmt.Sprintf("bytebuf: %s %d does not fit into int32", what, v))
	}
	return int32(v)
}
