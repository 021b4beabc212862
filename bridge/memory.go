// Package bridge moves text across an isolation boundary with no
// shared memory management: the caller and the module do not share an
// allocator or a garbage collector.
//
// The protocol is an explicit ownership handoff:
//
//  1. Alloc(len) — the module allocates an input buffer
//  2. Write(ptr, bytes) — the caller copies UTF-8 text in
//  3. Run(ptr, len) — the module parses, re-encodes, and writes the
//     result into a module-owned output buffer
//  4. Read(outPtr, outLen) — the caller copies the result out
//
// Buffers are owned by the module: the input block is released by the
// module after Run consumes it, and the result buffer stays valid only
// until the next call, since memory may grow or be reused. The
// protocol is not reentrant.
package bridge

const (
	// pageSize mirrors the 64 KiB page granularity of wasm linear
	// memory.
	pageSize = 64 * 1024

	// DefaultMaxMemory bounds linear memory growth.
	DefaultMaxMemory = 64 * 1024 * 1024

	// allocAlign keeps block starts 8-byte aligned. Offset 0 is
	// reserved as the nil pointer.
	allocAlign = 8
)

// Memory is a single contiguous, growable byte region owned by a
// Module. It only ever grows, in whole pages, up to a configured
// maximum — freed blocks are reclaimed in place only when they sit at
// the top of the region, arena-style.
type Memory struct {
	data   []byte
	max    int
	next   uint32
	blocks map[uint32]uint32 // live allocations: ptr -> len
}

// NewMemory creates a one-page memory with the given growth limit.
// A non-positive limit selects DefaultMaxMemory.
func NewMemory(maxBytes int) *Memory {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxMemory
	}
	if maxBytes < pageSize {
		maxBytes = pageSize
	}
	return &Memory{
		data:   make([]byte, pageSize),
		max:    maxBytes,
		next:   allocAlign,
		blocks: make(map[uint32]uint32),
	}
}

// Alloc reserves a block of n bytes and returns its offset. A zero
// length allocation still gets a distinct valid pointer.
func (m *Memory) Alloc(n uint32) (uint32, error) {
	ptr := m.next
	span := n
	if span == 0 {
		span = 1 // keep zero-length blocks at distinct offsets
	}
	end := uint64(ptr) + uint64(span)
	if end > uint64(m.max) {
		return 0, &Error{Kind: ErrOutOfMemory}
	}

	if err := m.grow(int(end)); err != nil {
		return 0, err
	}

	m.blocks[ptr] = n
	m.next = align(uint32(end))
	return ptr, nil
}

// Free releases a block. Only the topmost block's space is reclaimed
// in place; interior blocks stay as dead space, consistent with the
// grow-only memory model. Freeing an unknown pointer is a no-op.
func (m *Memory) Free(ptr uint32) {
	n, ok := m.blocks[ptr]
	if !ok {
		return
	}
	delete(m.blocks, ptr)
	span := n
	if span == 0 {
		span = 1
	}
	if align(ptr+span) == m.next {
		m.next = ptr
	}
}

// Write copies b into the block at ptr. The block must be live and at
// least len(b) bytes.
func (m *Memory) Write(ptr uint32, b []byte) error {
	n, ok := m.blocks[ptr]
	if !ok || uint32(len(b)) > n {
		return &Error{Kind: ErrBadPointer}
	}
	copy(m.data[ptr:], b)
	return nil
}

// Read copies n bytes out of the block at ptr.
func (m *Memory) Read(ptr, n uint32) ([]byte, error) {
	size, ok := m.blocks[ptr]
	if !ok || n > size {
		return nil, &Error{Kind: ErrBadPointer}
	}
	out := make([]byte, n)
	copy(out, m.data[ptr:uint64(ptr)+uint64(n)])
	return out, nil
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() int {
	return len(m.data)
}

// grow extends the region to cover at least end bytes, page-granular.
func (m *Memory) grow(end int) error {
	if end <= len(m.data) {
		return nil
	}
	pages := (end + pageSize - 1) / pageSize
	size := pages * pageSize
	if size > m.max {
		size = m.max
	}
	if end > size {
		return &Error{Kind: ErrOutOfMemory}
	}
	grown := make([]byte, size)
	copy(grown, m.data)
	m.data = grown
	return nil
}

func align(off uint32) uint32 {
	return (off + allocAlign - 1) &^ (allocAlign - 1)
}
