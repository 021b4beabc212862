//go:build wasm

// ron-wasm is the wasm guest wrapper around the engine. It exports
// the foreign-call surface a host uses to run parse-and-reformat on
// arbitrary strings:
//
//	guest_alloc(len) -> ptr    allocate an input buffer
//	guest_free(ptr)            release a module-owned buffer
//	run(ptr, len) -> packed    run the engine, (ptr<<32)|len result
//
// The host writes UTF-8 bytes at the allocated pointer, calls run,
// and reads the result — one status byte followed by the payload —
// before making any further call.
//
// Build as a reactor module:
//
//	GOOS=wasip1 GOARCH=wasm go build -buildmode=c-shared -o ron.wasm ./cmd/ron-wasm
package main

import (
	"unsafe"

	"github.com/ronlang/ron-go/bridge"
	"github.com/ronlang/ron-go/ron"
)

var (
	// Live buffers, keyed by the linear-memory address handed to
	// the host. Keeping the slices referenced here pins them for
	// the garbage collector until the host is done.
	buffers = make(map[uint32][]byte)

	// The previous run result, invalidated by the next call.
	lastResult []byte

	opts = ron.DefaultOptions()
)

//go:wasmexport guest_alloc
func guestAlloc(n uint32) uint32 {
	buf := make([]byte, n)
	ptr := bufferAddr(buf)
	buffers[ptr] = buf
	return ptr
}

//go:wasmexport guest_free
func guestFree(ptr uint32) {
	delete(buffers, ptr)
}

//go:wasmexport run
func run(ptr, n uint32) uint64 {
	buf, ok := buffers[ptr]
	if !ok || uint64(n) > uint64(len(buf)) {
		return 0
	}
	input := buf[:n]

	status, payload := bridge.Execute(input, opts)
	delete(buffers, ptr)

	lastResult = make([]byte, 0, len(payload)+1)
	lastResult = append(lastResult, status)
	lastResult = append(lastResult, payload...)

	return bridge.Pack(bufferAddr(lastResult), uint32(len(lastResult)))
}

func bufferAddr(b []byte) uint32 {
	if cap(b) == 0 {
		return 0
	}
	return uint32(uintptr(unsafe.Pointer(unsafe.SliceData(b))))
}

// Everything happens through exports; as a reactor module main never
// runs past initialization.
func main() {}
