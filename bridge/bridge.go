package bridge

import (
	"fmt"
	"unicode/utf8"

	"github.com/ronlang/ron-go/ron"
)

// ErrorKind classifies bridge-level errors, distinct from the
// grammar-level errors the engine reports.
type ErrorKind uint8

const (
	ErrInvalidUTF8 ErrorKind = iota
	ErrOutOfMemory
	ErrBadPointer
)

// String returns the error kind name.
func (k ErrorKind) String() string {
	switch k {
	case ErrInvalidUTF8:
		return "invalid UTF-8"
	case ErrOutOfMemory:
		return "out of memory"
	case ErrBadPointer:
		return "bad pointer"
	default:
		return "unknown"
	}
}

// Error is a bridge-level failure. It fails the current call but
// leaves the module usable for subsequent calls.
type Error struct {
	Kind ErrorKind
}

func (e *Error) Error() string {
	return fmt.Sprintf("ron/bridge: %s", e.Kind)
}

// Config configures a Module.
type Config struct {
	// MaxMemory bounds linear memory growth; <= 0 selects
	// DefaultMaxMemory.
	MaxMemory int

	// Options configure the engine run.
	Options ron.Options
}

// Module is the explicit context object for one module instance: one
// linear memory region plus the engine configuration. It holds no
// other state between calls. Module is not safe for concurrent use,
// and the call protocol is not reentrant: the previous result buffer
// is invalidated by the next Run.
type Module struct {
	mem     *Memory
	opts    ron.Options
	lastOut uint32
}

// New creates a module with default configuration.
func New() *Module {
	return NewWithConfig(Config{Options: ron.DefaultOptions()})
}

// NewWithConfig creates a module with explicit configuration.
func NewWithConfig(cfg Config) *Module {
	return &Module{
		mem:  NewMemory(cfg.MaxMemory),
		opts: cfg.Options,
	}
}

// Alloc reserves an input buffer of n bytes inside the module's
// memory and returns its pointer. The buffer is module-owned: it is
// released by the module once Run consumes it, or by an explicit
// Free.
func (m *Module) Alloc(n uint32) (uint32, error) {
	return m.mem.Alloc(n)
}

// Free releases a module-owned buffer the caller no longer needs.
func (m *Module) Free(ptr uint32) {
	m.mem.Free(ptr)
}

// Write copies the caller's bytes into a previously allocated buffer.
func (m *Module) Write(ptr uint32, b []byte) error {
	return m.mem.Write(ptr, b)
}

// Read copies n bytes out of the module's memory. The caller must
// read a Run result fully before issuing the next call.
func (m *Module) Read(ptr, n uint32) ([]byte, error) {
	return m.mem.Read(ptr, n)
}

// Run decodes the input buffer at (ptr, n), runs the engine, and
// writes the canonical output into a fresh module-owned buffer,
// returning its (pointer, length). The input buffer is released
// whatever the outcome; the previous result buffer is invalidated.
//
// Input must be valid UTF-8: anything else is a bridge error,
// distinct from a grammar error.
func (m *Module) Run(ptr, n uint32) (uint32, uint32, error) {
	input, err := m.mem.Read(ptr, n)
	m.mem.Free(ptr)
	if err != nil {
		return 0, 0, err
	}

	// Drop the previous result before allocating the next one so
	// its space can be reused.
	if m.lastOut != 0 {
		m.mem.Free(m.lastOut)
		m.lastOut = 0
	}

	if !utf8.Valid(input) {
		return 0, 0, &Error{Kind: ErrInvalidUTF8}
	}

	out, err := ron.RunWithOptions(string(input), m.opts)
	if err != nil {
		return 0, 0, err
	}

	outPtr, err := m.mem.Alloc(uint32(len(out)))
	if err != nil {
		return 0, 0, err
	}
	if err := m.mem.Write(outPtr, []byte(out)); err != nil {
		return 0, 0, err
	}
	m.lastOut = outPtr
	return outPtr, uint32(len(out)), nil
}

// MemorySize reports the current linear memory size in bytes.
func (m *Module) MemorySize() int {
	return m.mem.Size()
}

// ============================================================
// Packed ABI
// ============================================================
//
// The wasm-facing call convention packs a (pointer, length) pair into
// a single u64 and prefixes the result payload with one status byte,
// so a host can distinguish output text from an error description
// without a second call.

// Result status codes for the packed ABI.
const (
	StatusOK          = 0x00
	StatusEngineError = 0x01
	StatusBridgeError = 0x02
)

// Pack packs a (pointer, length) pair as (ptr<<32)|len.
func Pack(ptr, n uint32) uint64 {
	return uint64(ptr)<<32 | uint64(n)
}

// Unpack splits a packed (pointer, length) pair.
func Unpack(v uint64) (ptr, n uint32) {
	return uint32(v >> 32), uint32(v)
}

// Execute runs the engine over raw input bytes and returns the
// packed-ABI status and payload: the canonical output on StatusOK,
// an error description otherwise. It is the allocation-free core
// shared by RunPacked and wasm guest wrappers.
func Execute(input []byte, opts ron.Options) (byte, []byte) {
	if !utf8.Valid(input) {
		e := &Error{Kind: ErrInvalidUTF8}
		return StatusBridgeError, []byte(e.Error())
	}
	out, err := ron.RunWithOptions(string(input), opts)
	if err != nil {
		return StatusEngineError, []byte(err.Error())
	}
	return StatusOK, []byte(out)
}

// RunPacked implements the packed call convention. The returned pair
// addresses a module-owned buffer laid out as one status byte
// followed by the UTF-8 payload. A zero return means the result
// buffer itself could not be allocated.
func (m *Module) RunPacked(ptr, n uint32) uint64 {
	input, err := m.mem.Read(ptr, n)
	m.mem.Free(ptr)

	if m.lastOut != 0 {
		m.mem.Free(m.lastOut)
		m.lastOut = 0
	}

	var status byte
	var payload []byte
	if err != nil {
		status, payload = StatusBridgeError, []byte(err.Error())
	} else {
		status, payload = Execute(input, m.opts)
	}

	resPtr, allocErr := m.mem.Alloc(uint32(len(payload) + 1))
	if allocErr != nil {
		return 0
	}
	if writeErr := m.mem.Write(resPtr, append([]byte{status}, payload...)); writeErr != nil {
		return 0
	}
	m.lastOut = resPtr
	return Pack(resPtr, uint32(len(payload)+1))
}
