package mmap

import (
	"errors"
	"io"
	"math"
	"os"
	"sync/atomic"
)

var (
	// ErrClosed is returned by every accessor once the file has been closed.
	ErrClosed = errors.New("mmap: file is closed")
	// ErrTooLarge is returned when the file does not fit the address space.
	ErrTooLarge = errors.New("mmap: file too large to map")
	// ErrNegativeOffset is returned by ReadAt for offsets below zero.
	ErrNegativeOffset = errors.New("mmap: negative offset")
)

// Advice tells the kernel how a mapped file is about to be read.
type Advice int

const (
	// Normal applies no particular read-ahead policy.
	Normal Advice = iota
	// Sequential favors aggressive read-ahead. Snapshots are decoded front to back.
	Sequential
	// Random disables read-ahead.
	Random
	// WillNeed asks the kernel to start paging the whole file in.
	WillNeed
)

// File is a read-only memory-mapped file. An empty file maps to a nil view.
type File struct {
	data    []byte
	closed  atomic.Bool
	release func([]byte) error
}

// Open maps path read-only and applies the given advice. Advice is a hint:
// a kernel that rejects it does not fail the Open.
func Open(path string, advice ...Advice) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if fi.Size() > math.MaxInt {
		return nil, ErrTooLarge
	}
	if fi.Size() == 0 {
		return &File{}, nil
	}

	data, release, err := osMap(f, int(fi.Size()))
	if err != nil {
		return nil, err
	}
	for _, a := range advice {
		_ = osAdvise(data, a)
	}
	return &File{data: data, release: release}, nil
}

// Len returns the mapped length in bytes. It stays valid after Close.
func (m *File) Len() int {
	return len(m.data)
}

// Bytes returns the mapped view. The view must not be used after Close.
func (m *File) Bytes() ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	return m.data, nil
}

// Advise applies an access hint to an open mapping.
func (m *File) Advise(a Advice) error {
	if m.closed.Load() {
		return ErrClosed
	}
	if len(m.data) == 0 {
		return nil
	}
	return osAdvise(m.data, a)
}

// ReadAt implements io.ReaderAt over the mapped view.
func (m *File) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrNegativeOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close releases the mapping. Only the first call unmaps.
func (m *File) Close() error {
	if m.closed.Swap(true) || m.release == nil {
		return nil
	}
	return m.release(m.data)
}
