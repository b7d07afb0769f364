package arena

import (
	"errors"
	"unsafe"
)

var (
	// ErrArenaFull is returned when an append does not fit the remaining capacity.
	ErrArenaFull = errors.New("arena is full")
	// ErrFrozen is returned when appending to a frozen arena.
	ErrFrozen = errors.New("arena is frozen")
)

// Span addresses a byte range inside an Arena.
type Span struct {
	Offset int
	Length int
}

// End returns the offset one past the last byte of the span.
func (s Span) End() int { return s.Offset + s.Length }

// Arena is a contiguous memory arena sized once at construction.
type Arena struct {
	buf    []byte
	used   int
	frozen bool
}

// New creates an Arena holding exactly size bytes. Negative sizes are treated as zero.
func New(size int) *Arena {
	if size < 0 {
		size = 0
	}
	return &Arena{
		buf: make([]byte, size),
	}
}

// Append copies s into the arena and returns its span.
func (a *Arena) Append(s string) (Span, error) {
	if a.frozen {
		return Span{}, ErrFrozen
	}
	if len(s) > len(a.buf)-a.used {
		return Span{}, ErrArenaFull
	}

	sp := Span{Offset: a.used, Length: len(s)}
	copy(a.buf[a.used:], s)
	a.used += len(s)
	return sp, nil
}

// Freeze rejects all further appends.
func (a *Arena) Freeze() {
	a.frozen = true
}

// Frozen reports whether Freeze was called.
func (a *Arena) Frozen() bool {
	return a.frozen
}

// String returns a string view of the span without copying.
func (a *Arena) String(sp Span) string {
	if sp.Length == 0 {
		return ""
	}
	b := a.bytes(sp)
	return unsafe.String(&b[0], len(b)) //nolint:gosec // appended bytes are never rewritten
}

// bytes returns the span's bytes with the capacity clipped, so appending to
// the result cannot overwrite neighbouring strings.
func (a *Arena) bytes(sp Span) []byte {
	return a.buf[sp.Offset:sp.End():sp.End()]
}

// Buffer returns the used portion of the arena.
func (a *Arena) Buffer() []byte {
	return a.buf[:a.used:a.used]
}

// Size returns the number of bytes appended so far.
func (a *Arena) Size() int {
	return a.used
}

// Cap returns the total capacity fixed at construction.
func (a *Arena) Cap() int {
	return len(a.buf)
}
