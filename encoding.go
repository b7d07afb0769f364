package symtab

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/hupe1980/symtab/codec"
	"github.com/hupe1980/symtab/internal/conv"
)

// FromStrings rebuilds a Resolver from its encoded table.
//
// values[0] holds the empty-string sentinel and is skipped unread; the remaining
// values get symbols 1, 2, ... in order. An empty slice yields an empty
// resolver. A value that appears twice, or an empty string after position 0,
// fails with a *DuplicateValueError and no resolver is produced.
func FromStrings(values []string, opts ...Option) (*Resolver, error) {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	start := time.Now()
	r, err := fromStrings(values, opts)
	o.logger.LogDecode("strings", len(values), err)
	o.metrics.RecordDecode(len(values), time.Since(start), err)
	return r, err
}

func fromStrings(values []string, opts []Option) (*Resolver, error) {
	if len(values) == 0 {
		return freeze(nil), nil
	}

	// Decoding must not report a second build or decode to the caller's collector.
	inner := append([]Option{WithCapacity(len(values) - 1)}, opts...)
	inner = append(inner, WithLogger(nil), WithMetricsCollector(nil))
	b := NewBuilder(inner...)

	for i, v := range values[1:] {
		if _, ok := b.Get(v); ok {
			return nil, &DuplicateValueError{Value: strings.Clone(v), Position: i + 1}
		}
		if _, err := b.GetOrIntern(v); err != nil {
			return nil, err
		}
	}
	return b.Build(), nil
}

// MarshalJSON encodes the resolver as a JSON array of strings, sentinel first.
func (r *Resolver) MarshalJSON() ([]byte, error) {
	return codec.MarshalTable(nil, r.Strings())
}

// UnmarshalJSON decodes a JSON array produced by MarshalJSON into r,
// replacing its contents.
func (r *Resolver) UnmarshalJSON(data []byte) error {
	values, err := codec.UnmarshalTable(nil, data)
	if err != nil {
		return err
	}
	decoded, err := FromStrings(values)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

// MarshalBinary encodes the resolver in the compact binary format:
//
//	uvarint(Len()) | uvarint(len(s)) for symbols 1..N | arena bytes
//
// The arena already stores the strings back to back in symbol order, so it is
// written verbatim.
func (r *Resolver) MarshalBinary() ([]byte, error) {
	return r.AppendBinary(make([]byte, 0, r.binarySize()))
}

// AppendBinary implements encoding.BinaryAppender.
func (r *Resolver) AppendBinary(buf []byte) ([]byte, error) {
	n := len(r.strs)
	if n == 0 {
		n = 1
	}
	buf = binary.AppendUvarint(buf, uint64(n))
	for i := 1; i < len(r.strs); i++ {
		buf = binary.AppendUvarint(buf, uint64(len(r.strs[i])))
	}
	if r.arena != nil {
		buf = append(buf, r.arena.Buffer()...)
	}
	return buf, nil
}

func (r *Resolver) binarySize() int {
	// One uvarint byte per length is the common case for identifiers.
	return binary.MaxVarintLen64 + len(r.strs) + r.Size()
}

// UnmarshalBinary decodes the format written by MarshalBinary into r,
// replacing its contents.
func (r *Resolver) UnmarshalBinary(data []byte) error {
	decoded, err := DecodeBinary(data)
	if err != nil {
		return err
	}
	*r = *decoded
	return nil
}

// DecodeBinary decodes the format written by MarshalBinary.
func DecodeBinary(data []byte, opts ...Option) (*Resolver, error) {
	values, err := splitBinary(data)
	if err != nil {
		return nil, err
	}
	// values alias data; the builder clones every string it keeps.
	return FromStrings(values, opts...)
}

func splitBinary(data []byte) ([]string, error) {
	count, n := binary.Uvarint(data)
	if n <= 0 {
		return nil, fmt.Errorf("%w: invalid entry count", ErrInvalidEncoding)
	}
	data = data[n:]
	if count == 0 {
		if len(data) != 0 {
			return nil, fmt.Errorf("%w: %d trailing bytes", ErrInvalidEncoding, len(data))
		}
		return nil, nil
	}

	// Each length takes at least one byte, which bounds the allocation below.
	if count-1 > uint64(len(data)) {
		return nil, fmt.Errorf("%w: %d entries do not fit %d bytes", ErrInvalidEncoding, count, len(data))
	}
	entries, err := conv.Uint64ToInt(count)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
	}

	lengths := make([]int, entries)
	total := 0
	for i := 1; i < entries; i++ {
		l, n := binary.Uvarint(data)
		if n <= 0 {
			return nil, fmt.Errorf("%w: invalid length for entry %d", ErrInvalidEncoding, i)
		}
		data = data[n:]
		length, err := conv.Uint64ToInt(l)
		if err != nil {
			return nil, fmt.Errorf("%w: entry %d: %w", ErrInvalidEncoding, i, err)
		}
		if total, err = conv.AddInt(total, length); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidEncoding, err)
		}
		lengths[i] = length
	}
	if total != len(data) {
		return nil, fmt.Errorf("%w: lengths sum to %d, arena has %d bytes", ErrInvalidEncoding, total, len(data))
	}

	values := make([]string, entries)
	off := 0
	for i := 1; i < entries; i++ {
		l := lengths[i]
		if l > 0 {
			values[i] = unsafe.String(&data[off], l) //nolint:gosec // view is cloned by the builder
		}
		off += l
	}
	return values, nil
}
