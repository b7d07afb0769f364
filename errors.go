package symtab

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateValue is returned when decoding a table that lists the same string twice.
	ErrDuplicateValue = errors.New("duplicate value")

	// ErrSymbolOutOfRange is returned by checked lookups for symbols the table never assigned.
	ErrSymbolOutOfRange = errors.New("symbol out of range")

	// ErrSymbolOverflow is returned when the symbol space is exhausted.
	ErrSymbolOverflow = errors.New("symbol space exhausted")

	// ErrBuilderConsumed is returned when interning into a Builder after Build.
	ErrBuilderConsumed = errors.New("builder already consumed by Build")

	// ErrInvalidEncoding is returned for malformed binary encodings.
	ErrInvalidEncoding = errors.New("invalid encoding")
)

// DuplicateValueError reports a repeated string in an encoded table.
type DuplicateValueError struct {
	Value    string
	Position int
}

func (e *DuplicateValueError) Error() string {
	return fmt.Sprintf("duplicate value %q at position %d", e.Value, e.Position)
}

func (e *DuplicateValueError) Unwrap() error { return ErrDuplicateValue }

// RangeError reports a symbol outside of 0..Len-1.
type RangeError struct {
	Symbol Symbol
	Len    int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("symbol out of range: %d (table has %d entries)", uint32(e.Symbol), e.Len)
}

func (e *RangeError) Unwrap() error { return ErrSymbolOutOfRange }

// OverflowError reports that no symbol above Limit can be assigned.
type OverflowError struct {
	Limit Symbol
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("symbol space exhausted: limit %d reached", uint32(e.Limit))
}

func (e *OverflowError) Unwrap() error { return ErrSymbolOverflow }
