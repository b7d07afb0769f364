package symtab

import (
	"fmt"
	"math"
)

// Symbol identifies an interned string within one Builder/Resolver pair.
//
// Symbols are only comparable with symbols from the same table.
type Symbol uint32

const (
	// Empty is the reserved symbol for the empty string.
	Empty Symbol = 0
	// MaxSymbol is the largest symbol a table can assign.
	MaxSymbol Symbol = math.MaxUint32
)

// IsEmpty reports whether s is the empty-string sentinel.
func (s Symbol) IsEmpty() bool { return s == Empty }

// String implements fmt.Stringer. It does not resolve the symbol.
func (s Symbol) String() string {
	return fmt.Sprintf("symtab.Symbol(%d)", uint32(s))
}
