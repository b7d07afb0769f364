package symset

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/symtab"
)

// Set is a set of symbols backed by a 32-bit Roaring bitmap.
type Set struct {
	rb *roaring.Bitmap
}

// New creates a new empty set.
func New() *Set {
	return &Set{
		rb: roaring.New(),
	}
}

// Of creates a set holding syms.
func Of(syms ...symtab.Symbol) *Set {
	s := New()
	for _, sym := range syms {
		s.rb.Add(uint32(sym))
	}
	return s
}

// Lookup returns the set of symbols r assigned to values. Values r never
// interned are returned in missing, in input order.
func Lookup(r *symtab.Resolver, values ...string) (set *Set, missing []string) {
	set = New()
	for _, v := range values {
		sym, ok := r.Get(v)
		if !ok {
			missing = append(missing, v)
			continue
		}
		set.rb.Add(uint32(sym))
	}
	return set, missing
}

// Add adds a symbol to the set.
func (s *Set) Add(sym symtab.Symbol) {
	s.rb.Add(uint32(sym))
}

// Remove removes a symbol from the set.
func (s *Set) Remove(sym symtab.Symbol) {
	s.rb.Remove(uint32(sym))
}

// Contains checks if a symbol is in the set.
func (s *Set) Contains(sym symtab.Symbol) bool {
	return s.rb.Contains(uint32(sym))
}

// IsEmpty returns true if the set is empty.
func (s *Set) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Len returns the number of symbols in the set.
func (s *Set) Len() int {
	return int(s.rb.GetCardinality())
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{
		rb: s.rb.Clone(),
	}
}

// Equal reports whether both sets hold the same symbols.
func (s *Set) Equal(other *Set) bool {
	return s.rb.Equals(other.rb)
}

// All iterates over the set in ascending symbol order.
func (s *Set) All() iter.Seq[symtab.Symbol] {
	return func(yield func(symtab.Symbol) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(symtab.Symbol(it.Next())) {
				return
			}
		}
	}
}

// Symbols returns the members in ascending order.
func (s *Set) Symbols() []symtab.Symbol {
	out := make([]symtab.Symbol, 0, s.Len())
	for sym := range s.All() {
		out = append(out, sym)
	}
	return out
}

// And intersects the set with other in place.
func (s *Set) And(other *Set) {
	s.rb.And(other.rb)
}

// Or unions other into the set in place.
func (s *Set) Or(other *Set) {
	s.rb.Or(other.rb)
}

// AndNot removes every member of other from the set.
func (s *Set) AndNot(other *Set) {
	s.rb.AndNot(other.rb)
}

// Union returns a new set holding the members of every input set.
func Union(sets ...*Set) *Set {
	bms := make([]*roaring.Bitmap, len(sets))
	for i, s := range sets {
		bms[i] = s.rb
	}
	return &Set{rb: roaring.FastOr(bms...)}
}

// Intersect returns a new set holding the members common to a and b.
func Intersect(a, b *Set) *Set {
	return &Set{rb: roaring.And(a.rb, b.rb)}
}

// Clear removes all elements from the set.
func (s *Set) Clear() {
	s.rb.Clear()
}

// Resolve returns the strings for all members in ascending symbol order.
// It fails with symtab.ErrSymbolOutOfRange if any member is not valid for r.
func (s *Set) Resolve(r *symtab.Resolver) ([]string, error) {
	if !s.rb.IsEmpty() {
		if maxSym := symtab.Symbol(s.rb.Maximum()); !r.Contains(maxSym) {
			return nil, &symtab.RangeError{Symbol: maxSym, Len: r.Len()}
		}
	}
	// Every member is at most the checked maximum.
	return r.ResolveManyUnchecked(s.Symbols()), nil
}

// GetSizeInBytes returns the serialized size of the set in bytes.
func (s *Set) GetSizeInBytes() uint64 {
	return s.rb.GetSizeInBytes()
}

// MarshalBinary implements encoding.BinaryMarshaler using the portable
// Roaring format.
func (s *Set) MarshalBinary() ([]byte, error) {
	s.rb.RunOptimize()
	return s.rb.ToBytes()
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler.
func (s *Set) UnmarshalBinary(data []byte) error {
	rb := roaring.New()
	if err := rb.UnmarshalBinary(data); err != nil {
		return err
	}
	s.rb = rb
	return nil
}
