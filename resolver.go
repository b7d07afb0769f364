package symtab

import (
	"iter"
	"slices"

	"github.com/hupe1980/symtab/internal/arena"
)

// Resolver is the immutable result of Builder.Build.
//
// Every string lives in one arena; the forward table and the reverse map both
// hold views into it. Copying a Resolver value is cheap and the copy shares
// the arena. A Resolver is safe for concurrent readers.
type Resolver struct {
	arena *arena.Arena
	// strs is indexed by symbol; strs[0] is the empty-string sentinel.
	strs  []string
	index map[string]Symbol
}

// Stats describes the footprint of a Resolver.
type Stats struct {
	// Entries is Len(): distinct strings plus the sentinel.
	Entries int
	// ArenaBytes is the total size of all interned strings.
	ArenaBytes int
}

// Get returns the symbol for s if it was interned by the originating builder.
func (r *Resolver) Get(s string) (Symbol, bool) {
	if s == "" {
		return Empty, true
	}
	sym, ok := r.index[s]
	return sym, ok
}

// GetBytes is like Get but takes a byte slice. It does not allocate.
func (r *Resolver) GetBytes(p []byte) (Symbol, bool) {
	if len(p) == 0 {
		return Empty, true
	}
	sym, ok := r.index[string(p)]
	return sym, ok
}

// Contains reports whether sym is valid for this resolver.
func (r *Resolver) Contains(sym Symbol) bool {
	return uint64(sym) < uint64(len(r.strs))
}

// Resolve returns the string for sym, or a *RangeError wrapping
// ErrSymbolOutOfRange if the resolver never assigned sym.
func (r *Resolver) Resolve(sym Symbol) (string, error) {
	if !r.Contains(sym) {
		return "", &RangeError{Symbol: sym, Len: len(r.strs)}
	}
	return r.strs[sym], nil
}

// ResolveUnchecked returns the string for sym without validating it.
//
// Precondition: sym < Len() and sym came from this resolver or its builder.
// Violating the precondition panics with an index out of range.
func (r *Resolver) ResolveUnchecked(sym Symbol) string {
	return r.strs[sym]
}

// ResolveMany resolves syms element-wise, preserving order and length. It
// fails on the first symbol outside the table.
func (r *Resolver) ResolveMany(syms []Symbol) ([]string, error) {
	out := make([]string, len(syms))
	for i, sym := range syms {
		if !r.Contains(sym) {
			return nil, &RangeError{Symbol: sym, Len: len(r.strs)}
		}
		out[i] = r.strs[sym]
	}
	return out, nil
}

// ResolveManyUnchecked is the unchecked variant of ResolveMany; every element
// must satisfy the ResolveUnchecked precondition.
func (r *Resolver) ResolveManyUnchecked(syms []Symbol) []string {
	out := make([]string, len(syms))
	for i, sym := range syms {
		out[i] = r.strs[sym]
	}
	return out
}

// Len returns the number of table entries: distinct strings plus one for the sentinel.
func (r *Resolver) Len() int {
	return len(r.strs)
}

// Size returns the arena size in bytes.
func (r *Resolver) Size() int {
	if r.arena == nil {
		return 0
	}
	return r.arena.Size()
}

// Stats returns the footprint of the resolver.
func (r *Resolver) Stats() Stats {
	return Stats{
		Entries:    r.Len(),
		ArenaBytes: r.Size(),
	}
}

// All iterates over the interned strings in symbol order. The sentinel is not
// yielded.
func (r *Resolver) All() iter.Seq2[Symbol, string] {
	return func(yield func(Symbol, string) bool) {
		for i := 1; i < len(r.strs); i++ {
			if !yield(Symbol(i), r.strs[i]) {
				return
			}
		}
	}
}

// Strings returns a copy of the table in symbol order, sentinel first.
// This is the encoded form of the resolver.
func (r *Resolver) Strings() []string {
	if len(r.strs) == 0 {
		return []string{""}
	}
	return slices.Clone(r.strs)
}
