// Package symtab provides a two-phase string interner for Go.
//
// A Builder maps each distinct string to a small, dense Symbol. Once all input
// is seen, Build freezes the table into a Resolver: every string is packed
// into one exact-size arena and looked up in O(1) in both directions without
// per-string heap allocations.
//
// # Quick Start
//
//	b := symtab.NewBuilder()
//	hello, _ := b.GetOrIntern("Hello") // 1
//	world, _ := b.GetOrIntern("World") // 2
//	again, _ := b.GetOrIntern("Hello") // 1
//
//	r := b.Build() // b is consumed
//	s, _ := r.Resolve(hello)   // "Hello"
//	sym, ok := r.Get("World")  // 2, true
//	n := r.Len()               // 3 (two strings plus the sentinel)
//
// # Symbols
//
// Symbol 0 (Empty) is reserved for the empty string in every table and is
// never assigned to user input; GetOrIntern("") returns it directly. Symbols
// are assigned in first-seen order, so a Resolver with N strings has exactly
// the valid symbols 0..N.
//
// # Lifecycle
//
// Builder is mutable and must be owned by a single goroutine. Build consumes
// it: further interning returns ErrBuilderConsumed. Resolver has no mutators
// and is safe for concurrent readers.
//
// # Lookups
//
// Resolve and ResolveMany check their input and return ErrSymbolOutOfRange.
// ResolveUnchecked and ResolveManyUnchecked skip the check on hot paths; the
// caller guarantees the symbol came from the same Resolver.
//
// # Persistence
//
// A Resolver encodes as its string table in symbol order, sentinel first. It
// implements json.Marshaler and encoding.BinaryMarshaler; package snapshot
// adds framing, compression and checksums, and package blobstore stores
// snapshots on local disk, S3 or MinIO.
package symtab
