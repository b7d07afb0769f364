// Package symset provides compressed sets of symbols.
//
// Compilers and analyzers often carry sets of identifiers: keywords, names in
// scope, live variables. Once the identifiers are interned, those sets become
// sets of small dense integers, which Roaring bitmaps store compactly and
// combine quickly.
//
//	keywords, missing := symset.Lookup(r, "if", "else", "for")
//	if keywords.Contains(sym) { ... }
//
// A Set is not safe for concurrent mutation.
package symset
