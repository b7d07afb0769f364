// Package arena provides a fixed-size, append-only byte arena for string storage.
//
// The arena is allocated exactly once with the final size the caller computed
// up front. Append copies bytes to the next free offset and returns a Span;
// bytes that were appended are never written again, so views handed out by
// String stay valid and immutable for as long as the arena is reachable.
//
// # Safety
//
// Append returns errors instead of growing or panicking. String and Bytes
// trust the Span they are given; passing a Span that did not come from the
// same arena panics on the slice bounds check.
package arena
