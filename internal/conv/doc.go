// Package conv provides checked integer conversions.
//
// Symbol counters, arena offsets and decoded lengths all cross between Go's
// platform-sized int and fixed-width wire types. These helpers return an
// error instead of truncating or wrapping.
//
// For conversions that are provably safe (loop indices bounded by a length
// that was already checked), use direct casts instead.
package conv
