// Package testutil provides testing utilities for symtab.
//
// This package is intended for use in tests and benchmarks only.
// It generates deterministic identifier workloads.
//
// # Identifiers
//
//	rng := testutil.NewRNG(seed)
//	ids := rng.DistinctIdentifiers(1000, 4, 16)
//
// # Token Streams
//
// Real source code repeats a few identifiers very often. TokenStream draws
// from a vocabulary with a Zipfian distribution:
//
//	tokens := rng.TokenStream(ids, 100_000, 1.2)
package testutil
