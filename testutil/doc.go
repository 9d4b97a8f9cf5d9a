// Package testutil provides testing utilities for engram.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator and a small set of fixture types.
//
// # Random Data
//
//	rng := testutil.NewRNG(seed)
//	xs := rng.Int32s(128)
//	s := rng.String(16)
//
// # Fixtures
//
// Circle and Rect implement the Figure interface and are registered with
// RegisterFigures. Unregistered implements Figure but is never registered,
// for exercising unknown type handling. Record is a plain aggregate.
package testutil
