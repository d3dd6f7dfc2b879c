// Package testutil provides testing utilities for pine.
//
// This package is intended for use in tests and benchmarks only.
// It provides helpers for generating random vectors and a reference model of
// the clustering policy to check stores against.
//
// # Random Vector Generation
//
//	rng := testutil.NewRNG(seed)
//	vec := make([]float32, 128)
//	rng.FillUniform(vec)                        // uniform [0, 1)
//	vecs := rng.ClusteredVectors(100, 32, 5, 0.05)
//
// # Expected Clusters
//
//	want := testutil.GreedyAssign(vecs, 0.9) // cluster ordinal per vector
package testutil
