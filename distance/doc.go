// Package distance provides the pairwise vector scores used by the store.
//
// Kernels are backed by github.com/viterin/vek/vek32, which dispatches to
// AVX2 implementations on capable x86-64 CPUs and falls back to pure Go
// elsewhere.
//
// # Scores
//
//   - Euclidean: sqrt(Σ(aᵢ-bᵢ)²)
//   - CosineSimilarity: dot(a,b) / (‖a‖·‖b‖), 0 when either norm is 0
//
// # Usage
//
//	d := distance.Euclidean(a, b)
//	s := distance.CosineSimilarity(a, b)
//
// Vectors of different lengths are a caller error. The functions here do not
// panic on them: Euclidean returns NaN and CosineSimilarity returns 0.
package distance
