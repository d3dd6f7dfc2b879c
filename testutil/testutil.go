package testutil

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/viterin/vek/vek32"

	"github.com/uname-n/pine/distance"
)

// RNG is a seeded, reproducible source of test vectors.
// It is safe for concurrent use.
type RNG struct {
	mu   sync.Mutex
	seed int64
	src  *rand.Rand
}

// NewRNG returns an RNG seeded with seed.
func NewRNG(seed int64) *RNG {
	r := &RNG{seed: seed}
	r.Reset()
	return r
}

// Reset rewinds the RNG to the start of its sequence.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.src = rand.New(rand.NewPCG(uint64(r.seed), 0x70696e65))
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 { return r.seed }

// Intn returns a value in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.IntN(n)
}

// FillUniform fills dst with values in [0,1).
func (r *RNG) FillUniform(dst []float32) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range dst {
		dst[i] = r.src.Float32()
	}
}

// matrix returns num vectors of length dim sharing one backing array, each
// filled by fill. The caller holds r.mu.
func matrix(num, dim int, fill func(vec []float32)) [][]float32 {
	data := make([]float32, num*dim)
	out := make([][]float32, num)
	for i := range out {
		out[i] = data[i*dim : (i+1)*dim : (i+1)*dim]
		fill(out[i])
	}
	return out
}

// UniformVectors returns num vectors with values in [0,1).
func (r *RNG) UniformVectors(num, dim int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return matrix(num, dim, func(vec []float32) {
		for j := range vec {
			vec[j] = r.src.Float32()
		}
	})
}

// UnitVectors returns num vectors drawn uniformly from the unit sphere.
func (r *RNG) UnitVectors(num, dim int) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return matrix(num, dim, r.unit)
}

func (r *RNG) unit(vec []float32) {
	for j := range vec {
		vec[j] = float32(r.src.NormFloat64())
	}
	if n := vek32.Norm(vec); n > 0 {
		vek32.DivNumber_Inplace(vec, n)
	}
}

// ClusteredVectors returns num vectors scattered with Gaussian noise of the
// given spread around clusters random unit centroids. Vector i belongs to
// centroid i%clusters.
func (r *RNG) ClusteredVectors(num, dim, clusters int, spread float32) [][]float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	centroids := matrix(clusters, dim, r.unit)
	i := 0
	return matrix(num, dim, func(vec []float32) {
		copy(vec, centroids[i%clusters])
		for j := range vec {
			vec[j] += float32(r.src.NormFloat64()) * spread
		}
		i++
	})
}

// IDs returns n ids of the form prefix-0000.
func IDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s-%04d", prefix, i)
	}
	return ids
}

// GreedyAssign returns the cluster ordinal each vector lands in when the
// vectors are saved in order into an empty store with the given threshold.
//
// The first vector that matches no representative founds a new cluster and
// becomes its representative; later vectors join the first representative
// they are strictly more similar to than threshold.
func GreedyAssign(vectors [][]float32, threshold float32) []int {
	var reps [][]float32
	out := make([]int, len(vectors))
	for i, v := range vectors {
		out[i] = -1
		for c, rep := range reps {
			if distance.CosineSimilarity(v, rep) > threshold {
				out[i] = c
				break
			}
		}
		if out[i] < 0 {
			out[i] = len(reps)
			reps = append(reps, v)
		}
	}
	return out
}
