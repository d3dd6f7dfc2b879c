package distance

import (
	"math"

	"github.com/viterin/vek/vek32"
)

// Dot calculates the dot product of two vectors.
// Returns 0 for vectors of different lengths.
func Dot(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	return vek32.Dot(a, b)
}

// Norm calculates the L2 norm of v.
func Norm(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	return vek32.Norm(v)
}

// Euclidean calculates the Euclidean (L2) distance between two vectors.
// Returns NaN for vectors of different lengths.
func Euclidean(a, b []float32) float32 {
	if len(a) != len(b) {
		return float32(math.NaN())
	}
	if len(a) == 0 {
		return 0
	}
	return vek32.Distance(a, b)
}

// SquaredL2 calculates the squared Euclidean distance between two vectors.
// Returns NaN for vectors of different lengths.
func SquaredL2(a, b []float32) float32 {
	d := Euclidean(a, b)
	return d * d
}

// CosineSimilarity calculates dot(a,b) / (‖a‖·‖b‖), clamped to [-1, 1].
//
// It is exactly 0 when either vector has zero norm or the lengths differ,
// so the result is never NaN for finite inputs.
func CosineSimilarity(a, b []float32) float32 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	// The SIMD norm and dot kernels round differently; without the clamp
	// cos(v, v) can land one ulp above 1.
	denom := math.Sqrt(float64(vek32.Dot(a, a))) * math.Sqrt(float64(vek32.Dot(b, b)))
	if denom == 0 {
		return 0
	}
	cos := float64(vek32.Dot(a, b)) / denom
	switch {
	case cos > 1:
		cos = 1
	case cos < -1:
		cos = -1
	}
	return float32(cos)
}
