package pine

import (
	"fmt"
	"math"
	"slices"
)

// Vector is an identified, ordered sequence of float32 values.
//
// A Vector is immutable: NewVector copies its input and Data returns a copy.
// The zero Vector has an empty id and no data.
type Vector struct {
	id   string
	data []float32
}

// NewVector returns a Vector with the given id and a copy of data.
func NewVector(id string, data []float32) Vector {
	return Vector{id: id, data: slices.Clone(data)}
}

// ID returns the vector's identifier.
func (v Vector) ID() string { return v.id }

// Data returns a copy of the vector's values.
func (v Vector) Data() []float32 { return slices.Clone(v.data) }

// At returns the i-th value.
func (v Vector) At(i int) float32 { return v.data[i] }

// Size returns the number of values.
func (v Vector) Size() int { return len(v.data) }

// Equal reports whether v and other have the same id and bit-identical values.
func (v Vector) Equal(other Vector) bool {
	if v.id != other.id || len(v.data) != len(other.data) {
		return false
	}
	for i := range v.data {
		if math.Float32bits(v.data[i]) != math.Float32bits(other.data[i]) {
			return false
		}
	}
	return true
}

func (v Vector) String() string {
	return fmt.Sprintf("Vector(%q, %v)", v.id, v.data)
}
