// Package features turns normalized messages into sparse numeric rows:
// n-gram counting, TF-IDF weighting and the sparse vector type shared by the
// sampling and classifier stages
package features

import (
	"math"
	"sort"
)

// Vector is a sparse row. Indices are strictly increasing and every stored
// value is non-zero
type Vector struct {
	Indices []int
	Values  []float64
}

// NewVector builds a Vector from a column → value map, dropping zeros
func NewVector(m map[int]float64) Vector {
	idx := make([]int, 0, len(m))
	for i, v := range m {
		if v != 0 {
			idx = append(idx, i)
		}
	}
	sort.Ints(idx)
	vals := make([]float64, len(idx))
	for k, i := range idx {
		vals[k] = m[i]
	}
	return Vector{Indices: idx, Values: vals}
}

// NNZ returns the number of stored entries
func (v Vector) NNZ() int {
	return len(v.Indices)
}

// At returns the value at column i
func (v Vector) At(i int) float64 {
	k := sort.SearchInts(v.Indices, i)
	if k < len(v.Indices) && v.Indices[k] == i {
		return v.Values[k]
	}
	return 0
}

// DotDense returns the inner product with a dense vector. Columns beyond
// len(w) contribute nothing
func (v Vector) DotDense(w []float64) float64 {
	var sum float64
	for k, i := range v.Indices {
		if i < len(w) {
			sum += v.Values[k] * w[i]
		}
	}
	return sum
}

// AddScaledTo performs dst += alpha * v
func (v Vector) AddScaledTo(dst []float64, alpha float64) {
	for k, i := range v.Indices {
		if i < len(dst) {
			dst[i] += alpha * v.Values[k]
		}
	}
}

// SquaredNorm returns the squared euclidean norm
func (v Vector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// Scale returns a copy of v multiplied by alpha
func (v Vector) Scale(alpha float64) Vector {
	if alpha == 0 {
		return Vector{}
	}
	out := Vector{
		Indices: append([]int(nil), v.Indices...),
		Values:  make([]float64, len(v.Values)),
	}
	for k, x := range v.Values {
		out.Values[k] = alpha * x
	}
	return out
}

// Normalize returns v scaled to unit euclidean norm. A zero vector is
// returned as is
func (v Vector) Normalize() Vector {
	n := math.Sqrt(v.SquaredNorm())
	if n == 0 {
		return v
	}
	return v.Scale(1 / n)
}

// SquaredDistance returns ||a-b||²
func SquaredDistance(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) || j < len(b.Indices) {
		var d float64
		switch {
		case j >= len(b.Indices) || (i < len(a.Indices) && a.Indices[i] < b.Indices[j]):
			d = a.Values[i]
			i++
		case i >= len(a.Indices) || b.Indices[j] < a.Indices[i]:
			d = b.Values[j]
			j++
		default:
			d = a.Values[i] - b.Values[j]
			i++
			j++
		}
		sum += d * d
	}
	return sum
}

// Lerp returns a + t*(b-a)
func Lerp(a, b Vector, t float64) Vector {
	out := Vector{
		Indices: make([]int, 0, len(a.Indices)+len(b.Indices)),
		Values:  make([]float64, 0, len(a.Indices)+len(b.Indices)),
	}
	push := func(i int, x float64) {
		if x != 0 {
			out.Indices = append(out.Indices, i)
			out.Values = append(out.Values, x)
		}
	}
	i, j := 0, 0
	for i < len(a.Indices) || j < len(b.Indices) {
		switch {
		case j >= len(b.Indices) || (i < len(a.Indices) && a.Indices[i] < b.Indices[j]):
			push(a.Indices[i], a.Values[i]*(1-t))
			i++
		case i >= len(a.Indices) || b.Indices[j] < a.Indices[i]:
			push(b.Indices[j], t*b.Values[j])
			j++
		default:
			push(a.Indices[i], a.Values[i]+t*(b.Values[j]-a.Values[i]))
			i++
			j++
		}
	}
	return out
}

// Matrix is a row-major sparse matrix
type Matrix struct {
	Rows []Vector
	Cols int
}

// NewMatrix creates an empty matrix with the given column count
func NewMatrix(cols int) *Matrix {
	return &Matrix{Cols: cols}
}

// NumRows returns the number of rows
func (m *Matrix) NumRows() int {
	return len(m.Rows)
}

// Append adds a row
func (m *Matrix) Append(v Vector) {
	m.Rows = append(m.Rows, v)
}
