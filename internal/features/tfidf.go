package features

import (
	"fmt"
	"math"
)

// TfidfTransformer re-weights counts by smoothed inverse document frequency
// and scales every row to unit euclidean norm
type TfidfTransformer struct {
	idf []float64
}

// NewTfidfTransformer creates an unfitted transformer
func NewTfidfTransformer() *TfidfTransformer {
	return &TfidfTransformer{}
}

// Fit computes idf(t) = ln((1+n)/(1+df(t))) + 1 over the rows of counts
func (t *TfidfTransformer) Fit(counts *Matrix) error {
	df := make([]int, counts.Cols)
	for _, row := range counts.Rows {
		for _, c := range row.Indices {
			if c < counts.Cols {
				df[c]++
			}
		}
	}

	n := float64(counts.NumRows())
	t.idf = make([]float64, counts.Cols)
	for c, d := range df {
		t.idf[c] = math.Log((1+n)/(1+float64(d))) + 1
	}
	return nil
}

// Transform applies the learned weights
func (t *TfidfTransformer) Transform(counts *Matrix) (*Matrix, error) {
	if t.idf == nil {
		return nil, ErrNotFitted
	}
	if counts.Cols != len(t.idf) {
		return nil, fmt.Errorf("tfidf: expected %d columns, got %d", len(t.idf), counts.Cols)
	}

	out := NewMatrix(counts.Cols)
	for _, row := range counts.Rows {
		w := Vector{
			Indices: append([]int(nil), row.Indices...),
			Values:  make([]float64, len(row.Values)),
		}
		for k, c := range row.Indices {
			w.Values[k] = row.Values[k] * t.idf[c]
		}
		out.Append(w.Normalize())
	}
	return out, nil
}

// FitTransform fits on counts and transforms them
func (t *TfidfTransformer) FitTransform(counts *Matrix) (*Matrix, error) {
	if err := t.Fit(counts); err != nil {
		return nil, err
	}
	return t.Transform(counts)
}
