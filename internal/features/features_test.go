package features

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestVectorOps(t *testing.T) {
	a := NewVector(map[int]float64{0: 1, 2: 2, 5: 0})
	b := NewVector(map[int]float64{2: 3, 4: 4})

	if !reflect.DeepEqual(a.Indices, []int{0, 2}) {
		t.Fatalf("zero entries must be dropped, got indices %v", a.Indices)
	}
	if got := a.At(2); got != 2 {
		t.Errorf("At(2) = %v, want 2", got)
	}
	if got := a.At(3); got != 0 {
		t.Errorf("At(3) = %v, want 0", got)
	}
	if got := a.DotDense([]float64{1, 1, 1}); got != 3 {
		t.Errorf("DotDense = %v, want 3", got)
	}
	// (1-0)² + (2-3)² + (0-4)²
	if got := SquaredDistance(a, b); got != 18 {
		t.Errorf("SquaredDistance = %v, want 18", got)
	}
	if got := SquaredDistance(b, a); got != 18 {
		t.Errorf("SquaredDistance is not symmetric: %v", got)
	}

	dst := make([]float64, 3)
	a.AddScaledTo(dst, 2)
	if !reflect.DeepEqual(dst, []float64{2, 0, 4}) {
		t.Errorf("AddScaledTo = %v", dst)
	}

	n := NewVector(map[int]float64{1: 3, 3: 4}).Normalize()
	if !almostEqual(n.SquaredNorm(), 1) {
		t.Errorf("normalized norm² = %v, want 1", n.SquaredNorm())
	}
}

func TestLerp(t *testing.T) {
	a := NewVector(map[int]float64{0: 1, 2: 2})
	b := NewVector(map[int]float64{2: 4, 3: 2})

	mid := Lerp(a, b, 0.5)
	want := map[int]float64{0: 0.5, 2: 3, 3: 1}
	for i, v := range want {
		if got := mid.At(i); !almostEqual(got, v) {
			t.Errorf("Lerp(0.5).At(%d) = %v, want %v", i, got, v)
		}
	}
	if got := Lerp(a, b, 0); !reflect.DeepEqual(got.Indices, a.Indices) {
		t.Errorf("Lerp(0) indices = %v, want %v", got.Indices, a.Indices)
	}
}

func TestCountVectorizerNgramsAndMinDF(t *testing.T) {
	docs := []string{
		"free prize now",
		"free prize today",
		"call me today",
		"free call",
	}
	cv := NewCountVectorizer(2, 1, 2)
	m, err := cv.FitTransform(docs)
	if err != nil {
		t.Fatalf("FitTransform: %v", err)
	}

	want := []string{"call", "free", "free prize", "prize", "today"}
	if got := cv.Vocabulary(); !reflect.DeepEqual(got, want) {
		t.Fatalf("vocabulary = %v, want %v", got, want)
	}
	if m.Cols != len(want) || m.NumRows() != len(docs) {
		t.Fatalf("matrix shape = %dx%d", m.NumRows(), m.Cols)
	}
	// "free prize now" → free, free prize, prize
	if got := m.Rows[0].Indices; !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("row 0 indices = %v", got)
	}
}

func TestCountVectorizerDropsSingleCharacterTokens(t *testing.T) {
	cv := NewCountVectorizer(1, 1, 1)
	if err := cv.Fit([]string{"a b win", "x win"}); err != nil {
		t.Fatal(err)
	}
	if got := cv.Vocabulary(); !reflect.DeepEqual(got, []string{"win"}) {
		t.Errorf("vocabulary = %v, want [win]", got)
	}
}

func TestCountVectorizerEmptyVocabulary(t *testing.T) {
	cv := NewCountVectorizer(5, 1, 2)
	err := cv.Fit([]string{"one", "two", "three"})
	if !errors.Is(err, ErrEmptyVocabulary) {
		t.Fatalf("err = %v, want ErrEmptyVocabulary", err)
	}
	if _, err := cv.Transform([]string{"one"}); !errors.Is(err, ErrNotFitted) {
		t.Errorf("Transform before a successful fit: err = %v, want ErrNotFitted", err)
	}
}

func TestCountVectorizerIgnoresUnknownTerms(t *testing.T) {
	cv := NewCountVectorizer(1, 1, 1)
	if err := cv.Fit([]string{"win cash"}); err != nil {
		t.Fatal(err)
	}
	m, err := cv.Transform([]string{"win win lottery"})
	if err != nil {
		t.Fatal(err)
	}
	// cash=0, win=1
	if got := m.Rows[0].At(1); got != 2 {
		t.Errorf("count(win) = %v, want 2", got)
	}
	if m.Rows[0].NNZ() != 1 {
		t.Errorf("unknown terms must not be counted, nnz = %d", m.Rows[0].NNZ())
	}
}

func TestTfidf(t *testing.T) {
	counts := &Matrix{
		Cols: 2,
		Rows: []Vector{
			NewVector(map[int]float64{0: 1, 1: 1}),
			NewVector(map[int]float64{0: 2}),
		},
	}
	tf := NewTfidfTransformer()
	out, err := tf.FitTransform(counts)
	if err != nil {
		t.Fatal(err)
	}

	idf := tf.idf
	// column 0 occurs in both rows, column 1 in one of two
	if !almostEqual(idf[0], 1) {
		t.Errorf("idf[0] = %v, want 1", idf[0])
	}
	if want := math.Log(3.0/2.0) + 1; !almostEqual(idf[1], want) {
		t.Errorf("idf[1] = %v, want %v", idf[1], want)
	}
	for i, row := range out.Rows {
		if !almostEqual(row.SquaredNorm(), 1) {
			t.Errorf("row %d norm² = %v, want 1", i, row.SquaredNorm())
		}
	}
	if out.Rows[0].At(1) <= out.Rows[0].At(0) {
		t.Error("the rarer term should carry more weight")
	}

	if _, err := tf.Transform(&Matrix{Cols: 3}); err == nil {
		t.Error("expected a column mismatch error")
	}
	if _, err := NewTfidfTransformer().Transform(counts); !errors.Is(err, ErrNotFitted) {
		t.Errorf("err = %v, want ErrNotFitted", err)
	}
}
