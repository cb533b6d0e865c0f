package features

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	// ErrEmptyVocabulary is returned when no term survives document frequency filtering
	ErrEmptyVocabulary = errors.New("empty vocabulary; no term reaches the minimum document frequency")
	// ErrNotFitted is returned when transforming before fitting
	ErrNotFitted = errors.New("transformer is not fitted")
)

// CountVectorizer converts documents into n-gram count rows. Tokens are the
// whitespace separated words of at least two characters
type CountVectorizer struct {
	minDF    int
	ngramMin int
	ngramMax int

	vocabulary map[string]int
	terms      []string
}

// NewCountVectorizer creates a vectorizer keeping n-grams of ngramMin..ngramMax
// tokens that occur in at least minDF documents
func NewCountVectorizer(minDF, ngramMin, ngramMax int) *CountVectorizer {
	if minDF < 1 {
		minDF = 1
	}
	if ngramMin < 1 {
		ngramMin = 1
	}
	if ngramMax < ngramMin {
		ngramMax = ngramMin
	}
	return &CountVectorizer{
		minDF:    minDF,
		ngramMin: ngramMin,
		ngramMax: ngramMax,
	}
}

// analyze splits a document into its n-gram terms
func (cv *CountVectorizer) analyze(doc string) []string {
	var tokens []string
	for _, tok := range strings.Fields(doc) {
		if len(tok) >= 2 {
			tokens = append(tokens, tok)
		}
	}

	var terms []string
	for n := cv.ngramMin; n <= cv.ngramMax; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Fit learns the vocabulary of docs
func (cv *CountVectorizer) Fit(docs []string) error {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := mapset.NewThreadUnsafeSet[string]()
		for _, term := range cv.analyze(doc) {
			if seen.Add(term) {
				df[term]++
			}
		}
	}

	terms := make([]string, 0, len(df))
	for term, count := range df {
		if count >= cv.minDF {
			terms = append(terms, term)
		}
	}
	if len(terms) == 0 {
		return fmt.Errorf("%w (documents: %d, min_df: %d)", ErrEmptyVocabulary, len(docs), cv.minDF)
	}
	sort.Strings(terms)

	cv.terms = terms
	cv.vocabulary = make(map[string]int, len(terms))
	for i, term := range terms {
		cv.vocabulary[term] = i
	}
	return nil
}

// Transform counts the known terms of every document. Unknown terms are ignored
func (cv *CountVectorizer) Transform(docs []string) (*Matrix, error) {
	if cv.vocabulary == nil {
		return nil, ErrNotFitted
	}

	m := NewMatrix(len(cv.terms))
	for _, doc := range docs {
		counts := make(map[int]float64)
		for _, term := range cv.analyze(doc) {
			if idx, ok := cv.vocabulary[term]; ok {
				counts[idx]++
			}
		}
		m.Append(NewVector(counts))
	}
	return m, nil
}

// FitTransform fits on docs and returns their count matrix
func (cv *CountVectorizer) FitTransform(docs []string) (*Matrix, error) {
	if err := cv.Fit(docs); err != nil {
		return nil, err
	}
	return cv.Transform(docs)
}

// Vocabulary returns the learned terms in column order
func (cv *CountVectorizer) Vocabulary() []string {
	return append([]string(nil), cv.terms...)
}
