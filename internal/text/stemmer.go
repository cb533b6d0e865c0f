package text

import (
	"fmt"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	stemmer "github.com/agonopol/go-stem"
)

// Stemmer reduces a word to its root form
type Stemmer interface {
	Stem(word string) string
}

// PorterStemmer applies the Porter algorithm
type PorterStemmer struct{}

// Stem returns the Porter stem. Words of up to two letters are returned as is
func (PorterStemmer) Stem(word string) string {
	if len(word) <= 2 {
		return word
	}
	return string(stemmer.Stem([]byte(word)))
}

// IdentityStemmer leaves words unchanged
type IdentityStemmer struct{}

// Stem returns word
func (IdentityStemmer) Stem(word string) string {
	return word
}

// NewStemmer returns the stemmer registered under name
func NewStemmer(name string) (Stemmer, error) {
	switch name {
	case "", "porter":
		return PorterStemmer{}, nil
	case "none":
		return IdentityStemmer{}, nil
	default:
		return nil, fmt.Errorf("unsupported stemmer: %s", name)
	}
}

// Lemmatizer maps a word to its dictionary form
type Lemmatizer interface {
	Lemma(word string) string
}

// NewEnglishLemmatizer loads the golem English dictionary
func NewEnglishLemmatizer() (Lemmatizer, error) {
	l, err := golem.New(en.New())
	if err != nil {
		return nil, fmt.Errorf("failed to load lemmatizer dictionary: %w", err)
	}
	return l, nil
}
