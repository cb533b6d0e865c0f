package core

import (
	"sort"
	"time"
)

// Class values of a labeled message
const (
	ClassHam  = 0
	ClassSpam = 1
)

// Message is one cleaned corpus row
type Message struct {
	Text  string
	Class int
}

// Corpus is the cleaned, labeled message set
type Corpus []Message

// Texts returns the message texts in corpus order
func (c Corpus) Texts() []string {
	out := make([]string, len(c))
	for i, m := range c {
		out[i] = m.Text
	}
	return out
}

// Labels returns the classes in corpus order
func (c Corpus) Labels() []int {
	out := make([]int, len(c))
	for i, m := range c {
		out[i] = m.Class
	}
	return out
}

// Split holds the train and test folds of a corpus
type Split struct {
	TrainText   []string
	TestText    []string
	TrainLabels []int
	TestLabels  []int
}

// Result is the held-out evaluation of one classifier
type Result struct {
	Model       string
	Score       float64
	Precision   float64
	Recall      float64
	F1          float64
	FitDuration time.Duration
}

// Results is a ranked results table
type Results []Result

// SortByScore orders results by descending score, keeping roster order on ties
func (r Results) SortByScore() {
	sort.SliceStable(r, func(i, j int) bool {
		return r[i].Score > r[j].Score
	})
}

// Run is one recorded benchmark execution
type Run struct {
	ID        string
	StartedAt time.Time
	Dataset   string
	Results   Results
}
