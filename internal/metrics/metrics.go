// Package metrics scores predicted labels against the truth
package metrics

import (
	"errors"
	"fmt"
)

// ErrNoSamples is returned when scoring an empty prediction set
var ErrNoSamples = errors.New("no samples to score")

// Accuracy returns the fraction of predictions equal to the truth
func Accuracy(yTrue, yPred []int) (float64, error) {
	if err := check(yTrue, yPred); err != nil {
		return 0, err
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// Confusion is a binary confusion matrix for one positive label
type Confusion struct {
	TP, FP, TN, FN int
}

// NewConfusion counts outcomes with positive as the positive class
func NewConfusion(yTrue, yPred []int, positive int) (Confusion, error) {
	var c Confusion
	if err := check(yTrue, yPred); err != nil {
		return c, err
	}
	for i := range yTrue {
		actual, predicted := yTrue[i] == positive, yPred[i] == positive
		switch {
		case actual && predicted:
			c.TP++
		case !actual && predicted:
			c.FP++
		case actual && !predicted:
			c.FN++
		default:
			c.TN++
		}
	}
	return c, nil
}

// Accuracy returns (TP+TN)/total
func (c Confusion) Accuracy() float64 {
	return ratio(c.TP+c.TN, c.TP+c.TN+c.FP+c.FN)
}

// Precision returns TP/(TP+FP), 0 when nothing was predicted positive
func (c Confusion) Precision() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// Recall returns TP/(TP+FN), 0 when there are no positives
func (c Confusion) Recall() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

// F1 returns the harmonic mean of precision and recall
func (c Confusion) F1() float64 {
	p, r := c.Precision(), c.Recall()
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func check(yTrue, yPred []int) error {
	if len(yTrue) != len(yPred) {
		return fmt.Errorf("metrics: %d labels but %d predictions", len(yTrue), len(yPred))
	}
	if len(yTrue) == 0 {
		return ErrNoSamples
	}
	return nil
}
