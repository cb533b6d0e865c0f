package core

import "errors"

var (
	// ErrSingleClass is returned when training data holds fewer than two classes
	ErrSingleClass = errors.New("training data must contain both classes")
	// ErrNotFitted is returned when predicting with an unfitted model
	ErrNotFitted = errors.New("model is not fitted")
	// ErrLengthMismatch is returned when features and labels disagree in length
	ErrLengthMismatch = errors.New("features and labels differ in length")
)
