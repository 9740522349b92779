// Package model holds the shared estimator plumbing: the fitted-state base
// embedded by every trainable component.
package model

// EstimatorState represents the training state of a model.
type EstimatorState int

const (
	// NotFitted is the state of a model before Fit has been called.
	NotFitted EstimatorState = iota
	// Fitted is the state of a trained model.
	Fitted
)

// BaseEstimator is the base struct embedded by all trainable models.
type BaseEstimator struct {
	state EstimatorState
}

// IsFitted reports whether the model has been trained.
func (e *BaseEstimator) IsFitted() bool {
	return e.state == Fitted
}

// SetFitted marks the model as trained.
func (e *BaseEstimator) SetFitted() {
	e.state = Fitted
}

// Reset returns the model to its initial state.
func (e *BaseEstimator) Reset() {
	e.state = NotFitted
}
