package classify

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/skyseries/lcgo/pkg/errors"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

// Candidate is one hyperparameter combination in the selection grid.
type Candidate struct {
	Metric          string
	ShrinkThreshold float64
}

func (c Candidate) String() string {
	return fmt.Sprintf("metric=%s shrink=%g", c.Metric, c.ShrinkThreshold)
}

// CandidateScore holds the cross-validation outcome of one candidate.
type CandidateScore struct {
	Candidate Candidate
	Mean      float64
	Std       float64
	Folds     []float64
}

// SelectionResult is the outcome of a model-selection run: the winning
// candidate refit on the full training set, plus the scores of the whole
// grid for reporting.
type SelectionResult struct {
	Model     *NearestCentroid
	Candidate Candidate
	Mean      float64
	Std       float64
	Scores    []CandidateScore
}

// SelectModel performs k-fold model selection over the candidate grid using
// mean cross-validated accuracy, then refits the winner on all of (X, y).
// This follows the train/tune procedure of performing selection on the
// training set only; the held-out test set stays untouched.
func SelectModel(X *mat.Dense, y []int, candidates []Candidate, splitter Splitter) (*SelectionResult, error) {
	if len(candidates) == 0 {
		return nil, errors.NewConfigurationError("classify.SelectModel", "empty candidate grid")
	}
	n, _ := X.Dims()
	if n == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "classify.SelectModel")
	}
	if len(y) != n {
		return nil, errors.NewDimensionError("classify.SelectModel", n, len(y), 0)
	}

	folds := splitter.Split(n, y)
	result := &SelectionResult{Mean: math.Inf(-1)}

	for _, cand := range candidates {
		scores := make([]float64, 0, len(folds))
		for _, fold := range folds {
			trainX, trainY := subset(X, y, fold.TrainIndices)
			testX, testY := subset(X, y, fold.TestIndices)

			clf := NewNearestCentroid(cand.Metric, cand.ShrinkThreshold)
			if err := clf.Fit(trainX, trainY); err != nil {
				return nil, errors.Wrapf(err, "candidate %s", cand)
			}
			score, err := clf.Score(testX, testY)
			if err != nil {
				return nil, errors.Wrapf(err, "candidate %s", cand)
			}
			scores = append(scores, score)
		}

		cs := CandidateScore{
			Candidate: cand,
			Mean:      stat.Mean(scores, nil),
			Std:       stat.StdDev(scores, nil),
			Folds:     scores,
		}
		if len(scores) <= 1 {
			cs.Std = 0
		}
		result.Scores = append(result.Scores, cs)

		slog.Debug("scored candidate",
			lclog.ModelNameKey, "NearestCentroid",
			"candidate", cand.String(),
			lclog.AccuracyKey, cs.Mean,
			"accuracy_std", cs.Std,
		)

		if cs.Mean > result.Mean {
			result.Mean = cs.Mean
			result.Std = cs.Std
			result.Candidate = cand
		}
	}

	// Refit the winner on the full training set.
	best := NewNearestCentroid(result.Candidate.Metric, result.Candidate.ShrinkThreshold)
	if err := best.Fit(X, y); err != nil {
		return nil, err
	}
	result.Model = best
	return result, nil
}

// subset extracts the rows of X and entries of y at the given indices.
func subset(X *mat.Dense, y []int, indices []int) (*mat.Dense, []int) {
	_, c := X.Dims()
	outX := mat.NewDense(len(indices), c, nil)
	outY := make([]int, len(indices))
	for i, idx := range indices {
		outX.SetRow(i, X.RawRowView(idx))
		outY[i] = y[idx]
	}
	return outX, outY
}
