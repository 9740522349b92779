package classify

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/skyseries/lcgo/pkg/errors"
)

// separableData builds 20 samples in two separable 2D clusters.
func separableData() (*mat.Dense, []int) {
	X := mat.NewDense(20, 2, nil)
	y := make([]int, 20)
	for i := 0; i < 10; i++ {
		X.Set(i, 0, 0.1*float64(i))
		X.Set(i, 1, 0.1*float64(i%3))
	}
	for i := 10; i < 20; i++ {
		X.Set(i, 0, 10+0.1*float64(i-10))
		X.Set(i, 1, 10+0.1*float64(i%3))
		y[i] = 1
	}
	return X, y
}

func TestSelectModel(t *testing.T) {
	X, y := separableData()
	candidates := []Candidate{
		{Metric: MetricEuclidean, ShrinkThreshold: 0},
		{Metric: MetricEuclidean, ShrinkThreshold: 0.5},
		{Metric: MetricManhattan, ShrinkThreshold: 0},
	}
	splitter := NewStratifiedKFold(4, true, 42)

	result, err := SelectModel(X, y, candidates, splitter)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Scores) != len(candidates) {
		t.Fatalf("got %d candidate scores, want %d", len(result.Scores), len(candidates))
	}
	// Separable clusters: every candidate scores perfectly and the winner
	// must too.
	if result.Mean != 1.0 {
		t.Errorf("best mean accuracy = %v, want 1", result.Mean)
	}
	if result.Model == nil || !result.Model.IsFitted() {
		t.Fatal("winner was not refit")
	}
	for _, cs := range result.Scores {
		if len(cs.Folds) != splitter.GetNSplits() {
			t.Errorf("candidate %s has %d fold scores, want %d",
				cs.Candidate, len(cs.Folds), splitter.GetNSplits())
		}
	}

	// The refit winner predicts the training data correctly.
	score, err := result.Model.Score(X, y)
	if err != nil {
		t.Fatal(err)
	}
	if score != 1.0 {
		t.Errorf("refit model accuracy = %v, want 1", score)
	}
}

func TestSelectModelEmptyGrid(t *testing.T) {
	X, y := separableData()
	_, err := SelectModel(X, y, nil, NewKFold(2, false, 0))
	if err == nil {
		t.Fatal("expected error for empty candidate grid")
	}
	var confErr *errors.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Errorf("want ConfigurationError, got %T: %v", err, err)
	}
}

func TestSelectModelLabelMismatch(t *testing.T) {
	X, _ := separableData()
	_, err := SelectModel(X, []int{0, 1}, []Candidate{{Metric: MetricEuclidean}}, NewKFold(2, false, 0))
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Fatalf("want DimensionError, got %T: %v", err, err)
	}
}

func TestCandidateString(t *testing.T) {
	c := Candidate{Metric: MetricManhattan, ShrinkThreshold: 0.5}
	if got := c.String(); got != "metric=manhattan shrink=0.5" {
		t.Errorf("String() = %q", got)
	}
}
