// Package classify provides the lightweight classification stack used by the
// model-selection phase: a nearest-centroid classifier, cross-validation
// splitters, label conversion and train/test splitting.
package classify

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/skyseries/lcgo/core/model"
	"github.com/skyseries/lcgo/pkg/errors"
)

// Distance metric names accepted by NearestCentroid.
const (
	MetricEuclidean = "euclidean"
	MetricManhattan = "manhattan"
)

// NearestCentroid classifies a sample by the nearest class centroid in
// feature space. ShrinkThreshold soft-thresholds each centroid toward the
// global mean, which suppresses noisy features.
type NearestCentroid struct {
	model.BaseEstimator

	Metric          string
	ShrinkThreshold float64

	// Classes holds the class labels in centroid row order.
	Classes []int

	// Centroids holds one row per class.
	Centroids *mat.Dense
}

// NewNearestCentroid creates an unfitted classifier.
func NewNearestCentroid(metric string, shrinkThreshold float64) *NearestCentroid {
	return &NearestCentroid{Metric: metric, ShrinkThreshold: shrinkThreshold}
}

// Fit computes the per-class centroids of X.
func (nc *NearestCentroid) Fit(X mat.Matrix, y []int) error {
	if nc.Metric != MetricEuclidean && nc.Metric != MetricManhattan {
		return errors.NewValueError("NearestCentroid.Fit", "unknown metric "+nc.Metric)
	}
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.Wrap(errors.ErrEmptyData, "NearestCentroid.Fit")
	}
	if len(y) != r {
		return errors.NewDimensionError("NearestCentroid.Fit", r, len(y), 0)
	}

	byClass := make(map[int][]int)
	for i, label := range y {
		byClass[label] = append(byClass[label], i)
	}
	classes := make([]int, 0, len(byClass))
	for label := range byClass {
		classes = append(classes, label)
	}
	sort.Ints(classes)

	centroids := mat.NewDense(len(classes), c, nil)
	for ci, label := range classes {
		rows := byClass[label]
		for j := 0; j < c; j++ {
			sum := 0.0
			for _, i := range rows {
				sum += X.At(i, j)
			}
			centroids.Set(ci, j, sum/float64(len(rows)))
		}
	}

	if nc.ShrinkThreshold > 0 {
		shrinkCentroids(centroids, X, nc.ShrinkThreshold)
	}

	nc.Classes = classes
	nc.Centroids = centroids
	nc.SetFitted()
	return nil
}

// shrinkCentroids soft-thresholds each centroid component toward the global
// feature mean, in place. A component within the threshold collapses onto
// the mean.
func shrinkCentroids(centroids *mat.Dense, X mat.Matrix, threshold float64) {
	r, c := X.Dims()
	global := make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		global[j] = sum / float64(r)
	}
	nCls, _ := centroids.Dims()
	for ci := 0; ci < nCls; ci++ {
		for j := 0; j < c; j++ {
			d := centroids.At(ci, j) - global[j]
			shrunk := math.Abs(d) - threshold
			if shrunk < 0 {
				shrunk = 0
			}
			centroids.Set(ci, j, global[j]+math.Copysign(shrunk, d))
		}
	}
}

// Predict assigns each row of X to the class of its nearest centroid.
func (nc *NearestCentroid) Predict(X mat.Matrix) ([]int, error) {
	if !nc.IsFitted() {
		return nil, errors.NewNotFittedError("NearestCentroid", "Predict")
	}
	r, c := X.Dims()
	_, cc := nc.Centroids.Dims()
	if c != cc {
		return nil, errors.NewDimensionError("NearestCentroid.Predict", cc, c, 1)
	}

	out := make([]int, r)
	nCls := len(nc.Classes)
	for i := 0; i < r; i++ {
		best := math.Inf(1)
		bestClass := nc.Classes[0]
		for ci := 0; ci < nCls; ci++ {
			d := nc.distance(X, i, ci)
			if d < best {
				best = d
				bestClass = nc.Classes[ci]
			}
		}
		out[i] = bestClass
	}
	return out, nil
}

func (nc *NearestCentroid) distance(X mat.Matrix, row, centroid int) float64 {
	_, c := X.Dims()
	sum := 0.0
	for j := 0; j < c; j++ {
		d := X.At(row, j) - nc.Centroids.At(centroid, j)
		if nc.Metric == MetricManhattan {
			sum += math.Abs(d)
		} else {
			sum += d * d
		}
	}
	return sum
}

// Score returns the classification accuracy of the model on (X, y).
func (nc *NearestCentroid) Score(X mat.Matrix, y []int) (float64, error) {
	pred, err := nc.Predict(X)
	if err != nil {
		return 0, err
	}
	if len(pred) != len(y) {
		return 0, errors.NewDimensionError("NearestCentroid.Score", len(y), len(pred), 0)
	}
	correct := 0
	for i := range y {
		if pred[i] == y[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(y)), nil
}
