// Package metrics provides the classification metrics used to evaluate the
// selected model on the held-out test set.
package metrics

import (
	"github.com/skyseries/lcgo/pkg/errors"
)

// Accuracy returns the fraction of predictions matching the true labels.
func Accuracy(yTrue, yPred []int) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.Wrap(errors.ErrEmptyData, "metrics.Accuracy")
	}
	if len(yTrue) != len(yPred) {
		return 0, errors.NewDimensionError("metrics.Accuracy", len(yTrue), len(yPred), 0)
	}
	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix returns the nClasses×nClasses count matrix with true
// labels on rows and predictions on columns.
func ConfusionMatrix(yTrue, yPred []int, nClasses int) ([][]int, error) {
	if len(yTrue) != len(yPred) {
		return nil, errors.NewDimensionError("metrics.ConfusionMatrix", len(yTrue), len(yPred), 0)
	}
	cm := make([][]int, nClasses)
	for i := range cm {
		cm[i] = make([]int, nClasses)
	}
	for i := range yTrue {
		t, p := yTrue[i], yPred[i]
		if t < 0 || t >= nClasses {
			return nil, errors.NewValueError("metrics.ConfusionMatrix", "true label out of range")
		}
		if p < 0 || p >= nClasses {
			return nil, errors.NewValueError("metrics.ConfusionMatrix", "predicted label out of range")
		}
		cm[t][p]++
	}
	return cm, nil
}

// ClassificationReport holds macro-averaged test-set metrics.
type ClassificationReport struct {
	Accuracy  float64
	Precision float64
	Recall    float64
	F1        float64
	Confusion [][]int
}

// Report computes accuracy, macro precision/recall/F1 and the confusion
// matrix. Classes absent from both truth and prediction contribute zero to
// the macro averages.
func Report(yTrue, yPred []int, nClasses int) (*ClassificationReport, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return nil, err
	}
	cm, err := ConfusionMatrix(yTrue, yPred, nClasses)
	if err != nil {
		return nil, err
	}

	var sumP, sumR, sumF float64
	for c := 0; c < nClasses; c++ {
		tp := cm[c][c]
		fp, fn := 0, 0
		for o := 0; o < nClasses; o++ {
			if o == c {
				continue
			}
			fp += cm[o][c]
			fn += cm[c][o]
		}
		var p, r float64
		if tp+fp > 0 {
			p = float64(tp) / float64(tp+fp)
		}
		if tp+fn > 0 {
			r = float64(tp) / float64(tp+fn)
		}
		var f float64
		if p+r > 0 {
			f = 2 * p * r / (p + r)
		}
		sumP += p
		sumR += r
		sumF += f
	}

	n := float64(nClasses)
	return &ClassificationReport{
		Accuracy:  acc,
		Precision: sumP / n,
		Recall:    sumR / n,
		F1:        sumF / n,
		Confusion: cm,
	}, nil
}
