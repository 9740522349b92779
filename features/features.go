// Package features extracts a fixed vector of statistical features from each
// cleaned light curve. The set is a magnitude-domain subset of the classical
// variability features used for light-curve classification; every feature is
// computable from the (time, magnitude, error) triple alone.
package features

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
)

// featureNames is the fixed output ordering. Reports and importance tables
// index into this slice.
var featureNames = []string{
	"amplitude",
	"mean",
	"median",
	"std",
	"skew",
	"kurtosis",
	"beyond1std",
	"median_abs_dev",
	"mean_variance",
	"percent_amplitude",
	"linear_trend",
	"eta_e",
	"mean_error",
}

// Extractor computes the statistical feature vector of a light curve.
type Extractor struct{}

// NewExtractor returns an Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Names returns the feature names in output order.
func (e *Extractor) Names() []string {
	out := make([]string, len(featureNames))
	copy(out, featureNames)
	return out
}

// NumFeatures returns the length of the extracted vector.
func (e *Extractor) NumFeatures() int {
	return len(featureNames)
}

// ExtractCurve computes the feature vector of one light curve. Features that
// are undefined for the input (zero variance, constant time axis) come out
// as zero rather than NaN so downstream matrices stay finite.
func (e *Extractor) ExtractCurve(lc lightcurve.LightCurve) []float64 {
	n := len(lc.Mags)
	out := make([]float64, len(featureNames))
	if n == 0 {
		return out
	}

	mags := lc.Mags
	minMag := floats.Min(mags)
	maxMag := floats.Max(mags)
	mean := stat.Mean(mags, nil)
	std := stat.PopStdDev(mags, nil)
	median := medianOf(mags)

	beyond := 0
	for _, m := range mags {
		if math.Abs(m-mean) > std {
			beyond++
		}
	}

	absDev := make([]float64, n)
	for i, m := range mags {
		absDev[i] = math.Abs(m - median)
	}

	var trend float64
	if n >= 2 {
		_, trend = stat.LinearRegression(lc.Times, mags, nil, false)
	}

	var eta float64
	if n >= 2 && std > 0 {
		sumSq := 0.0
		for i := 1; i < n; i++ {
			d := mags[i] - mags[i-1]
			sumSq += d * d
		}
		eta = sumSq / (float64(n-1) * std * std)
	}

	out[0] = (maxMag - minMag) / 2
	out[1] = mean
	out[2] = median
	out[3] = std
	out[4] = stat.Skew(mags, nil)
	out[5] = stat.ExKurtosis(mags, nil)
	out[6] = float64(beyond) / float64(n)
	out[7] = medianOf(absDev)
	if mean != 0 {
		out[8] = std / math.Abs(mean)
	}
	if median != 0 {
		out[9] = math.Max(math.Abs(maxMag-median), math.Abs(minMag-median)) / math.Abs(median)
	}
	out[10] = trend
	out[11] = eta
	out[12] = stat.Mean(lc.Errs, nil)

	for i, v := range out {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			out[i] = 0
		}
	}
	return out
}

// ExtractDataset computes the feature matrix of a dataset, one row per
// light curve in dataset order.
func (e *Extractor) ExtractDataset(ds *lightcurve.Dataset) (*mat.Dense, error) {
	if ds.Len() == 0 {
		return nil, errors.Wrap(errors.ErrEmptyData, "features.ExtractDataset")
	}
	X := mat.NewDense(ds.Len(), len(featureNames), nil)
	for i := 0; i < ds.Len(); i++ {
		X.SetRow(i, e.ExtractCurve(ds.Curve(i)))
	}
	return X, nil
}

func medianOf(x []float64) float64 {
	sorted := make([]float64, len(x))
	copy(sorted, x)
	sort.Float64s(sorted)
	return stat.Quantile(0.5, stat.Empirical, sorted, nil)
}
