// Package lightcurve defines the core data model shared by every loader and
// pipeline stage: a light curve is a class label plus three parallel series
// of observation times, magnitudes and measurement errors, and a dataset is
// a collection of light curves held as parallel slices.
package lightcurve

import (
	"github.com/skyseries/lcgo/pkg/errors"
)

// LightCurve is the brightness record of one astronomical object (or one
// object+band combination). The three series are index-aligned and preserve
// source file order; chronological ordering is inherited, not enforced.
type LightCurve struct {
	Label string
	Times []float64
	Mags  []float64
	Errs  []float64
}

// Len returns the number of observation points.
func (lc *LightCurve) Len() int {
	return len(lc.Times)
}

// Validate checks the parallel-series invariant.
func (lc *LightCurve) Validate() error {
	if len(lc.Mags) != len(lc.Times) {
		return errors.NewDimensionError("LightCurve.Validate", len(lc.Times), len(lc.Mags), 0)
	}
	if len(lc.Errs) != len(lc.Times) {
		return errors.NewDimensionError("LightCurve.Validate", len(lc.Times), len(lc.Errs), 0)
	}
	return nil
}

// Dataset holds N light curves as four parallel slices. Labels may be empty
// for unlabeled formats (K2); otherwise len(Labels) == len(Times).
type Dataset struct {
	Labels []string
	Times  [][]float64
	Mags   [][]float64
	Errs   [][]float64
}

// NewDataset returns an empty dataset with capacity for n curves.
func NewDataset(n int) *Dataset {
	return &Dataset{
		Labels: make([]string, 0, n),
		Times:  make([][]float64, 0, n),
		Mags:   make([][]float64, 0, n),
		Errs:   make([][]float64, 0, n),
	}
}

// Len returns the number of light curves.
func (d *Dataset) Len() int {
	return len(d.Times)
}

// Append adds one light curve to the dataset.
func (d *Dataset) Append(lc LightCurve) {
	d.Labels = append(d.Labels, lc.Label)
	d.Times = append(d.Times, lc.Times)
	d.Mags = append(d.Mags, lc.Mags)
	d.Errs = append(d.Errs, lc.Errs)
}

// AppendUnlabeled adds one light curve without a class label. Used by
// formats that carry no label column.
func (d *Dataset) AppendUnlabeled(times, mags, errs []float64) {
	d.Times = append(d.Times, times)
	d.Mags = append(d.Mags, mags)
	d.Errs = append(d.Errs, errs)
}

// Curve returns the i-th light curve. The returned value shares backing
// arrays with the dataset.
func (d *Dataset) Curve(i int) LightCurve {
	lc := LightCurve{
		Times: d.Times[i],
		Mags:  d.Mags[i],
		Errs:  d.Errs[i],
	}
	if i < len(d.Labels) {
		lc.Label = d.Labels[i]
	}
	return lc
}

// Labeled reports whether the dataset carries class labels.
func (d *Dataset) Labeled() bool {
	return len(d.Labels) > 0
}

// Validate checks the parallel-slice invariants across the whole dataset.
func (d *Dataset) Validate() error {
	n := len(d.Times)
	if len(d.Mags) != n {
		return errors.NewDimensionError("Dataset.Validate", n, len(d.Mags), 0)
	}
	if len(d.Errs) != n {
		return errors.NewDimensionError("Dataset.Validate", n, len(d.Errs), 0)
	}
	if len(d.Labels) != 0 && len(d.Labels) != n {
		return errors.NewDimensionError("Dataset.Validate", n, len(d.Labels), 0)
	}
	for i := 0; i < n; i++ {
		lc := d.Curve(i)
		if err := lc.Validate(); err != nil {
			return err
		}
	}
	return nil
}
