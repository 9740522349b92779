// Package preprocessing cleans loaded light curves before feature
// extraction. A curve passes through three sequential gates: a raw length
// check, a bogus-value filter and a statistical-outlier filter. Curves
// failing any gate are dropped with a classified reason; only aggregate
// tallies survive.
package preprocessing

import (
	"fmt"
	"log/slog"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/skyseries/lcgo/lightcurve"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

// Reason classifies why a light curve was rejected.
type Reason string

const (
	// ReasonNone marks an accepted curve.
	ReasonNone Reason = ""
	// ReasonInsufficient marks a curve too short to use at all.
	ReasonInsufficient Reason = "insufficient at start"
	// ReasonBogus marks a curve too short after removing bogus values.
	ReasonBogus Reason = "insufficient due to bogus data"
	// ReasonOutliers marks a curve too short after removing statistical
	// outliers.
	ReasonOutliers Reason = "insufficient due to statistical outliers"
)

// Default cleaning thresholds. The limits are global across formats; no call
// site has ever needed per-format values.
const (
	DefaultMinLength  = 80
	DefaultStdLimit   = 5.0
	DefaultErrorLimit = 3.0
)

// Cleaner applies the three-gate cleaning sequence.
type Cleaner struct {
	// Remove lists sentinel magnitude/error values marking bad
	// measurements, e.g. -99.0 in OGLE3 exports.
	Remove []float64

	// StdLimit is the magnitude deviation threshold in population standard
	// deviations.
	StdLimit float64

	// ErrorLimit scales the mean measurement error into an absolute error
	// ceiling.
	ErrorLimit float64

	// MinLength is the minimum usable series length after each gate.
	MinLength int
}

// NewCleaner returns a Cleaner with the given bogus sentinels and default
// thresholds.
func NewCleaner(remove []float64) *Cleaner {
	return &Cleaner{
		Remove:     remove,
		StdLimit:   DefaultStdLimit,
		ErrorLimit: DefaultErrorLimit,
		MinLength:  DefaultMinLength,
	}
}

// RemovedCounts reports how many points each filter discarded from a curve.
type RemovedCounts struct {
	Bogus    int
	Outliers int
}

// CleanCurve runs one light curve through the gates. An accepted curve
// returns its filtered series and ReasonNone; a rejected curve returns nil
// series and the classified reason.
func (c *Cleaner) CleanCurve(times, mags, errs []float64) ([]float64, []float64, []float64, Reason, RemovedCounts) {
	var removed RemovedCounts
	if len(times) < c.MinLength {
		return nil, nil, nil, ReasonInsufficient, removed
	}

	t, m, e := c.filterBogus(times, mags, errs)
	removed.Bogus = len(times) - len(t)
	if len(t) < c.MinLength {
		return nil, nil, nil, ReasonBogus, removed
	}

	ft, fm, fe := c.removeNoise(t, m, e)
	removed.Outliers = len(t) - len(ft)
	if len(ft) < c.MinLength {
		return nil, nil, nil, ReasonOutliers, removed
	}

	return ft, fm, fe, ReasonNone, removed
}

// filterBogus drops points whose magnitude or error is non-finite or equals
// one of the configured sentinel values.
func (c *Cleaner) filterBogus(times, mags, errs []float64) ([]float64, []float64, []float64) {
	t := make([]float64, 0, len(times))
	m := make([]float64, 0, len(mags))
	e := make([]float64, 0, len(errs))
	for i := range times {
		if c.bogus(mags[i]) || c.bogus(errs[i]) {
			continue
		}
		t = append(t, times[i])
		m = append(m, mags[i])
		e = append(e, errs[i])
	}
	return t, m, e
}

func (c *Cleaner) bogus(v float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return true
	}
	for _, r := range c.Remove {
		if v == r {
			return true
		}
	}
	return false
}

// removeNoise drops statistical outliers: points whose magnitude deviates
// from the mean by more than StdLimit population standard deviations, or
// whose error exceeds ErrorLimit times the mean error.
func (c *Cleaner) removeNoise(times, mags, errs []float64) ([]float64, []float64, []float64) {
	errMean := stat.Mean(errs, nil)
	errTolerance := c.ErrorLimit * errMean
	if errMean == 0 {
		errTolerance = c.ErrorLimit
	}
	magMean := stat.Mean(mags, nil)
	magStd := stat.PopStdDev(mags, nil)
	magTolerance := c.StdLimit * magStd

	t := make([]float64, 0, len(times))
	m := make([]float64, 0, len(mags))
	e := make([]float64, 0, len(errs))
	for i := range times {
		dev := mags[i] - magMean
		if dev*dev > magTolerance*magTolerance || errs[i] > errTolerance {
			continue
		}
		t = append(t, times[i])
		m = append(m, mags[i])
		e = append(e, errs[i])
	}
	return t, m, e
}

// Stats aggregates per-reason rejection tallies for one cleaning run.
type Stats struct {
	Total    int
	Accepted int
	Short    int
	Bogus    int
	Outliers int
}

// PassRate returns the accepted fraction formatted as a percentage.
func (s Stats) PassRate() string {
	return fmtPct(s.Accepted, s.Total)
}

// CleanDataset cleans every curve of a dataset and reports the aggregate
// pass and discard rates. The returned dataset holds only accepted curves
// with their filtered series.
func (c *Cleaner) CleanDataset(ds *lightcurve.Dataset) (*lightcurve.Dataset, Stats) {
	stats := Stats{Total: ds.Len()}
	out := lightcurve.NewDataset(ds.Len())
	for i := 0; i < ds.Len(); i++ {
		lc := ds.Curve(i)
		t, m, e, reason, _ := c.CleanCurve(lc.Times, lc.Mags, lc.Errs)
		switch reason {
		case ReasonNone:
			stats.Accepted++
			if ds.Labeled() {
				out.Append(lightcurve.LightCurve{Label: lc.Label, Times: t, Mags: m, Errs: e})
			} else {
				out.AppendUnlabeled(t, m, e)
			}
		case ReasonInsufficient:
			stats.Short++
		case ReasonBogus:
			stats.Bogus++
		case ReasonOutliers:
			stats.Outliers++
		}
	}

	slog.Info("cleaned dataset",
		lclog.CurvesKey, stats.Total,
		lclog.PassRateKey, stats.PassRate(),
		"short_rate", fmtPct(stats.Short, stats.Total),
		"bogus_rate", fmtPct(stats.Bogus, stats.Total),
		"outlier_rate", fmtPct(stats.Outliers, stats.Total),
	)
	return out, stats
}

// fmtPct formats num/denom as a percentage, guarding the empty case.
func fmtPct(num, denom int) string {
	if denom == 0 {
		return "0.00%"
	}
	return fmt.Sprintf("%.2f%%", 100*float64(num)/float64(denom))
}
