package dataset

import (
	"github.com/skyseries/lcgo/lightcurve"
)

// groupAccumulator folds a row-ordered scan into complete light curves by
// grouping consecutive rows that share an identity. Accumulator buffers are
// only kept for selected identities, which bounds peak memory to the sampled
// subset during a streaming load.
//
// The scan assumes all rows of one identity are contiguous in the input. An
// identity recurring after its group has closed would open a second group;
// the input formats guarantee this does not happen.
type groupAccumulator struct {
	selected map[string]struct{}
	out      *lightcurve.Dataset

	current string
	label   string
	open    bool
	times   []float64
	mags    []float64
	errs    []float64
}

func newGroupAccumulator(selected map[string]struct{}, out *lightcurve.Dataset) *groupAccumulator {
	return &groupAccumulator{selected: selected, out: out}
}

// Observe feeds one scanned row. When the identity changes the in-progress
// group is flushed and a new one begins, so output order equals first-flush
// order of identity groups in the file.
func (g *groupAccumulator) Observe(uid, label string, t, m, e float64) {
	if g.open && uid == g.current {
		if g.keep() {
			g.times = append(g.times, t)
			g.mags = append(g.mags, m)
			g.errs = append(g.errs, e)
		}
		return
	}

	g.Flush()
	g.current = uid
	g.open = true
	if g.keep() {
		g.label = label
		g.times = []float64{t}
		g.mags = []float64{m}
		g.errs = []float64{e}
	}
}

func (g *groupAccumulator) keep() bool {
	_, ok := g.selected[g.current]
	return ok
}

// Flush closes the in-progress group. It must also be called once after the
// scan ends, otherwise the final group of the file would be dropped.
func (g *groupAccumulator) Flush() {
	if g.open && g.keep() && len(g.times) > 0 {
		g.out.Append(lightcurve.LightCurve{
			Label: g.label,
			Times: g.times,
			Mags:  g.mags,
			Errs:  g.errs,
		})
	}
	g.open = false
	g.label = ""
	g.times = nil
	g.mags = nil
	g.errs = nil
}
