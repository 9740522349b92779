// Package report renders run summaries: class histograms as text tables and
// PNG bar charts, dataset size distributions and model-selection grids.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"text/tabwriter"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/skyseries/lcgo/classify"
	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
)

// HistogramTable formats a class histogram as an aligned text table with a
// per-class share column.
func HistogramTable(hist map[string]int) string {
	total := 0
	for _, n := range hist {
		total += n
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "class\tcount\tshare")
	for _, class := range lightcurve.SortedClasses(hist) {
		name := class
		if name == "" {
			name = "(unlabeled)"
		}
		share := 0.0
		if total > 0 {
			share = 100 * float64(hist[class]) / float64(total)
		}
		fmt.Fprintf(w, "%s\t%d\t%.2f%%\n", name, hist[class], share)
	}
	fmt.Fprintf(w, "total\t%d\t\n", total)
	_ = w.Flush()
	return buf.String()
}

// SaveHistogramPNG renders the class histogram as a bar chart.
func SaveHistogramPNG(hist map[string]int, path string) error {
	classes := lightcurve.SortedClasses(hist)
	if len(classes) == 0 {
		return errors.Wrap(errors.ErrEmptyData, "report.SaveHistogramPNG")
	}
	values := make(plotter.Values, len(classes))
	for i, c := range classes {
		values[i] = float64(hist[c])
	}

	p := plot.New()
	p.Title.Text = "Class histogram"
	p.Y.Label.Text = "light curves"

	bars, err := plotter.NewBarChart(values, vg.Points(24))
	if err != nil {
		return errors.Wrap(err, "build bar chart")
	}
	p.Add(bars)
	p.NominalX(classes...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return errors.Wrapf(err, "save histogram plot %s", path)
	}
	return nil
}

// SizeTable formats a dataset size report.
func SizeTable(r lightcurve.SizeReport) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "curves\tmin\tmean\tstd\tmax")
	fmt.Fprintf(w, "%d\t%d\t%.2f\t%.2f\t%d\n", r.Curves, r.Min, r.Mean, r.Std, r.Max)
	_ = w.Flush()
	return buf.String()
}

// SelectionTable formats the model-selection grid ranked by mean CV
// accuracy, best candidate first. places controls rounding.
func SelectionTable(scores []classify.CandidateScore, places int) string {
	ranked := make([]classify.CandidateScore, len(scores))
	copy(ranked, scores)
	for i := 1; i < len(ranked); i++ {
		for j := i; j > 0 && ranked[j].Mean > ranked[j-1].Mean; j-- {
			ranked[j], ranked[j-1] = ranked[j-1], ranked[j]
		}
	}

	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "rank\tcandidate\tmean accuracy\tstd")
	for i, s := range ranked {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i,
			s.Candidate.String(),
			strconv.FormatFloat(s.Mean, 'f', places, 64),
			strconv.FormatFloat(s.Std, 'f', places, 64))
	}
	_ = w.Flush()
	return buf.String()
}
