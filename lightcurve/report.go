package lightcurve

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// SizeReport summarizes the distribution of series lengths in a dataset.
type SizeReport struct {
	Curves  int
	Min     int
	Max     int
	Mean    float64
	Std     float64
	Labeled int
}

// ReportSizes computes the size distribution of a dataset's light curves.
func ReportSizes(d *Dataset) SizeReport {
	r := SizeReport{Curves: d.Len(), Labeled: len(d.Labels)}
	if d.Len() == 0 {
		return r
	}
	sizes := make([]float64, d.Len())
	r.Min = math.MaxInt
	for i, t := range d.Times {
		sizes[i] = float64(len(t))
		if len(t) < r.Min {
			r.Min = len(t)
		}
		if len(t) > r.Max {
			r.Max = len(t)
		}
	}
	r.Mean = stat.Mean(sizes, nil)
	r.Std = stat.PopStdDev(sizes, nil)
	return r
}

// ClassHistogram counts the light curves per class label.
func ClassHistogram(labels []string) map[string]int {
	hist := make(map[string]int, 8)
	for _, l := range labels {
		hist[l]++
	}
	return hist
}

// SortedClasses returns the histogram's class names in lexical order.
func SortedClasses(hist map[string]int) []string {
	classes := make([]string, 0, len(hist))
	for c := range hist {
		classes = append(classes, c)
	}
	sort.Strings(classes)
	return classes
}
