package dataset

import (
	"log/slog"
	"strings"

	"github.com/skyseries/lcgo/lightcurve"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

// MACHO CSV layout: one header row, then at least nine columns of which
// 0=classification, 4=date_observed, 5=red_magnitude, 6=red_error,
// 7=blue_magnitude, 8=blue_error are used.
const (
	machoColClass   = 0
	machoColTime    = 4
	machoColRedMag  = 5
	machoColRedErr  = 6
	machoColBlueMag = 7
	machoColBlueErr = 8
	machoSkipRows   = 1
)

// MACHOLoader loads the dual-band MACHO layout. Sampling selects row indices
// directly rather than per-object identities, so each sampled row becomes an
// independent single-point pseudo-curve, emitted once for the red band and
// once for the blue band: the output holds the red half first, then the blue
// half, with labels and times repeated across the halves. This is a
// documented structural simplification versus the OGLE3 per-object grouping,
// preserved because downstream consumers depend on the doubled layout.
type MACHOLoader struct {
	Seed int64
}

// Format implements Loader.
func (l *MACHOLoader) Format() string { return FormatMACHO }

// Load implements Loader.
func (l *MACHOLoader) Load(path string, limit int) (*lightcurve.Dataset, error) {
	rows, err := l.countRows(path)
	if err != nil {
		return nil, err
	}
	selected, err := sampleIndices(newRand(l.Seed), rows, limit, "macho.Load")
	if err != nil {
		return nil, err
	}

	s, err := OpenRows(path, machoSkipRows)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	labels := make([]string, 0, limit)
	times := make([]float64, 0, limit)
	redMags := make([]float64, 0, limit)
	redErrs := make([]float64, 0, limit)
	blueMags := make([]float64, 0, limit)
	blueErrs := make([]float64, 0, limit)

	idx := 0
	for s.Scan() {
		i := idx
		idx++
		if _, ok := selected[i]; !ok {
			continue
		}
		row := s.Row()
		t, err := fieldFloat(path, s.Line(), row, machoColTime, "date_observed")
		if err != nil {
			return nil, err
		}
		rm, err := fieldFloat(path, s.Line(), row, machoColRedMag, "red_magnitude")
		if err != nil {
			return nil, err
		}
		re, err := fieldFloat(path, s.Line(), row, machoColRedErr, "red_error")
		if err != nil {
			return nil, err
		}
		bm, err := fieldFloat(path, s.Line(), row, machoColBlueMag, "blue_magnitude")
		if err != nil {
			return nil, err
		}
		be, err := fieldFloat(path, s.Line(), row, machoColBlueErr, "blue_error")
		if err != nil {
			return nil, err
		}
		labels = append(labels, strings.TrimSpace(row[machoColClass]))
		times = append(times, t)
		redMags = append(redMags, rm)
		redErrs = append(redErrs, re)
		blueMags = append(blueMags, bm)
		blueErrs = append(blueErrs, be)
	}
	if err := s.Err(); err != nil {
		return nil, err
	}

	// Red half first, then blue, labels and times tiled across both halves.
	out := lightcurve.NewDataset(2 * len(labels))
	for i := range labels {
		out.Append(lightcurve.LightCurve{
			Label: labels[i],
			Times: []float64{times[i]},
			Mags:  []float64{redMags[i]},
			Errs:  []float64{redErrs[i]},
		})
	}
	for i := range labels {
		out.Append(lightcurve.LightCurve{
			Label: labels[i],
			Times: []float64{times[i]},
			Mags:  []float64{blueMags[i]},
			Errs:  []float64{blueErrs[i]},
		})
	}

	slog.Debug("loaded MACHO dataset",
		lclog.FormatKey, FormatMACHO,
		lclog.PathKey, path,
		lclog.RowsKey, rows,
		lclog.CurvesKey, out.Len(),
		lclog.LimitKey, limit,
	)
	return out, nil
}

// countRows streams the file once to size the sampling universe.
func (l *MACHOLoader) countRows(path string) (int, error) {
	s, err := OpenRows(path, machoSkipRows)
	if err != nil {
		return 0, err
	}
	defer func() { _ = s.Close() }()

	n := 0
	for s.Scan() {
		n++
	}
	if err := s.Err(); err != nil {
		return 0, err
	}
	return n, nil
}
