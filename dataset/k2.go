package dataset

import (
	"log/slog"

	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

// K2 CSV layout: one header row, then at least ten numeric columns of which
// 0=TIME, 7=PDCSAP_FLUX, 8=PDCSAP_FLUX_ERR, 9=SAP_QUALITY are used.
const (
	k2ColTime    = 0
	k2ColFlux    = 7
	k2ColFluxErr = 8
	k2ColQuality = 9
	k2Columns    = 10
	k2SkipRows   = 1
)

// K2Loader loads Kepler K2 cadence data. Rows with a nonzero SAP_QUALITY
// flag are discarded before sampling, so the limit applies to the filtered
// population. The format carries no class column; the returned dataset is
// unlabeled and each sampled cadence becomes a single-point curve.
type K2Loader struct {
	Seed int64
}

// Format implements Loader.
func (l *K2Loader) Format() string { return FormatK2 }

// Load implements Loader.
func (l *K2Loader) Load(path string, limit int) (*lightcurve.Dataset, error) {
	rows, err := readMatrix(path, ',', k2SkipRows)
	if err != nil {
		return nil, err
	}

	var good []int
	for i, row := range rows {
		if len(row) < k2Columns {
			return nil, errors.NewDimensionError("k2.Load", k2Columns, len(row), 1)
		}
		if row[k2ColQuality] == 0 {
			good = append(good, i)
		}
	}

	selected, err := sampleIndices(newRand(l.Seed), len(good), limit, "k2.Load")
	if err != nil {
		return nil, err
	}

	out := lightcurve.NewDataset(limit)
	for gi, ri := range good {
		if _, ok := selected[gi]; !ok {
			continue
		}
		row := rows[ri]
		out.AppendUnlabeled(
			[]float64{row[k2ColTime]},
			[]float64{row[k2ColFlux]},
			[]float64{row[k2ColFluxErr]},
		)
	}

	slog.Debug("loaded K2 dataset",
		lclog.FormatKey, FormatK2,
		lclog.PathKey, path,
		lclog.RowsKey, len(rows),
		lclog.CurvesKey, out.Len(),
		lclog.LimitKey, limit,
	)
	return out, nil
}
