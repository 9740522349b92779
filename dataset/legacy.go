package dataset

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

const legacyColumns = 3 // time, magnitude, error

// LegacyOGLE3Loader loads the per-object file layout: one whitespace
// delimited .dat file per light curve, class label taken from the third
// hyphen-delimited segment of the file name (lower-cased). Files whose names
// carry fewer than three segments are skipped with a warning, so the output
// may hold fewer curves than the limit.
type LegacyOGLE3Loader struct {
	Seed int64
}

// Format implements Loader.
func (l *LegacyOGLE3Loader) Format() string { return FormatOGLE3Legacy }

// Load implements Loader. path names a directory of .dat files.
func (l *LegacyOGLE3Loader) Load(path string, limit int) (*lightcurve.Dataset, error) {
	paths, err := datFiles(path)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.NewConfigurationErrorf("ogle3_legacy.Load",
			"no data files found in %s with ext dat", path)
	}

	selected, err := sampleIndices(newRand(l.Seed), len(paths), limit, "ogle3_legacy.Load")
	if err != nil {
		return nil, err
	}

	out := lightcurve.NewDataset(limit)
	for i, p := range paths {
		if _, ok := selected[i]; !ok {
			continue
		}
		name := filepath.Base(p)
		segments := strings.Split(name, "-")
		if len(segments) < 3 {
			errors.Warn(errors.NewSkippedFileWarning(p, "file name lacks a category segment"))
			continue
		}
		label := strings.ToLower(segments[2])

		rows, err := readMatrix(p, ' ', 0)
		if err != nil {
			return nil, err
		}
		times := make([]float64, len(rows))
		mags := make([]float64, len(rows))
		errs := make([]float64, len(rows))
		for j, row := range rows {
			if len(row) < legacyColumns {
				return nil, errors.NewDimensionError("ogle3_legacy.Load", legacyColumns, len(row), 1)
			}
			times[j] = row[0]
			mags[j] = row[1]
			errs[j] = row[2]
		}
		out.Append(lightcurve.LightCurve{Label: label, Times: times, Mags: mags, Errs: errs})
	}

	slog.Debug("loaded legacy OGLE3 dataset",
		lclog.FormatKey, FormatOGLE3Legacy,
		lclog.PathKey, path,
		lclog.CurvesKey, out.Len(),
		lclog.LimitKey, limit,
	)
	return out, nil
}

// datFiles lists the .dat files of a directory in name order.
func datFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read data directory %s", dir)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".dat") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}
