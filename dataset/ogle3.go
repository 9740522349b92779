package dataset

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

// OGLE3 CSV layout: one header row, then
// 0=HJD, 1=MAGNITUDE, 2=ERROR, 3=FIELD, 4=LABEL, 5=ID, 6=MAGNITUDE_BAND.
const (
	ogle3ColTime  = 0
	ogle3ColMag   = 1
	ogle3ColErr   = 2
	ogle3ColField = 3
	ogle3ColLabel = 4
	ogle3ColID    = 5
	ogle3ColBand  = 6
	ogle3Columns  = 7
	ogle3SkipRows = 1
)

// ogle3UID derives the identity of the light curve a row belongs to. Each
// OGLE3 curve is uniquely defined by the combination of field, category, id
// and band.
func ogle3UID(path string, line int, row []string) (string, error) {
	if len(row) < ogle3Columns {
		return "", errors.NewMalformedRowError(path, line, "row", errors.Newf("want %d columns, got %d", ogle3Columns, len(row)))
	}
	id, err := strconv.Atoi(strings.TrimSpace(row[ogle3ColID]))
	if err != nil {
		return "", errors.NewMalformedRowError(path, line, "id", err)
	}
	return fmt.Sprintf("%s_%s_%d_%s",
		strings.ToLower(strings.TrimSpace(row[ogle3ColField])),
		strings.ToLower(strings.TrimSpace(row[ogle3ColLabel])),
		id,
		strings.ToLower(strings.TrimSpace(row[ogle3ColBand]))), nil
}

// OGLE3Loader loads the single-CSV OGLE3 layout. Rows of one curve are
// contiguous, so the load streams twice: a first pass collects the identity
// universe for sampling, a second pass aggregates only the selected
// identities. Peak memory is bounded by the selected curves, not the file.
type OGLE3Loader struct {
	Seed int64
}

// Format implements Loader.
func (l *OGLE3Loader) Format() string { return FormatOGLE3 }

// Load implements Loader.
func (l *OGLE3Loader) Load(path string, limit int) (*lightcurve.Dataset, error) {
	uids, rows, err := l.scanIdentities(path)
	if err != nil {
		return nil, err
	}

	selected, err := sampleStrings(newRand(l.Seed), uids, limit, "ogle3.Load")
	if err != nil {
		return nil, err
	}

	out := lightcurve.NewDataset(limit)
	agg := newGroupAccumulator(selected, out)
	if err := l.aggregate(path, agg); err != nil {
		return nil, err
	}

	slog.Debug("loaded OGLE3 dataset",
		lclog.FormatKey, FormatOGLE3,
		lclog.PathKey, path,
		lclog.RowsKey, rows,
		lclog.CurvesKey, out.Len(),
		lclog.LimitKey, limit,
	)
	return out, nil
}

// scanIdentities streams the file once, returning the distinct identities in
// first-appearance order plus the row count.
func (l *OGLE3Loader) scanIdentities(path string) ([]string, int, error) {
	s, err := OpenRows(path, ogle3SkipRows)
	if err != nil {
		return nil, 0, err
	}
	defer func() { _ = s.Close() }()

	var uids []string
	seen := make(map[string]struct{})
	rows := 0
	for s.Scan() {
		rows++
		uid, err := ogle3UID(path, s.Line(), s.Row())
		if err != nil {
			return nil, 0, err
		}
		if _, ok := seen[uid]; !ok {
			seen[uid] = struct{}{}
			uids = append(uids, uid)
		}
	}
	if err := s.Err(); err != nil {
		return nil, 0, err
	}
	return uids, rows, nil
}

// aggregate streams the file a second time, folding rows of the selected
// identities into complete light curves.
func (l *OGLE3Loader) aggregate(path string, agg *groupAccumulator) error {
	s, err := OpenRows(path, ogle3SkipRows)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	for s.Scan() {
		row := s.Row()
		uid, err := ogle3UID(path, s.Line(), row)
		if err != nil {
			return err
		}
		t, err := fieldFloat(path, s.Line(), row, ogle3ColTime, "time")
		if err != nil {
			return err
		}
		m, err := fieldFloat(path, s.Line(), row, ogle3ColMag, "magnitude")
		if err != nil {
			return err
		}
		e, err := fieldFloat(path, s.Line(), row, ogle3ColErr, "error")
		if err != nil {
			return err
		}
		agg.Observe(uid, strings.ToLower(strings.TrimSpace(row[ogle3ColLabel])), t, m, e)
	}
	if err := s.Err(); err != nil {
		return err
	}
	agg.Flush()
	return nil
}
