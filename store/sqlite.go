// Package store stages intermediate pipeline results in sqlite so that any
// stage can be skipped on a later run and resume from stored state. Series
// are kept as JSON-encoded columns; the store is a cache between stages, not
// a system of record.
package store

import (
	"database/sql"
	"encoding/json"

	_ "modernc.org/sqlite"

	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
)

// Staging table names.
const (
	TableRaw   = "raw_curves"
	TableClean = "clean_curves"
)

const schema = `
CREATE TABLE IF NOT EXISTS raw_curves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT NOT NULL,
	times TEXT NOT NULL,
	mags TEXT NOT NULL,
	errs TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS clean_curves (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT NOT NULL,
	times TEXT NOT NULL,
	mags TEXT NOT NULL,
	errs TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS features (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT NOT NULL,
	vector TEXT NOT NULL
);
`

// Store wraps the staging database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the staging database at path. Use
// ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "open staging db %s", path)
	}
	if path == ":memory:" {
		// Each pooled connection would otherwise see its own empty database.
		db.SetMaxOpenConns(1)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "ensure staging tables")
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

func curveTable(table string) error {
	if table != TableRaw && table != TableClean {
		return errors.NewValueError("store", "unknown curve table "+table)
	}
	return nil
}

// ReplaceDataset clears a curve table and writes the dataset into it.
func (s *Store) ReplaceDataset(table string, ds *lightcurve.Dataset) error {
	if err := curveTable(table); err != nil {
		return err
	}
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM " + table); err != nil {
		return errors.Wrapf(err, "clear %s", table)
	}
	stmt, err := tx.Prepare("INSERT INTO " + table + " (label, times, mags, errs) VALUES (?, ?, ?, ?)")
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer func() { _ = stmt.Close() }()

	for i := 0; i < ds.Len(); i++ {
		lc := ds.Curve(i)
		times, err := json.Marshal(lc.Times)
		if err != nil {
			return errors.Wrap(err, "encode times")
		}
		mags, err := json.Marshal(lc.Mags)
		if err != nil {
			return errors.Wrap(err, "encode mags")
		}
		errs, err := json.Marshal(lc.Errs)
		if err != nil {
			return errors.Wrap(err, "encode errs")
		}
		if _, err := stmt.Exec(lc.Label, string(times), string(mags), string(errs)); err != nil {
			return errors.Wrapf(err, "insert into %s", table)
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// LoadDataset reads at most limit curves from a curve table in insertion
// order. limit <= 0 reads everything.
func (s *Store) LoadDataset(table string, limit int) (*lightcurve.Dataset, error) {
	if err := curveTable(table); err != nil {
		return nil, err
	}
	q := "SELECT label, times, mags, errs FROM " + table + " ORDER BY id"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(q)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "select from %s", table)
	}
	defer func() { _ = rows.Close() }()

	out := lightcurve.NewDataset(0)
	unlabeled := true
	for rows.Next() {
		var label, timesJSON, magsJSON, errsJSON string
		if err := rows.Scan(&label, &timesJSON, &magsJSON, &errsJSON); err != nil {
			return nil, errors.Wrap(err, "scan curve row")
		}
		var times, mags, errVals []float64
		if err := json.Unmarshal([]byte(timesJSON), &times); err != nil {
			return nil, errors.Wrap(err, "decode times")
		}
		if err := json.Unmarshal([]byte(magsJSON), &mags); err != nil {
			return nil, errors.Wrap(err, "decode mags")
		}
		if err := json.Unmarshal([]byte(errsJSON), &errVals); err != nil {
			return nil, errors.Wrap(err, "decode errs")
		}
		if label != "" {
			unlabeled = false
		}
		out.Append(lightcurve.LightCurve{Label: label, Times: times, Mags: mags, Errs: errVals})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate curve rows")
	}
	if unlabeled {
		out.Labels = nil
	}
	return out, nil
}

// ReplaceFeatures clears the features table and writes one vector per curve.
// labels may be nil for unlabeled datasets.
func (s *Store) ReplaceFeatures(labels []string, vectors [][]float64) error {
	if labels != nil && len(labels) != len(vectors) {
		return errors.NewDimensionError("store.ReplaceFeatures", len(vectors), len(labels), 0)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return errors.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM features"); err != nil {
		return errors.Wrap(err, "clear features")
	}
	stmt, err := tx.Prepare("INSERT INTO features (label, vector) VALUES (?, ?)")
	if err != nil {
		return errors.Wrap(err, "prepare insert")
	}
	defer func() { _ = stmt.Close() }()

	for i, vec := range vectors {
		encoded, err := json.Marshal(vec)
		if err != nil {
			return errors.Wrap(err, "encode vector")
		}
		label := ""
		if labels != nil {
			label = labels[i]
		}
		if _, err := stmt.Exec(label, string(encoded)); err != nil {
			return errors.Wrap(err, "insert feature row")
		}
	}
	return errors.Wrap(tx.Commit(), "commit")
}

// SelectFeaturesLabels reads at most limit feature vectors with their labels
// in insertion order. limit <= 0 reads everything.
func (s *Store) SelectFeaturesLabels(limit int) ([][]float64, []string, error) {
	q := "SELECT label, vector FROM features ORDER BY id"
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.db.Query(q+" LIMIT ?", limit)
	} else {
		rows, err = s.db.Query(q)
	}
	if err != nil {
		return nil, nil, errors.Wrap(err, "select features")
	}
	defer func() { _ = rows.Close() }()

	var vectors [][]float64
	var labels []string
	for rows.Next() {
		var label, encoded string
		if err := rows.Scan(&label, &encoded); err != nil {
			return nil, nil, errors.Wrap(err, "scan feature row")
		}
		var vec []float64
		if err := json.Unmarshal([]byte(encoded), &vec); err != nil {
			return nil, nil, errors.Wrap(err, "decode vector")
		}
		vectors = append(vectors, vec)
		labels = append(labels, label)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "iterate feature rows")
	}
	return vectors, labels, nil
}

// ClassHistogram counts stored curves per class label.
func (s *Store) ClassHistogram(table string) (map[string]int, error) {
	if err := curveTable(table); err != nil {
		return nil, err
	}
	rows, err := s.db.Query("SELECT label, COUNT(*) FROM " + table + " GROUP BY label")
	if err != nil {
		return nil, errors.Wrapf(err, "histogram of %s", table)
	}
	defer func() { _ = rows.Close() }()

	hist := make(map[string]int)
	for rows.Next() {
		var label string
		var count int
		if err := rows.Scan(&label, &count); err != nil {
			return nil, errors.Wrap(err, "scan histogram row")
		}
		hist[label] = count
	}
	return hist, errors.Wrap(rows.Err(), "iterate histogram rows")
}
