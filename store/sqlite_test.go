package store

import (
	"reflect"
	"testing"

	"github.com/skyseries/lcgo/lightcurve"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleDataset() *lightcurve.Dataset {
	ds := lightcurve.NewDataset(2)
	ds.Append(lightcurve.LightCurve{
		Label: "rrlyr",
		Times: []float64{1, 2, 3},
		Mags:  []float64{15.1, 15.2, 15.0},
		Errs:  []float64{0.02, 0.03, 0.02},
	})
	ds.Append(lightcurve.LightCurve{
		Label: "cep",
		Times: []float64{4, 5},
		Mags:  []float64{14.0, 14.1},
		Errs:  []float64{0.01, 0.01},
	})
	return ds
}

func TestStoreDatasetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	in := sampleDataset()
	if err := s.ReplaceDataset(TableRaw, in); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadDataset(TableRaw, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != in.Len() {
		t.Fatalf("got %d curves, want %d", out.Len(), in.Len())
	}
	if !reflect.DeepEqual(out.Labels, in.Labels) {
		t.Errorf("labels = %v, want %v", out.Labels, in.Labels)
	}
	for i := range in.Times {
		if !reflect.DeepEqual(out.Times[i], in.Times[i]) ||
			!reflect.DeepEqual(out.Mags[i], in.Mags[i]) ||
			!reflect.DeepEqual(out.Errs[i], in.Errs[i]) {
			t.Errorf("curve %d differs after round trip", i)
		}
	}
}

func TestStoreDatasetLimit(t *testing.T) {
	s := openTestStore(t)
	if err := s.ReplaceDataset(TableRaw, sampleDataset()); err != nil {
		t.Fatal(err)
	}
	out, err := s.LoadDataset(TableRaw, 1)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1 {
		t.Fatalf("got %d curves, want 1", out.Len())
	}
	// Insertion order: the first stored curve comes back first.
	if out.Labels[0] != "rrlyr" {
		t.Errorf("label = %q, want rrlyr", out.Labels[0])
	}
}

func TestStoreReplaceClears(t *testing.T) {
	s := openTestStore(t)
	if err := s.ReplaceDataset(TableClean, sampleDataset()); err != nil {
		t.Fatal(err)
	}
	single := lightcurve.NewDataset(1)
	single.Append(lightcurve.LightCurve{
		Label: "dsct",
		Times: []float64{9},
		Mags:  []float64{16},
		Errs:  []float64{0.05},
	})
	if err := s.ReplaceDataset(TableClean, single); err != nil {
		t.Fatal(err)
	}

	out, err := s.LoadDataset(TableClean, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 1 || out.Labels[0] != "dsct" {
		t.Errorf("replace did not clear: %v", out.Labels)
	}
}

func TestStoreUnlabeledRoundTrip(t *testing.T) {
	s := openTestStore(t)
	in := lightcurve.NewDataset(1)
	in.AppendUnlabeled([]float64{1}, []float64{2000}, []float64{1.5})
	if err := s.ReplaceDataset(TableRaw, in); err != nil {
		t.Fatal(err)
	}
	out, err := s.LoadDataset(TableRaw, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Labeled() {
		t.Error("unlabeled dataset gained labels through the store")
	}
	if out.Len() != 1 || out.Mags[0][0] != 2000 {
		t.Errorf("round trip lost data: %+v", out)
	}
}

func TestStoreUnknownTable(t *testing.T) {
	s := openTestStore(t)
	if err := s.ReplaceDataset("models", sampleDataset()); err == nil {
		t.Error("expected error for unknown table")
	}
	if _, err := s.LoadDataset("models", 0); err == nil {
		t.Error("expected error for unknown table")
	}
	if _, err := s.ClassHistogram("models"); err == nil {
		t.Error("expected error for unknown table")
	}
}

func TestStoreFeaturesRoundTrip(t *testing.T) {
	s := openTestStore(t)
	labels := []string{"rrlyr", "cep"}
	vectors := [][]float64{{1, 2, 3}, {4, 5, 6}}
	if err := s.ReplaceFeatures(labels, vectors); err != nil {
		t.Fatal(err)
	}

	gotVecs, gotLabels, err := s.SelectFeaturesLabels(0)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(gotVecs, vectors) {
		t.Errorf("vectors = %v, want %v", gotVecs, vectors)
	}
	if !reflect.DeepEqual(gotLabels, labels) {
		t.Errorf("labels = %v, want %v", gotLabels, labels)
	}

	// Limited read honors insertion order.
	limVecs, _, err := s.SelectFeaturesLabels(1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limVecs) != 1 || limVecs[0][0] != 1 {
		t.Errorf("limited vectors = %v", limVecs)
	}
}

func TestStoreFeaturesLabelMismatch(t *testing.T) {
	s := openTestStore(t)
	err := s.ReplaceFeatures([]string{"one"}, [][]float64{{1}, {2}})
	if err == nil {
		t.Error("expected error for label/vector length mismatch")
	}
}

func TestStoreClassHistogram(t *testing.T) {
	s := openTestStore(t)
	if err := s.ReplaceDataset(TableRaw, sampleDataset()); err != nil {
		t.Fatal(err)
	}
	hist, err := s.ClassHistogram(TableRaw)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]int{"rrlyr": 1, "cep": 1}
	if !reflect.DeepEqual(hist, want) {
		t.Errorf("histogram = %v, want %v", hist, want)
	}
}

func TestStoreFileBacked(t *testing.T) {
	path := t.TempDir() + "/staging.db"
	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.ReplaceDataset(TableRaw, sampleDataset()); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// A fresh handle sees the staged data.
	reopened, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = reopened.Close() }()
	out, err := reopened.LoadDataset(TableRaw, 0)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 2 {
		t.Errorf("got %d curves after reopen, want 2", out.Len())
	}
}
