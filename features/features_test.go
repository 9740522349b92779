package features

import (
	"math"
	"testing"

	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestExtractorNames(t *testing.T) {
	e := NewExtractor()
	names := e.Names()
	if len(names) != e.NumFeatures() {
		t.Fatalf("len(Names()) = %d, NumFeatures() = %d", len(names), e.NumFeatures())
	}
	if names[0] != "amplitude" || names[len(names)-1] != "mean_error" {
		t.Errorf("unexpected name ordering: %v", names)
	}
	// Names must return a copy; mutating it must not corrupt later calls.
	names[0] = "mutated"
	if e.Names()[0] != "amplitude" {
		t.Error("Names() exposes internal slice")
	}
}

func TestExtractCurveKnownValues(t *testing.T) {
	e := NewExtractor()
	lc := lightcurve.LightCurve{
		Times: []float64{0, 1, 2, 3},
		Mags:  []float64{14, 15, 16, 17},
		Errs:  []float64{0.1, 0.2, 0.3, 0.4},
	}
	v := e.ExtractCurve(lc)

	if len(v) != e.NumFeatures() {
		t.Fatalf("vector length = %d, want %d", len(v), e.NumFeatures())
	}
	if !almostEqual(v[0], 1.5, 1e-12) {
		t.Errorf("amplitude = %v, want 1.5", v[0])
	}
	if !almostEqual(v[1], 15.5, 1e-12) {
		t.Errorf("mean = %v, want 15.5", v[1])
	}
	// Population std of {14,15,16,17} is sqrt(1.25).
	if !almostEqual(v[3], math.Sqrt(1.25), 1e-12) {
		t.Errorf("std = %v, want %v", v[3], math.Sqrt(1.25))
	}
	// Magnitudes increase by one per unit time.
	if !almostEqual(v[10], 1.0, 1e-9) {
		t.Errorf("linear_trend = %v, want 1", v[10])
	}
	if !almostEqual(v[12], 0.25, 1e-12) {
		t.Errorf("mean_error = %v, want 0.25", v[12])
	}
}

func TestExtractCurveConstantSeries(t *testing.T) {
	// Zero-variance input: skew, kurtosis and eta are undefined and must
	// come out as finite zeros, not NaN.
	e := NewExtractor()
	lc := lightcurve.LightCurve{
		Times: []float64{0, 1, 2},
		Mags:  []float64{15, 15, 15},
		Errs:  []float64{0.1, 0.1, 0.1},
	}
	v := e.ExtractCurve(lc)
	for i, f := range v {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			t.Errorf("feature %d is non-finite: %v", i, f)
		}
	}
	if v[0] != 0 {
		t.Errorf("amplitude = %v, want 0", v[0])
	}
	if v[3] != 0 {
		t.Errorf("std = %v, want 0", v[3])
	}
}

func TestExtractCurveEmpty(t *testing.T) {
	e := NewExtractor()
	v := e.ExtractCurve(lightcurve.LightCurve{})
	if len(v) != e.NumFeatures() {
		t.Fatalf("vector length = %d, want %d", len(v), e.NumFeatures())
	}
	for i, f := range v {
		if f != 0 {
			t.Errorf("feature %d = %v, want 0 for empty curve", i, f)
		}
	}
}

func TestExtractCurveBeyond1Std(t *testing.T) {
	e := NewExtractor()
	// {-1, -1, 1, 1} has mean 0 and population std 1, so no point lies
	// strictly beyond one std.
	lc := lightcurve.LightCurve{
		Times: []float64{0, 1, 2, 3},
		Mags:  []float64{-1, -1, 1, 1},
		Errs:  []float64{0.1, 0.1, 0.1, 0.1},
	}
	v := e.ExtractCurve(lc)
	if v[6] != 0 {
		t.Errorf("beyond1std = %v, want 0", v[6])
	}
}

func TestExtractDataset(t *testing.T) {
	e := NewExtractor()
	ds := lightcurve.NewDataset(2)
	ds.Append(lightcurve.LightCurve{
		Label: "rrlyr",
		Times: []float64{0, 1, 2},
		Mags:  []float64{14, 15, 16},
		Errs:  []float64{0.1, 0.1, 0.1},
	})
	ds.Append(lightcurve.LightCurve{
		Label: "cep",
		Times: []float64{0, 1, 2},
		Mags:  []float64{10, 10, 10},
		Errs:  []float64{0.2, 0.2, 0.2},
	})

	X, err := e.ExtractDataset(ds)
	if err != nil {
		t.Fatal(err)
	}
	r, c := X.Dims()
	if r != 2 || c != e.NumFeatures() {
		t.Fatalf("dims = %dx%d, want 2x%d", r, c, e.NumFeatures())
	}
	// Row order follows dataset order: first curve has mean 15, second 10.
	if !almostEqual(X.At(0, 1), 15, 1e-12) || !almostEqual(X.At(1, 1), 10, 1e-12) {
		t.Errorf("mean column = %v, %v", X.At(0, 1), X.At(1, 1))
	}
}

func TestExtractDatasetEmpty(t *testing.T) {
	e := NewExtractor()
	_, err := e.ExtractDataset(lightcurve.NewDataset(0))
	if err == nil {
		t.Fatal("expected error for empty dataset")
	}
	if !errors.Is(err, errors.ErrEmptyData) {
		t.Errorf("want ErrEmptyData, got %v", err)
	}
}
