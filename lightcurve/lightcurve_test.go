package lightcurve

import (
	"reflect"
	"testing"
)

func TestLightCurveValidate(t *testing.T) {
	tests := []struct {
		name    string
		lc      LightCurve
		wantErr bool
	}{
		{
			name: "Aligned series",
			lc: LightCurve{
				Times: []float64{1, 2},
				Mags:  []float64{10, 11},
				Errs:  []float64{0.1, 0.2},
			},
		},
		{
			name: "Empty curve",
			lc:   LightCurve{},
		},
		{
			name: "Short mags",
			lc: LightCurve{
				Times: []float64{1, 2},
				Mags:  []float64{10},
				Errs:  []float64{0.1, 0.2},
			},
			wantErr: true,
		},
		{
			name: "Short errs",
			lc: LightCurve{
				Times: []float64{1, 2},
				Mags:  []float64{10, 11},
				Errs:  []float64{0.1},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDatasetAppendAndCurve(t *testing.T) {
	ds := NewDataset(2)
	ds.Append(LightCurve{
		Label: "rrlyr",
		Times: []float64{1, 2},
		Mags:  []float64{10, 11},
		Errs:  []float64{0.1, 0.2},
	})
	ds.Append(LightCurve{
		Label: "cep",
		Times: []float64{3},
		Mags:  []float64{12},
		Errs:  []float64{0.3},
	})

	if ds.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", ds.Len())
	}
	if !ds.Labeled() {
		t.Error("Labeled() = false")
	}
	got := ds.Curve(1)
	if got.Label != "cep" || got.Len() != 1 || got.Mags[0] != 12 {
		t.Errorf("Curve(1) = %+v", got)
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDatasetUnlabeled(t *testing.T) {
	ds := NewDataset(1)
	ds.AppendUnlabeled([]float64{1}, []float64{10}, []float64{0.1})

	if ds.Labeled() {
		t.Error("Labeled() = true for unlabeled dataset")
	}
	if ds.Curve(0).Label != "" {
		t.Errorf("Curve(0).Label = %q, want empty", ds.Curve(0).Label)
	}
	if err := ds.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestDatasetValidateMixedLabels(t *testing.T) {
	// A partially labeled dataset violates the parallel-slice invariant.
	ds := NewDataset(2)
	ds.Append(LightCurve{Label: "rrlyr", Times: []float64{1}, Mags: []float64{10}, Errs: []float64{0.1}})
	ds.AppendUnlabeled([]float64{2}, []float64{11}, []float64{0.2})

	if err := ds.Validate(); err == nil {
		t.Error("expected error for partial labels")
	}
}

func TestReportSizes(t *testing.T) {
	ds := NewDataset(3)
	for _, n := range []int{2, 4, 6} {
		times := make([]float64, n)
		ds.Append(LightCurve{Label: "x", Times: times, Mags: make([]float64, n), Errs: make([]float64, n)})
	}
	r := ReportSizes(ds)
	if r.Curves != 3 || r.Min != 2 || r.Max != 6 {
		t.Errorf("report = %+v", r)
	}
	if r.Mean != 4 {
		t.Errorf("mean = %v, want 4", r.Mean)
	}
}

func TestReportSizesEmpty(t *testing.T) {
	r := ReportSizes(NewDataset(0))
	if r.Curves != 0 || r.Min != 0 || r.Max != 0 {
		t.Errorf("empty report = %+v", r)
	}
}

func TestClassHistogram(t *testing.T) {
	hist := ClassHistogram([]string{"rrlyr", "cep", "rrlyr"})
	want := map[string]int{"rrlyr": 2, "cep": 1}
	if !reflect.DeepEqual(hist, want) {
		t.Errorf("histogram = %v, want %v", hist, want)
	}
}

func TestSortedClasses(t *testing.T) {
	got := SortedClasses(map[string]int{"rrlyr": 1, "cep": 2, "dsct": 3})
	want := []string{"cep", "dsct", "rrlyr"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("classes = %v, want %v", got, want)
	}
}
