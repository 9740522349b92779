package pipeline

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/skyseries/lcgo/classify"
	"github.com/skyseries/lcgo/pkg/errors"
)

func writeConf(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConf(t, `
global:
  dataLimit: 50
  trainFraction: 0.8
  seed: 7
load:
  format: ogle3
  path: /data/curves.csv
preprocess:
  remove: [-99.0]
  minLength: 10
search:
  folds: 3
  stratified: false
  metrics: [euclidean]
  shrinks: [0, 0.2]
serialize:
  outputDir: /tmp/out
`)
	conf, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if conf.Global.DataLimit != 50 || conf.Global.TrainFraction != 0.8 || conf.Global.Seed != 7 {
		t.Errorf("global = %+v", conf.Global)
	}
	if conf.Load.Format != "ogle3" || conf.Load.Path != "/data/curves.csv" {
		t.Errorf("load = %+v", conf.Load)
	}
	if len(conf.Preprocess.Remove) != 1 || conf.Preprocess.Remove[0] != -99.0 {
		t.Errorf("remove = %v", conf.Preprocess.Remove)
	}
	if conf.Preprocess.MinLength != 10 {
		t.Errorf("minLength = %d", conf.Preprocess.MinLength)
	}
	// Fields absent from the file keep their defaults.
	if conf.Preprocess.StdLimit != 5.0 || conf.Preprocess.ErrorLimit != 3.0 {
		t.Errorf("threshold defaults lost: %+v", conf.Preprocess)
	}
	if conf.Global.Places != 4 {
		t.Errorf("places default lost: %d", conf.Global.Places)
	}
	if conf.Search.NFolds != 3 || conf.Search.Stratified {
		t.Errorf("search = %+v", conf.Search)
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing conf file")
	}
}

func TestConfValidate(t *testing.T) {
	valid := func() *Conf {
		c := DefaultConf()
		c.Load.Format = "ogle3"
		c.Load.Path = "/data/curves.csv"
		c.Global.DataLimit = 10
		return c
	}

	tests := []struct {
		name   string
		mutate func(*Conf)
	}{
		{name: "Unknown format", mutate: func(c *Conf) { c.Load.Format = "sdss" }},
		{name: "Missing path", mutate: func(c *Conf) { c.Load.Path = "" }},
		{name: "Zero data limit", mutate: func(c *Conf) { c.Global.DataLimit = 0 }},
		{name: "Bad train fraction", mutate: func(c *Conf) { c.Global.TrainFraction = 1.5 }},
		{name: "Single fold", mutate: func(c *Conf) { c.Search.NFolds = 1 }},
		{name: "Empty metric grid", mutate: func(c *Conf) { c.Search.Metrics = nil }},
		{name: "Empty shrink grid", mutate: func(c *Conf) { c.Search.Shrinks = nil }},
		{name: "Zero min length", mutate: func(c *Conf) { c.Preprocess.MinLength = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			if err := c.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("valid conf rejected: %v", err)
	}
}

func TestConfValidateSkippedLoad(t *testing.T) {
	// With load skipped the format, path and data limit are not required.
	c := DefaultConf()
	c.Load.Skip = true
	if err := c.Validate(); err != nil {
		t.Errorf("skipped-load conf rejected: %v", err)
	}
}

func TestConfValidateReturnsConfigurationError(t *testing.T) {
	c := DefaultConf()
	c.Load.Format = "ogle3"
	c.Load.Path = ""
	c.Global.DataLimit = 10
	err := c.Validate()
	var confErr *errors.ConfigurationError
	if !errors.As(err, &confErr) {
		t.Errorf("want ConfigurationError, got %T: %v", err, err)
	}
}

func TestConfCandidates(t *testing.T) {
	c := DefaultConf()
	c.Search.Metrics = []string{classify.MetricEuclidean, classify.MetricManhattan}
	c.Search.Shrinks = []float64{0, 0.5}

	got := c.Candidates()
	if len(got) != 4 {
		t.Fatalf("got %d candidates, want 4", len(got))
	}
	want := classify.Candidate{Metric: classify.MetricManhattan, ShrinkThreshold: 0.5}
	found := false
	for _, cand := range got {
		if cand == want {
			found = true
		}
	}
	if !found {
		t.Errorf("grid %v lacks %v", got, want)
	}
}
