package pipeline

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/skyseries/lcgo/classify"
	"github.com/skyseries/lcgo/dataset"
	"github.com/skyseries/lcgo/pkg/errors"
	"github.com/skyseries/lcgo/preprocessing"
)

// Conf is the YAML pipeline configuration. Every stage block carries a skip
// flag so a run can resume from previously staged results.
type Conf struct {
	Global     GlobalConf     `yaml:"global"`
	Load       LoadConf       `yaml:"load"`
	Preprocess PreprocessConf `yaml:"preprocess"`
	Extract    ExtractConf    `yaml:"extract"`
	Search     SearchConf     `yaml:"search"`
	Serialize  SerializeConf  `yaml:"serialize"`
}

// GlobalConf holds run-wide parameters.
type GlobalConf struct {
	// DataLimit caps the number of light curves a run works with, both at
	// load time and when selecting staged features. Zero means unbounded
	// for staged reads but is invalid for a load.
	DataLimit int `yaml:"dataLimit"`

	// TrainFraction is the train share of the train/test split. 1 keeps
	// everything in train and skips held-out evaluation.
	TrainFraction float64 `yaml:"trainFraction"`

	// Seed drives subsampling, splitting and fold shuffling. Zero seeds
	// from the clock.
	Seed int64 `yaml:"seed"`

	// Places is the rounding used in report tables.
	Places int `yaml:"places"`

	// DBPath locates the staging database. Empty means in-memory.
	DBPath string `yaml:"dbPath"`
}

// LoadConf configures the dataset loading stage.
type LoadConf struct {
	Skip   bool   `yaml:"skip"`
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

// PreprocessConf configures the cleaning stage.
type PreprocessConf struct {
	Skip       bool      `yaml:"skip"`
	Remove     []float64 `yaml:"remove"`
	StdLimit   float64   `yaml:"stdLimit"`
	ErrorLimit float64   `yaml:"errorLimit"`
	MinLength  int       `yaml:"minLength"`
}

// ExtractConf configures the feature-extraction stage.
type ExtractConf struct {
	Skip bool `yaml:"skip"`
}

// SearchConf configures k-fold model selection.
type SearchConf struct {
	NFolds     int  `yaml:"folds"`
	Stratified bool `yaml:"stratified"`

	// Metrics and Shrinks span the candidate grid; every combination is
	// scored.
	Metrics []string  `yaml:"metrics"`
	Shrinks []float64 `yaml:"shrinks"`
}

// SerializeConf configures result serialization.
type SerializeConf struct {
	Skip      bool   `yaml:"skip"`
	OutputDir string `yaml:"outputDir"`
}

// DefaultConf returns a Conf with the defaults applied before YAML
// decoding.
func DefaultConf() *Conf {
	return &Conf{
		Global: GlobalConf{
			TrainFraction: 0.75,
			Places:        4,
		},
		Preprocess: PreprocessConf{
			StdLimit:   preprocessing.DefaultStdLimit,
			ErrorLimit: preprocessing.DefaultErrorLimit,
			MinLength:  preprocessing.DefaultMinLength,
		},
		Search: SearchConf{
			NFolds:     5,
			Stratified: true,
			Metrics:    []string{classify.MetricEuclidean, classify.MetricManhattan},
			Shrinks:    []float64{0, 0.1, 0.5},
		},
	}
}

// LoadFile reads and validates a YAML pipeline configuration.
func LoadFile(path string) (*Conf, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read conf %s", path)
	}
	conf := DefaultConf()
	if err := yaml.Unmarshal(raw, conf); err != nil {
		return nil, errors.Wrapf(err, "parse conf %s", path)
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

// Validate checks cross-field constraints.
func (c *Conf) Validate() error {
	if !c.Load.Skip {
		if _, err := dataset.New(c.Load.Format, 0); err != nil {
			return err
		}
		if c.Load.Path == "" {
			return errors.NewConfigurationError("pipeline.Conf", "load.path is required")
		}
		if c.Global.DataLimit <= 0 {
			return errors.NewConfigurationError("pipeline.Conf", "global.dataLimit must be positive for a load")
		}
	}
	if c.Global.TrainFraction <= 0 || c.Global.TrainFraction > 1 {
		return errors.NewConfigurationErrorf("pipeline.Conf",
			"global.trainFraction %g outside (0, 1]", c.Global.TrainFraction)
	}
	if c.Search.NFolds < 2 {
		return errors.NewConfigurationErrorf("pipeline.Conf", "search.folds %d below 2", c.Search.NFolds)
	}
	if len(c.Search.Metrics) == 0 || len(c.Search.Shrinks) == 0 {
		return errors.NewConfigurationError("pipeline.Conf", "search grid is empty")
	}
	if c.Preprocess.MinLength < 1 {
		return errors.NewConfigurationError("pipeline.Conf", "preprocess.minLength must be positive")
	}
	return nil
}

// Candidates expands the search grid into candidate combinations.
func (c *Conf) Candidates() []classify.Candidate {
	var out []classify.Candidate
	for _, m := range c.Search.Metrics {
		for _, s := range c.Search.Shrinks {
			out = append(out, classify.Candidate{Metric: m, ShrinkThreshold: s})
		}
	}
	return out
}
