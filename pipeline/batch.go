// Package pipeline drives the batch machine-learning run: parse light curves
// from a data source, clean them, extract features, perform k-fold model
// selection on the training split and evaluate the winner on the held-out
// test split. Intermediate results are staged in sqlite so individual stages
// can be skipped and resumed.
package pipeline

import (
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/skyseries/lcgo/classify"
	"github.com/skyseries/lcgo/dataset"
	"github.com/skyseries/lcgo/features"
	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/metrics"
	"github.com/skyseries/lcgo/pkg/errors"
	lclog "github.com/skyseries/lcgo/pkg/log"
	"github.com/skyseries/lcgo/preprocessing"
	"github.com/skyseries/lcgo/report"
	"github.com/skyseries/lcgo/store"
)

// Pipeline is one configured batch run.
type Pipeline struct {
	conf  *Conf
	st    *store.Store
	runID string
	log   *slog.Logger
}

// New creates a pipeline for the given configuration, opening the staging
// store.
func New(conf *Conf) (*Pipeline, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	dbPath := conf.Global.DBPath
	if dbPath == "" {
		dbPath = ":memory:"
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, err
	}
	runID := uuid.NewString()
	return &Pipeline{
		conf:  conf,
		st:    st,
		runID: runID,
		log:   slog.Default().With(lclog.RunIDKey, runID),
	}, nil
}

// Close releases the staging store.
func (p *Pipeline) Close() error {
	return p.st.Close()
}

// Run executes the batch pipeline end to end. Fatal errors abort the run;
// per-curve insufficiency is handled inside the cleaning stage and only
// surfaces as aggregate rates.
func (p *Pipeline) Run() error {
	p.log.Info("begin batch ML pipeline")
	startAll := time.Now()

	if err := p.loadStage(); err != nil {
		return err
	}
	if err := p.preprocessStage(); err != nil {
		return err
	}
	if err := p.reportStage(); err != nil {
		return err
	}
	if err := p.extractStage(); err != nil {
		return err
	}
	if err := p.searchStage(); err != nil {
		return err
	}

	p.log.Info("pipeline completed", lclog.DurationKey, time.Since(startAll))
	return nil
}

func (p *Pipeline) loadStage() error {
	if p.conf.Load.Skip {
		p.log.Info("skip dataset loading", lclog.StageKey, "load")
		return nil
	}
	start := time.Now()
	loader, err := dataset.New(p.conf.Load.Format, p.conf.Global.Seed)
	if err != nil {
		return err
	}
	ds, err := loader.Load(p.conf.Load.Path, p.conf.Global.DataLimit)
	if err != nil {
		return err
	}
	if err := ds.Validate(); err != nil {
		return err
	}
	if err := p.st.ReplaceDataset(store.TableRaw, ds); err != nil {
		return err
	}
	sizes := lightcurve.ReportSizes(ds)
	p.log.Info("loaded dataset",
		lclog.StageKey, "load",
		lclog.FormatKey, loader.Format(),
		lclog.CurvesKey, ds.Len(),
		lclog.DurationKey, time.Since(start),
	)
	p.log.Info("dataset sizes\n"+report.SizeTable(sizes), lclog.StageKey, "load")
	return nil
}

func (p *Pipeline) preprocessStage() error {
	if p.conf.Preprocess.Skip {
		p.log.Info("skip dataset cleaning", lclog.StageKey, "clean")
		return nil
	}
	start := time.Now()
	raw, err := p.st.LoadDataset(store.TableRaw, p.conf.Global.DataLimit)
	if err != nil {
		return err
	}
	cleaner := &preprocessing.Cleaner{
		Remove:     p.conf.Preprocess.Remove,
		StdLimit:   p.conf.Preprocess.StdLimit,
		ErrorLimit: p.conf.Preprocess.ErrorLimit,
		MinLength:  p.conf.Preprocess.MinLength,
	}
	clean, stats := cleaner.CleanDataset(raw)
	if err := p.st.ReplaceDataset(store.TableClean, clean); err != nil {
		return err
	}
	p.log.Info("cleaned dataset staged",
		lclog.StageKey, "clean",
		lclog.CurvesKey, clean.Len(),
		lclog.PassRateKey, stats.PassRate(),
		lclog.DurationKey, time.Since(start),
	)
	return nil
}

func (p *Pipeline) reportStage() error {
	hist, err := p.st.ClassHistogram(store.TableClean)
	if err != nil {
		return err
	}
	p.log.Info("cleaned dataset class histogram\n"+report.HistogramTable(hist), lclog.StageKey, "clean")

	if dir := p.conf.Serialize.OutputDir; dir != "" && !p.conf.Serialize.Skip && len(hist) > 0 {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create output dir %s", dir)
		}
		plotPath := filepath.Join(dir, "class_histogram_"+p.runID+".png")
		if err := report.SaveHistogramPNG(hist, plotPath); err != nil {
			return err
		}
		p.log.Info("saved class histogram plot", lclog.StageKey, "clean", "path", plotPath)
	}
	return nil
}

func (p *Pipeline) extractStage() error {
	if p.conf.Extract.Skip {
		p.log.Info("skip feature extraction", lclog.StageKey, "extract")
		return nil
	}
	start := time.Now()
	clean, err := p.st.LoadDataset(store.TableClean, p.conf.Global.DataLimit)
	if err != nil {
		return err
	}
	if clean.Len() == 0 {
		p.log.Warn("no cleaned curves to extract from", lclog.StageKey, "extract")
		return nil
	}
	extractor := features.NewExtractor()
	X, err := extractor.ExtractDataset(clean)
	if err != nil {
		return err
	}
	rows, _ := X.Dims()
	vectors := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		vectors[i] = X.RawRowView(i)
	}
	var labels []string
	if clean.Labeled() {
		labels = clean.Labels
	}
	if err := p.st.ReplaceFeatures(labels, vectors); err != nil {
		return err
	}
	p.log.Info("extracted features",
		lclog.StageKey, "extract",
		lclog.CurvesKey, rows,
		lclog.FeaturesKey, extractor.NumFeatures(),
		lclog.DurationKey, time.Since(start),
	)
	return nil
}

func (p *Pipeline) searchStage() error {
	vectors, labels, err := p.st.SelectFeaturesLabels(p.conf.Global.DataLimit)
	if err != nil {
		return err
	}
	if len(vectors) == 0 {
		p.log.Warn("no features staged, stopping before model selection", lclog.StageKey, "search")
		return nil
	}
	if unlabeled(labels) {
		p.log.Warn("dataset carries no class labels, skipping model selection", lclog.StageKey, "search")
		return nil
	}

	X := mat.NewDense(len(vectors), len(vectors[0]), nil)
	for i, vec := range vectors {
		X.SetRow(i, vec)
	}

	// Feature standardization before distance-based classification.
	scaler := preprocessing.NewStandardScaler()
	scaled, err := scaler.FitTransform(X)
	if err != nil {
		return err
	}

	y, mapping := classify.ConvertLabels(labels)
	trainX, testX, trainY, testY, err := classify.TrainTestSplit(scaled, y, p.conf.Global.TrainFraction, p.conf.Global.Seed)
	if err != nil {
		return err
	}
	p.log.Info("split dataset",
		lclog.StageKey, "search",
		"train_size", len(trainY),
		"test_size", len(testY),
	)

	var splitter classify.Splitter
	if p.conf.Search.Stratified {
		splitter = classify.NewStratifiedKFold(p.conf.Search.NFolds, true, int(p.conf.Global.Seed))
	} else {
		splitter = classify.NewKFold(p.conf.Search.NFolds, true, int(p.conf.Global.Seed))
	}

	start := time.Now()
	sel, err := classify.SelectModel(trainX, trainY, p.conf.Candidates(), splitter)
	if err != nil {
		return err
	}
	p.log.Info("model selection finished",
		lclog.StageKey, "search",
		lclog.ModelNameKey, "NearestCentroid",
		"winner", sel.Candidate.String(),
		lclog.AccuracyKey, sel.Mean,
		lclog.DurationKey, time.Since(start),
	)
	p.log.Info("selection grid\n"+report.SelectionTable(sel.Scores, p.conf.Global.Places), lclog.StageKey, "search")

	var testReport *metrics.ClassificationReport
	if len(testY) > 0 {
		pred, err := sel.Model.Predict(testX)
		if err != nil {
			return err
		}
		testReport, err = metrics.Report(testY, pred, len(mapping))
		if err != nil {
			return err
		}
		p.log.Info("test set evaluation",
			lclog.StageKey, "evaluate",
			lclog.AccuracyKey, testReport.Accuracy,
			"precision", testReport.Precision,
			"recall", testReport.Recall,
			"f1", testReport.F1,
		)
	}

	return p.serializeStage(sel, mapping, testReport)
}

func unlabeled(labels []string) bool {
	for _, l := range labels {
		if l != "" {
			return false
		}
	}
	return true
}
