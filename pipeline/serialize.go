package pipeline

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/gonum/mat"

	"github.com/skyseries/lcgo/classify"
	"github.com/skyseries/lcgo/metrics"
	"github.com/skyseries/lcgo/pkg/errors"
	lclog "github.com/skyseries/lcgo/pkg/log"
)

// Artifact is the serialized outcome of one pipeline run: the winning model,
// the label mapping needed to decode its predictions, and the scores that
// justified its selection.
type Artifact struct {
	RunID        string                        `json:"run_id"`
	Format       string                        `json:"format,omitempty"`
	Model        SerializedModel               `json:"model"`
	LabelMapping map[int]string                `json:"label_mapping"`
	CVMean       float64                       `json:"cv_mean_accuracy"`
	CVStd        float64                       `json:"cv_std_accuracy"`
	Grid         []classify.CandidateScore     `json:"grid"`
	Test         *metrics.ClassificationReport `json:"test,omitempty"`
}

// SerializedModel is the portable form of a fitted nearest-centroid model.
type SerializedModel struct {
	Metric          string      `json:"metric"`
	ShrinkThreshold float64     `json:"shrink_threshold"`
	Classes         []int       `json:"classes"`
	Centroids       [][]float64 `json:"centroids"`
}

// serializeStage writes the run artifact to the configured output dir.
func (p *Pipeline) serializeStage(sel *classify.SelectionResult, mapping map[int]string, test *metrics.ClassificationReport) error {
	if p.conf.Serialize.Skip || p.conf.Serialize.OutputDir == "" {
		p.log.Info("skip serialization", lclog.StageKey, "serialize")
		return nil
	}
	if err := os.MkdirAll(p.conf.Serialize.OutputDir, 0o755); err != nil {
		return errors.Wrapf(err, "create output dir %s", p.conf.Serialize.OutputDir)
	}

	artifact := Artifact{
		RunID:        p.runID,
		Format:       p.conf.Load.Format,
		Model:        serializeModel(sel.Model),
		LabelMapping: mapping,
		CVMean:       sel.Mean,
		CVStd:        sel.Std,
		Grid:         sel.Scores,
		Test:         test,
	}
	encoded, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode run artifact")
	}

	path := filepath.Join(p.conf.Serialize.OutputDir, "run_"+p.runID+".json")
	if err := os.WriteFile(path, encoded, 0o644); err != nil {
		return errors.Wrapf(err, "write run artifact %s", path)
	}
	slog.Info("serialized pipeline results", lclog.StageKey, "serialize", "path", path)
	return nil
}

func serializeModel(m *classify.NearestCentroid) SerializedModel {
	rows, _ := m.Centroids.Dims()
	centroids := make([][]float64, rows)
	for i := 0; i < rows; i++ {
		centroids[i] = mat.Row(nil, i, m.Centroids)
	}
	return SerializedModel{
		Metric:          m.Metric,
		ShrinkThreshold: m.ShrinkThreshold,
		Classes:         m.Classes,
		Centroids:       centroids,
	}
}
