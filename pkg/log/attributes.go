// Package log defines standard attribute keys for dataset and pipeline
// operations. Using these keys keeps log output consistent across loaders,
// cleaning, feature extraction and model selection, which makes run logs
// filterable by stage and format.
package log

// Dataset context
const (
	// FormatKey identifies the dataset format family.
	// Values: "ogle3", "ogle3_legacy", "macho", "k2"
	FormatKey = "dataset.format"

	// PathKey is the source file or directory being loaded.
	PathKey = "dataset.path"

	// LimitKey is the requested light-curve sample limit.
	LimitKey = "dataset.limit"
)

// Data shape
const (
	// CurvesKey is the number of light curves in a dataset.
	CurvesKey = "data.curves"

	// RowsKey is the number of raw rows scanned from a source file.
	RowsKey = "data.rows"

	// PointsKey is the number of points in a single light-curve series.
	PointsKey = "data.points"

	// FeaturesKey is the number of extracted features per curve.
	FeaturesKey = "data.features"
)

// Pipeline context
const (
	// RunIDKey is the unique identifier of one pipeline run.
	RunIDKey = "run.id"

	// StageKey names the pipeline stage emitting the record.
	// Values: "load", "clean", "extract", "search", "evaluate", "serialize"
	StageKey = "pipeline.stage"

	// DurationKey is the elapsed wall time of an operation.
	DurationKey = "duration"
)

// Cleaning outcomes
const (
	// ReasonKey is the classified rejection reason for a discarded curve.
	ReasonKey = "clean.reason"

	// PassRateKey is the fraction of curves accepted by the cleaner.
	PassRateKey = "clean.pass_rate"
)

// Model context
const (
	// ModelNameKey identifies the model type under selection.
	ModelNameKey = "model.name"

	// AccuracyKey is a classification accuracy value.
	AccuracyKey = "model.accuracy"
)
