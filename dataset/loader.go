// Package dataset loads astronomical light-curve datasets from the supported
// file format families (OGLE3, legacy OGLE3, MACHO, K2) into the common
// dataset contract. Every loader applies uniform random subsampling without
// replacement before full materialization so that the requested limit bounds
// memory as well as output size.
package dataset

import (
	"github.com/skyseries/lcgo/lightcurve"
	"github.com/skyseries/lcgo/pkg/errors"
)

// Supported dataset format names as they appear in pipeline configuration.
const (
	FormatOGLE3       = "ogle3"
	FormatOGLE3Legacy = "ogle3_legacy"
	FormatMACHO       = "macho"
	FormatK2          = "k2"
)

// Loader is the capability shared by all format adapters: read the source at
// path and return at most limit light curves sampled uniformly at random.
// A limit exceeding the available population is a ConfigurationError.
type Loader interface {
	Load(path string, limit int) (*lightcurve.Dataset, error)
	Format() string
}

// New returns the loader for the named format. The seed controls subsample
// selection; zero seeds from the clock.
func New(format string, seed int64) (Loader, error) {
	switch format {
	case FormatOGLE3:
		return &OGLE3Loader{Seed: seed}, nil
	case FormatOGLE3Legacy:
		return &LegacyOGLE3Loader{Seed: seed}, nil
	case FormatMACHO:
		return &MACHOLoader{Seed: seed}, nil
	case FormatK2:
		return &K2Loader{Seed: seed}, nil
	default:
		return nil, errors.NewConfigurationErrorf("dataset.New", "unknown dataset format %q", format)
	}
}
