// Package resample implements interval-overlap resampling of an
// ordered-coordinate dataset onto a new set of coordinate bin boundaries.
//
// The engine resolves half-open interval bounds for the input and output
// coordinate, computes the fractional overlap between every input/output
// bin pair, and fills a fresh output dataset bin by bin using one of two
// transforms: weighted bin averaging (BinAverage) or two-point linear
// interpolation/extrapolation (LinearInterpolate). Per-bin anomalies are
// never errors; they are encoded in each bin's quality bitmask. Only
// structural problems (missing target coordinate, no variables to
// resample, malformed bounds) abort a transform call.
//
// All operations are deterministic pure functions over immutable inputs:
// the caller's dataset is never mutated.
package resample

import (
	"errors"

	"github.com/banshee-data/regrid/internal/config"
	"github.com/banshee-data/regrid/internal/container"
)

var (
	// ErrCoordinateNotFound reports that the requested target coordinate
	// is absent from the input dataset.
	ErrCoordinateNotFound = errors.New("target coordinate not found")
	// ErrNoResampleVars reports that no data variable is dimensioned by
	// the target coordinate.
	ErrNoResampleVars = errors.New("no variables dimensioned by target coordinate")
	// ErrLabelBoundsMismatch reports output bounds whose row count differs
	// from the output label count.
	ErrLabelBoundsMismatch = errors.New("output labels and bounds disagree in length")
)

// Options controls transform behavior. The zero value disables quality
// filtering, metric variables and good-fraction thresholding; use
// DefaultOptions or OptionsFromTuning for the standard configuration.
type Options struct {
	// FilterBadQC forces the averaging weight of Bad-assessed samples to
	// zero, and excludes them from interpolation candidate pools.
	FilterBadQC bool
	// AddMetrics produces <var>_std and <var>_goodfraction variables
	// alongside each bin-averaged variable.
	AddMetrics bool
	// GoodFractionBadThreshold flags a bin bad when its good fraction
	// falls below this value.
	GoodFractionBadThreshold float64
	// GoodFractionIndeterminateThreshold flags a bin indeterminate when
	// its good fraction falls below this (larger) value.
	GoodFractionIndeterminateThreshold float64
}

// OptionsFromTuning builds Options from a tuning configuration, applying
// the config package's defaults for unset fields.
func OptionsFromTuning(cfg *config.TuningConfig) Options {
	return Options{
		FilterBadQC:                        cfg.GetFilterBadQC(),
		AddMetrics:                         cfg.GetAddMetrics(),
		GoodFractionBadThreshold:           cfg.GetGoodFractionBadThreshold(),
		GoodFractionIndeterminateThreshold: cfg.GetGoodFractionIndeterminateThreshold(),
	}
}

// DefaultOptions returns the standard transform configuration.
func DefaultOptions() Options {
	return OptionsFromTuning(config.EmptyTuningConfig())
}

// sliceIndexer enumerates the one-dimensional slices of a row-major
// variable along one dimension. Element t of slice s lives at
// bases[s] + t*stride. Input and output variables that differ only in the
// target dimension's length produce indexers with identical base counts,
// so slices pair up by position.
type sliceIndexer struct {
	stride int
	bases  []int
}

func newSliceIndexer(v *container.Variable, sizes map[string]int, dim string) sliceIndexer {
	p := v.DimIndex(dim)
	inner := 1
	for _, d := range v.Dims[p+1:] {
		inner *= sizes[d]
	}
	outer := 1
	for _, d := range v.Dims[:p] {
		outer *= sizes[d]
	}
	dimLen := sizes[dim]

	bases := make([]int, 0, outer*inner)
	for o := 0; o < outer; o++ {
		for i := 0; i < inner; i++ {
			bases = append(bases, o*dimLen*inner+i)
		}
	}
	return sliceIndexer{stride: inner, bases: bases}
}

func (s sliceIndexer) at(base, t int) int { return base + t*s.stride }

// resampleVarNames returns, in sorted order, the primary variables
// dimensioned (even partially) by the target dimension.
func resampleVarNames(ds *container.Dataset, targetDim string) []string {
	var names []string
	for _, name := range ds.VarNames() {
		v := ds.Var(name)
		if v.Role == container.RolePrimary && v.HasDim(targetDim) {
			names = append(names, name)
		}
	}
	return names
}
