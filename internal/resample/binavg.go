package resample

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/banshee-data/regrid/internal/container"
	"github.com/banshee-data/regrid/internal/quality"
)

// BinAverage resamples every variable dimensioned by the target coordinate
// onto the supplied output labels, producing one weighted statistic per
// output bin. A nil bounds argument infers center-aligned output bounds
// from the labels.
//
// Each output sample's weight is its input bin's overlap fraction; weights
// are forced to zero for missing values and, when opts.FilterBadQC is set,
// for Bad-assessed samples. A bin whose total weight is zero gets the
// missing placeholder, not an error: all per-bin anomalies are encoded in
// the paired quality bitmask. The call itself fails only on structural
// problems (unknown coordinate, nothing to resample, malformed bounds).
func BinAverage(ds *container.Dataset, coordName string, labels []float64, bounds container.Bounds, opts Options) (*container.Dataset, error) {
	coord := ds.Coord(coordName)
	if coord == nil {
		return nil, fmt.Errorf("%w: %q", ErrCoordinateNotFound, coordName)
	}
	targetDim := coord.Dim()
	names := resampleVarNames(ds, targetDim)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoResampleVars, coordName)
	}

	inBounds, err := ResolveBounds(coord)
	if err != nil {
		return nil, fmt.Errorf("resolving input bounds for %q: %w", coordName, err)
	}
	outBounds, err := resolveOutputBounds(labels, bounds, coord.Units(), coordName)
	if err != nil {
		return nil, fmt.Errorf("resolving output bounds for %q: %w", coordName, err)
	}

	overlaps := ComputeOverlaps(inBounds, outBounds)

	out, err := BuildOutput(ds, coordName, labels, outBounds, BuildFlags{
		AddQualityMask: true,
		AddMetrics:     opts.AddMetrics,
	})
	if err != nil {
		return nil, err
	}

	for _, name := range names {
		if err := binAverageVar(ds, out, name, targetDim, overlaps, opts); err != nil {
			return nil, fmt.Errorf("averaging %q: %w", name, err)
		}
	}
	return out, nil
}

// binAverageVar fills one output variable and its quality/metric
// companions bin by bin. Bins are independent of each other; the loop
// carries no state between iterations.
func binAverageVar(in, out *container.Dataset, name, targetDim string, overlaps [][]Overlap, opts Options) error {
	v := in.Var(name)
	values, badMask, err := quality.Mask(in, name, quality.AssessBad)
	if err != nil {
		return err
	}
	_, indMask, err := quality.Mask(in, name, quality.AssessIndeterminate)
	if err != nil {
		return err
	}

	outVar := out.Var(name)
	qcVar := out.Var("qc_" + name)
	var stdVar, gfVar *container.Variable
	if opts.AddMetrics {
		stdVar = out.Var(name + "_std")
		gfVar = out.Var(name + "_goodfraction")
	}

	inIdx := newSliceIndexer(v, in.DimSizes, targetDim)
	outIdx := newSliceIndexer(outVar, out.DimSizes, targetDim)

	// Scratch buffers reused across bins.
	maxN := 0
	for _, ov := range overlaps {
		if len(ov) > maxN {
			maxN = len(ov)
		}
	}
	vals := make([]float64, 0, maxN)
	ws := make([]float64, 0, maxN)
	notBad := make([]float64, 0, maxN)
	sqDev := make([]float64, 0, maxN)

	for s, inBase := range inIdx.bases {
		outBase := outIdx.bases[s]
		for j, ov := range overlaps {
			outPos := outIdx.at(outBase, j)
			if len(ov) == 0 {
				qcVar.Data[outPos] = float64(quality.FlagBad | quality.FlagOutsideRange)
				continue
			}

			vals, ws, notBad = vals[:0], ws[:0], notBad[:0]
			nBad := 0
			anyInd := false
			sumW := 0.0
			for _, o := range ov {
				pos := inIdx.at(inBase, o.Index)
				val := values[pos]
				w := o.Fraction
				if badMask[pos] {
					nBad++
					if opts.FilterBadQC {
						w = 0
					}
				}
				if indMask[pos] {
					anyInd = true
				}
				good := 1.0
				if badMask[pos] {
					good = 0
				}
				if v.IsMissing(val) {
					w = 0
					val = 0
				}
				vals = append(vals, val)
				ws = append(ws, w)
				notBad = append(notBad, good)
				sumW += w
			}

			var flag quality.Flag
			if anyInd {
				flag |= quality.FlagIndeterminate
			}
			switch {
			case nBad == len(ov):
				flag |= quality.FlagBad | quality.FlagAllBadInputs
			case nBad > 0:
				flag |= quality.FlagSomeBadInputs
			}

			if sumW == 0 {
				// No valid contribution; the value stays at the missing
				// placeholder (bit 0 invariant).
				flag |= quality.FlagBad | quality.FlagZeroWeight
				qcVar.Data[outPos] = float64(flag)
				continue
			}

			avg := stat.Mean(vals, ws)
			outVar.Data[outPos] = avg

			goodFrac := stat.Mean(notBad, ws)
			if goodFrac < opts.GoodFractionBadThreshold {
				flag |= quality.FlagBadGoodFraction
			} else if goodFrac < opts.GoodFractionIndeterminateThreshold {
				flag |= quality.FlagIndeterminateGoodFraction
			}

			if opts.AddMetrics {
				// Population-weighted spread: sqrt of the weighted mean
				// of squared deviations.
				sqDev = sqDev[:0]
				for _, val := range vals {
					d := val - avg
					sqDev = append(sqDev, d*d)
				}
				stdVar.Data[outPos] = math.Sqrt(stat.Mean(sqDev, ws))
				gfVar.Data[outPos] = goodFrac
			}
			qcVar.Data[outPos] = float64(flag)
		}
	}
	return nil
}
