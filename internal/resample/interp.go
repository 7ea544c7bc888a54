package resample

import (
	"fmt"
	"math"

	"github.com/banshee-data/regrid/internal/container"
	"github.com/banshee-data/regrid/internal/quality"
)

// LinearInterpolate resamples every variable dimensioned by the target
// coordinate by evaluating the two-point line through the two nearest
// input samples at each output bin's midpoint. The same formula covers
// interpolation and extrapolation; the Extrapolate quality bit records
// when both source points sit on the same side of the output midpoint.
//
// Known limitation: nearest-pair selection is performed once per output
// bin on the first one-dimensional slice along the target coordinate, and
// the chosen input indices are reused across every other-dimension slice
// of the variable. This is only correct when data validity does not vary
// across those dimensions.
func LinearInterpolate(ds *container.Dataset, coordName string, labels []float64, bounds container.Bounds, opts Options) (*container.Dataset, error) {
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

	out, err := BuildOutput(ds, coordName, labels, outBounds, BuildFlags{AddQualityMask: true})
	if err != nil {
		return nil, err
	}

	inMid := make([]float64, len(inBounds))
	for i := range inBounds {
		inMid[i] = inBounds.Midpoint(i)
	}
	outMid := make([]float64, len(outBounds))
	for j := range outBounds {
		outMid[j] = outBounds.Midpoint(j)
	}

	for _, name := range names {
		if err := interpolateVar(ds, out, name, targetDim, overlaps, inMid, outMid, opts); err != nil {
			return nil, fmt.Errorf("interpolating %q: %w", name, err)
		}
	}
	return out, nil
}

func interpolateVar(in, out *container.Dataset, name, targetDim string, overlaps [][]Overlap, inMid, outMid []float64, opts Options) error {
	v := in.Var(name)
	values, badMask, err := quality.Mask(in, name, quality.AssessBad)
	if err != nil {
		return err
	}

	outVar := out.Var(name)
	qcVar := out.Var("qc_" + name)

	inIdx := newSliceIndexer(v, in.DimSizes, targetDim)
	outIdx := newSliceIndexer(outVar, out.DimSizes, targetDim)

	// Pair selection uses the first slice's validity only; see the
	// limitation on LinearInterpolate.
	base0 := inIdx.bases[0]
	usable := func(i int) bool {
		pos := inIdx.at(base0, i)
		if v.IsMissing(values[pos]) {
			return false
		}
		if opts.FilterBadQC && badMask[pos] {
			return false
		}
		return true
	}
	anyInput := func(int) bool { return true }

	for j, ov := range overlaps {
		var flag quality.Flag
		var pa, pb int
		haveSources := false

		if len(ov) > 0 {
			var ok bool
			pa, pb, ok = nearestPair(ov, inMid, outMid[j], usable)
			if !ok {
				flag = quality.FlagBad | quality.FlagOutsideRange
			} else {
				haveSources = true
				ca, cb, cok := nearestPair(ov, inMid, outMid[j], anyInput)
				if cok && (ca != pa || cb != pb) {
					flag |= quality.FlagInterpolate | quality.FlagNotUsingClosestNeighbor
				}
				da := inMid[pa] - outMid[j]
				db := inMid[pb] - outMid[j]
				if da*db > 0 {
					flag |= quality.FlagExtrapolate
				}
			}
		} else {
			flag = quality.FlagBad | quality.FlagOutsideRange
		}

		for s, inBase := range inIdx.bases {
			outPos := outIdx.at(outIdx.bases[s], j)
			if !haveSources {
				qcVar.Data[outPos] = float64(flag)
				continue
			}
			xa, xb := inMid[pa], inMid[pb]
			ya := values[inIdx.at(inBase, pa)]
			yb := values[inIdx.at(inBase, pb)]
			if v.IsMissing(ya) || v.IsMissing(yb) || xa == xb {
				qcVar.Data[outPos] = float64(flag | quality.FlagBad)
				continue
			}
			outVar.Data[outPos] = lineAt(xa, ya, xb, yb, outMid[j])
			qcVar.Data[outPos] = float64(flag)
		}
	}
	return nil
}

// nearestPair selects the two usable input bins whose midpoints are
// closest to x. Candidates overlapping the output bin are preferred; when
// only one remains after filtering, the pool is extended with the nearest
// usable input outside the overlap set so an edge bin can still be
// extrapolated from its two nearest neighbors. Ties break toward the
// lower input index. Returns ok=false when fewer than two usable inputs
// exist.
func nearestPair(ov []Overlap, inMid []float64, x float64, usable func(int) bool) (a, b int, ok bool) {
	pool := make([]int, 0, len(ov))
	inPool := make(map[int]bool, len(ov))
	for _, o := range ov {
		if usable(o.Index) {
			pool = append(pool, o.Index)
			inPool[o.Index] = true
		}
	}
	if len(pool) == 0 {
		return 0, 0, false
	}
	if len(pool) == 1 {
		best, found := -1, false
		for i := range inMid {
			if inPool[i] || !usable(i) {
				continue
			}
			if !found || closer(inMid[i], inMid[best], x, i, best) {
				best, found = i, true
			}
		}
		if !found {
			return 0, 0, false
		}
		pool = append(pool, best)
	}

	a, b = pool[0], pool[1]
	if closer(inMid[b], inMid[a], x, b, a) {
		a, b = b, a
	}
	for _, i := range pool[2:] {
		if closer(inMid[i], inMid[a], x, i, a) {
			a, b = i, a
		} else if closer(inMid[i], inMid[b], x, i, b) {
			b = i
		}
	}
	if a > b {
		a, b = b, a
	}
	return a, b, true
}

// closer reports whether midpoint mi (input index i) is strictly closer to
// x than midpoint mj (input index j), breaking ties toward the lower index.
func closer(mi, mj, x float64, i, j int) bool {
	di, dj := math.Abs(mi-x), math.Abs(mj-x)
	if di != dj {
		return di < dj
	}
	return i < j
}

// lineAt evaluates the two-point line through (xa,ya) and (xb,yb) at x.
func lineAt(xa, ya, xb, yb, x float64) float64 {
	return ya + (yb-ya)*(x-xa)/(xb-xa)
}
