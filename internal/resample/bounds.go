package resample

import (
	"log"

	"github.com/banshee-data/regrid/internal/container"
	"github.com/banshee-data/regrid/internal/units"
)

// ResolveBounds computes or validates the half-open interval bounds for a
// coordinate's labels.
//
// Explicit bounds attached to the coordinate are used as-is after
// validation. Otherwise internal boundaries are the midpoints between
// consecutive labels, and the first and last boundary are extrapolated by
// mirroring the size of the adjacent gap. Time-like coordinates are
// converted to elapsed seconds from the first label for the arithmetic and
// expressed back in the coordinate's own representation.
func ResolveBounds(c *container.Coordinate) (container.Bounds, error) {
	if c.Bounds != nil {
		if err := c.Bounds.Validate(); err != nil {
			return nil, err
		}
		return c.Bounds.Clone(), nil
	}
	return centerAlignedBounds(c.Data, c.Units(), c.Name), nil
}

// resolveOutputBounds validates caller-supplied output bounds against the
// output labels, or infers center-aligned bounds when none are supplied.
// unitsAttr is the target coordinate's units attribute, carried over so
// time-like outputs get the same elapsed-seconds treatment as inputs.
func resolveOutputBounds(labels []float64, bounds container.Bounds, unitsAttr, coordName string) (container.Bounds, error) {
	if bounds != nil {
		if len(bounds) != len(labels) {
			return nil, ErrLabelBoundsMismatch
		}
		if err := bounds.Validate(); err != nil {
			return nil, err
		}
		return bounds.Clone(), nil
	}
	return centerAlignedBounds(labels, unitsAttr, coordName), nil
}

// centerAlignedBounds infers [N,2] bounds by center alignment between
// consecutive labels. Zero-length input yields empty bounds. A single
// label has no adjacent gap to mirror; it falls back to a zero-width
// interval and logs the ambiguity rather than failing.
func centerAlignedBounds(labels []float64, unitsAttr, coordName string) container.Bounds {
	n := len(labels)
	out := make(container.Bounds, n)
	if n == 0 {
		return out
	}

	// Time-like labels can sit far from zero (e.g. epoch nanoseconds).
	// Work in elapsed seconds from the first label so midpoint arithmetic
	// keeps its precision, then convert back.
	origin, scale := 0.0, 1.0
	if unit, _, ok := units.ParseTimeUnits(unitsAttr); ok {
		origin = labels[0]
		scale = units.ScaleToSeconds(unit)
	}
	elapsed := make([]float64, n)
	for i, v := range labels {
		elapsed[i] = (v - origin) * scale
	}

	if n == 1 {
		log.Printf("resample: coordinate %q has a single label; bound inference is ambiguous, using zero-width interval", coordName)
		out[0] = [2]float64{labels[0], labels[0]}
		return out
	}

	// Internal boundaries are midpoints; the first and last mirror the
	// adjacent gap.
	edges := make([]float64, n+1)
	for i := 1; i < n; i++ {
		edges[i] = (elapsed[i-1] + elapsed[i]) / 2
	}
	edges[0] = elapsed[0] - (edges[1] - elapsed[0])
	edges[n] = elapsed[n-1] + (elapsed[n-1] - edges[n-1])

	for i := 0; i < n; i++ {
		out[i] = [2]float64{edges[i]/scale + origin, edges[i+1]/scale + origin}
	}
	return out
}
