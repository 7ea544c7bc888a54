package container

import (
	"errors"
	"fmt"
)

// ErrBoundsShape reports a malformed bounds array.
var ErrBoundsShape = errors.New("invalid bounds")

// Bounds is an [N,2] array of half-open intervals [start, end), one row per
// coordinate label.
type Bounds [][2]float64

// Validate checks that every row satisfies start <= end. The returned error
// carries the offending row index.
func (b Bounds) Validate() error {
	for i, row := range b {
		if row[0] > row[1] {
			return fmt.Errorf("%w: row %d has start %v > end %v", ErrBoundsShape, i, row[0], row[1])
		}
	}
	return nil
}

// Clone returns a copy of the bounds array.
func (b Bounds) Clone() Bounds {
	if b == nil {
		return nil
	}
	out := make(Bounds, len(b))
	copy(out, b)
	return out
}

// Midpoint returns the center of row i.
func (b Bounds) Midpoint(i int) float64 {
	return (b[i][0] + b[i][1]) / 2
}

// Length returns the width of row i.
func (b Bounds) Length(i int) float64 {
	return b[i][1] - b[i][0]
}
