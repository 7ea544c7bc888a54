package resample

import "github.com/banshee-data/regrid/internal/container"

// Overlap records one input bin's contribution to an output bin.
type Overlap struct {
	// Index of the input bin.
	Index int
	// Fraction is intersection length divided by input-bin length, the
	// averaging weight. Always in (0, 1]; zero-intersection pairs are
	// dropped.
	Fraction float64
	// Distance is the input-bin midpoint minus the output-bin midpoint.
	// The sign indicates which side of the output bin the input sits on.
	Distance float64
}

// ComputeOverlaps returns, for every output bin, the ordered list of input
// bins overlapping it. An output bin with no overlapping input bins yields
// an empty list, which is the defined behavior for "no data in range".
//
// Complexity is O(N*M); both counts are bounded by one processing
// interval's sample count.
func ComputeOverlaps(in, out container.Bounds) [][]Overlap {
	overlaps := make([][]Overlap, len(out))
	for j := range out {
		outMid := out.Midpoint(j)
		for i := range in {
			inLen := in.Length(i)
			if inLen <= 0 {
				continue
			}
			lo := max(in[i][0], out[j][0])
			hi := min(in[i][1], out[j][1])
			if hi <= lo {
				continue
			}
			overlaps[j] = append(overlaps[j], Overlap{
				Index:    i,
				Fraction: (hi - lo) / inLen,
				Distance: in.Midpoint(i) - outMid,
			})
		}
	}
	return overlaps
}
