// Package quality defines the fixed quality-bitmask taxonomy produced by
// the resampling transforms and the extraction of Good/Indeterminate/Bad
// sample masks from existing bit-flag annotations.
//
// Every transformed variable gets a paired quality-mask variable whose
// per-sample value is an OR-combination of the Flag bits below. Bit 0
// (FlagBad) is set if and only if the transform could not produce a valid
// value for that sample.
package quality

import "github.com/banshee-data/regrid/internal/container"

// Flag is one bit of the transformation quality bitmask.
type Flag uint16

const (
	// FlagBad marks a sample for which no valid value could be produced.
	FlagBad Flag = 1 << iota
	// FlagIndeterminate marks a sample computed from at least one input
	// assessed Indeterminate.
	FlagIndeterminate
	// FlagInterpolate marks an interpolated sample whose source pair is
	// not the unfiltered nearest pair.
	FlagInterpolate
	// FlagExtrapolate marks a sample computed from two inputs on the same
	// side of the output midpoint.
	FlagExtrapolate
	// FlagNotUsingClosestNeighbor marks a sample whose nearest candidate
	// was rejected by a filtering criterion.
	FlagNotUsingClosestNeighbor
	// FlagSomeBadInputs marks a bin where some, but not all, overlapping
	// inputs were assessed Bad.
	FlagSomeBadInputs
	// FlagZeroWeight marks a bin whose total averaging weight was zero.
	FlagZeroWeight
	// FlagOutsideRange marks a bin with no overlapping input samples.
	FlagOutsideRange
	// FlagAllBadInputs marks a bin where every overlapping input was
	// assessed Bad.
	FlagAllBadInputs
	// FlagBadStdDev is declared in the taxonomy but reserved: the
	// transforms never set it.
	FlagBadStdDev
	// FlagIndeterminateStdDev is declared in the taxonomy but reserved:
	// the transforms never set it.
	FlagIndeterminateStdDev
	// FlagBadGoodFraction marks a bin whose good fraction fell below the
	// bad threshold.
	FlagBadGoodFraction
	// FlagIndeterminateGoodFraction marks a bin whose good fraction fell
	// below the indeterminate threshold.
	FlagIndeterminateGoodFraction
)

// Has reports whether all bits of mask are set in f.
func (f Flag) Has(mask Flag) bool { return f&mask == mask }

// Assessment is the coarse-grained quality category of a sample.
type Assessment string

const (
	AssessGood          Assessment = "Good"
	AssessIndeterminate Assessment = "Indeterminate"
	AssessBad           Assessment = "Bad"
)

// flagInfo fixes the published order, meaning string and assessment of each
// taxonomy bit. The table is the single source for both the bits set in
// code and the metadata written to output quality variables, so the two
// cannot drift.
var flagInfo = []struct {
	flag       Flag
	meaning    string
	assessment Assessment
}{
	{FlagBad, "transformation could not finish, value set to missing_value", AssessBad},
	{FlagIndeterminate, "transformation resulted in an indeterminate outcome", AssessIndeterminate},
	{FlagInterpolate, "original data was interpolated", AssessIndeterminate},
	{FlagExtrapolate, "original data was extrapolated", AssessIndeterminate},
	{FlagNotUsingClosestNeighbor, "closest original sample was not used", AssessIndeterminate},
	{FlagSomeBadInputs, "some, but not all, of the input samples were flagged bad", AssessIndeterminate},
	{FlagZeroWeight, "total weight of the input samples was zero", AssessIndeterminate},
	{FlagOutsideRange, "no input samples within the output interval", AssessIndeterminate},
	{FlagAllBadInputs, "all input samples were flagged bad", AssessIndeterminate},
	{FlagBadStdDev, "standard deviation above bad threshold (reserved, not computed)", AssessIndeterminate},
	{FlagIndeterminateStdDev, "standard deviation above indeterminate threshold (reserved, not computed)", AssessIndeterminate},
	{FlagBadGoodFraction, "good fraction of input samples below bad threshold", AssessBad},
	{FlagIndeterminateGoodFraction, "good fraction of input samples below indeterminate threshold", AssessIndeterminate},
}

// Flags returns the full taxonomy in ascending bit order.
func Flags() []Flag {
	out := make([]Flag, len(flagInfo))
	for i, info := range flagInfo {
		out[i] = info.flag
	}
	return out
}

// Meaning returns the descriptive meaning string for a single flag bit.
func Meaning(f Flag) string {
	for _, info := range flagInfo {
		if info.flag == f {
			return info.meaning
		}
	}
	return "unknown"
}

// FlagAssessment returns the assessment category a single flag bit maps to.
func FlagAssessment(f Flag) Assessment {
	for _, info := range flagInfo {
		if info.flag == f {
			return info.assessment
		}
	}
	return AssessIndeterminate
}

// StandardNameQualityFlag is the marker written to every produced quality
// variable so downstream consumers can identify it without name sniffing.
const StandardNameQualityFlag = "quality_flag"

// Attrs returns the standard descriptive attributes for a produced quality
// variable: parallel arrays of bit values, meaning strings and assessment
// labels, plus the quality_flag marker.
func Attrs() map[string]any {
	masks := make([]int, len(flagInfo))
	meanings := make([]string, len(flagInfo))
	assessments := make([]string, len(flagInfo))
	for i, info := range flagInfo {
		masks[i] = int(info.flag)
		meanings[i] = info.meaning
		assessments[i] = string(info.assessment)
	}
	return map[string]any{
		container.AttrFlagMasks:       masks,
		container.AttrFlagMeanings:    meanings,
		container.AttrFlagAssessments: assessments,
		container.AttrStandardName:    StandardNameQualityFlag,
	}
}
