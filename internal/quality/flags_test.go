package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/regrid/internal/container"
)

func TestTaxonomyBitValues(t *testing.T) {
	// The published bit values are a fixed contract with downstream
	// consumers; pin them.
	assert.Equal(t, Flag(1), FlagBad)
	assert.Equal(t, Flag(2), FlagIndeterminate)
	assert.Equal(t, Flag(4), FlagInterpolate)
	assert.Equal(t, Flag(8), FlagExtrapolate)
	assert.Equal(t, Flag(16), FlagNotUsingClosestNeighbor)
	assert.Equal(t, Flag(32), FlagSomeBadInputs)
	assert.Equal(t, Flag(64), FlagZeroWeight)
	assert.Equal(t, Flag(128), FlagOutsideRange)
	assert.Equal(t, Flag(256), FlagAllBadInputs)
	assert.Equal(t, Flag(512), FlagBadStdDev)
	assert.Equal(t, Flag(1024), FlagIndeterminateStdDev)
	assert.Equal(t, Flag(2048), FlagBadGoodFraction)
	assert.Equal(t, Flag(4096), FlagIndeterminateGoodFraction)
}

func TestTaxonomyIsThirteenBits(t *testing.T) {
	flags := Flags()
	require.Len(t, flags, 13)
	for i, f := range flags {
		assert.Equal(t, Flag(1)<<i, f, "taxonomy must be ascending bit order")
		assert.NotEqual(t, "unknown", Meaning(f))
	}
}

func TestFlagAssessments(t *testing.T) {
	assert.Equal(t, AssessBad, FlagAssessment(FlagBad))
	assert.Equal(t, AssessBad, FlagAssessment(FlagBadGoodFraction))
	for _, f := range Flags() {
		if f == FlagBad || f == FlagBadGoodFraction {
			continue
		}
		assert.Equal(t, AssessIndeterminate, FlagAssessment(f), "flag %d", f)
	}
}

func TestAttrsParallelArrays(t *testing.T) {
	attrs := Attrs()

	masks, ok := attrs[container.AttrFlagMasks].([]int)
	require.True(t, ok)
	meanings, ok := attrs[container.AttrFlagMeanings].([]string)
	require.True(t, ok)
	assessments, ok := attrs[container.AttrFlagAssessments].([]string)
	require.True(t, ok)

	require.Len(t, masks, 13)
	require.Len(t, meanings, 13)
	require.Len(t, assessments, 13)
	assert.Equal(t, StandardNameQualityFlag, attrs[container.AttrStandardName])

	for i, m := range masks {
		assert.Equal(t, Meaning(Flag(m)), meanings[i])
		assert.Equal(t, string(FlagAssessment(Flag(m))), assessments[i])
	}
}

func TestFlagHas(t *testing.T) {
	f := FlagBad | FlagOutsideRange
	assert.True(t, f.Has(FlagBad))
	assert.True(t, f.Has(FlagBad|FlagOutsideRange))
	assert.False(t, f.Has(FlagZeroWeight))
}
