package quality

import (
	"fmt"
	"slices"

	"github.com/banshee-data/regrid/internal/container"
)

// BitsForAssessment collapses a quality variable's declared bit metadata
// into a single mask of all bits whose assessment equals target. The
// mapping is read from the variable's flag_masks / flag_assessments
// attributes; bits with no declared assessment are ignored.
func BitsForAssessment(qc *container.Variable, target Assessment) (Flag, error) {
	masksAttr, ok := qc.Attr(container.AttrFlagMasks)
	if !ok {
		return 0, fmt.Errorf("quality variable %q declares no %s attribute", qc.Name, container.AttrFlagMasks)
	}
	masks, err := toIntSlice(masksAttr)
	if err != nil {
		return 0, fmt.Errorf("quality variable %q: %w", qc.Name, err)
	}

	assessAttr, ok := qc.Attr(container.AttrFlagAssessments)
	if !ok {
		return 0, fmt.Errorf("quality variable %q declares no %s attribute", qc.Name, container.AttrFlagAssessments)
	}
	assessments, ok := assessAttr.([]string)
	if !ok {
		return 0, fmt.Errorf("quality variable %q: %s must be a string array", qc.Name, container.AttrFlagAssessments)
	}
	if len(assessments) != len(masks) {
		return 0, fmt.Errorf("quality variable %q: %d masks but %d assessments",
			qc.Name, len(masks), len(assessments))
	}

	var collapsed Flag
	for i, m := range masks {
		if Assessment(assessments[i]) == target {
			collapsed |= Flag(m)
		}
	}
	return collapsed, nil
}

// Mask derives the per-sample boolean mask for the named variable: mask[i]
// is true wherever the sample's existing quality bits resolve to the target
// assessment category, collapsing across all declared bits mapping to that
// category. The returned values slice is a private copy of the variable's
// data so callers can filter without mutating the input dataset.
//
// A variable with no paired quality annotation yields an all-false mask.
func Mask(ds *container.Dataset, varName string, target Assessment) (values []float64, mask []bool, err error) {
	v := ds.Var(varName)
	if v == nil {
		return nil, nil, fmt.Errorf("variable %q not found", varName)
	}

	values = slices.Clone(v.Data)
	mask = make([]bool, len(values))

	qc, ok := ds.QCVar(varName)
	if !ok {
		return values, mask, nil
	}
	if len(qc.Data) != len(v.Data) {
		return nil, nil, fmt.Errorf("quality variable %q has %d samples, %q has %d",
			qc.Name, len(qc.Data), varName, len(v.Data))
	}

	collapsed, err := BitsForAssessment(qc, target)
	if err != nil {
		return nil, nil, err
	}
	for i, raw := range qc.Data {
		if Flag(raw)&collapsed != 0 {
			mask[i] = true
		}
	}
	return values, mask, nil
}

func toIntSlice(v any) ([]int, error) {
	switch vv := v.(type) {
	case []int:
		return vv, nil
	case []float64:
		out := make([]int, len(vv))
		for i, f := range vv {
			out[i] = int(f)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a numeric array", container.AttrFlagMasks)
	}
}
