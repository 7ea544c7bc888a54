// Package container provides the labeled-array data model shared by the
// resampling transforms: named numeric variables with ordered dimensions,
// coordinates with optional interval bounds, and the dataset that holds
// them. Variables carry an explicit role tag so quality masks and derived
// metrics are identified structurally rather than by name sniffing.
package container

import (
	"fmt"
	"math"
	"slices"
)

// Role identifies what a variable represents within a dataset.
type Role int

const (
	// RolePrimary marks an ordinary data variable.
	RolePrimary Role = iota
	// RoleCoordinate marks a coordinate label variable.
	RoleCoordinate
	// RoleQualityMask marks a per-sample quality bitmask variable.
	RoleQualityMask
	// RoleStdMetric marks a derived standard-deviation variable.
	RoleStdMetric
	// RoleGoodFractionMetric marks a derived good-fraction variable.
	RoleGoodFractionMetric
)

// String returns the role name for logs and error messages.
func (r Role) String() string {
	switch r {
	case RolePrimary:
		return "primary"
	case RoleCoordinate:
		return "coordinate"
	case RoleQualityMask:
		return "quality_mask"
	case RoleStdMetric:
		return "std_metric"
	case RoleGoodFractionMetric:
		return "goodfraction_metric"
	default:
		return fmt.Sprintf("role(%d)", int(r))
	}
}

// Well-known attribute keys.
const (
	AttrUnits           = "units"
	AttrFillValue       = "_FillValue"
	AttrLongName        = "long_name"
	AttrDescription     = "description"
	AttrStandardName    = "standard_name"
	AttrFlagMasks       = "flag_masks"
	AttrFlagMeanings    = "flag_meanings"
	AttrFlagAssessments = "flag_assessments"
)

// Variable is a named numeric array with an ordered dimension list and a
// metadata map. Data is stored row-major in Dims order.
type Variable struct {
	Name string
	Data []float64
	Dims []string
	// Attrs holds units, fill value and arbitrary metadata.
	Attrs map[string]any
	Role  Role
	// QCFor names the variable this quality mask annotates. Empty unless
	// Role is RoleQualityMask.
	QCFor string
}

// Clone returns a deep copy of the variable.
func (v *Variable) Clone() *Variable {
	out := &Variable{
		Name:  v.Name,
		Data:  slices.Clone(v.Data),
		Dims:  slices.Clone(v.Dims),
		Attrs: CloneAttrs(v.Attrs),
		Role:  v.Role,
		QCFor: v.QCFor,
	}
	return out
}

// CloneAttrs deep-copies an attribute map, including slice-valued attrs.
func CloneAttrs(attrs map[string]any) map[string]any {
	if attrs == nil {
		return nil
	}
	out := make(map[string]any, len(attrs))
	for k, val := range attrs {
		switch vv := val.(type) {
		case []float64:
			out[k] = slices.Clone(vv)
		case []int:
			out[k] = slices.Clone(vv)
		case []string:
			out[k] = slices.Clone(vv)
		default:
			out[k] = val
		}
	}
	return out
}

// SetAttr sets a metadata attribute, allocating the map on first use.
func (v *Variable) SetAttr(key string, value any) {
	if v.Attrs == nil {
		v.Attrs = make(map[string]any)
	}
	v.Attrs[key] = value
}

// Attr returns the named attribute and whether it is present.
func (v *Variable) Attr(key string) (any, bool) {
	val, ok := v.Attrs[key]
	return val, ok
}

// StringAttr returns the named attribute as a string. Missing or
// non-string attributes return "".
func (v *Variable) StringAttr(key string) string {
	if s, ok := v.Attrs[key].(string); ok {
		return s
	}
	return ""
}

// Units returns the variable's units attribute, or "".
func (v *Variable) Units() string { return v.StringAttr(AttrUnits) }

// FillValue returns the declared fill value and whether one is declared.
func (v *Variable) FillValue() (float64, bool) {
	switch fv := v.Attrs[AttrFillValue].(type) {
	case float64:
		return fv, true
	case float32:
		return float64(fv), true
	case int:
		return float64(fv), true
	case int64:
		return float64(fv), true
	default:
		return 0, false
	}
}

// IsMissing reports whether a sample value is missing: NaN always counts,
// and the declared fill value counts when one is present.
func (v *Variable) IsMissing(val float64) bool {
	if math.IsNaN(val) {
		return true
	}
	if fv, ok := v.FillValue(); ok && val == fv {
		return true
	}
	return false
}

// HasDim reports whether the variable is dimensioned (even partially) by
// the named dimension.
func (v *Variable) HasDim(dim string) bool {
	return slices.Contains(v.Dims, dim)
}

// DimIndex returns the position of the named dimension in Dims, or -1.
func (v *Variable) DimIndex(dim string) int {
	return slices.Index(v.Dims, dim)
}
