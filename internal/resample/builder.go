package resample

import (
	"fmt"
	"math"
	"slices"

	"github.com/banshee-data/regrid/internal/container"
	"github.com/banshee-data/regrid/internal/quality"
)

// BuildFlags selects the placeholder variables allocated alongside each
// reallocated data variable.
type BuildFlags struct {
	AddQualityMask bool
	AddMetrics     bool
}

// BuildOutput allocates a result dataset mirroring the input's structure
// but resized to the new target coordinate.
//
// Coordinates other than the target are copied unchanged; the target's
// labels and bounds are replaced. Every primary variable dimensioned by
// the target coordinate is reallocated at the new shape with missing-value
// placeholders and its metadata copied; variables not touching the target
// coordinate are passed through by reference. Existing quality-mask and
// metric variables (identified by role, not name) are never carried over:
// the transforms regenerate them.
func BuildOutput(in *container.Dataset, coordName string, labels []float64, bounds container.Bounds, flags BuildFlags) (*container.Dataset, error) {
	oldCoord := in.Coord(coordName)
	if oldCoord == nil {
		return nil, fmt.Errorf("%w: %q", ErrCoordinateNotFound, coordName)
	}
	if len(bounds) != len(labels) {
		return nil, ErrLabelBoundsMismatch
	}
	targetDim := oldCoord.Dim()

	out := container.NewDataset()
	for dim, size := range in.DimSizes {
		out.DimSizes[dim] = size
	}
	out.DimSizes[targetDim] = len(labels)

	newCoord := &container.Coordinate{
		Variable: container.Variable{
			Name:  oldCoord.Name,
			Data:  slices.Clone(labels),
			Dims:  slices.Clone(oldCoord.Dims),
			Attrs: container.CloneAttrs(oldCoord.Attrs),
		},
		Bounds: bounds.Clone(),
	}
	if err := out.AddCoord(newCoord); err != nil {
		return nil, err
	}
	for _, name := range in.CoordNames() {
		if name == coordName {
			continue
		}
		if err := out.AddCoord(in.Coord(name).Clone()); err != nil {
			return nil, err
		}
	}

	for _, name := range in.VarNames() {
		v := in.Var(name)
		switch v.Role {
		case container.RoleQualityMask, container.RoleStdMetric, container.RoleGoodFractionMetric:
			// Regenerated by the transform, never carried over.
			continue
		}
		if !v.HasDim(targetDim) {
			if err := out.AddVar(v); err != nil {
				return nil, err
			}
			continue
		}

		size, err := shapeSize(v.Dims, out.DimSizes)
		if err != nil {
			return nil, fmt.Errorf("variable %q: %w", name, err)
		}
		nv := &container.Variable{
			Name:  v.Name,
			Data:  filled(size, math.NaN()),
			Dims:  slices.Clone(v.Dims),
			Attrs: container.CloneAttrs(v.Attrs),
			Role:  container.RolePrimary,
		}
		nv.SetAttr(container.AttrFillValue, math.NaN())
		if err := out.AddVar(nv); err != nil {
			return nil, err
		}

		if flags.AddQualityMask {
			qv := &container.Variable{
				Name:  "qc_" + v.Name,
				Data:  make([]float64, size),
				Dims:  slices.Clone(v.Dims),
				Attrs: quality.Attrs(),
				Role:  container.RoleQualityMask,
				QCFor: v.Name,
			}
			qv.SetAttr(container.AttrLongName, "Quality check results on field: "+v.Name)
			if err := out.AddVar(qv); err != nil {
				return nil, err
			}
		}
		if flags.AddMetrics {
			sv := &container.Variable{
				Name: v.Name + "_std",
				Data: filled(size, math.NaN()),
				Dims: slices.Clone(v.Dims),
				Attrs: map[string]any{
					container.AttrUnits:       v.Units(),
					container.AttrDescription: "Weighted standard deviation of " + v.Name + " over each output interval",
					container.AttrFillValue:   math.NaN(),
				},
				Role: container.RoleStdMetric,
			}
			gv := &container.Variable{
				Name: v.Name + "_goodfraction",
				Data: filled(size, math.NaN()),
				Dims: slices.Clone(v.Dims),
				Attrs: map[string]any{
					container.AttrUnits:       "1",
					container.AttrDescription: "Weighted fraction of input samples not assessed Bad for " + v.Name,
					container.AttrFillValue:   math.NaN(),
				},
				Role: container.RoleGoodFractionMetric,
			}
			if err := out.AddVar(sv); err != nil {
				return nil, err
			}
			if err := out.AddVar(gv); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

func shapeSize(dims []string, sizes map[string]int) (int, error) {
	n := 1
	for _, d := range dims {
		size, ok := sizes[d]
		if !ok {
			return 0, fmt.Errorf("%w: %q", container.ErrUnknownDim, d)
		}
		n *= size
	}
	return n, nil
}

func filled(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}
