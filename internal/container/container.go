package container

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownDim reports a variable referencing a dimension the dataset
	// has no size for.
	ErrUnknownDim = errors.New("unknown dimension")
	// ErrShapeMismatch reports a variable whose data length disagrees with
	// its declared dimensions.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDuplicateName reports a coordinate or variable name collision.
	ErrDuplicateName = errors.New("duplicate name")
)

// Coordinate is a one-dimensional labeled variable whose values are ordered
// and unique along its single dimension, optionally paired with half-open
// interval bounds (one row per label).
type Coordinate struct {
	Variable
	// Bounds is nil when no explicit bounds are attached; the resampler
	// infers center-aligned bounds in that case.
	Bounds Bounds
}

// Clone returns a deep copy of the coordinate.
func (c *Coordinate) Clone() *Coordinate {
	return &Coordinate{
		Variable: *c.Variable.Clone(),
		Bounds:   c.Bounds.Clone(),
	}
}

// Dim returns the coordinate's dimension name. A coordinate always has
// exactly one dimension, conventionally matching its own name.
func (c *Coordinate) Dim() string {
	if len(c.Dims) == 0 {
		return c.Name
	}
	return c.Dims[0]
}

// Dataset is a container of named coordinates and data variables sharing a
// dimension-size table. It is the unit of work handed to the resampling
// transforms; transforms never mutate it.
type Dataset struct {
	Coords map[string]*Coordinate
	Vars   map[string]*Variable
	// DimSizes maps dimension name to length. Coordinate dimensions are
	// registered automatically; dimensions with no coordinate must be
	// registered via SetDimSize before adding variables that use them.
	DimSizes map[string]int
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		Coords:   make(map[string]*Coordinate),
		Vars:     make(map[string]*Variable),
		DimSizes: make(map[string]int),
	}
}

// SetDimSize registers the length of a dimension that has no coordinate.
func (ds *Dataset) SetDimSize(dim string, size int) {
	ds.DimSizes[dim] = size
}

// AddCoord registers a coordinate and its dimension size. The coordinate's
// role is forced to RoleCoordinate.
func (ds *Dataset) AddCoord(c *Coordinate) error {
	if _, exists := ds.Coords[c.Name]; exists {
		return fmt.Errorf("%w: coordinate %q", ErrDuplicateName, c.Name)
	}
	if len(c.Dims) == 0 {
		c.Dims = []string{c.Name}
	}
	if c.Bounds != nil && len(c.Bounds) != len(c.Data) {
		return fmt.Errorf("%w: coordinate %q has %d labels but %d bound rows",
			ErrShapeMismatch, c.Name, len(c.Data), len(c.Bounds))
	}
	c.Role = RoleCoordinate
	ds.Coords[c.Name] = c
	ds.DimSizes[c.Dim()] = len(c.Data)
	return nil
}

// AddVar registers a data variable, validating its shape against the
// dataset's dimension sizes.
func (ds *Dataset) AddVar(v *Variable) error {
	if _, exists := ds.Vars[v.Name]; exists {
		return fmt.Errorf("%w: variable %q", ErrDuplicateName, v.Name)
	}
	want := 1
	for _, dim := range v.Dims {
		size, ok := ds.DimSizes[dim]
		if !ok {
			return fmt.Errorf("%w: variable %q uses dimension %q", ErrUnknownDim, v.Name, dim)
		}
		want *= size
	}
	if len(v.Data) != want {
		return fmt.Errorf("%w: variable %q has %d values, dimensions imply %d",
			ErrShapeMismatch, v.Name, len(v.Data), want)
	}
	ds.Vars[v.Name] = v
	return nil
}

// Coord returns the named coordinate, or nil.
func (ds *Dataset) Coord(name string) *Coordinate {
	return ds.Coords[name]
}

// Var returns the named variable, or nil.
func (ds *Dataset) Var(name string) *Variable {
	return ds.Vars[name]
}

// QCVar returns the quality-mask variable annotating the named variable,
// identified by role and QCFor link rather than by naming convention.
func (ds *Dataset) QCVar(name string) (*Variable, bool) {
	for _, v := range ds.Vars {
		if v.Role == RoleQualityMask && v.QCFor == name {
			return v, true
		}
	}
	return nil, false
}

// VarNames returns all variable names in sorted order for deterministic
// iteration.
func (ds *Dataset) VarNames() []string {
	names := make([]string, 0, len(ds.Vars))
	for name := range ds.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CoordNames returns all coordinate names in sorted order.
func (ds *Dataset) CoordNames() []string {
	names := make([]string, 0, len(ds.Coords))
	for name := range ds.Coords {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DimSize returns the registered length of a dimension.
func (ds *Dataset) DimSize(dim string) (int, bool) {
	size, ok := ds.DimSizes[dim]
	return size, ok
}

// Copy returns a deep copy of the dataset. Transforms use copies of the
// slices they read so the caller's dataset is never mutated.
func (ds *Dataset) Copy() *Dataset {
	out := NewDataset()
	for name, c := range ds.Coords {
		out.Coords[name] = c.Clone()
	}
	for name, v := range ds.Vars {
		out.Vars[name] = v.Clone()
	}
	for dim, size := range ds.DimSizes {
		out.DimSizes[dim] = size
	}
	return out
}
