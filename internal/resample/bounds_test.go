package resample

import (
	"math"
	"testing"

	"github.com/banshee-data/regrid/internal/container"
)

func TestResolveBoundsExplicit(t *testing.T) {
	c := &container.Coordinate{
		Variable: container.Variable{Name: "time", Data: []float64{1, 2}},
		Bounds:   container.Bounds{{0.5, 1.5}, {1.5, 2.5}},
	}
	b, err := ResolveBounds(c)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(b) != 2 || b[0] != [2]float64{0.5, 1.5} || b[1] != [2]float64{1.5, 2.5} {
		t.Errorf("Explicit bounds not passed through: %v", b)
	}

	// Returned bounds must be a copy, not an alias.
	b[0][0] = -99
	if c.Bounds[0][0] != 0.5 {
		t.Errorf("ResolveBounds aliased the coordinate's bounds")
	}
}

func TestResolveBoundsExplicitInvalid(t *testing.T) {
	c := &container.Coordinate{
		Variable: container.Variable{Name: "time", Data: []float64{1, 2}},
		Bounds:   container.Bounds{{1.5, 0.5}, {1.5, 2.5}},
	}
	if _, err := ResolveBounds(c); err == nil {
		t.Errorf("Expected error for decreasing bounds row, got nil")
	}
}

func TestResolveBoundsCenterAligned(t *testing.T) {
	testCases := []struct {
		name     string
		labels   []float64
		expected container.Bounds
	}{
		{"empty", nil, container.Bounds{}},
		{"single_label", []float64{5}, container.Bounds{{5, 5}}},
		{"regular_spacing", []float64{0, 1, 2, 3},
			container.Bounds{{-0.5, 0.5}, {0.5, 1.5}, {1.5, 2.5}, {2.5, 3.5}}},
		{"irregular_spacing", []float64{0, 2, 3},
			container.Bounds{{-1, 1}, {1, 2.5}, {2.5, 3.5}}},
		{"negative_labels", []float64{-4, -2},
			container.Bounds{{-5, -3}, {-3, -1}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := &container.Coordinate{Variable: container.Variable{Name: "x", Data: tc.labels}}
			b, err := ResolveBounds(c)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if len(b) != len(tc.expected) {
				t.Fatalf("Length mismatch: expected %d, got %d", len(tc.expected), len(b))
			}
			for i := range b {
				if math.Abs(b[i][0]-tc.expected[i][0]) > 1e-12 ||
					math.Abs(b[i][1]-tc.expected[i][1]) > 1e-12 {
					t.Errorf("Row %d mismatch: expected %v, got %v", i, tc.expected[i], b[i])
				}
			}
		})
	}
}

// Center-aligned bounds from sorted labels must be contiguous and ordered.
func TestCenterAlignedBoundsContiguous(t *testing.T) {
	labels := []float64{0, 0.5, 1.7, 2, 8, 9.25}
	c := &container.Coordinate{Variable: container.Variable{Name: "x", Data: labels}}
	b, err := ResolveBounds(c)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i := range b {
		if b[i][0] > b[i][1] {
			t.Errorf("Row %d has start > end: %v", i, b[i])
		}
		if i+1 < len(b) && b[i][1] != b[i+1][0] {
			t.Errorf("Rows %d and %d not contiguous: %v then %v", i, i+1, b[i], b[i+1])
		}
	}
}

func TestResolveBoundsTimeLikePrecision(t *testing.T) {
	// Epoch-nanosecond labels: one sample per second starting at
	// 2026-01-01. Naive midpoint arithmetic at this magnitude loses
	// sub-microsecond precision; elapsed-seconds conversion keeps the
	// half-sample offsets exact.
	base := 1.7674e18
	labels := []float64{base, base + 1e9, base + 2e9}
	c := &container.Coordinate{Variable: container.Variable{Name: "time", Data: labels}}
	c.SetAttr(container.AttrUnits, "nanoseconds since 1970-01-01T00:00:00Z")

	b, err := ResolveBounds(c)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	expected := container.Bounds{
		{base - 0.5e9, base + 0.5e9},
		{base + 0.5e9, base + 1.5e9},
		{base + 1.5e9, base + 2.5e9},
	}
	for i := range b {
		if math.Abs(b[i][0]-expected[i][0]) > 1 || math.Abs(b[i][1]-expected[i][1]) > 1 {
			t.Errorf("Row %d mismatch: expected %v, got %v", i, expected[i], b[i])
		}
	}
}

func TestResolveOutputBoundsLengthMismatch(t *testing.T) {
	_, err := resolveOutputBounds([]float64{1, 2}, container.Bounds{{0, 1}}, "", "time")
	if err == nil {
		t.Errorf("Expected error for label/bounds length mismatch, got nil")
	}
}
