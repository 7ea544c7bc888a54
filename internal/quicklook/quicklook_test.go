package quicklook

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/regrid/internal/container"
)

func plotDatasets(t *testing.T) (in, out *container.Dataset) {
	t.Helper()
	in = container.NewDataset()
	if err := in.AddCoord(&container.Coordinate{
		Variable: container.Variable{Name: "time", Data: []float64{0, 1, 2, 3}},
	}); err != nil {
		t.Fatalf("AddCoord: %v", err)
	}
	if err := in.AddVar(&container.Variable{
		Name: "temp", Data: []float64{10, 20, math.NaN(), 40}, Dims: []string{"time"},
		Attrs: map[string]any{container.AttrUnits: "degC"},
	}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}

	out = container.NewDataset()
	if err := out.AddCoord(&container.Coordinate{
		Variable: container.Variable{Name: "time", Data: []float64{0.5, 2.5}},
	}); err != nil {
		t.Fatalf("AddCoord: %v", err)
	}
	if err := out.AddVar(&container.Variable{
		Name: "temp", Data: []float64{15, 40}, Dims: []string{"time"},
	}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	return in, out
}

func TestRenderWritesPNG(t *testing.T) {
	in, out := plotDatasets(t)

	p := New(t.TempDir())
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Render(in, out, "time", "temp"); err != nil {
		t.Fatalf("Render: %v", err)
	}

	file := filepath.Join(p.OutputDir(), "temp.png")
	info, err := os.Stat(file)
	if err != nil {
		t.Fatalf("Expected quicklook PNG at %s: %v", file, err)
	}
	if info.Size() == 0 {
		t.Errorf("Quicklook PNG is empty")
	}
}

func TestRenderDisabledIsNoop(t *testing.T) {
	in, out := plotDatasets(t)

	p := New(t.TempDir())
	if err := p.Render(in, out, "time", "temp"); err != nil {
		t.Fatalf("Render while disabled: %v", err)
	}
	entries, err := os.ReadDir(p.OutputDir())
	if err == nil && len(entries) > 0 {
		t.Errorf("Disabled plotter wrote output")
	}
}

func TestRenderRejectsMultiDimVariable(t *testing.T) {
	in, out := plotDatasets(t)
	in.SetDimSize("height", 2)
	if err := in.AddVar(&container.Variable{
		Name: "wind", Data: make([]float64, 8), Dims: []string{"time", "height"},
	}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}
	out.SetDimSize("height", 2)
	if err := out.AddVar(&container.Variable{
		Name: "wind", Data: make([]float64, 4), Dims: []string{"time", "height"},
	}); err != nil {
		t.Fatalf("AddVar: %v", err)
	}

	p := New(t.TempDir())
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Render(in, out, "time", "wind"); err == nil {
		t.Errorf("Expected error for multi-dimensional variable")
	}
}

func TestRenderUnknownVariable(t *testing.T) {
	in, out := plotDatasets(t)
	p := New(t.TempDir())
	if err := p.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := p.Render(in, out, "time", "pressure"); err == nil {
		t.Errorf("Expected error for unknown variable")
	}
}

func TestMakeOutputDir(t *testing.T) {
	dir := MakeOutputDir("plots", "run-42")
	if filepath.Dir(dir) != filepath.Join("plots", "run-42") {
		t.Errorf("Expected run name in path, got %q", dir)
	}
	noRun := MakeOutputDir("plots", "")
	if filepath.Dir(noRun) != "plots" {
		t.Errorf("Expected timestamped dir directly under base, got %q", noRun)
	}
}
