// Package quicklook renders PNG quick-look plots comparing an input series
// with its resampled product. It is an operator aid for eyeballing a
// transform's behavior, not a pipeline stage.
package quicklook

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/regrid/internal/container"
)

// Plotter writes quick-look PNGs for resampled variables.
type Plotter struct {
	enabled   bool
	outputDir string
}

// New creates a plotter writing into outputDir.
func New(outputDir string) *Plotter {
	return &Plotter{outputDir: outputDir}
}

// Start creates the output directory and enables rendering.
func (p *Plotter) Start() error {
	if err := os.MkdirAll(p.outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	p.enabled = true
	return nil
}

// Stop disables rendering.
func (p *Plotter) Stop() { p.enabled = false }

// IsEnabled returns true if the plotter is currently rendering.
func (p *Plotter) IsEnabled() bool { return p.enabled }

// OutputDir returns the directory quick-looks are written to.
func (p *Plotter) OutputDir() string { return p.outputDir }

// Render plots one variable from the input dataset against the same
// variable in the resampled dataset, both along the target coordinate,
// and saves the result as <var>.png. Only one-dimensional variables are
// plotted; missing samples are skipped.
func (p *Plotter) Render(in, out *container.Dataset, coordName, varName string) error {
	if !p.enabled {
		return nil
	}

	inVar, outVar := in.Var(varName), out.Var(varName)
	if inVar == nil || outVar == nil {
		return fmt.Errorf("variable %q not present in both datasets", varName)
	}
	if len(inVar.Dims) != 1 || len(outVar.Dims) != 1 {
		return fmt.Errorf("variable %q is not one-dimensional", varName)
	}
	inCoord, outCoord := in.Coord(coordName), out.Coord(coordName)
	if inCoord == nil || outCoord == nil {
		return fmt.Errorf("coordinate %q not present in both datasets", coordName)
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s resampled along %s", varName, coordName)
	pl.X.Label.Text = coordName
	pl.Y.Label.Text = varName
	if u := inVar.Units(); u != "" {
		pl.Y.Label.Text = fmt.Sprintf("%s (%s)", varName, u)
	}

	inLine, err := plotter.NewLine(seriesXYs(inCoord.Data, inVar))
	if err != nil {
		return err
	}
	inLine.Color = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	inLine.Width = vg.Points(1)
	pl.Add(inLine)
	pl.Legend.Add("input", inLine)

	outLine, err := plotter.NewLine(seriesXYs(outCoord.Data, outVar))
	if err != nil {
		return err
	}
	outLine.Color = color.RGBA{R: 200, G: 50, B: 50, A: 255}
	outLine.Width = vg.Points(1.5)
	pl.Add(outLine)
	pl.Legend.Add("resampled", outLine)

	pl.Legend.Top = true
	pl.Legend.Left = false
	pl.Legend.XOffs = -10
	pl.Legend.YOffs = -10

	file := filepath.Join(p.outputDir, varName+".png")
	if err := pl.Save(14*vg.Inch, 6*vg.Inch, file); err != nil {
		return fmt.Errorf("save quicklook plot: %w", err)
	}
	return nil
}

func seriesXYs(coord []float64, v *container.Variable) plotter.XYs {
	pts := make(plotter.XYs, 0, len(coord))
	for i, x := range coord {
		if i >= len(v.Data) || v.IsMissing(v.Data[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: x, Y: v.Data[i]})
	}
	return pts
}

// FormatTimestamp generates a timestamp string for directory naming.
func FormatTimestamp(t time.Time) string {
	return t.Format("20060102_150405")
}

// MakeOutputDir returns a timestamped quick-look directory under baseDir.
func MakeOutputDir(baseDir, runName string) string {
	ts := FormatTimestamp(time.Now())
	if runName != "" {
		return filepath.Join(baseDir, runName, ts)
	}
	return filepath.Join(baseDir, ts)
}
