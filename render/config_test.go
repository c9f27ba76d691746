package render

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"levelplot/interp"
	"levelplot/model"
)

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.ScalarPath != "plot/data/phi.txt" || opts.VelocityPath != "plot/data/vel.txt" {
		t.Errorf("unexpected input paths %q %q", opts.ScalarPath, opts.VelocityPath)
	}
	if opts.Quantity != model.QuantityFluid || opts.ScalarMethod != interp.Linear {
		t.Errorf("unexpected quantity/method %s %s", opts.Quantity, opts.ScalarMethod)
	}
	if opts.QuiverSubsample != 4 || opts.QuiverScale != 10 || opts.End != -1 || !opts.Strict {
		t.Errorf("unexpected defaults %+v", opts)
	}
	if !math.IsNaN(opts.VMin) || !math.IsNaN(opts.VMax) {
		t.Errorf("colour bounds should default to automatic, got %v %v", opts.VMin, opts.VMax)
	}
}

func TestLoadOptions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.ini")
	content := `[frames]
start = 2
end = 7
strict = false

[grid]
scalar_cols = 100
scalar_rows = 50
velocity_method = nearest
quiver_subsample = 3

[style]
quantity = pressure
colormap = gnbu
vmin = -1
vmax = 1.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	opts, err := LoadOptions(path)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Start != 2 || opts.End != 7 || opts.Strict {
		t.Errorf("frames section: %+v", opts)
	}
	if opts.ScalarCols != 100 || opts.ScalarRows != 50 || opts.VelocityMethod != interp.Nearest || opts.QuiverSubsample != 3 {
		t.Errorf("grid section: %+v", opts)
	}
	if opts.Quantity != model.QuantityPressure || opts.Colormap != "gnbu" || opts.VMin != -1 || opts.VMax != 1.5 {
		t.Errorf("style section: %+v", opts)
	}

	cfg := &model.SimConfig{HorizontalCells: 10, VerticalCells: 10, CellSize: 1}
	if c, r := opts.scalarDims(cfg); c != 100 || r != 50 {
		t.Errorf("scalar dims %dx%d", c, r)
	}
	if c, r := opts.quiverDims(cfg); c != 3 || r != 3 {
		t.Errorf("quiver dims %dx%d", c, r)
	}
}

func TestLoadOptions_Invalid(t *testing.T) {
	dir := t.TempDir()
	for name, content := range map[string]string{
		"method.ini":   "[grid]\nscalar_method = cubic\n",
		"quantity.ini": "[style]\nquantity = vorticity\n",
		"scale.ini":    "[style]\nquiver_scale = 0\n",
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadOptions(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
	if _, err := LoadOptions(filepath.Join(dir, "missing.ini")); err == nil {
		t.Error("expected error for missing file")
	}
}
