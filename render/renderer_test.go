package render

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"levelplot/blocks"
	"levelplot/model"
)

const (
	simConfig = `{"horizontal_cells": 10, "vertical_cells": 10, "cell_size": 1.0, "fluids": [{}, {}]}`

	phiData = `# BEGIN PHI DATASET
#BLOCK HEADER time:0
#x	y	phi	id	pressure

0	0	-1	0	1
10	0	-1	1	2
0	10	-1	0	3
9	9	-1	1	4
#BLOCK HEADER time:0.5
#x	y	phi	id	pressure

0	0	-2	1	1
10	0	-1	1	2
0	10	-1	0	3
9	9	-0.5	0	4
`

	velData = `# BEGIN VELOCITY DATASET
#BLOCK HEADER time:0
#x	y	u	v

0	0	1	0
10	0	0	1
0	10	-1	0
9	9	0	-1
#BLOCK HEADER time:0.5
#x	y	u	v

0	0	2	0
10	0	0	2
0	10	-2	0
9	9	0	-2
`
)

type fixture struct {
	cfg    *model.SimConfig
	opts   *Options
	frames []model.Frame
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		return path
	}
	cfg, err := model.LoadSimConfig(write("config.json", simConfig))
	if err != nil {
		t.Fatal(err)
	}
	frames, err := blocks.LoadDataset(write("phi.txt", phiData), write("vel.txt", velData), 0, 1, true)
	if err != nil {
		t.Fatal(err)
	}
	opts := DefaultOptions()
	opts.OutputDir = filepath.Join(dir, "images")
	opts.WidthInches = 2
	opts.DPI = 50
	return &fixture{cfg: cfg, opts: opts, frames: frames}
}

func checkPNG(t *testing.T, path string) {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("%s: %v", path, err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		t.Errorf("%s: empty image", path)
	}
}

func TestRenderMovie(t *testing.T) {
	fx := newFixture(t)
	fx.opts.MovieFile = filepath.Join(fx.opts.OutputDir, "phi.avi")
	r, err := NewRenderer(fx.cfg, fx.opts)
	if err != nil {
		t.Fatal(err)
	}
	infos, err := r.RenderMovie(fx.frames)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Fatalf("got %d frames, want 2", len(infos))
	}
	for k, info := range infos {
		if want := filepath.Join(fx.opts.OutputDir, []string{"phi00000.png", "phi00001.png"}[k]); info.Path != want {
			t.Errorf("frame %d written to %s, want %s", k, info.Path, want)
		}
		if info.Extent != [4]float64{0, 10, 0, 10} {
			t.Errorf("frame %d extent %v", k, info.Extent)
		}
		if info.VMin != 0 || info.VMax != 2 {
			t.Errorf("frame %d colour bounds [%v, %v], want [0, 2]", k, info.VMin, info.VMax)
		}
		// (10, 10) 角在凸包外
		if info.Undefined == 0 {
			t.Errorf("frame %d: expected undefined nodes outside the hull", k)
		}
		checkPNG(t, info.Path)
	}
	if st, err := os.Stat(fx.opts.MovieFile); err != nil || st.Size() == 0 {
		t.Errorf("movie not written: %v", err)
	}
}

func TestColorBounds_Stable(t *testing.T) {
	fx := newFixture(t)
	r, err := NewRenderer(fx.cfg, fx.opts)
	if err != nil {
		t.Fatal(err)
	}
	// 单独对每一帧求色标，结果应与帧内容无关
	for _, f := range fx.frames {
		vmin, vmax, err := r.ColorBounds([]model.Frame{f})
		if err != nil {
			t.Fatal(err)
		}
		if vmin != 0 || vmax != float64(fx.cfg.NumFluids()) {
			t.Errorf("frame %d: bounds [%v, %v]", f.Index, vmin, vmax)
		}
	}

	fx.opts.Quantity = model.QuantityPhi
	vmin, vmax, err := r.ColorBounds(fx.frames)
	if err != nil {
		t.Fatal(err)
	}
	if vmin != -2 || vmax != -0.5 {
		t.Errorf("phi bounds [%v, %v], want [-2, -0.5]", vmin, vmax)
	}
}

func TestRenderGallery(t *testing.T) {
	fx := newFixture(t)
	fx.opts.Contour = true
	fx.opts.Quantity = model.QuantityPressure
	fx.opts.Colormap = "viridis"
	r, err := NewRenderer(fx.cfg, fx.opts)
	if err != nil {
		t.Fatal(err)
	}
	path, infos, err := r.RenderGallery(fx.frames)
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 2 {
		t.Errorf("got %d panels, want 2", len(infos))
	}
	if path != filepath.Join(fx.opts.OutputDir, "phi.png") {
		t.Errorf("gallery written to %s", path)
	}
	checkPNG(t, path)
}

func TestRenderMovie_RawQuiver(t *testing.T) {
	fx := newFixture(t)
	fx.opts.QuiverSubsample = 0
	fx.opts.ScalarMethod = "nearest"
	r, err := NewRenderer(fx.cfg, fx.opts)
	if err != nil {
		t.Fatal(err)
	}
	infos, err := r.RenderMovie(fx.frames[1:])
	if err != nil {
		t.Fatal(err)
	}
	if len(infos) != 1 || infos[0].Index != 1 || infos[0].Undefined != 0 {
		t.Errorf("unexpected frames %+v", infos)
	}
}

func TestBuildFrame_Empty(t *testing.T) {
	fx := newFixture(t)
	r, err := NewRenderer(fx.cfg, fx.opts)
	if err != nil {
		t.Fatal(err)
	}
	f := fx.frames[0]
	f.Velocities = nil
	if _, _, err := r.BuildFrame(f, 0, 2); !errors.Is(err, ErrEmptyFrame) {
		t.Errorf("got %v, want ErrEmptyFrame", err)
	}
	if _, err := r.RenderMovie(nil); !errors.Is(err, ErrNoFrames) {
		t.Errorf("got %v, want ErrNoFrames", err)
	}
}

func TestNewRenderer_Invalid(t *testing.T) {
	fx := newFixture(t)
	fx.opts.Colormap = "jet"
	if _, err := NewRenderer(fx.cfg, fx.opts); err == nil {
		t.Error("expected error for unknown colormap")
	}
	fx.opts.Colormap = "pastel2"
	fx.cfg.Fluids = nil
	r, err := NewRenderer(fx.cfg, fx.opts)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := r.ColorBounds(fx.frames); !errors.Is(err, ErrColorBounds) {
		t.Errorf("got %v, want ErrColorBounds", err)
	}
}
