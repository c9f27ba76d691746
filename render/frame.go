package render

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"levelplot/interp"
	"levelplot/model"
)

var (
	ErrEmptyFrame  = errors.New("frame has no samples")
	ErrColorBounds = errors.New("invalid colour bounds")
)

// FrameInfo describes what was rendered for one time block.
type FrameInfo struct {
	Index     int
	Path      string
	Extent    [4]float64 // xmin, xmax, ymin, ymax
	VMin      float64
	VMax      float64
	Undefined int // 凸包外未定义的网格节点数
}

// ColorBounds returns the fixed colour range shared by every frame. Explicit
// vmin/vmax win. Otherwise fluid ids map onto [0, number of fluids] and the
// other quantities onto their range over all frames.
func (r *Renderer) ColorBounds(frames []model.Frame) (float64, float64, error) {
	vmin, vmax := r.opts.VMin, r.opts.VMax
	if math.IsNaN(vmin) || math.IsNaN(vmax) {
		lo, hi := 0.0, float64(r.cfg.NumFluids())
		if r.opts.Quantity != model.QuantityFluid {
			lo, hi = columnRange(frames, r.opts.Quantity)
		}
		if math.IsNaN(vmin) {
			vmin = lo
		}
		if math.IsNaN(vmax) {
			vmax = hi
		}
	}
	if math.IsNaN(vmin) || math.IsNaN(vmax) || !(vmax > vmin) {
		return 0, 0, fmt.Errorf("%w: [%v, %v] for %s", ErrColorBounds, vmin, vmax, r.opts.Quantity)
	}
	return vmin, vmax, nil
}

func columnRange(frames []model.Frame, q model.Quantity) (float64, float64) {
	lo, hi := math.NaN(), math.NaN()
	for i := range frames {
		for _, v := range frames[i].ScalarColumn(q) {
			if math.IsNaN(lo) || v < lo {
				lo = v
			}
			if math.IsNaN(hi) || v > hi {
				hi = v
			}
		}
	}
	// 常数场时展开一个单位
	if lo == hi {
		lo, hi = lo-0.5, hi+0.5
	}
	return lo, hi
}

// BuildFrame interpolates one frame and assembles its plot: a heatmap of the
// chosen quantity, an optional -phi contour and the velocity quiver.
func (r *Renderer) BuildFrame(f model.Frame, vmin, vmax float64) (*plot.Plot, FrameInfo, error) {
	info := FrameInfo{
		Index:  f.Index,
		Extent: [4]float64{0, r.cfg.XMax(), 0, r.cfg.YMax()},
		VMin:   vmin,
		VMax:   vmax,
	}
	if len(f.Scalars) == 0 || len(f.Velocities) == 0 {
		return nil, info, fmt.Errorf("frame %d: %w", f.Index, ErrEmptyFrame)
	}

	xs := make([]float64, len(f.Scalars))
	ys := make([]float64, len(f.Scalars))
	for i, s := range f.Scalars {
		xs[i], ys[i] = s.X, s.Y
	}

	cols, rows := r.opts.scalarDims(r.cfg)
	scalar, err := interp.NewGrid(r.cfg.XMax(), r.cfg.YMax(), cols, rows)
	if err != nil {
		return nil, info, err
	}
	if err := interp.Griddata(r.opts.ScalarMethod, xs, ys, f.ScalarColumn(r.opts.Quantity), scalar); err != nil {
		return nil, info, fmt.Errorf("frame %d scalar field: %w", f.Index, err)
	}
	info.Undefined = countNaN(scalar)

	p := plot.New()
	p.HideAxes()

	heat := plotter.NewHeatMap(scalar, r.heat)
	heat.Min, heat.Max = vmin, vmax
	colors := r.heat.Colors()
	heat.Underflow = colors[0]
	heat.Overflow = colors[len(colors)-1]
	p.Add(heat)

	if r.opts.Contour {
		contour, err := r.phiContour(xs, ys, f)
		if err != nil {
			return nil, info, fmt.Errorf("frame %d contour: %w", f.Index, err)
		}
		if contour != nil {
			p.Add(contour)
		}
	}

	q, err := r.quiver(f)
	if err != nil {
		return nil, info, fmt.Errorf("frame %d velocity field: %w", f.Index, err)
	}
	p.Add(q)

	p.X.Min, p.X.Max = info.Extent[0], info.Extent[1]
	p.Y.Min, p.Y.Max = info.Extent[2], info.Extent[3]
	return p, info, nil
}

// -phi 的最近邻插值等值线，phi 为常数时不画
func (r *Renderer) phiContour(xs, ys []float64, f model.Frame) (*plotter.Contour, error) {
	cols, rows := r.opts.scalarDims(r.cfg)
	g, err := interp.NewGrid(r.cfg.XMax(), r.cfg.YMax(), cols, rows)
	if err != nil {
		return nil, err
	}
	if err := interp.Griddata(interp.Nearest, xs, ys, f.ScalarColumn(model.QuantityPhi), g); err != nil {
		return nil, err
	}
	g.Negate()
	lo, hi := g.Min(), g.Max()
	if !(hi > lo) {
		return nil, nil
	}
	n := r.opts.ContourLevels
	levels := interp.Linspace(lo, hi, n+2)[1 : n+1]
	return plotter.NewContour(g, levels, r.contour), nil
}

// 速度场箭头，subsample 为 0 时直接画原始采样点
func (r *Renderer) quiver(f model.Frame) (*Quiver, error) {
	n := len(f.Velocities)
	xs, ys := make([]float64, n), make([]float64, n)
	us, vs := make([]float64, n), make([]float64, n)
	for i, v := range f.Velocities {
		xs[i], ys[i], us[i], vs[i] = v.X, v.Y, v.U, v.V
	}
	if r.opts.QuiverSubsample > 0 {
		it, err := interp.New(r.opts.VelocityMethod, xs, ys)
		if err != nil {
			return nil, err
		}
		cols, rows := r.opts.quiverDims(r.cfg)
		uGrid, err := interp.NewGrid(r.cfg.XMax(), r.cfg.YMax(), cols, rows)
		if err != nil {
			return nil, err
		}
		vGrid, _ := interp.NewGrid(r.cfg.XMax(), r.cfg.YMax(), cols, rows)
		if err := uGrid.Fill(it, us); err != nil {
			return nil, err
		}
		if err := vGrid.Fill(it, vs); err != nil {
			return nil, err
		}
		xs, ys, us, vs = flatten(uGrid, vGrid)
	}
	q := NewQuiver(xs, ys, us, vs, r.opts.QuiverScale, r.magnitude)
	q.Width = vg.Points(r.opts.ArrowWidth)
	q.HeadWidth = r.opts.HeadWidth
	return q, nil
}

func flatten(uGrid, vGrid *interp.Grid) (xs, ys, us, vs []float64) {
	cols, rows := uGrid.Dims()
	for j := 0; j < rows; j++ {
		for i := 0; i < cols; i++ {
			xs = append(xs, uGrid.X(i))
			ys = append(ys, uGrid.Y(j))
			us = append(us, uGrid.Z(i, j))
			vs = append(vs, vGrid.Z(i, j))
		}
	}
	return xs, ys, us, vs
}

func countNaN(g *interp.Grid) int {
	n := 0
	cols, rows := g.Dims()
	for i := 0; i < cols; i++ {
		for j := 0; j < rows; j++ {
			if math.IsNaN(g.Z(i, j)) {
				n++
			}
		}
	}
	return n
}
