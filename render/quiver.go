package render

import (
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Quiver draws one arrow per sample, pivoted at its midpoint. Arrow length in
// data units is |(u, v)| / Scale and the arrow colour encodes that magnitude.
type Quiver struct {
	X, Y, U, V []float64

	Scale     float64
	Width     vg.Length
	HeadWidth float64 // Width 的倍数
	Palette   palette.Palette

	// 速度大小的色标范围
	Min, Max float64
}

func NewQuiver(xs, ys, us, vs []float64, scale float64, p palette.Palette) *Quiver {
	q := &Quiver{
		X:         xs,
		Y:         ys,
		U:         us,
		V:         vs,
		Scale:     scale,
		Width:     vg.Points(1),
		HeadWidth: 2,
		Palette:   p,
		Min:       math.Inf(1),
		Max:       math.Inf(-1),
	}
	for i := range us {
		m := math.Hypot(us[i], vs[i])
		if math.IsNaN(m) {
			continue
		}
		q.Min = math.Min(q.Min, m)
		q.Max = math.Max(q.Max, m)
	}
	return q
}

func (q *Quiver) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	colors := q.Palette.Colors()
	for i := range q.X {
		u, v := q.U[i], q.V[i]
		if math.IsNaN(u) || math.IsNaN(v) {
			continue
		}
		hx, hy := u/q.Scale/2, v/q.Scale/2
		tail := vg.Point{X: trX(q.X[i] - hx), Y: trY(q.Y[i] - hy)}
		tip := vg.Point{X: trX(q.X[i] + hx), Y: trY(q.Y[i] + hy)}
		col := colorAt(colors, math.Hypot(u, v), q.Min, q.Max)

		c.StrokeLine2(draw.LineStyle{Color: col, Width: q.Width}, tail.X, tail.Y, tip.X, tip.Y)

		dx, dy := float64(tip.X-tail.X), float64(tip.Y-tail.Y)
		l := math.Hypot(dx, dy)
		if l == 0 {
			continue
		}
		// 箭头长度不超过箭身的一半
		headLen := math.Min(2.5*q.HeadWidth*float64(q.Width), l/2)
		half := q.HeadWidth * float64(q.Width) / 2
		ux, uy := dx/l, dy/l
		bx, by := float64(tip.X)-ux*headLen, float64(tip.Y)-uy*headLen
		c.FillPolygon(col, []vg.Point{
			tip,
			{X: vg.Length(bx - uy*half), Y: vg.Length(by + ux*half)},
			{X: vg.Length(bx + uy*half), Y: vg.Length(by - ux*half)},
		})
	}
}

// DataRange implements plot.DataRanger.
func (q *Quiver) DataRange() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for i := range q.X {
		xmin, xmax = math.Min(xmin, q.X[i]), math.Max(xmax, q.X[i])
		ymin, ymax = math.Min(ymin, q.Y[i]), math.Max(ymax, q.Y[i])
	}
	return xmin, xmax, ymin, ymax
}
