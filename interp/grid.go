package interp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Linspace returns n evenly spaced values over [a, b].
func Linspace(a, b float64, n int) []float64 {
	return floats.Span(make([]float64, n), a, b)
}

// Grid is a regular mesh over [0, xmax] x [0, ymax]. It satisfies
// plotter.GridXYZ so it can be handed to heatmaps and contours directly.
type Grid struct {
	xs []float64
	ys []float64
	z  *mat.Dense // 行对应 y，列对应 x
}

func NewGrid(xmax, ymax float64, cols, rows int) (*Grid, error) {
	if cols < 2 || rows < 2 {
		return nil, fmt.Errorf("grid resolution %dx%d, need at least 2x2", cols, rows)
	}
	if !(xmax > 0) || !(ymax > 0) || math.IsInf(xmax, 0) || math.IsInf(ymax, 0) {
		return nil, fmt.Errorf("grid extent %vx%v must be positive and finite", xmax, ymax)
	}
	return &Grid{
		xs: Linspace(0, xmax, cols),
		ys: Linspace(0, ymax, rows),
		z:  mat.NewDense(rows, cols, nil),
	}, nil
}

func (g *Grid) Dims() (c, r int)       { return len(g.xs), len(g.ys) }
func (g *Grid) Z(c, r int) float64     { return g.z.At(r, c) }
func (g *Grid) X(c int) float64        { return g.xs[c] }
func (g *Grid) Y(r int) float64        { return g.ys[r] }
func (g *Grid) Set(c, r int, v float64) { g.z.Set(r, c, v) }

// 忽略 NaN 的最小值，全部为 NaN 时返回 NaN
func (g *Grid) Min() float64 {
	min := math.NaN()
	for _, v := range g.z.RawMatrix().Data {
		if !math.IsNaN(v) && (math.IsNaN(min) || v < min) {
			min = v
		}
	}
	return min
}

func (g *Grid) Max() float64 {
	max := math.NaN()
	for _, v := range g.z.RawMatrix().Data {
		if !math.IsNaN(v) && (math.IsNaN(max) || v > max) {
			max = v
		}
	}
	return max
}

// Fill evaluates it at every node for the given sample values.
func (g *Grid) Fill(it Interpolator, values []float64) error {
	if len(values) != it.Len() {
		return fmt.Errorf("%d values for %d samples", len(values), it.Len())
	}
	for r, y := range g.ys {
		for c, x := range g.xs {
			g.z.Set(r, c, it.At(x, y, values))
		}
	}
	return nil
}

// 取负，phi 等值线按 -phi 绘制
func (g *Grid) Negate() {
	g.z.Scale(-1, g.z)
}
