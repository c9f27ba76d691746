package interp

import (
	"fmt"
	"math"

	"github.com/fogleman/delaunay"
)

const baryEps = 1e-9

// 基于 Delaunay 三角剖分的重心坐标线性插值，凸包外为 NaN
type linear struct {
	xs   []float64
	ys   []float64
	tris []int
	idx  *bucketIndex
}

func newLinear(xs, ys []float64) (*linear, error) {
	if len(xs) < 3 {
		return nil, fmt.Errorf("%w: %d samples, linear needs 3", ErrTooFewSamples, len(xs))
	}
	points := make([]delaunay.Point, len(xs))
	for i := range xs {
		points[i] = delaunay.Point{X: xs[i], Y: ys[i]}
	}
	t, err := delaunay.Triangulate(points)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerate, err)
	}
	if len(t.Triangles) == 0 {
		return nil, ErrDegenerate
	}
	l := &linear{xs: xs, ys: ys, tris: t.Triangles}
	l.idx = newBucketIndex(l)
	return l, nil
}

func (l *linear) Len() int { return len(l.xs) }

func (l *linear) At(x, y float64, values []float64) float64 {
	for _, t := range l.idx.candidates(x, y) {
		i, j, k := l.tris[3*t], l.tris[3*t+1], l.tris[3*t+2]
		w0, w1, w2, ok := barycentric(x, y, l.xs[i], l.ys[i], l.xs[j], l.ys[j], l.xs[k], l.ys[k])
		if ok {
			return w0*values[i] + w1*values[j] + w2*values[k]
		}
	}
	return math.NaN()
}

func barycentric(x, y, x0, y0, x1, y1, x2, y2 float64) (float64, float64, float64, bool) {
	d := (y1-y2)*(x0-x2) + (x2-x1)*(y0-y2)
	if math.Abs(d) < 1e-14 {
		return 0, 0, 0, false
	}
	w0 := ((y1-y2)*(x-x2) + (x2-x1)*(y-y2)) / d
	w1 := ((y2-y0)*(x-x2) + (x0-x2)*(y-y2)) / d
	w2 := 1 - w0 - w1
	if w0 < -baryEps || w1 < -baryEps || w2 < -baryEps {
		return 0, 0, 0, false
	}
	return w0, w1, w2, true
}

// 均匀分桶索引，每个桶记录与之包围盒相交的三角形
type bucketIndex struct {
	minX, minY float64
	w, h       float64
	n          int
	buckets    [][]int
}

func newBucketIndex(l *linear) *bucketIndex {
	b := &bucketIndex{minX: math.Inf(1), minY: math.Inf(1)}
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for i := range l.xs {
		b.minX = math.Min(b.minX, l.xs[i])
		b.minY = math.Min(b.minY, l.ys[i])
		maxX = math.Max(maxX, l.xs[i])
		maxY = math.Max(maxY, l.ys[i])
	}
	b.w, b.h = maxX-b.minX, maxY-b.minY

	ntri := len(l.tris) / 3
	b.n = int(math.Ceil(math.Sqrt(float64(ntri))))
	if b.n < 1 {
		b.n = 1
	}
	b.buckets = make([][]int, b.n*b.n)
	for t := 0; t < ntri; t++ {
		tx0, ty0 := math.Inf(1), math.Inf(1)
		tx1, ty1 := math.Inf(-1), math.Inf(-1)
		for v := 0; v < 3; v++ {
			p := l.tris[3*t+v]
			tx0, ty0 = math.Min(tx0, l.xs[p]), math.Min(ty0, l.ys[p])
			tx1, ty1 = math.Max(tx1, l.xs[p]), math.Max(ty1, l.ys[p])
		}
		c0, r0 := b.cell(tx0, ty0)
		c1, r1 := b.cell(tx1, ty1)
		for r := r0; r <= r1; r++ {
			for c := c0; c <= c1; c++ {
				b.buckets[r*b.n+c] = append(b.buckets[r*b.n+c], t)
			}
		}
	}
	return b
}

func (b *bucketIndex) cell(x, y float64) (int, int) {
	return b.clamp((x - b.minX) / b.w), b.clamp((y - b.minY) / b.h)
}

func (b *bucketIndex) clamp(f float64) int {
	i := int(f * float64(b.n))
	if math.IsNaN(f) || i < 0 {
		return 0
	}
	if i >= b.n {
		return b.n - 1
	}
	return i
}

func (b *bucketIndex) candidates(x, y float64) []int {
	const eps = 1e-9
	if x < b.minX-eps || y < b.minY-eps || x > b.minX+b.w+eps || y > b.minY+b.h+eps {
		return nil
	}
	c, r := b.cell(x, y)
	return b.buckets[r*b.n+c]
}
