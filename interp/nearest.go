package interp

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// 最近邻插值，处处有定义
type nearest struct {
	n    int
	tree *kdtree.Tree
}

func newNearest(xs, ys []float64) (*nearest, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("%w: no samples", ErrTooFewSamples)
	}
	pts := make(samplePoints, len(xs))
	for i := range xs {
		pts[i] = samplePoint{x: xs[i], y: ys[i], i: i}
	}
	return &nearest{n: len(xs), tree: kdtree.New(pts, false)}, nil
}

func (n *nearest) Len() int { return n.n }

func (n *nearest) At(x, y float64, values []float64) float64 {
	got, _ := n.tree.Nearest(samplePoint{x: x, y: y, i: -1})
	return values[got.(samplePoint).i]
}

// kdtree 需要的点类型，i 为原始样本下标
type samplePoint struct {
	x, y float64
	i    int
}

func (p samplePoint) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(samplePoint)
	if d == 0 {
		return p.x - q.x
	}
	return p.y - q.y
}

func (p samplePoint) Dims() int { return 2 }

func (p samplePoint) Distance(c kdtree.Comparable) float64 {
	q := c.(samplePoint)
	dx, dy := p.x-q.x, p.y-q.y
	return dx*dx + dy*dy
}

type samplePoints []samplePoint

func (p samplePoints) Index(i int) kdtree.Comparable         { return p[i] }
func (p samplePoints) Len() int                              { return len(p) }
func (p samplePoints) Pivot(d kdtree.Dim) int                { return plane{dim: d, pts: p}.Pivot() }
func (p samplePoints) Slice(start, end int) kdtree.Interface { return p[start:end] }

type plane struct {
	dim kdtree.Dim
	pts samplePoints
}

func (p plane) Less(i, j int) bool {
	if p.dim == 0 {
		return p.pts[i].x < p.pts[j].x
	}
	return p.pts[i].y < p.pts[j].y
}

func (p plane) Pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.pts = p.pts[start:end]
	return p
}

func (p plane) Swap(i, j int) { p.pts[i], p.pts[j] = p.pts[j], p.pts[i] }
func (p plane) Len() int      { return len(p.pts) }
