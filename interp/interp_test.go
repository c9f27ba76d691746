package interp

import (
	"errors"
	"math"
	"testing"
)

func plane3(x, y float64) float64 { return 2*x - 3*y + 1 }

// 不共圆的散点，凸包不覆盖 (10, 10) 角
func scattered() ([]float64, []float64) {
	return []float64{0, 10, 0, 9, 4, 6}, []float64{0, 0, 10, 9, 3, 5}
}

func TestLinspace(t *testing.T) {
	got := Linspace(0, 10, 5)
	want := []float64{0, 2.5, 5, 7.5, 10}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestNewGrid_Invalid(t *testing.T) {
	if _, err := NewGrid(10, 10, 1, 5); err == nil {
		t.Error("expected error for 1 column")
	}
	if _, err := NewGrid(0, 10, 5, 5); err == nil {
		t.Error("expected error for zero extent")
	}
	if _, err := NewGrid(math.Inf(1), 10, 5, 5); err == nil {
		t.Error("expected error for infinite extent")
	}
}

func TestLinear_ReproducesPlane(t *testing.T) {
	xs, ys := scattered()
	values := make([]float64, len(xs))
	for i := range xs {
		values[i] = plane3(xs[i], ys[i])
	}
	g, err := NewGrid(10, 10, 11, 11)
	if err != nil {
		t.Fatal(err)
	}
	if err := Griddata(Linear, xs, ys, values, g); err != nil {
		t.Fatal(err)
	}

	for _, p := range [][2]int{{0, 0}, {5, 5}, {2, 7}, {10, 0}, {0, 10}, {9, 9}} {
		got := g.Z(p[0], p[1])
		want := plane3(g.X(p[0]), g.Y(p[1]))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("node %v: got %v, want %v", p, got, want)
		}
	}
	if v := g.Z(10, 10); !math.IsNaN(v) {
		t.Errorf("outside hull: got %v, want NaN", v)
	}
	if min, max := g.Min(), g.Max(); math.IsNaN(min) || math.IsNaN(max) || min > max {
		t.Errorf("min/max ignoring NaN: %v %v", min, max)
	}
}

func TestLinear_Errors(t *testing.T) {
	if _, err := New(Linear, []float64{0, 1}, []float64{0, 1}); !errors.Is(err, ErrTooFewSamples) {
		t.Errorf("got %v, want ErrTooFewSamples", err)
	}
	if _, err := New(Linear, []float64{0, 1, 2}, []float64{0, 1, 2}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("collinear: got %v, want ErrDegenerate", err)
	}
	if _, err := New("cubic", []float64{0}, []float64{0}); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestNearest(t *testing.T) {
	xs := []float64{1, 9, 1, 9}
	ys := []float64{1, 1, 9, 9}
	values := []float64{1, 2, 3, 4}
	g, err := NewGrid(10, 10, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	if err := Griddata(Nearest, xs, ys, values, g); err != nil {
		t.Fatal(err)
	}
	want := map[[2]int]float64{{0, 0}: 1, {2, 0}: 2, {0, 2}: 3, {2, 2}: 4}
	for p, w := range want {
		if got := g.Z(p[0], p[1]); got != w {
			t.Errorf("node %v: got %v, want %v", p, got, w)
		}
	}
	c, r := g.Dims()
	for i := 0; i < c; i++ {
		for j := 0; j < r; j++ {
			if math.IsNaN(g.Z(i, j)) {
				t.Errorf("nearest produced NaN at %d,%d", i, j)
			}
		}
	}
}

func TestGriddata_Deterministic(t *testing.T) {
	xs, ys := scattered()
	values := []float64{0.1, 0.7, 1.3, 1.9, 0.2, 1.1}
	for _, m := range []Method{Linear, Nearest} {
		a, _ := NewGrid(10, 10, 17, 13)
		b, _ := NewGrid(10, 10, 17, 13)
		if err := Griddata(m, xs, ys, values, a); err != nil {
			t.Fatal(err)
		}
		if err := Griddata(m, xs, ys, values, b); err != nil {
			t.Fatal(err)
		}
		c, r := a.Dims()
		for i := 0; i < c; i++ {
			for j := 0; j < r; j++ {
				va, vb := a.Z(i, j), b.Z(i, j)
				if math.Float64bits(va) != math.Float64bits(vb) {
					t.Fatalf("%s: node %d,%d differs: %v vs %v", m, i, j, va, vb)
				}
			}
		}
	}
}

func TestFill_LengthMismatch(t *testing.T) {
	xs, ys := scattered()
	it, err := New(Nearest, xs, ys)
	if err != nil {
		t.Fatal(err)
	}
	g, _ := NewGrid(1, 1, 2, 2)
	if err := g.Fill(it, []float64{1}); err == nil {
		t.Error("expected error for value count mismatch")
	}
}

func BenchmarkLinear(b *testing.B) {
	const n = 40
	var xs, ys, values []float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			xs = append(xs, float64(i)+0.5)
			ys = append(ys, float64(j)+0.5)
			values = append(values, float64(i*j))
		}
	}
	g, _ := NewGrid(n, n, 2*n, 2*n)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := Griddata(Linear, xs, ys, values, g); err != nil {
			b.Fatal(err)
		}
	}
}
