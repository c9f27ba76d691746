package interp

import (
	"errors"
	"fmt"
)

type Method string

const (
	Linear  Method = "linear"
	Nearest Method = "nearest"
)

var (
	ErrTooFewSamples = errors.New("too few samples to interpolate")
	ErrDegenerate    = errors.New("samples do not span an area")
)

func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case Linear, Nearest:
		return m, nil
	}
	return "", fmt.Errorf("unknown interpolation method %q", s)
}

// Interpolator is built once over a set of scattered sample positions and can
// then evaluate any value column sampled at those positions.
type Interpolator interface {
	// At returns the interpolated value at (x, y), NaN when undefined there.
	At(x, y float64, values []float64) float64
	// Len is the number of sample positions.
	Len() int
}

func New(method Method, xs, ys []float64) (Interpolator, error) {
	if len(xs) != len(ys) {
		return nil, fmt.Errorf("%d x positions, %d y positions", len(xs), len(ys))
	}
	switch method {
	case Linear:
		return newLinear(xs, ys)
	case Nearest:
		return newNearest(xs, ys)
	}
	return nil, fmt.Errorf("unknown interpolation method %q", method)
}

// Griddata interpolates values sampled at (xs, ys) onto g.
func Griddata(method Method, xs, ys, values []float64, g *Grid) error {
	it, err := New(method, xs, ys)
	if err != nil {
		return err
	}
	return g.Fill(it, values)
}
