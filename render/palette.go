package render

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/mazznoer/colorgrad"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
)

const gradientColors = 256

// ColorBrewer 色板及其最大颜色数
var brewerPalettes = map[string]struct {
	name   string
	colors int
}{
	"pastel2":  {"Pastel2", 8},
	"pastel1":  {"Pastel1", 9},
	"set3":     {"Set3", 12},
	"rdbu":     {"RdBu", 11},
	"gnbu":     {"GnBu", 9},
	"spectral": {"Spectral", 11},
}

var gradients = map[string]func() colorgrad.Gradient{
	"viridis": colorgrad.Viridis,
	"magma":   colorgrad.Magma,
	"plasma":  colorgrad.Plasma,
	"inferno": colorgrad.Inferno,
	"turbo":   colorgrad.Turbo,
	"cividis": colorgrad.Cividis,
}

type colorList []color.Color

func (c colorList) Colors() []color.Color { return c }

// NewPalette resolves a colour map by name. A "_r" suffix reverses it.
func NewPalette(name string) (palette.Palette, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	reverse := strings.HasSuffix(name, "_r")
	name = strings.TrimSuffix(name, "_r")

	var colors []color.Color
	if b, ok := brewerPalettes[name]; ok {
		p, err := brewer.GetPalette(brewer.TypeAny, b.name, b.colors)
		if err != nil {
			return nil, fmt.Errorf("colormap %s: %w", name, err)
		}
		colors = p.Colors()
	} else if g, ok := gradients[name]; ok {
		colors = g().Colors(gradientColors)
	} else {
		return nil, fmt.Errorf("unknown colormap %q", name)
	}

	res := make(colorList, len(colors))
	for i, c := range colors {
		if reverse {
			res[len(colors)-1-i] = c
		} else {
			res[i] = c
		}
	}
	return res, nil
}

// 将 v 按 [min, max] 映射到色板，超出范围时取两端颜色
func colorAt(colors []color.Color, v, min, max float64) color.Color {
	if len(colors) == 0 {
		return color.Black
	}
	if !(max > min) {
		return colors[0]
	}
	i := int((v-min)/(max-min)*float64(len(colors)-1) + 0.5)
	if i < 0 {
		i = 0
	}
	if i >= len(colors) {
		i = len(colors) - 1
	}
	return colors[i]
}
