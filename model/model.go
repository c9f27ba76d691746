package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// config.json 中的模拟区域配置，与模拟器共用同一份文件
type SimConfig struct {
	HorizontalCells int      `json:"horizontal_cells"`
	VerticalCells   int      `json:"vertical_cells"`
	CellSize        float64  `json:"cell_size"`
	Runtime         float64  `json:"runtime"`
	Timestep        float64  `json:"timestep"`
	Reaction        Reaction `json:"reaction"`
	Fluids          []Fluid  `json:"fluids"`
}

// 反应参数，绘图时不使用
type Reaction struct {
	Reactant1 int     `json:"reactant1"`
	Reactant2 int     `json:"reactant2"`
	Product   int     `json:"product"`
	Rate      float64 `json:"rate"`
}

// 流体定义，绘图时只用到数量
type Fluid struct {
	Name    string            `json:"name"`
	Density float64           `json:"density"`
	Phi     []json.RawMessage `json:"phi"`
}

var ErrInvalidConfig = errors.New("invalid simulation config")

// LoadSimConfig reads and validates config.json.
func LoadSimConfig(path string) (*SimConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sim config %s: %w", path, err)
	}
	return ParseSimConfig(b)
}

func ParseSimConfig(b []byte) (*SimConfig, error) {
	cfg := &SimConfig{}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("decode sim config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *SimConfig) Validate() error {
	if c.HorizontalCells <= 0 || c.VerticalCells <= 0 {
		return fmt.Errorf("%w: cells %dx%d", ErrInvalidConfig, c.HorizontalCells, c.VerticalCells)
	}
	if c.CellSize <= 0 {
		return fmt.Errorf("%w: cell_size %v", ErrInvalidConfig, c.CellSize)
	}
	return nil
}

// 区域的物理尺寸
func (c *SimConfig) XMax() float64 { return float64(c.HorizontalCells) * c.CellSize }
func (c *SimConfig) YMax() float64 { return float64(c.VerticalCells) * c.CellSize }

// 流体数量，作为流体编号色标的上限
func (c *SimConfig) NumFluids() int { return len(c.Fluids) }

// phi.txt 中的一行: x y phi fluid_id pressure
type ScalarSample struct {
	X        float64
	Y        float64
	Phi      float64
	FluidID  float64
	Pressure float64
}

// vel.txt 中的一行: x y u v
type VelocitySample struct {
	X float64
	Y float64
	U float64
	V float64
}

// 同一时刻的标量块与速度块
type Frame struct {
	Index      int
	Scalars    []ScalarSample
	Velocities []VelocitySample
}

// 取出指定标量列
func (f *Frame) ScalarColumn(q Quantity) []float64 {
	res := make([]float64, len(f.Scalars))
	for i, s := range f.Scalars {
		switch q {
		case QuantityPhi:
			res[i] = s.Phi
		case QuantityPressure:
			res[i] = s.Pressure
		default:
			res[i] = s.FluidID
		}
	}
	return res
}
