package model

import "fmt"

const (
	// 块分隔用的注释前缀
	CommentMarker = "#"

	ScalarColumns   = 5
	VelocityColumns = 4
)

// 热图使用的标量
type Quantity string

const (
	QuantityFluid    Quantity = "fluid"
	QuantityPhi      Quantity = "phi"
	QuantityPressure Quantity = "pressure"
)

func ParseQuantity(s string) (Quantity, error) {
	switch q := Quantity(s); q {
	case QuantityFluid, QuantityPhi, QuantityPressure:
		return q, nil
	}
	return "", fmt.Errorf("unknown quantity %q, must be one of fluid, phi, pressure", s)
}
