package blocks

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"levelplot/model"
)

var (
	ErrEmptyBlock   = errors.New("empty data block")
	ErrMalformedRow = errors.New("malformed data row")
)

// 一个块整体解析，任何一行出错都返回错误
func parseRows(lines []string, columns int) ([][]float64, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyBlock
	}
	rows := make([][]float64, 0, len(lines))
	for n, line := range lines {
		fields := strings.Fields(line)
		if len(fields) != columns {
			return nil, fmt.Errorf("%w: line %d has %d columns, want %d", ErrMalformedRow, n+1, len(fields), columns)
		}
		row := make([]float64, columns)
		for k, field := range fields {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d column %d: %v", ErrMalformedRow, n+1, k+1, err)
			}
			row[k] = v
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseScalarBlock parses rows of "x y phi fluid_id pressure".
func ParseScalarBlock(lines []string) ([]model.ScalarSample, error) {
	rows, err := parseRows(lines, model.ScalarColumns)
	if err != nil {
		return nil, err
	}
	samples := make([]model.ScalarSample, len(rows))
	for i, r := range rows {
		samples[i] = model.ScalarSample{X: r[0], Y: r[1], Phi: r[2], FluidID: r[3], Pressure: r[4]}
	}
	return samples, nil
}

// ParseVelocityBlock parses rows of "x y u v".
func ParseVelocityBlock(lines []string) ([]model.VelocitySample, error) {
	rows, err := parseRows(lines, model.VelocityColumns)
	if err != nil {
		return nil, err
	}
	samples := make([]model.VelocitySample, len(rows))
	for i, r := range rows {
		samples[i] = model.VelocitySample{X: r[0], Y: r[1], U: r[2], V: r[3]}
	}
	return samples, nil
}
