package blocks

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"

	"levelplot/model"
)

var (
	ErrMisaligned    = errors.New("scalar and velocity block counts differ")
	ErrRangeExceeded = errors.New("frame range exceeds available blocks")
)

// LoadDataset reads both data files and pairs scalar block k with velocity
// block k for every k in [start, end]. end < 0 selects through the last block.
// When strict is false an end past the last block is clamped with a warning.
func LoadDataset(scalarPath, velocityPath string, start, end int, strict bool) ([]model.Frame, error) {
	scalarBlocks, err := ReadBlocks(scalarPath, 0, -1)
	if err != nil {
		return nil, err
	}
	velocityBlocks, err := ReadBlocks(velocityPath, 0, -1)
	if err != nil {
		return nil, err
	}
	if len(scalarBlocks) != len(velocityBlocks) {
		return nil, fmt.Errorf("%w: %s has %d, %s has %d", ErrMisaligned,
			scalarPath, len(scalarBlocks), velocityPath, len(velocityBlocks))
	}

	first, last, err := resolveRange(len(scalarBlocks), start, end, strict)
	if err != nil {
		return nil, err
	}

	frames := make([]model.Frame, 0, last-first+1)
	for k := first; k <= last; k++ {
		scalars, err := ParseScalarBlock(scalarBlocks[k])
		if err != nil {
			return nil, fmt.Errorf("%s block %d: %w", scalarPath, k, err)
		}
		velocities, err := ParseVelocityBlock(velocityBlocks[k])
		if err != nil {
			return nil, fmt.Errorf("%s block %d: %w", velocityPath, k, err)
		}
		frames = append(frames, model.Frame{Index: k, Scalars: scalars, Velocities: velocities})
	}

	log.WithFields(log.Fields{
		"blocks": len(scalarBlocks),
		"first":  first,
		"last":   last,
	}).Info("数据加载完成")
	return frames, nil
}

func resolveRange(count, start, end int, strict bool) (int, int, error) {
	if start < 0 {
		start = 0
	}
	if start >= count {
		return 0, 0, fmt.Errorf("%w: start %d, %d blocks", ErrRangeExceeded, start, count)
	}
	if end < 0 {
		end = count - 1
	}
	if end < start {
		return 0, 0, fmt.Errorf("frame range [%d, %d] is empty", start, end)
	}
	if end >= count {
		if strict {
			return 0, 0, fmt.Errorf("%w: end %d, %d blocks", ErrRangeExceeded, end, count)
		}
		log.WithFields(log.Fields{
			"end":    end,
			"blocks": count,
		}).Warn("帧范围超出数据块数量，已截断")
		end = count - 1
	}
	return start, end, nil
}
