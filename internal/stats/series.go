// Package stats reduces cell sample series to the {avg, min, max, delta}
// groups the display layer consumes, and hosts the outlier sanitizer that
// keeps sensor glitches out of those groups.
package stats

import (
	"errors"

	"github.com/dm/bmsmon/internal/model"
)

// ErrEmptySeries is returned when an aggregation is asked to reduce zero
// samples. Callers must guarantee at least one sample; the controller's
// topology metadata makes that true in practice.
var ErrEmptySeries = errors.New("empty series")

// Voltage reduces a millivolt series in a single pass with O(1) extra
// memory. The average is integer-truncated.
func Voltage(samples []uint16) (model.VoltageStats, error) {
	if len(samples) == 0 {
		return model.VoltageStats{}, ErrEmptySeries
	}

	min, max := samples[0], samples[0]
	var sum uint64
	for _, v := range samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += uint64(v)
	}

	return model.VoltageStats{
		Avg:   uint16(sum / uint64(len(samples))),
		Min:   min,
		Max:   max,
		Delta: max - min,
	}, nil
}

// Temperature is the floating-point counterpart of Voltage, with a true
// (non-truncating) average.
func Temperature(samples []float64) (model.TempStats, error) {
	if len(samples) == 0 {
		return model.TempStats{}, ErrEmptySeries
	}

	min, max := samples[0], samples[0]
	var sum float64
	for _, v := range samples {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	return model.TempStats{
		Avg:   sum / float64(len(samples)),
		Min:   min,
		Max:   max,
		Delta: max - min,
	}, nil
}
