package stats

// The controller's sensor bus occasionally reports saturated or zeroed
// values on a dead cell tap. Sanitization is a display-safety filter, not a
// measurement correction: it replaces implausible samples so min/max spreads
// stay meaningful, and the operator can switch it off to see raw output.

// Fence is the inclusive plausible range for a millivolt sample. Samples
// strictly outside it are classified as outliers.
type Fence struct {
	Lo uint16 `yaml:"lo"`
	Hi uint16 `yaml:"hi"`
}

// TempFence is the °C counterpart of Fence.
type TempFence struct {
	Lo float64 `yaml:"lo"`
	Hi float64 `yaml:"hi"`
}

// SanitizeVoltage replaces every sample strictly outside fence with the
// truncated average of the raw array, in place, preserving order and
// length. The average is computed before any replacement and returned so
// callers can report it.
func SanitizeVoltage(samples []uint16, fence Fence) (uint16, error) {
	if len(samples) == 0 {
		return 0, ErrEmptySeries
	}

	var sum uint64
	for _, v := range samples {
		sum += uint64(v)
	}
	avg := uint16(sum / uint64(len(samples)))

	for i, v := range samples {
		if v < fence.Lo || v > fence.Hi {
			samples[i] = avg
		}
	}
	return avg, nil
}

// SanitizeTemperature is the °C counterpart of SanitizeVoltage.
func SanitizeTemperature(samples []float64, fence TempFence) (float64, error) {
	if len(samples) == 0 {
		return 0, ErrEmptySeries
	}

	var sum float64
	for _, v := range samples {
		sum += v
	}
	avg := sum / float64(len(samples))

	for i, v := range samples {
		if v < fence.Lo || v > fence.Hi {
			samples[i] = avg
		}
	}
	return avg, nil
}

// VoltageReportBounds recomputes the displayed min and max against a
// secondary, tighter fence so a replacement value cannot itself become the
// reported bound: min is taken over samples strictly above fence.Lo, max
// over samples strictly below fence.Hi. A side with no qualifying sample
// falls back to the unfiltered bound. The two fences are independent
// tunables; see the profile documentation.
func VoltageReportBounds(samples []uint16, fence Fence) (uint16, uint16, error) {
	if len(samples) == 0 {
		return 0, 0, ErrEmptySeries
	}

	var (
		rawMin, rawMax   = samples[0], samples[0]
		min, max         uint16
		haveMin, haveMax bool
	)
	for _, v := range samples {
		if v < rawMin {
			rawMin = v
		}
		if v > rawMax {
			rawMax = v
		}
		if v > fence.Lo && (!haveMin || v < min) {
			min, haveMin = v, true
		}
		if v < fence.Hi && (!haveMax || v > max) {
			max, haveMax = v, true
		}
	}
	if !haveMin {
		min = rawMin
	}
	if !haveMax {
		max = rawMax
	}
	return min, max, nil
}
