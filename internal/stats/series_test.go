package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoltage(t *testing.T) {
	tests := []struct {
		name    string
		samples []uint16
		want    struct{ avg, min, max, delta uint16 }
	}{
		{"single sample", []uint16{3700}, struct{ avg, min, max, delta uint16 }{3700, 3700, 3700, 0}},
		{"ascending", []uint16{3600, 3700, 3800}, struct{ avg, min, max, delta uint16 }{3700, 3600, 3800, 200}},
		{"unordered", []uint16{3800, 3600, 3700}, struct{ avg, min, max, delta uint16 }{3700, 3600, 3800, 200}},
		{"truncated average", []uint16{3700, 3701}, struct{ avg, min, max, delta uint16 }{3700, 3700, 3701, 1}},
		{"all equal", []uint16{4200, 4200, 4200, 4200}, struct{ avg, min, max, delta uint16 }{4200, 4200, 4200, 0}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Voltage(tc.samples)
			require.NoError(t, err)
			assert.Equal(t, tc.want.avg, got.Avg)
			assert.Equal(t, tc.want.min, got.Min)
			assert.Equal(t, tc.want.max, got.Max)
			assert.Equal(t, tc.want.delta, got.Delta)
		})
	}
}

// Delta and ordering invariants hold for any non-empty series.
func TestVoltageInvariants(t *testing.T) {
	series := [][]uint16{
		{0},
		{0, 65535},
		{3000, 4200, 3700, 5000},
		{3690, 3691, 3692, 3693, 3694},
		{1, 1, 2, 3, 5, 8, 13, 21},
	}
	for _, s := range series {
		got, err := Voltage(s)
		require.NoError(t, err)
		assert.Equal(t, got.Max-got.Min, got.Delta)
		assert.LessOrEqual(t, got.Min, got.Avg)
		assert.LessOrEqual(t, got.Avg, got.Max)
	}
}

func TestVoltageEmpty(t *testing.T) {
	_, err := Voltage(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = Voltage([]uint16{})
	assert.ErrorIs(t, err, ErrEmptySeries)
}

func TestTemperature(t *testing.T) {
	got, err := Temperature([]float64{21.0, 25.0, 32.0})
	require.NoError(t, err)
	assert.InDelta(t, 26.0, got.Avg, 1e-9)
	assert.Equal(t, 21.0, got.Min)
	assert.Equal(t, 32.0, got.Max)
	assert.InDelta(t, 11.0, got.Delta, 1e-9)
}

func TestTemperatureTrueDivision(t *testing.T) {
	// Unlike the voltage average, the temperature average is not truncated.
	got, err := Temperature([]float64{20.0, 21.0})
	require.NoError(t, err)
	assert.InDelta(t, 20.5, got.Avg, 1e-9)
}

func TestTemperatureNegativeSamples(t *testing.T) {
	got, err := Temperature([]float64{-5.0, 0.0, 10.0})
	require.NoError(t, err)
	assert.Equal(t, -5.0, got.Min)
	assert.Equal(t, 10.0, got.Max)
	assert.InDelta(t, 15.0, got.Delta, 1e-9)
}

func TestTemperatureEmpty(t *testing.T) {
	_, err := Temperature(nil)
	assert.ErrorIs(t, err, ErrEmptySeries)
}
