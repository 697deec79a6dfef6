// Package engine runs acquisition cycles against a battery-management
// controller: it fans the three endpoint legs out concurrently, runs each
// leg's fetch-extract-decode-aggregate pipeline, and joins the results into
// one immutable snapshot.
package engine

import (
	"context"

	"github.com/dm/bmsmon/internal/client"
	"github.com/dm/bmsmon/internal/model"
	"github.com/dm/bmsmon/internal/profile"
	"github.com/dm/bmsmon/internal/scrape"
	"github.com/dm/bmsmon/internal/stats"
)

// Each leg is strictly sequential and owns all of its intermediate state;
// legs never observe each other.

func mainLeg(ctx context.Context, c client.ControllerClient, p *profile.Profile) (model.MainReading, error) {
	body, err := c.GetMainPage(ctx)
	if err != nil {
		return model.MainReading{}, err
	}

	payload, err := scrape.Extract(body, p.MainKey)
	if err != nil {
		return model.MainReading{}, err
	}

	vals, err := scrape.DecodeFields(payload, p.MainPlan)
	if err != nil {
		return model.MainReading{}, err
	}

	return model.MainReading{
		Voltage:       vals[profile.FieldVoltage],
		Current:       vals[profile.FieldCurrent],
		StateOfCharge: vals[profile.FieldStateOfCharge],
		TempAvg:       vals[profile.FieldTempAvg],
		TempMin:       vals[profile.FieldTempMin],
		TempMax:       vals[profile.FieldTempMax],
		TempMaster:    vals[profile.FieldTempMaster],
	}, nil
}

func cellVoltageLeg(ctx context.Context, c client.ControllerClient, p *profile.Profile, sanitize bool) (model.CellVoltageReport, error) {
	body, err := c.GetCellVoltagePage(ctx)
	if err != nil {
		return model.CellVoltageReport{}, err
	}

	payload, err := scrape.Extract(body, p.ArrayKey)
	if err != nil {
		return model.CellVoltageReport{}, err
	}
	cells, err := scrape.DecodeVoltageArray(payload, p.VoltagePlan)
	if err != nil {
		return model.CellVoltageReport{}, err
	}

	// The raw truncated average doubles as the sanitizer's replacement
	// value and the reported overall average, sanitized or not.
	raw, err := stats.Voltage(cells)
	if err != nil {
		return model.CellVoltageReport{}, err
	}
	if sanitize {
		if _, err := stats.SanitizeVoltage(cells, p.VoltageFence); err != nil {
			return model.CellVoltageReport{}, err
		}
	}

	right, left, err := partitionVoltage(cells, p.VoltageSplit)
	if err != nil {
		return model.CellVoltageReport{}, err
	}

	min, max := left.Min, left.Max
	if right.Min < min {
		min = right.Min
	}
	if right.Max > max {
		max = right.Max
	}
	if sanitize && p.VoltageReportFence != nil {
		min, max, err = stats.VoltageReportBounds(cells, *p.VoltageReportFence)
		if err != nil {
			return model.CellVoltageReport{}, err
		}
	}
	overall := model.VoltageStats{Avg: raw.Avg, Min: min, Max: max, Delta: max - min}

	topoPayload, err := scrape.Extract(body, p.TopologyKey)
	if err != nil {
		return model.CellVoltageReport{}, err
	}
	counts, err := scrape.DecodeCounts(topoPayload, p.TopologyPlan)
	if err != nil {
		return model.CellVoltageReport{}, err
	}

	return model.CellVoltageReport{
		NumSlaves:          counts[0],
		NumCells:           counts[1],
		NumCellsPerSlave:   counts[2],
		NumTempSensors:     counts[3],
		NumSafetyResistors: counts[4],

		Overall: overall,
		Left:    left,
		Right:   right,

		Cells: cells,
	}, nil
}

func cellTemperatureLeg(ctx context.Context, c client.ControllerClient, p *profile.Profile, sanitize bool) (model.CellTemperatureReport, error) {
	body, err := c.GetCellTemperaturePage(ctx)
	if err != nil {
		return model.CellTemperatureReport{}, err
	}

	payload, err := scrape.Extract(body, p.ArrayKey)
	if err != nil {
		return model.CellTemperatureReport{}, err
	}
	sensors, err := scrape.DecodeTempArray(payload, p.TempPlan)
	if err != nil {
		return model.CellTemperatureReport{}, err
	}

	raw, err := stats.Temperature(sensors)
	if err != nil {
		return model.CellTemperatureReport{}, err
	}
	if sanitize {
		if _, err := stats.SanitizeTemperature(sensors, p.TempFence); err != nil {
			return model.CellTemperatureReport{}, err
		}
	}

	right, left, err := partitionTemperature(sensors, p.TempSplit)
	if err != nil {
		return model.CellTemperatureReport{}, err
	}

	min, max := left.Min, left.Max
	if right.Min < min {
		min = right.Min
	}
	if right.Max > max {
		max = right.Max
	}

	return model.CellTemperatureReport{
		Overall: model.TempStats{Avg: raw.Avg, Min: min, Max: max, Delta: max - min},
		Left:    left,
		Right:   right,

		Sensors: sensors,
	}, nil
}

// partitionVoltage computes the right (first split entries) and left
// (remainder) stat groups. An array no larger than the split has no left
// half; both groups then cover the whole array.
func partitionVoltage(cells []uint16, split int) (right, left model.VoltageStats, err error) {
	if len(cells) <= split {
		right, err = stats.Voltage(cells)
		return right, right, err
	}
	right, err = stats.Voltage(cells[:split])
	if err != nil {
		return right, left, err
	}
	left, err = stats.Voltage(cells[split:])
	return right, left, err
}

func partitionTemperature(sensors []float64, split int) (right, left model.TempStats, err error) {
	if len(sensors) <= split {
		right, err = stats.Temperature(sensors)
		return right, right, err
	}
	right, err = stats.Temperature(sensors[:split])
	if err != nil {
		return right, left, err
	}
	left, err = stats.Temperature(sensors[split:])
	return right, left, err
}
