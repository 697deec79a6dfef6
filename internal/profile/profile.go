// Package profile describes a controller firmware revision as data: page
// paths, embedded assignment keys, positional decode plans, partition
// splits, and sanitization fences. Firmware revisions differ in field
// order, scale factors, and fence thresholds, so a new revision is
// supported by adding a profile, not by branching code.
package profile

import (
	"fmt"

	"github.com/dm/bmsmon/internal/scrape"
	"github.com/dm/bmsmon/internal/stats"
)

// Canonical positions of the main-plan fields. MainPlan must list exactly
// these fields in this order; only skips and divisors vary per firmware.
const (
	FieldVoltage = iota
	FieldCurrent
	FieldStateOfCharge
	FieldTempAvg
	FieldTempMin
	FieldTempMax
	FieldTempMaster
	numMainFields
)

const numTopologyFields = 5

// Profile holds everything that is firmware-specific about one controller.
type Profile struct {
	Name string `yaml:"name"`

	MainPath            string `yaml:"main_path"`
	CellVoltagePath     string `yaml:"cell_voltage_path"`
	CellTemperaturePath string `yaml:"cell_temperature_path"`

	MainKey     string `yaml:"main_key"`
	TopologyKey string `yaml:"topology_key"`
	ArrayKey    string `yaml:"array_key"`

	MainPlan     []scrape.FieldSpec `yaml:"main_plan"`
	TopologyPlan []scrape.FieldSpec `yaml:"topology_plan"`
	VoltagePlan  scrape.ArrayPlan   `yaml:"voltage_plan"`
	TempPlan     scrape.ArrayPlan   `yaml:"temperature_plan"`

	// VoltageSplit and TempSplit partition the arrays into the right
	// (first split entries) and left (remainder) stat groups.
	VoltageSplit int `yaml:"voltage_split"`
	TempSplit    int `yaml:"temperature_split"`

	// VoltageFence classifies samples for replacement. VoltageReportFence,
	// when set, is the tighter secondary fence the displayed min/max are
	// recomputed against after replacement; the two are independent
	// tunables.
	VoltageFence       stats.Fence     `yaml:"voltage_fence"`
	VoltageReportFence *stats.Fence    `yaml:"voltage_report_fence"`
	TempFence          stats.TempFence `yaml:"temperature_fence"`
}

// Default returns the profile matching the observed firmware revision.
func Default() *Profile {
	return &Profile{
		Name: "default",

		MainPath:            "/main_data.shtml",
		CellVoltagePath:     "/ucell.shtml",
		CellTemperaturePath: "/tcell.shtml",

		MainKey:     "Parametersatz",
		TopologyKey: "PSet0",
		ArrayKey:    "PSet",

		MainPlan: []scrape.FieldSpec{
			{Name: "voltage", Skip: 1, Div: 1000},
			{Name: "current", Skip: 2},
			{Name: "state_of_charge", Skip: 2, Div: 10},
			{Name: "temp_avg", Skip: 2, Div: 10},
			{Name: "temp_min", Skip: 2, Div: 10},
			{Name: "temp_max", Skip: 2, Div: 10},
			{Name: "temp_master", Skip: 2, Div: 10},
		},
		TopologyPlan: []scrape.FieldSpec{
			{Name: "num_slaves"},
			{Name: "num_cells"},
			{Name: "num_cells_per_slave"},
			{Name: "num_temp_sensors"},
			{Name: "num_safety_resistors"},
		},
		VoltagePlan: scrape.ArrayPlan{Skip: 2},
		TempPlan:    scrape.ArrayPlan{Skip: 1, Div: 10},

		VoltageSplit: 72,
		TempSplit:    8,

		VoltageFence: stats.Fence{Lo: 3000, Hi: 4200},
		TempFence:    stats.TempFence{Lo: 15, Hi: 45},
	}
}

// Validate checks the invariants the decoder and legs rely on.
func (p *Profile) Validate() error {
	if p.MainKey == "" || p.TopologyKey == "" || p.ArrayKey == "" {
		return fmt.Errorf("profile %q: extraction keys must not be empty", p.Name)
	}
	for _, path := range []string{p.MainPath, p.CellVoltagePath, p.CellTemperaturePath} {
		if len(path) == 0 || path[0] != '/' {
			return fmt.Errorf("profile %q: page path %q must start with /", p.Name, path)
		}
	}
	if got := len(p.MainPlan); got != numMainFields {
		return fmt.Errorf("profile %q: main_plan needs %d fields, got %d", p.Name, numMainFields, got)
	}
	if got := len(p.TopologyPlan); got != numTopologyFields {
		return fmt.Errorf("profile %q: topology_plan needs %d fields, got %d", p.Name, numTopologyFields, got)
	}
	for _, f := range p.TopologyPlan {
		if f.Div != 0 && f.Div != 1 {
			return fmt.Errorf("profile %q: topology field %q must be unscaled", p.Name, f.Name)
		}
	}
	if p.VoltageSplit <= 0 || p.TempSplit <= 0 {
		return fmt.Errorf("profile %q: partition splits must be positive", p.Name)
	}
	if p.VoltageFence.Lo > p.VoltageFence.Hi {
		return fmt.Errorf("profile %q: voltage_fence lo %d > hi %d", p.Name, p.VoltageFence.Lo, p.VoltageFence.Hi)
	}
	if f := p.VoltageReportFence; f != nil && f.Lo > f.Hi {
		return fmt.Errorf("profile %q: voltage_report_fence lo %d > hi %d", p.Name, f.Lo, f.Hi)
	}
	if p.TempFence.Lo > p.TempFence.Hi {
		return fmt.Errorf("profile %q: temperature_fence lo %g > hi %g", p.Name, p.TempFence.Lo, p.TempFence.Hi)
	}
	return nil
}
