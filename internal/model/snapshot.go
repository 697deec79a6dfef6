package model

import "time"

// Snapshot holds the decoded results of a single poll cycle across all three
// controller endpoints. It is immutable once built; each successful cycle
// replaces the previous snapshot wholesale, there is no partial merge.
type Snapshot struct {
	Main            MainReading
	CellVoltage     CellVoltageReport
	CellTemperature CellTemperatureReport
	FetchedAt       time.Time
}
