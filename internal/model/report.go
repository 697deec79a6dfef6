package model

// VoltageStats reduces a group of cell voltages to its displayed bounds.
// All values are in mV; Delta is Max - Min and Avg is integer-truncated.
type VoltageStats struct {
	Avg   uint16
	Min   uint16
	Max   uint16
	Delta uint16
}

// TempStats is the floating-point counterpart of VoltageStats, in °C.
type TempStats struct {
	Avg   float64
	Min   float64
	Max   float64
	Delta float64
}

// CellVoltageReport holds the per-cell voltage array and the topology the
// controller reports alongside it. Cells is ordered by physical cell index
// and is never reordered; Right covers the first part of the array up to the
// configured split, Left the remainder, and Overall their union.
type CellVoltageReport struct {
	NumSlaves          int
	NumCells           int
	NumCellsPerSlave   int
	NumTempSensors     int
	NumSafetyResistors int

	Overall VoltageStats
	Left    VoltageStats
	Right   VoltageStats

	// Cells holds one entry per physical cell, in mV.
	Cells []uint16
}

// CellTemperatureReport is the analogous structure over the smaller
// temperature-sensor array, with the same right/left/overall partition.
type CellTemperatureReport struct {
	Overall TempStats
	Left    TempStats
	Right   TempStats

	// Sensors holds one entry per temperature sensor, in °C.
	Sensors []float64
}
