package model

// MainReading holds the pack-level scalars from the controller's main panel
// page. All values are unit-scaled from the raw integer fields on the wire.
type MainReading struct {
	// Voltage is the pack voltage in V.
	Voltage float64
	// Current is the pack current in mA, positive while charging.
	Current float64
	// StateOfCharge is the controller-reported charge level in %.
	StateOfCharge float64
	// Pack temperatures in °C.
	TempAvg float64
	TempMin float64
	TempMax float64
	// TempMaster is the master-controller board temperature in °C.
	TempMaster float64
}
