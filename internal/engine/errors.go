package engine

import "fmt"

// Leg names as they appear in errors and logs.
const (
	legMain            = "main"
	legCellVoltage     = "cell-voltage"
	legCellTemperature = "cell-temperature"
)

// LegError wraps the typed failure of one leg. The orchestrator surfaces
// the first failure it observes; no aggregation across legs, since a
// controller-side outage typically fails all legs identically.
type LegError struct {
	Leg string
	Err error
}

func (e *LegError) Error() string {
	return fmt.Sprintf("%s leg: %v", e.Leg, e.Err)
}

func (e *LegError) Unwrap() error { return e.Err }

// PanicError reports a leg goroutine that terminated abnormally instead of
// returning a typed error. Callers must show this as an internal fault, not
// a controller or network fault.
type PanicError struct {
	Leg   string
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("%s leg panicked: %v", e.Leg, e.Value)
}
