package scrape

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Field positions and scale factors are a private contract with the
// controller firmware: fields are positional, not named, so a plan must
// match the wire layout exactly.

// FieldSpec describes one positional field of a decode plan: how many
// unlabeled separators to discard before it and the divisor that converts
// the raw integer into its engineering unit.
type FieldSpec struct {
	Name string
	Skip int
	// Div of 0 or 1 leaves the raw value unscaled.
	Div float64
}

// ArrayPlan describes a payload tail of repeated integer fields.
type ArrayPlan struct {
	// Skip is the number of leading separators to discard.
	Skip int
	// Div of 0 or 1 leaves each sample unscaled.
	Div float64
}

var (
	ErrFieldMissing     = errors.New("field missing")
	ErrFieldUnparseable = errors.New("field unparseable")
)

// FieldError identifies which positional field of a decode plan failed,
// wrapping ErrFieldMissing or ErrFieldUnparseable.
type FieldError struct {
	Name  string
	Index int // position within the comma-delimited payload
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q at position %d: %v", e.Name, e.Index, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

type cursor struct {
	fields []string
	pos    int
}

func newCursor(payload string) *cursor {
	return &cursor{fields: strings.Split(payload, ",")}
}

func (c *cursor) next(name string, skip int) (string, int, error) {
	c.pos += skip
	if c.pos >= len(c.fields) {
		return "", c.pos, &FieldError{Name: name, Index: c.pos, Err: ErrFieldMissing}
	}
	idx := c.pos
	c.pos++
	return strings.TrimSpace(c.fields[idx]), idx, nil
}

// DecodeFields applies plan to a comma-delimited payload and returns one
// scaled value per FieldSpec, in plan order.
func DecodeFields(payload string, plan []FieldSpec) ([]float64, error) {
	cur := newCursor(payload)
	out := make([]float64, 0, len(plan))
	for _, f := range plan {
		raw, idx, err := cur.next(f.Name, f.Skip)
		if err != nil {
			return nil, err
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, &FieldError{Name: f.Name, Index: idx, Err: ErrFieldUnparseable}
		}
		if f.Div != 0 && f.Div != 1 {
			v /= f.Div
		}
		out = append(out, v)
	}
	return out, nil
}

// DecodeCounts is DecodeFields for unscaled integer fields such as the
// topology counters. Specs with a Div are rejected by profile validation,
// so the value is parsed directly as an int.
func DecodeCounts(payload string, plan []FieldSpec) ([]int, error) {
	cur := newCursor(payload)
	out := make([]int, 0, len(plan))
	for _, f := range plan {
		raw, idx, err := cur.next(f.Name, f.Skip)
		if err != nil {
			return nil, err
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, &FieldError{Name: f.Name, Index: idx, Err: ErrFieldUnparseable}
		}
		out = append(out, n)
	}
	return out, nil
}

// DecodeVoltageArray parses the repeated millivolt fields of a cell-voltage
// payload. Order and length follow the wire exactly; a trailing separator
// is tolerated.
func DecodeVoltageArray(payload string, plan ArrayPlan) ([]uint16, error) {
	fields, err := arrayFields(payload, plan)
	if err != nil {
		return nil, err
	}

	out := make([]uint16, 0, len(fields))
	for i, raw := range fields {
		v, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 16)
		if err != nil {
			return nil, &FieldError{Name: "cell", Index: plan.Skip + i, Err: ErrFieldUnparseable}
		}
		out = append(out, uint16(v))
	}
	return out, nil
}

// DecodeTempArray parses repeated temperature fields, scaling each sample by
// the plan's divisor (tenths of a °C on the observed firmware).
func DecodeTempArray(payload string, plan ArrayPlan) ([]float64, error) {
	fields, err := arrayFields(payload, plan)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, len(fields))
	for i, raw := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, &FieldError{Name: "sensor", Index: plan.Skip + i, Err: ErrFieldUnparseable}
		}
		if plan.Div != 0 && plan.Div != 1 {
			v /= plan.Div
		}
		out = append(out, v)
	}
	return out, nil
}

func arrayFields(payload string, plan ArrayPlan) ([]string, error) {
	fields := strings.Split(payload, ",")
	if len(fields) <= plan.Skip {
		return nil, &FieldError{Name: "array", Index: len(fields), Err: ErrFieldMissing}
	}
	fields = fields[plan.Skip:]
	if n := len(fields); strings.TrimSpace(fields[n-1]) == "" {
		fields = fields[:n-1]
	}
	return fields, nil
}
