// Package format renders measurements for the CLI text output.
package format

import (
	"fmt"
	"strings"
)

// Millivolts formats a cell voltage. Example: 3742 → "3742 mV".
func Millivolts(mv uint16) string {
	return fmt.Sprintf("%d mV", mv)
}

// Volts formats a pack voltage with 2 decimal places. Example: 48.5 → "48.50 V".
func Volts(v float64) string {
	return fmt.Sprintf("%.2f V", v)
}

// Milliamps formats a pack current with comma-separated thousands.
// Example: 1500 → "1,500 mA".
func Milliamps(ma float64) string {
	return formatCommaFloat(ma, 0) + " mA"
}

// Celsius formats a temperature with one decimal place. Example: 25 → "25.0 °C".
func Celsius(t float64) string {
	return fmt.Sprintf("%.1f °C", t)
}

// Percent formats a percentage with one decimal place. Example: 34.5 → "34.5%".
func Percent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// formatCommaFloat formats a float with comma-separated thousands and the
// given number of decimal places.
func formatCommaFloat(f float64, decimals int) string {
	formatted := fmt.Sprintf("%.*f", decimals, f)
	sign := ""
	if len(formatted) > 0 && formatted[0] == '-' {
		sign = "-"
		formatted = formatted[1:]
	}
	parts := strings.SplitN(formatted, ".", 2)
	intPart := insertCommas(parts[0])
	if len(parts) == 2 {
		return sign + intPart + "." + parts[1]
	}
	return sign + intPart
}

// insertCommas inserts comma separators into a digit string every 3 digits
// from the right.
func insertCommas(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	var buf strings.Builder
	lead := n % 3
	if lead > 0 {
		buf.WriteString(s[:lead])
	}
	for i := lead; i < n; i += 3 {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(s[i : i+3])
	}
	return buf.String()
}
