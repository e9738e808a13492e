// Package format holds stateless display helpers used alongside the
// numeric fields in query responses.
package format

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Duration renders a second count as "Xh Ym Zs", dropping leading zero
// units.
func Duration(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60
	secs := seconds % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, secs)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, secs)
	default:
		return fmt.Sprintf("%ds", secs)
	}
}

// Number renders a value with thousands separators and two decimals,
// e.g. 1234.5 -> "1,234.50".
func Number(value float64) string {
	return printer.Sprintf("%.2f", value)
}

// Percentage renders a percentage value with two decimals and a
// trailing percent sign, e.g. 50.0 -> "50.00%".
func Percentage(value float64) string {
	return printer.Sprintf("%.2f%%", value)
}
