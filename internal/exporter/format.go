package exporter

import "strconv"

// formatValue formats a nullable numeric cell for CSV output. Nil stays an
// empty cell; values use the shortest decimal representation so untouched
// source numbers round-trip unchanged between runs.
func formatValue(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// formatInt formats an integer cell (the hour column) for CSV output.
func formatInt(i int) string {
	return strconv.Itoa(i)
}
