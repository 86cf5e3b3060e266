package dataprocessing

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	czechDateRe = regexp.MustCompile(`^(\d{2})\.(\d{2})\.(\d{4})`)
	isoDateRe   = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})`)
	intervalRe  = regexp.MustCompile(`^(\d{2})-(\d{2})$`)
)

// ParseNumber converts a raw cell into a float, handling the Czech locale
// conventions used across the report years: non-breaking or regular spaces as
// thousands separators and a comma as the decimal separator. Empty cells, a
// lone "-" and anything unparsable yield nil.
func ParseNumber(cell string) *float64 {
	s := strings.TrimSpace(cell)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ",", ".")
	if s == "" || s == "-" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseDate normalizes a date cell to "YYYY-MM-DD". It recognizes the
// DD.MM.YYYY form used by the gas reports and anything already starting with
// an ISO date (datetimes are truncated to the date part). Unrecognized values
// yield "".
func ParseDate(cell string) string {
	s := strings.TrimSpace(cell)
	if m := czechDateRe.FindStringSubmatch(s); m != nil {
		return m[3] + "-" + m[2] + "-" + m[1]
	}
	if m := isoDateRe.FindStringSubmatch(s); m != nil {
		return m[1]
	}
	return ""
}

// ParseHour parses a delivery hour cell into 1-24. Accepted forms are a plain
// integer (also "1.0" style numerics) and the "HH-HH" interval notation, where
// the end hour identifies the delivery hour. Anything else, including hours
// outside 1-24, yields 0.
func ParseHour(cell string) int {
	s := strings.TrimSpace(cell)
	if m := intervalRe.FindStringSubmatch(s); m != nil {
		h, _ := strconv.Atoi(m[2])
		return h
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		h := int(v)
		if h >= 1 && h <= 24 {
			return h
		}
	}
	return 0
}
