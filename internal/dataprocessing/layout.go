package dataprocessing

import "strings"

// Layout identifies which of the historical sheet layouts a report uses. The
// 2024-era reports carry one row per clock hour with fixed column offsets; the
// later reports carry one row per sub-period with a period index and a time
// interval string.
type Layout int

const (
	LayoutUnknown Layout = iota
	LayoutLegacyHourly
	LayoutInterval
)

func (l Layout) String() string {
	switch l {
	case LayoutLegacyHourly:
		return "legacy-hourly"
	case LayoutInterval:
		return "interval"
	default:
		return "unknown"
	}
}

// Header row offsets, 1-based. All market sheets keep their headers on row 6
// except the daily index sheet, which uses row 5.
const (
	marketHeaderRow = 6
	indexHeaderRow  = 5
)

// DetectLayout classifies a sheet by its header row. The check is purely
// lexical against the source header text: "Hour" in the second header cell
// means the legacy hourly layout, "Period" means the interval layout.
func DetectLayout(rows [][]string) Layout {
	if len(rows) < marketHeaderRow {
		return LayoutUnknown
	}
	header := rows[marketHeaderRow-1]
	second := ""
	if len(header) > 1 {
		second = strings.TrimSpace(header[1])
	}
	switch {
	case strings.Contains(second, "Hour"):
		return LayoutLegacyHourly
	case strings.Contains(second, "Period"):
		return LayoutInterval
	default:
		return LayoutUnknown
	}
}

// DataRow is one data-region row of a sheet. Num is the 1-based row number in
// the sheet, used only for diagnostics.
type DataRow struct {
	Num   int
	Cells []string
}

// DataRows returns the data region of a sheet: every row after the header row
// whose first cell is non-empty and is not a summary label. The source files
// close their tables with localized total rows ("Celkem") or an English
// "Total"/"Sum", and exports occasionally leave a literal empty marker.
func DataRows(rows [][]string, headerRow int) []DataRow {
	var out []DataRow
	for i, cells := range rows {
		num := i + 1
		if num <= headerRow {
			continue
		}
		first := ""
		if len(cells) > 0 {
			first = strings.ToLower(strings.TrimSpace(cells[0]))
		}
		switch first {
		case "", "celkem", "total", "sum", "none":
			continue
		}
		out = append(out, DataRow{Num: num, Cells: cells})
	}
	return out
}

// cellAt returns the cell at index i or "" when the row is too short.
// Spreadsheet rows come back ragged: trailing empty cells are dropped.
func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}
