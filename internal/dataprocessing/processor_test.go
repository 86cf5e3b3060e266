package dataprocessing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"otecli/pkg/contracts/domain"
)

// writeWorkbook builds an xlsx fixture with the given sheets in a temp dir.
func writeWorkbook(t *testing.T, name string, sheets map[string][][]string) string {
	t.Helper()

	f := excelize.NewFile()
	first := true
	for sheet, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", sheet))
			first = false
		} else {
			_, err := f.NewSheet(sheet)
			require.NoError(t, err)
		}
		for i, cells := range rows {
			if len(cells) == 0 {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := make([]interface{}, len(cells))
			for j, c := range cells {
				values[j] = c
			}
			require.NoError(t, f.SetSheetRow(sheet, cell, &values))
		}
	}

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestProcessElectricityWorkbook(t *testing.T) {
	path := writeWorkbook(t, "Annual_market_report_2024_V0.xlsx", map[string][][]string{
		SheetDAM: padRows(5,
			[]string{"Day", "Hour", "Purchase", "Sale", "Saldo", "Export", "Import", "Volume", "Price EUR", "Price CZK", "Rate"},
			[]string{"01.01.2024", "1", "500", "480", "-20", "100", "120", "480", "87,45", "2 160", "24,7"},
		),
		SheetIM: padRows(5,
			[]string{"Day", "Hour", "Volume", "c3", "c4", "WAvg price", "c6", "c7", "Min price", "Max price"},
			[]string{"01.01.2024", "1", "120", "", "", "85,5", "", "", "80", "92,3"},
		),
		SheetREPositive: padRows(5,
			[]string{"Day", "Hour", "Volume", "Cost"},
			[]string{"01.01.2024", "1", "10", "500"},
		),
		SheetRENegative: padRows(5,
			[]string{"Day", "Hour", "Volume", "Cost"},
			[]string{"01.01.2024", "1", "8", "400"},
		),
		SheetImbalances: padRows(5,
			[]string{"Day", "Hour", "System", "Abs", "c4", "c5", "c6", "c7", "c8", "Settlement", "Counter"},
			[]string{"01.01.2024", "1", "-15,2", "18,9", "", "", "", "", "", "2 500", "1 200"},
		),
		SheetDAMIndexes: padRows(4,
			[]string{"Day", "Base load", "Peak load", "Offpeak load"},
			[]string{"01.01.2024", "95,5", "102,3", "88,7"},
		),
	})

	h := NewHistory()
	require.NoError(t, h.ProcessElectricityWorkbook(path))

	require.Len(t, h.DAM, 1)
	assert.Equal(t, "2024-01-01", h.DAM[0].Date)
	assert.InDelta(t, 87.45, *h.DAM[0].Price, 1e-9)

	require.Len(t, h.IM, 1)
	assert.InDelta(t, 85.5, *h.IM[0].Price, 1e-9)

	require.Len(t, h.REPositive, 1)
	require.Len(t, h.RENegative, 1)
	assert.InDelta(t, 10.0, *h.REPositive[0].Volume, 1e-9)
	assert.InDelta(t, 8.0, *h.RENegative[0].Volume, 1e-9)

	require.Len(t, h.Imbalances, 1)
	require.Len(t, h.DAMIndexes, 1)

	assert.True(t, h.Rates.Observed("2024-01-01"))
}

func TestProcessElectricityWorkbookMissingSheets(t *testing.T) {
	// A workbook carrying only the DAM sheet still processes; the other series
	// stay empty.
	path := writeWorkbook(t, "partial.xlsx", map[string][][]string{
		SheetDAM: padRows(5,
			[]string{"Day", "Hour", "Purchase", "Sale", "Saldo", "Export", "Import", "Volume", "Price EUR", "Price CZK", "Rate"},
			[]string{"01.01.2024", "1", "", "", "", "", "", "480", "87,45", "", ""},
		),
	})

	h := NewHistory()
	require.NoError(t, h.ProcessElectricityWorkbook(path))
	assert.Len(t, h.DAM, 1)
	assert.Empty(t, h.IM)
	assert.Empty(t, h.Imbalances)
	assert.Empty(t, h.DAMIndexes)
}

func TestProcessElectricityWorkbookOpenError(t *testing.T) {
	h := NewHistory()
	err := h.ProcessElectricityWorkbook(filepath.Join(t.TempDir(), "absent.xlsx"))
	assert.Error(t, err)
}

func TestProcessGasWorkbook(t *testing.T) {
	path := writeWorkbook(t, "Annual_report_gas_2024.xlsx", map[string][][]string{
		SheetGasIM: padRows(5,
			[]string{"Gas day", "Volume", "WAvg price", "Amount", "Index OTE"},
			[]string{"01.01.2024", "1 400", "31,0", "", "31,5"},
			[]string{"02.01.2024", "1 500", "32,5", "", "-"},
		),
	})

	h := NewHistory()
	require.NoError(t, h.ProcessGasWorkbook(path))
	require.Len(t, h.Gas, 2)
	assert.Equal(t, "2024-01-01", h.Gas[0].Date)
	assert.InDelta(t, 31.0, *h.Gas[0].Price, 1e-9)
	assert.Nil(t, h.Gas[1].IndexOTE)
}

func TestHistoryDates(t *testing.T) {
	h := NewHistory()
	h.DAM = append(h.DAM, domain.DAMPrice{Date: "2024-01-02", Hour: 1})
	h.DAM = append(h.DAM, domain.DAMPrice{Date: "2024-01-01", Hour: 1})
	h.IM = append(h.IM, domain.IMPrice{Date: "2024-01-03", Hour: 1})
	h.Imbalances = append(h.Imbalances, domain.Imbalance{Date: "2024-01-01", Hour: 1})
	h.Gas = append(h.Gas, domain.GasPrice{Date: "2024-01-04"})
	// Regulation and index dates do not participate in the rate series.
	h.REPositive = append(h.REPositive, domain.Regulation{Date: "2023-12-31", Hour: 1})
	h.DAMIndexes = append(h.DAMIndexes, domain.DAMIndex{Date: "2023-12-30"})

	got := h.Dates()
	assert.Equal(t, []string{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-04"}, got)
}

func TestFinalizeRates(t *testing.T) {
	h := NewHistory()
	h.DAM = append(h.DAM,
		domain.DAMPrice{Date: "2024-01-01", Hour: 1},
		domain.DAMPrice{Date: "2024-01-02", Hour: 1},
	)
	h.Rates.Record("2024-01-01", 24.6)

	h.FinalizeRates()
	assert.InDelta(t, 24.6, h.Rates.Rate("2024-01-02"), 1e-9)
	assert.Equal(t, 2, h.Rates.Len())
}
