package dataprocessing

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"otecli/internal/exchange"
)

func cellFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func legacyDAMSheet() [][]string {
	// Row 6 header, data from row 7. Columns follow the 2024 report:
	// Day Hour Purchase Sale Saldo Export Import Volume PriceEUR PriceCZK Rate
	return padRows(5,
		[]string{"Day", "Hour", "Purchase", "Sale", "Saldo", "Export", "Import", "Volume", "Price EUR", "Price CZK", "Rate"},
		[]string{"01.01.2024", "1", "500", "480", "-20", "100", "120", "480", "87,45", "2 160", "24,7"},
		[]string{"01.01.2024", "2", "510", "490", "-", "110", "130", "490", "90,10", "2 225", "24,7"},
		[]string{"Celkem", "", "", "", "", "", "", "970", "", "", ""},
	)
}

func TestExtractDAMPricesLegacy(t *testing.T) {
	rates := exchange.NewTracker()
	got := ExtractDAMPrices(legacyDAMSheet(), "Annual_market_report_2024.xlsx", rates)

	require.Len(t, got, 2)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, 1, got[0].Hour)
	assert.InDelta(t, 87.45, *got[0].Price, 1e-9)
	assert.InDelta(t, 480.0, *got[0].Volume, 1e-9)
	assert.InDelta(t, -20.0, *got[0].Saldo, 1e-9)
	assert.InDelta(t, 100.0, *got[0].Export, 1e-9)
	assert.InDelta(t, 120.0, *got[0].Import, 1e-9)

	// "-" placeholders become nil, never zero.
	assert.Nil(t, got[1].Saldo)

	assert.True(t, rates.Observed("2024-01-01"))
	assert.InDelta(t, 24.7, rates.Rate("2024-01-01"), 1e-9)
}

func TestExtractDAMPricesInterval(t *testing.T) {
	rows := padRows(5, []string{"Day", "Period", "Time interval", "Price", "Volume", "Purchase", "Sale", "Saldo", "Export", "Import", "Price CZK", "Rate"})
	prices := []float64{10, 20, 30, 40}
	for p := 1; p <= 4; p++ {
		rows = append(rows, []string{
			"01.06.2025",
			cellFloat(float64(p)),
			"00:00-00:15",
			cellFloat(prices[p-1]),
			"1,5",
			"", "",
			"2",
			"3",
			"1",
			"",
			"24,75",
		})
	}

	rates := exchange.NewTracker()
	got := ExtractDAMPrices(rows, "Annual_market_report_2025.xlsx", rates)

	require.Len(t, got, 1)
	assert.Equal(t, "2025-06-01", got[0].Date)
	assert.Equal(t, 1, got[0].Hour)
	assert.InDelta(t, 25.0, *got[0].Price, 1e-9)  // average of the quarter-hours
	assert.InDelta(t, 6.0, *got[0].Volume, 1e-9)  // summed
	assert.InDelta(t, 2.0, *got[0].Saldo, 1e-9)   // averaged, not summed
	assert.InDelta(t, 12.0, *got[0].Export, 1e-9) // summed
	assert.InDelta(t, 4.0, *got[0].Import, 1e-9)  // summed

	assert.InDelta(t, 24.75, rates.Rate("2025-06-01"), 1e-9)
}

func TestExtractDAMPricesIntervalHourlyRows(t *testing.T) {
	// An interval-layout sheet whose interval cells carry hour tokens instead
	// of clock times keeps one row per period with the period as the hour.
	rows := padRows(5,
		[]string{"Day", "Period", "Time interval", "Price", "Volume", "Purchase", "Sale", "Saldo", "Export", "Import", "Price CZK", "Rate"},
		[]string{"01.06.2025", "1", "00-01", "50", "400", "", "", "-10", "20", "30", "", "24,75"},
		[]string{"01.06.2025", "2", "01-02", "55", "410", "", "", "-12", "22", "34", "", "24,75"},
	)

	got := ExtractDAMPrices(rows, "report.xlsx", exchange.NewTracker())
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Hour)
	assert.InDelta(t, 50.0, *got[0].Price, 1e-9)
	assert.Equal(t, 2, got[1].Hour)
	assert.InDelta(t, 410.0, *got[1].Volume, 1e-9)
}

func TestExtractDAMPricesUnknownLayout(t *testing.T) {
	rows := padRows(5, []string{"Day", "Volume"})
	got := ExtractDAMPrices(rows, "report.xlsx", exchange.NewTracker())
	assert.Empty(t, got)
}

func TestExtractDAMPricesSorted(t *testing.T) {
	rows := padRows(5,
		[]string{"Day", "Hour"},
		[]string{"02.01.2024", "1", "", "", "", "", "", "", "91"},
		[]string{"01.01.2024", "2", "", "", "", "", "", "", "90"},
		[]string{"01.01.2024", "1", "", "", "", "", "", "", "89"},
	)

	got := ExtractDAMPrices(rows, "report.xlsx", exchange.NewTracker())
	require.Len(t, got, 3)
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.Equal(t, 1, got[0].Hour)
	assert.Equal(t, "2024-01-01", got[1].Date)
	assert.Equal(t, 2, got[1].Hour)
	assert.Equal(t, "2024-01-02", got[2].Date)
}

func TestExtractIMPricesLegacy(t *testing.T) {
	rows := padRows(5,
		[]string{"Day", "Hour", "Volume", "c3", "c4", "WAvg price", "c6", "c7", "Min price", "Max price"},
		[]string{"01.01.2024", "1", "120", "", "", "85,5", "", "", "80", "92,3"},
	)

	got := ExtractIMPrices(rows, "report.xlsx")
	require.Len(t, got, 1)
	assert.InDelta(t, 85.5, *got[0].Price, 1e-9)
	assert.InDelta(t, 120.0, *got[0].Volume, 1e-9)
	assert.InDelta(t, 80.0, *got[0].MinPrice, 1e-9)
	assert.InDelta(t, 92.3, *got[0].MaxPrice, 1e-9)
}

func TestExtractIMPricesIntervalExtremes(t *testing.T) {
	rows := padRows(5, []string{"Day", "Period", "Time interval", "WAvg price", "Volume", "c5", "c6", "c7", "c8", "c9", "c10", "Min price", "Max price"})
	quarters := []struct{ price, vol, min, max float64 }{
		{price: 100, vol: 10, min: 90, max: 110},
		{price: 110, vol: 12, min: 85, max: 120},
		{price: 105, vol: 11, min: 95, max: 115},
		{price: 95, vol: 9, min: 80, max: 100},
	}
	for p, q := range quarters {
		rows = append(rows, []string{
			"01.06.2025", cellFloat(float64(p + 1)), "00:00-00:15",
			cellFloat(q.price), cellFloat(q.vol),
			"", "", "", "", "", "",
			cellFloat(q.min), cellFloat(q.max),
		})
	}

	got := ExtractIMPrices(rows, "report.xlsx")
	require.Len(t, got, 1)
	assert.InDelta(t, 102.5, *got[0].Price, 1e-9)
	assert.InDelta(t, 42.0, *got[0].Volume, 1e-9)
	assert.InDelta(t, 80.0, *got[0].MinPrice, 1e-9)  // group minimum
	assert.InDelta(t, 120.0, *got[0].MaxPrice, 1e-9) // group maximum
}

func TestExtractRegulationLegacy(t *testing.T) {
	rows := padRows(5,
		[]string{"Day", "Hour", "Volume", "Cost"},
		[]string{"01.01.2024", "5", "33,4", "12 500"},
	)

	got := ExtractRegulation(rows, "report.xlsx")
	require.Len(t, got, 1)
	assert.Equal(t, 5, got[0].Hour)
	assert.InDelta(t, 33.4, *got[0].Volume, 1e-9)
	assert.InDelta(t, 12500.0, *got[0].Cost, 1e-9)
}

func TestExtractRegulationIntervalMissingIntervalCell(t *testing.T) {
	// Regulation sheets sometimes leave the interval column blank; such rows
	// count as whole hours keyed by the period value.
	rows := padRows(5,
		[]string{"Day", "Period", "Time interval", "Volume", "Cost"},
		[]string{"01.06.2025", "1", "", "10", "100"},
		[]string{"01.06.2025", "2", "", "12", "110"},
	)

	got := ExtractRegulation(rows, "report.xlsx")
	require.Len(t, got, 2)
	assert.Equal(t, 1, got[0].Hour)
	assert.InDelta(t, 10.0, *got[0].Volume, 1e-9)
	assert.Equal(t, 2, got[1].Hour)
}

func TestExtractRegulationIntervalAggregates(t *testing.T) {
	rows := padRows(5, []string{"Day", "Period", "Time interval", "Volume", "Cost"})
	for p := 1; p <= 4; p++ {
		rows = append(rows, []string{"01.06.2025", cellFloat(float64(p)), "00:00-00:15", "2", "50"})
	}

	got := ExtractRegulation(rows, "report.xlsx")
	require.Len(t, got, 1)
	assert.InDelta(t, 8.0, *got[0].Volume, 1e-9)
	assert.InDelta(t, 200.0, *got[0].Cost, 1e-9)
}

func TestExtractImbalancesLegacy(t *testing.T) {
	rows := padRows(5,
		[]string{"Day", "Hour", "System", "Abs", "c4", "c5", "c6", "c7", "c8", "Settlement", "Counter"},
		[]string{"01.01.2024", "1", "-15,2", "18,9", "", "", "", "", "", "2 500", "1 200"},
	)

	got := ExtractImbalances(rows, "report.xlsx")
	require.Len(t, got, 1)
	assert.InDelta(t, -15.2, *got[0].SystemImbalance, 1e-9)
	assert.InDelta(t, 18.9, *got[0].AbsImbalance, 1e-9)
	assert.InDelta(t, 2500.0, *got[0].SettlementPrice, 1e-9)
	assert.InDelta(t, 1200.0, *got[0].CounterPrice, 1e-9)
}

func TestExtractImbalancesIntervalAlwaysAggregates(t *testing.T) {
	// The imbalance sheet has no interval string; every interval-layout row is
	// a quarter-hour regardless.
	rows := padRows(5, []string{"Day", "Period", "System", "Abs", "c4", "c5", "c6", "c7", "c8", "Settlement", "Counter"})
	for p := 1; p <= 4; p++ {
		rows = append(rows, []string{
			"01.06.2025", cellFloat(float64(p)),
			"1", "2", "", "", "", "", "",
			cellFloat(float64(100 + p)), "50",
		})
	}

	got := ExtractImbalances(rows, "report.xlsx")
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Hour)
	assert.InDelta(t, 4.0, *got[0].SystemImbalance, 1e-9)   // summed
	assert.InDelta(t, 8.0, *got[0].AbsImbalance, 1e-9)      // summed
	assert.InDelta(t, 102.5, *got[0].SettlementPrice, 1e-9) // averaged
	assert.InDelta(t, 50.0, *got[0].CounterPrice, 1e-9)     // averaged
}

func TestExtractGasPrices(t *testing.T) {
	rows := padRows(5,
		[]string{"Gas day", "Volume", "WAvg price", "Amount", "Index OTE"},
		[]string{"02.01.2024", "1 500", "32,5", "", "33,1"},
		[]string{"01.01.2024", "1 400", "31,0", "", "-"},
		[]string{"Celkem", "2 900", "", "", ""},
	)

	got := ExtractGasPrices(rows, "gas.xlsx")
	require.Len(t, got, 2)
	// Sorted by date regardless of sheet order.
	assert.Equal(t, "2024-01-01", got[0].Date)
	assert.InDelta(t, 31.0, *got[0].Price, 1e-9)
	assert.Nil(t, got[0].IndexOTE)
	assert.Equal(t, "2024-01-02", got[1].Date)
	assert.InDelta(t, 33.1, *got[1].IndexOTE, 1e-9)
}

func TestExtractDAMIndexes(t *testing.T) {
	// The index sheet keeps its header one row higher than the market sheets.
	rows := padRows(4,
		[]string{"Day", "Base load", "Peak load", "Offpeak load"},
		[]string{"01.01.2024", "95,5", "102,3", "88,7"},
		[]string{"02.01.2024", "-", "101,0", "87,0"},
	)

	got := ExtractDAMIndexes(rows, "report.xlsx")
	require.Len(t, got, 2)
	assert.InDelta(t, 95.5, *got[0].BaseLoad, 1e-9)
	assert.InDelta(t, 102.3, *got[0].PeakLoad, 1e-9)
	assert.InDelta(t, 88.7, *got[0].OffpeakLoad, 1e-9)
	assert.Nil(t, got[1].BaseLoad)
}
