package dataprocessing

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"otecli/internal/exchange"
	"otecli/pkg/contracts/domain"
)

// Sheet names as published in the annual report workbooks.
const (
	SheetDAM        = "DAM"
	SheetIM         = "IM (EUR)"
	SheetREPositive = "RE + AC"
	SheetRENegative = "RE - AC"
	SheetImbalances = "Imbalances"
	SheetDAMIndexes = "DAM Indexes"
	SheetGasIM      = "IM"
)

// History accumulates the full extracted history of every series across all
// processed workbooks, plus the exchange rates discovered along the way. The
// slices are append-only; records from different report years covering
// different periods pile up in extraction order and duplicate keys are
// deliberately not collapsed.
type History struct {
	DAM        []domain.DAMPrice
	IM         []domain.IMPrice
	REPositive []domain.Regulation
	RENegative []domain.Regulation
	Imbalances []domain.Imbalance
	Gas        []domain.GasPrice
	DAMIndexes []domain.DAMIndex

	Rates *exchange.Tracker
}

// NewHistory returns an empty accumulator.
func NewHistory() *History {
	return &History{Rates: exchange.NewTracker()}
}

// ProcessElectricityWorkbook extracts every electricity series from one
// annual report workbook and appends the results. A missing sheet produces a
// warning and an empty series; only a workbook that cannot be opened at all
// is an error.
func (h *History) ProcessElectricityWorkbook(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)

	dam := ExtractDAMPrices(sheetRows(f, SheetDAM, name), name+"/"+SheetDAM, h.Rates)
	h.DAM = append(h.DAM, dam...)

	im := ExtractIMPrices(sheetRows(f, SheetIM, name), name+"/"+SheetIM)
	h.IM = append(h.IM, im...)

	rePos := ExtractRegulation(sheetRows(f, SheetREPositive, name), name+"/"+SheetREPositive)
	h.REPositive = append(h.REPositive, rePos...)

	reNeg := ExtractRegulation(sheetRows(f, SheetRENegative, name), name+"/"+SheetRENegative)
	h.RENegative = append(h.RENegative, reNeg...)

	imb := ExtractImbalances(sheetRows(f, SheetImbalances, name), name+"/"+SheetImbalances)
	h.Imbalances = append(h.Imbalances, imb...)

	idx := ExtractDAMIndexes(sheetRows(f, SheetDAMIndexes, name), name+"/"+SheetDAMIndexes)
	h.DAMIndexes = append(h.DAMIndexes, idx...)

	slog.Info("electricity workbook processed",
		slog.String("file", name),
		slog.Int("dam_rows", len(dam)),
		slog.Int("im_rows", len(im)),
		slog.Int("re_positive_rows", len(rePos)),
		slog.Int("re_negative_rows", len(reNeg)),
		slog.Int("imbalance_rows", len(imb)),
		slog.Int("index_rows", len(idx)))

	return nil
}

// ProcessGasWorkbook extracts the intraday gas series from one gas report
// workbook and appends the results.
func (h *History) ProcessGasWorkbook(path string) error {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)

	gas := ExtractGasPrices(sheetRows(f, SheetGasIM, name), name+"/"+SheetGasIM)
	h.Gas = append(h.Gas, gas...)

	slog.Info("gas workbook processed",
		slog.String("file", name),
		slog.Int("gas_rows", len(gas)))

	return nil
}

// Dates returns the sorted union of dates appearing in the datasets whose
// currency-tagged fields are resolved against the daily rate. Every date in
// this set must end up with a resolvable exchange rate.
func (h *History) Dates() []string {
	seen := make(map[string]bool)
	for _, r := range h.DAM {
		seen[r.Date] = true
	}
	for _, r := range h.IM {
		seen[r.Date] = true
	}
	for _, r := range h.Imbalances {
		seen[r.Date] = true
	}
	for _, r := range h.Gas {
		seen[r.Date] = true
	}

	dates := make([]string, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// FinalizeRates completes the exchange rate series over every accumulated
// date. Call once, after the last workbook is processed and before emission.
func (h *History) FinalizeRates() {
	h.Rates.Fill(h.Dates())
}

// sheetRows fetches the full cell matrix of a named sheet, or nil with a
// warning when the workbook does not carry that sheet. A report legitimately
// may omit a series, so absence is a diagnostic rather than an error.
func sheetRows(f *excelize.File, sheet, source string) [][]string {
	if idx, err := f.GetSheetIndex(sheet); err != nil || idx == -1 {
		slog.Warn("sheet missing from workbook",
			slog.String("workbook", source),
			slog.String("sheet", sheet))
		return nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		slog.Warn("failed to read sheet rows",
			slog.String("workbook", source),
			slog.String("sheet", sheet),
			slog.String("error", err.Error()))
		return nil
	}
	return rows
}
