package exporter

import (
	"math"
	"path/filepath"

	"otecli/internal/exchange"
)

// Currency identifies one of the two output trees. CZK is the operator's
// settlement currency, EUR the market coupling currency; the daily rate is
// CZK per EUR.
type Currency string

const (
	CZK Currency = "czk"
	EUR Currency = "eur"
)

// Column is one numeric output column together with the currency its source
// values are denominated in. An empty Currency means the column carries no
// monetary value and always passes through unconverted.
type Column struct {
	Name     string
	Currency Currency
}

// Row is one canonical record of a table: its date key, the delivery hour for
// hourly series, and the numeric fields in column order. Nil values stay nil
// through conversion and become empty CSV cells.
type Row struct {
	Date   string
	Hour   int
	Values []*float64
}

// Table is one output series bound to its fixed header and column currency
// tags. Rows are kept in the sorted order the extractor established.
type Table struct {
	Name    string
	Hourly  bool
	Columns []Column
	Rows    []Row
}

func (t Table) headers() []string {
	headers := []string{"date"}
	if t.Hourly {
		headers = append(headers, "hour")
	}
	for _, c := range t.Columns {
		headers = append(headers, c.Name)
	}
	return headers
}

// Emitter converts tables into a target currency and writes them as CSV
// files, one directory tree per currency.
type Emitter struct {
	writer *CSVWriter
	rates  *exchange.Tracker
}

// NewEmitter creates an emitter writing through w with the completed rate
// series.
func NewEmitter(w *CSVWriter, rates *exchange.Tracker) *Emitter {
	return &Emitter{writer: w, rates: rates}
}

// Emit writes every table under the target currency's directory, converting
// currency-tagged columns via the date's resolved rate.
func (e *Emitter) Emit(target Currency, tables []Table) error {
	for _, t := range tables {
		records := make([][]string, 0, len(t.Rows))
		for _, row := range t.Rows {
			rate := e.rates.Rate(row.Date)
			record := []string{row.Date}
			if t.Hourly {
				record = append(record, formatInt(row.Hour))
			}
			for i, col := range t.Columns {
				record = append(record, formatValue(convert(row.Values[i], col.Currency, target, rate)))
			}
			records = append(records, record)
		}
		relPath := filepath.Join(string(target), t.Name+".csv")
		if err := e.writer.WriteSimpleCSV(relPath, t.headers(), records); err != nil {
			return err
		}
	}
	return nil
}

// convert resolves a value into the target currency. Values already in the
// target currency, untagged values and nils pass through untouched; converted
// values are rounded to 2 decimals as an output formatting decision.
func convert(v *float64, source, target Currency, rate float64) *float64 {
	if v == nil || source == "" || source == target {
		return v
	}
	var converted float64
	switch {
	case target == EUR && source == CZK:
		converted = round2(*v / rate)
	case target == CZK && source == EUR:
		converted = round2(*v * rate)
	default:
		return v
	}
	return &converted
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
