package dataprocessing

import (
	"log/slog"
	"sort"
	"strings"

	"otecli/internal/exchange"
	"otecli/pkg/contracts/domain"
)

// Per-series extractors. Each one classifies the sheet layout, walks the data
// region and produces canonical records, collapsing quarter-hour rows into
// hours where the layout requires it. Column offsets are fixed per layout and
// per series; they follow the published report structure, not a header scan.
//
// Extractors never fail: an unrecognized layout yields zero rows with a
// warning, and unparsable cells become nil fields on otherwise valid rows.

// ExtractDAMPrices extracts the day-ahead market sheet and records the daily
// CZK/EUR exchange rate column into the tracker as a side effect. The first
// rate seen for a date wins.
func ExtractDAMPrices(rows [][]string, source string, rates *exchange.Tracker) []domain.DAMPrice {
	var out []domain.DAMPrice

	switch layout := DetectLayout(rows); layout {
	case LayoutLegacyHourly:
		// Day(0) Hour(1) Purchase(2) Sale(3) Saldo(4) Export(5) Import(6)
		// Volume(7) Price EUR(8) Price CZK(9) Rate(10) Amount(11)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			h := ParseHour(cellAt(row.Cells, 1))
			if d == "" || h == 0 {
				continue
			}
			if rate := ParseNumber(cellAt(row.Cells, 10)); rate != nil {
				rates.Record(d, *rate)
			}
			out = append(out, domain.DAMPrice{
				Date:   d,
				Hour:   h,
				Price:  ParseNumber(cellAt(row.Cells, 8)),
				Volume: ParseNumber(cellAt(row.Cells, 7)),
				Saldo:  ParseNumber(cellAt(row.Cells, 4)),
				Export: ParseNumber(cellAt(row.Cells, 5)),
				Import: ParseNumber(cellAt(row.Cells, 6)),
			})
		}

	case LayoutInterval:
		// Day(0) Period(1) Time interval(2) Price EUR(3) Volume(4)
		// Purchase(5) Sale(6) Saldo(7) Export(8) Import(9) ... Rate(11)
		agg := newAggregator(RoleAverage, RoleSum, RoleAverage, RoleSum, RoleSum)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			period := ParseNumber(cellAt(row.Cells, 1))
			interval := strings.TrimSpace(cellAt(row.Cells, 2))
			if d == "" || period == nil || interval == "" {
				continue
			}
			if rate := ParseNumber(cellAt(row.Cells, 11)); rate != nil {
				rates.Record(d, *rate)
			}
			p := ParseNumber(cellAt(row.Cells, 3))
			v := ParseNumber(cellAt(row.Cells, 4))
			s := ParseNumber(cellAt(row.Cells, 7))
			e := ParseNumber(cellAt(row.Cells, 8))
			i := ParseNumber(cellAt(row.Cells, 9))

			if strings.Contains(interval, ":") {
				agg.add(d, hourForPeriod(int(*period)), p, v, s, e, i)
			} else {
				out = append(out, domain.DAMPrice{
					Date: d, Hour: int(*period),
					Price: p, Volume: v, Saldo: s, Export: e, Import: i,
				})
			}
		}
		for _, g := range agg.results() {
			out = append(out, domain.DAMPrice{
				Date: g.Date, Hour: g.Hour,
				Price: g.Values[0], Volume: g.Values[1], Saldo: g.Values[2],
				Export: g.Values[3], Import: g.Values[4],
			})
		}

	default:
		slog.Warn("sheet layout not recognized, no rows extracted",
			slog.String("source", source), slog.String("series", "dam_prices"))
		return nil
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// ExtractIMPrices extracts the intraday electricity market sheet. Min and max
// prices take the group extreme when quarter-hours are collapsed, not an
// average.
func ExtractIMPrices(rows [][]string, source string) []domain.IMPrice {
	var out []domain.IMPrice

	switch layout := DetectLayout(rows); layout {
	case LayoutLegacyHourly:
		// Day(0) Hour(1) Volume(2) ... WAvg price(5) ... Min(8) Max(9)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			h := ParseHour(cellAt(row.Cells, 1))
			if d == "" || h == 0 {
				continue
			}
			out = append(out, domain.IMPrice{
				Date:     d,
				Hour:     h,
				Price:    ParseNumber(cellAt(row.Cells, 5)),
				Volume:   ParseNumber(cellAt(row.Cells, 2)),
				MinPrice: ParseNumber(cellAt(row.Cells, 8)),
				MaxPrice: ParseNumber(cellAt(row.Cells, 9)),
			})
		}

	case LayoutInterval:
		// Day(0) Period(1) Time interval(2) WAvg price(3) Volume(4) ... Min(11) Max(12)
		agg := newAggregator(RoleAverage, RoleSum, RoleMin, RoleMax)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			period := ParseNumber(cellAt(row.Cells, 1))
			interval := strings.TrimSpace(cellAt(row.Cells, 2))
			if d == "" || period == nil || interval == "" {
				continue
			}
			p := ParseNumber(cellAt(row.Cells, 3))
			v := ParseNumber(cellAt(row.Cells, 4))
			mn := ParseNumber(cellAt(row.Cells, 11))
			mx := ParseNumber(cellAt(row.Cells, 12))

			if strings.Contains(interval, ":") {
				agg.add(d, hourForPeriod(int(*period)), p, v, mn, mx)
			} else {
				out = append(out, domain.IMPrice{
					Date: d, Hour: int(*period),
					Price: p, Volume: v, MinPrice: mn, MaxPrice: mx,
				})
			}
		}
		for _, g := range agg.results() {
			out = append(out, domain.IMPrice{
				Date: g.Date, Hour: g.Hour,
				Price: g.Values[0], Volume: g.Values[1],
				MinPrice: g.Values[2], MaxPrice: g.Values[3],
			})
		}

	default:
		slog.Warn("sheet layout not recognized, no rows extracted",
			slog.String("source", source), slog.String("series", "im_prices"))
		return nil
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// ExtractRegulation extracts one of the regulation energy sheets (RE+ AC or
// RE- AC); both share the same two-field shape.
func ExtractRegulation(rows [][]string, source string) []domain.Regulation {
	var out []domain.Regulation

	switch layout := DetectLayout(rows); layout {
	case LayoutLegacyHourly:
		// Day(0) Hour(1) Volume(2) Cost(3)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			h := ParseHour(cellAt(row.Cells, 1))
			if d == "" || h == 0 {
				continue
			}
			out = append(out, domain.Regulation{
				Date:   d,
				Hour:   h,
				Volume: ParseNumber(cellAt(row.Cells, 2)),
				Cost:   ParseNumber(cellAt(row.Cells, 3)),
			})
		}

	case LayoutInterval:
		// Day(0) Period(1) Time interval(2) Volume(3) Cost(4). The interval
		// string is optional here: rows without one count as whole hours.
		agg := newAggregator(RoleSum, RoleSum)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			period := ParseNumber(cellAt(row.Cells, 1))
			interval := strings.TrimSpace(cellAt(row.Cells, 2))
			if d == "" || period == nil {
				continue
			}
			vol := ParseNumber(cellAt(row.Cells, 3))
			cost := ParseNumber(cellAt(row.Cells, 4))

			if strings.Contains(interval, ":") {
				agg.add(d, hourForPeriod(int(*period)), vol, cost)
			} else {
				out = append(out, domain.Regulation{
					Date: d, Hour: int(*period), Volume: vol, Cost: cost,
				})
			}
		}
		for _, g := range agg.results() {
			out = append(out, domain.Regulation{
				Date: g.Date, Hour: g.Hour, Volume: g.Values[0], Cost: g.Values[1],
			})
		}

	default:
		slog.Warn("sheet layout not recognized, no rows extracted",
			slog.String("source", source), slog.String("series", "regulation"))
		return nil
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// ExtractImbalances extracts the imbalance settlement sheet. The interval
// layout of this sheet has no time-interval column: every row is a
// quarter-hour, so grouping by period index applies unconditionally.
func ExtractImbalances(rows [][]string, source string) []domain.Imbalance {
	var out []domain.Imbalance

	switch layout := DetectLayout(rows); layout {
	case LayoutLegacyHourly:
		// Day(0) Hour(1) System(2) Abs(3) ... Settlement(9) Counter(10)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			h := ParseHour(cellAt(row.Cells, 1))
			if d == "" || h == 0 {
				continue
			}
			out = append(out, domain.Imbalance{
				Date:            d,
				Hour:            h,
				SystemImbalance: ParseNumber(cellAt(row.Cells, 2)),
				AbsImbalance:    ParseNumber(cellAt(row.Cells, 3)),
				SettlementPrice: ParseNumber(cellAt(row.Cells, 9)),
				CounterPrice:    ParseNumber(cellAt(row.Cells, 10)),
			})
		}

	case LayoutInterval:
		// Day(0) Period(1) System(2) Abs(3) ... Settlement(9) Counter(10),
		// period 1-96, always 15-minute resolution.
		agg := newAggregator(RoleSum, RoleSum, RoleAverage, RoleAverage)
		for _, row := range DataRows(rows, marketHeaderRow) {
			d := ParseDate(cellAt(row.Cells, 0))
			period := ParseNumber(cellAt(row.Cells, 1))
			if d == "" || period == nil {
				continue
			}
			agg.add(d, hourForPeriod(int(*period)),
				ParseNumber(cellAt(row.Cells, 2)),
				ParseNumber(cellAt(row.Cells, 3)),
				ParseNumber(cellAt(row.Cells, 9)),
				ParseNumber(cellAt(row.Cells, 10)))
		}
		for _, g := range agg.results() {
			out = append(out, domain.Imbalance{
				Date: g.Date, Hour: g.Hour,
				SystemImbalance: g.Values[0], AbsImbalance: g.Values[1],
				SettlementPrice: g.Values[2], CounterPrice: g.Values[3],
			})
		}

	default:
		slog.Warn("sheet layout not recognized, no rows extracted",
			slog.String("source", source), slog.String("series", "imbalances"))
		return nil
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].Hour < out[j].Hour
	})
	return out
}

// ExtractGasPrices extracts the intraday gas market sheet. The gas report is
// already daily, so there is no layout variance and no aggregation.
func ExtractGasPrices(rows [][]string, source string) []domain.GasPrice {
	var out []domain.GasPrice

	// Gas day(0) Volume(1) WAvg price(2) Amount(3) Index OTE(4)
	for _, row := range DataRows(rows, marketHeaderRow) {
		d := ParseDate(cellAt(row.Cells, 0))
		if d == "" {
			continue
		}
		out = append(out, domain.GasPrice{
			Date:     d,
			Price:    ParseNumber(cellAt(row.Cells, 2)),
			Volume:   ParseNumber(cellAt(row.Cells, 1)),
			IndexOTE: ParseNumber(cellAt(row.Cells, 4)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// ExtractDAMIndexes extracts the daily base/peak/offpeak index sheet, which
// keeps its header one row higher than the market sheets.
func ExtractDAMIndexes(rows [][]string, source string) []domain.DAMIndex {
	var out []domain.DAMIndex

	// Day(0) Base load(1) Peak load(2) Offpeak load(3)
	for _, row := range DataRows(rows, indexHeaderRow) {
		d := ParseDate(cellAt(row.Cells, 0))
		if d == "" {
			continue
		}
		out = append(out, domain.DAMIndex{
			Date:        d,
			BaseLoad:    ParseNumber(cellAt(row.Cells, 1)),
			PeakLoad:    ParseNumber(cellAt(row.Cells, 2)),
			OffpeakLoad: ParseNumber(cellAt(row.Cells, 3)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
