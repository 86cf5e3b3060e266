// Package dataprocessing turns the heterogeneous OTE annual report workbooks
// into uniform time series.
//
// The report layout changed between publication years: the 2024-era sheets
// carry one row per clock hour at fixed column offsets, the later sheets one
// row per sub-period (hour or quarter-hour) with a period index and a time
// interval string. DetectLayout classifies a sheet from its header row, the
// per-series extractors map the matching column offsets to canonical records,
// and quarter-hour rows are collapsed into hours by a shared role-driven
// aggregation strategy (prices averaged, energies summed, min/max taken over
// the group).
//
// History is the run-level accumulator: one instance collects every series
// across all workbooks together with the daily CZK/EUR exchange rates found
// in the day-ahead sheets.
package dataprocessing
