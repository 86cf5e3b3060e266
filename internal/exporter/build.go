package exporter

import (
	"otecli/internal/dataprocessing"
	"otecli/pkg/contracts/domain"
)

// BuildTables binds the accumulated history to the seven output tables with
// their fixed headers and per-column currency tags. The tags are the single
// source of truth for the conversion step; no series needs special-casing
// beyond this declaration.
func BuildTables(h *dataprocessing.History) []Table {
	dam := Table{
		Name:   "dam_prices",
		Hourly: true,
		Columns: []Column{
			{Name: "price", Currency: EUR},
			{Name: "volume_mwh"},
			{Name: "saldo_mwh"},
			{Name: "export_mwh"},
			{Name: "import_mwh"},
		},
	}
	for _, r := range h.DAM {
		dam.Rows = append(dam.Rows, Row{
			Date: r.Date, Hour: r.Hour,
			Values: []*float64{r.Price, r.Volume, r.Saldo, r.Export, r.Import},
		})
	}

	im := Table{
		Name:   "im_prices",
		Hourly: true,
		Columns: []Column{
			{Name: "price", Currency: EUR},
			{Name: "volume_mwh"},
			{Name: "min_price", Currency: EUR},
			{Name: "max_price", Currency: EUR},
		},
	}
	for _, r := range h.IM {
		im.Rows = append(im.Rows, Row{
			Date: r.Date, Hour: r.Hour,
			Values: []*float64{r.Price, r.Volume, r.MinPrice, r.MaxPrice},
		})
	}

	rePos := regulationTable("re_positive", h.REPositive)
	reNeg := regulationTable("re_negative", h.RENegative)

	imb := Table{
		Name:   "imbalances",
		Hourly: true,
		Columns: []Column{
			{Name: "system_imbalance_mwh"},
			{Name: "abs_imbalance_mwh"},
			{Name: "settlement_price", Currency: CZK},
			{Name: "counter_price", Currency: CZK},
		},
	}
	for _, r := range h.Imbalances {
		imb.Rows = append(imb.Rows, Row{
			Date: r.Date, Hour: r.Hour,
			Values: []*float64{r.SystemImbalance, r.AbsImbalance, r.SettlementPrice, r.CounterPrice},
		})
	}

	gas := Table{
		Name: "gas_prices",
		Columns: []Column{
			{Name: "price", Currency: EUR},
			{Name: "volume_mwh"},
			{Name: "index_ote", Currency: EUR},
		},
	}
	for _, r := range h.Gas {
		gas.Rows = append(gas.Rows, Row{
			Date:   r.Date,
			Values: []*float64{r.Price, r.Volume, r.IndexOTE},
		})
	}

	idx := Table{
		Name: "dam_indexes",
		Columns: []Column{
			{Name: "base_load", Currency: EUR},
			{Name: "peak_load", Currency: EUR},
			{Name: "offpeak_load", Currency: EUR},
		},
	}
	for _, r := range h.DAMIndexes {
		idx.Rows = append(idx.Rows, Row{
			Date:   r.Date,
			Values: []*float64{r.BaseLoad, r.PeakLoad, r.OffpeakLoad},
		})
	}

	return []Table{dam, im, rePos, reNeg, imb, gas, idx}
}

// regulationTable builds the RE+ or RE- table; both share one shape with the
// activation cost settled in CZK.
func regulationTable(name string, records []domain.Regulation) Table {
	t := Table{
		Name:   name,
		Hourly: true,
		Columns: []Column{
			{Name: "volume_mwh"},
			{Name: "cost", Currency: CZK},
		},
	}
	for _, r := range records {
		t.Rows = append(t.Rows, Row{
			Date: r.Date, Hour: r.Hour,
			Values: []*float64{r.Volume, r.Cost},
		})
	}
	return t
}
