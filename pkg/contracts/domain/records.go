package domain

// Dates throughout are ISO "YYYY-MM-DD" strings and hours are 1-24 delivery
// hours, matching the shape of the published OTE report tables. Numeric fields
// are pointers: a nil value means the source cell was empty or unparsable and
// must stay empty in every output, never become a zero.

// DAMPrice is one delivery hour of the day-ahead electricity market.
type DAMPrice struct {
	Date   string   `json:"date"`
	Hour   int      `json:"hour"`
	Price  *float64 `json:"price"`
	Volume *float64 `json:"volume_mwh"`
	Saldo  *float64 `json:"saldo_mwh"`
	Export *float64 `json:"export_mwh"`
	Import *float64 `json:"import_mwh"`
}

// IMPrice is one delivery hour of the intraday electricity market.
type IMPrice struct {
	Date     string   `json:"date"`
	Hour     int      `json:"hour"`
	Price    *float64 `json:"price"`
	Volume   *float64 `json:"volume_mwh"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

// Regulation is one delivery hour of activated regulation energy, used for
// both the positive (RE+) and negative (RE-) series.
type Regulation struct {
	Date   string   `json:"date"`
	Hour   int      `json:"hour"`
	Volume *float64 `json:"volume_mwh"`
	Cost   *float64 `json:"cost"`
}

// Imbalance is one delivery hour of the imbalance settlement.
type Imbalance struct {
	Date            string   `json:"date"`
	Hour            int      `json:"hour"`
	SystemImbalance *float64 `json:"system_imbalance_mwh"`
	AbsImbalance    *float64 `json:"abs_imbalance_mwh"`
	SettlementPrice *float64 `json:"settlement_price"`
	CounterPrice    *float64 `json:"counter_price"`
}

// GasPrice is one gas day of the intraday gas market. The gas report is
// already daily, there is no hour component.
type GasPrice struct {
	Date     string   `json:"date"`
	Price    *float64 `json:"price"`
	Volume   *float64 `json:"volume_mwh"`
	IndexOTE *float64 `json:"index_ote"`
}

// DAMIndex is one day of the published base/peak/offpeak day-ahead indexes.
type DAMIndex struct {
	Date        string   `json:"date"`
	BaseLoad    *float64 `json:"base_load"`
	PeakLoad    *float64 `json:"peak_load"`
	OffpeakLoad *float64 `json:"offpeak_load"`
}

// Float returns a pointer to v. Handy when building records in tests and
// when aggregating parsed cells.
func Float(v float64) *float64 {
	return &v
}
