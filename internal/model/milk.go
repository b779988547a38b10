package model

import (
	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/util"
)

// LitersSuffix follows the quantity on every stored milk entry.
const LitersSuffix = " liters"

// MilkEntry is one milking of one animal. Quantity and PricePerLiter are
// kept as text; they are only parsed when aggregated.
type MilkEntry struct {
	Date          string `json:"date"`
	AnimalID      string `json:"animal_id"`
	Quantity      string `json:"quantity"`
	StaffName     string `json:"staff_name"`
	PricePerLiter string `json:"price_per_liter"`
}

// Fields returns the entry's values in store order.
func (m MilkEntry) Fields() []block.Field {
	return block.MilkSchema.Bind(
		m.Date,
		m.AnimalID,
		m.Quantity+LitersSuffix,
		m.StaffName,
		m.PricePerLiter,
	)
}

// Encode serializes the entry. Entries carry a dash line even though the
// milk store is read by header.
func (m MilkEntry) Encode() string {
	return block.Encode(m.Fields(), block.DashSentinel)
}

// MilkSummary is the result of aggregating one date.
type MilkSummary struct {
	Date          string  `json:"date"`
	TotalLiters   float64 `json:"total_liters"`
	PricePerLiter float64 `json:"price_per_liter"`
	TotalPrice    float64 `json:"total_price"`
	Entries       int     `json:"entries"`
	Skipped       int     `json:"skipped"`
	Found         bool    `json:"found"`
}

// Encode renders the daily summary block appended to the milk store.
func (s MilkSummary) Encode() string {
	return block.EncodeLines([]string{
		"Daily Summary for " + s.Date + ":",
		"Total Milk = " + util.FormatNumber(s.TotalLiters) + LitersSuffix,
		"Price per liter = " + util.FormatNumber(s.PricePerLiter),
		"Total Price = " + util.FormatNumber(s.TotalPrice),
	}, block.SummarySentinel)
}

// MilkReportEntry is one line of the per-animal milk report. Quantity and
// Price are echoed as stored; Total is zero when either fails to parse.
type MilkReportEntry struct {
	Date      string  `json:"date"`
	AnimalID  string  `json:"animal_id"`
	StaffName string  `json:"staff_name"`
	Quantity  string  `json:"quantity"`
	Price     string  `json:"price"`
	Total     float64 `json:"total"`
}
