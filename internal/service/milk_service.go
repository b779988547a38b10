package service

import (
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/amterp/dairy/internal/block"
	"github.com/amterp/dairy/internal/model"
	"github.com/amterp/dairy/internal/store"
	"github.com/amterp/dairy/internal/util"
)

const msgNoMilk = "No milk records found."

// Positional layout of a milk entry: the quantity sits at a fixed offset
// from the date header, and the report reads the lines after the animal ID.
var (
	quantityOffset = block.MilkSchema.Index(block.FieldMilkQuantity)
	reportFields   = block.MilkSchema.Fields[block.MilkSchema.Index(block.FieldAnimalID)+1:]
	dateHeader     = block.MilkSchema.Header() + " "
	animalIDHeader = block.FieldAnimalID + block.Separator
)

// MilkService handles milk entries, daily aggregation and the per-animal
// report.
type MilkService struct {
	store  store.RecordStore
	logger *zap.Logger
}

// NewMilkService creates a new milk service.
func NewMilkService(milkStore store.RecordStore, logger *zap.Logger) *MilkService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MilkService{store: milkStore, logger: logger}
}

// Add appends one milk entry.
func (s *MilkService) Add(entry model.MilkEntry) error {
	if err := s.store.Append(entry.Encode()); err != nil {
		return err
	}
	s.logger.Info("milk entry added",
		zap.String("date", entry.Date),
		zap.String("animal_id", entry.AnimalID))
	return nil
}

// Aggregation is the outcome of Aggregate.
type Aggregation struct {
	Summary  model.MilkSummary `json:"summary"`
	Appended bool              `json:"appended"`
	Message  string            `json:"message"`
}

// Aggregate sums the quantity of every entry whose date line contains date,
// prices it at pricePerLiter, and appends a daily summary block to the milk
// store. Quantities that don't parse are skipped and counted. Summary
// blocks never start with "Date = ", so reruns don't count them, but each
// run appends another summary. A missing store appends nothing.
func (s *MilkService) Aggregate(date string, pricePerLiter float64) (Aggregation, error) {
	if err := requireKey("date", date); err != nil {
		return Aggregation{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return Aggregation{}, err
	}
	if !exists {
		return Aggregation{
			Summary: model.MilkSummary{Date: date, PricePerLiter: pricePerLiter},
			Message: msgNoMilk,
		}, nil
	}

	summary := model.MilkSummary{Date: date, PricePerLiter: pricePerLiter}
	err = s.store.Scan(func(b block.Block) bool {
		if !strings.Contains(b.Header(), date) {
			return true
		}
		summary.Entries++

		line, _ := b.At(quantityOffset)
		qty, ok := parseQuantity(line)
		if !ok {
			summary.Skipped++
			s.logger.Debug("skipping unparseable quantity",
				zap.Int("line", b.StartLine+quantityOffset),
				zap.String("value", line))
			return true
		}
		summary.TotalLiters += qty
		return true
	})
	if err != nil {
		return Aggregation{}, err
	}

	summary.TotalPrice = summary.TotalLiters * pricePerLiter
	summary.Found = summary.Entries > 0

	if err := s.store.Append(summary.Encode()); err != nil {
		return Aggregation{}, err
	}
	s.logger.Info("daily summary appended",
		zap.String("date", date),
		zap.Float64("total_liters", summary.TotalLiters),
		zap.Int("skipped", summary.Skipped))

	liters := util.FormatNumber(summary.TotalLiters)
	total := util.FormatNumber(summary.TotalPrice)
	message := fmt.Sprintf("Total milk for %s: %s liters\nTotal price for %s: %s\nDaily summary appended to %s",
		date, liters, date, total, filepath.Base(s.store.Path()))

	return Aggregation{Summary: summary, Appended: true, Message: message}, nil
}

// parseQuantity reads "Milk Quantity = <n> liters". The line must split on
// "=" into exactly two parts; unit words are removed before parsing.
func parseQuantity(line string) (float64, bool) {
	parts := util.SplitFields(line, "=")
	if len(parts) != 2 {
		return 0, false
	}
	value := strings.ReplaceAll(parts[1], "liters", "")
	value = strings.ReplaceAll(value, "liter", "")
	qty, err := util.ParseNumber(value)
	if err != nil {
		return 0, false
	}
	return qty, true
}

// MilkReport is the per-animal milk listing.
type MilkReport struct {
	Found   bool                    `json:"found"`
	Entries []model.MilkReportEntry `json:"entries"`
	Message string                  `json:"message"`
}

// ByAnimalID lists every entry whose animal ID equals animalID exactly,
// one report entry per milking. The three lines after the ID line are read
// by position as quantity, staff name and price; the date is the most
// recent date line seen.
func (s *MilkService) ByAnimalID(animalID string) (MilkReport, error) {
	if err := requireKey("animal id", animalID); err != nil {
		return MilkReport{}, err
	}
	exists, err := s.store.Exists()
	if err != nil {
		return MilkReport{}, err
	}
	if !exists {
		return MilkReport{Message: msgNoMilk}, nil
	}

	var (
		entries []model.MilkReportEntry
		date    string
		cur     model.MilkReportEntry
		values  []string
		reading bool
	)
	finish := func() {
		cur.Quantity = reportValue(values, block.FieldMilkQuantity)
		cur.StaffName = reportValue(values, block.FieldStaffName)
		cur.Price = reportValue(values, block.FieldPricePerLiter)
		cur.Total = entryTotal(cur.Quantity, cur.Price)
		entries = append(entries, cur)
		reading = false
	}

	err = s.store.Lines(func(line string) bool {
		if reading {
			values = append(values, line)
			if len(values) == len(reportFields) {
				finish()
			}
			return true
		}
		switch {
		case strings.HasPrefix(line, dateHeader):
			date = strings.TrimSpace(line[len(dateHeader):])
		case strings.HasPrefix(line, animalIDHeader):
			if strings.TrimSpace(line[len(animalIDHeader):]) == animalID {
				cur = model.MilkReportEntry{Date: date, AnimalID: animalID}
				values = values[:0]
				reading = true
			}
		}
		return true
	})
	if err != nil {
		return MilkReport{}, err
	}
	if reading {
		finish()
	}

	if len(entries) == 0 {
		return MilkReport{Message: "No milk records found for Animal ID: " + animalID}, nil
	}
	return MilkReport{Found: true, Entries: entries, Message: renderReport(entries)}, nil
}

// reportValue strips the field label from the positional line for field.
// Missing lines give "".
func reportValue(values []string, field string) string {
	for i, name := range reportFields {
		if name != field || i >= len(values) {
			continue
		}
		v := strings.ReplaceAll(values[i], name+block.Separator, "")
		if field == block.FieldMilkQuantity {
			v = strings.ReplaceAll(v, "liters", "")
			v = strings.ReplaceAll(v, "liter", "")
		}
		return strings.TrimSpace(v)
	}
	return ""
}

func entryTotal(quantity, price string) float64 {
	qty, err := util.ParseNumber(quantity)
	if err != nil {
		return 0
	}
	prc, err := util.ParseNumber(price)
	if err != nil {
		return 0
	}
	return qty * prc
}

func renderReport(entries []model.MilkReportEntry) string {
	var sb strings.Builder
	for _, e := range entries {
		sb.WriteString("Date: " + e.Date + "\n")
		sb.WriteString("Animal ID: " + e.AnimalID + "\n")
		sb.WriteString("milkman Name: " + e.StaffName + "\n")
		sb.WriteString("Total Milk: " + e.Quantity + " liters\n")
		sb.WriteString("Price per Liter: " + e.Price + "\n")
		sb.WriteString("Total milk Price: " + util.FormatNumber(e.Total) + "\n\n")
	}
	return sb.String()
}
