package storage

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/LegitNotT/SSS/internal/domain"
)

// Document keys. These names are the public persistence contract; the files
// they map to can be read by external tooling.
const (
	KeyDailyPrices   = "daily_prices"
	KeyLastInputDate = "last_input_date"
	KeyWagesList     = "wages_list"
	KeyHistory       = "history"
)

// StoredPriceSet is the serializable form of domain.PriceSet. Decimals are
// stored as strings so precision survives the JSON round trip.
type StoredPriceSet struct {
	GoldWithoutGST   string `json:"gold_without_gst"`
	GoldWithGST      string `json:"gold_with_gst"`
	SilverWithoutGST string `json:"silver_without_gst"`
	SilverWithGST    string `json:"silver_with_gst"`
}

// NewStoredPriceSet converts domain.PriceSet into its stored representation.
func NewStoredPriceSet(ps domain.PriceSet) StoredPriceSet {
	return StoredPriceSet{
		GoldWithoutGST:   ps.GoldWithoutGST.String(),
		GoldWithGST:      ps.GoldWithGST.String(),
		SilverWithoutGST: ps.SilverWithoutGST.String(),
		SilverWithGST:    ps.SilverWithGST.String(),
	}
}

// ToPriceSet reconstructs domain.PriceSet from stored data. Absent fields
// decode as zero.
func (s StoredPriceSet) ToPriceSet() (domain.PriceSet, error) {
	gold, err := decodeDecimal(s.GoldWithoutGST)
	if err != nil {
		return domain.PriceSet{}, errors.Wrap(err, "decode gold price without GST")
	}
	goldGST, err := decodeDecimal(s.GoldWithGST)
	if err != nil {
		return domain.PriceSet{}, errors.Wrap(err, "decode gold price with GST")
	}
	silver, err := decodeDecimal(s.SilverWithoutGST)
	if err != nil {
		return domain.PriceSet{}, errors.Wrap(err, "decode silver price without GST")
	}
	silverGST, err := decodeDecimal(s.SilverWithGST)
	if err != nil {
		return domain.PriceSet{}, errors.Wrap(err, "decode silver price with GST")
	}

	return domain.PriceSet{
		GoldWithoutGST:   gold,
		GoldWithGST:      goldGST,
		SilverWithoutGST: silver,
		SilverWithGST:    silverGST,
	}, nil
}

// StoredWageEntry is the serializable form of domain.WageEntry.
type StoredWageEntry struct {
	ID    int64  `json:"id"`
	SrNo  int    `json:"sr_no"`
	Label string `json:"label"`
	Rate  string `json:"rate"`
}

// NewStoredWageEntry converts domain.WageEntry into its stored representation.
func NewStoredWageEntry(w domain.WageEntry) StoredWageEntry {
	return StoredWageEntry{ID: w.ID, SrNo: w.SrNo, Label: w.Label, Rate: w.Rate.String()}
}

// ToWageEntry reconstructs domain.WageEntry from stored data.
func (s StoredWageEntry) ToWageEntry() (domain.WageEntry, error) {
	rate, err := decodeDecimal(s.Rate)
	if err != nil {
		return domain.WageEntry{}, errors.Wrapf(err, "decode rate of wage entry %d", s.ID)
	}
	return domain.WageEntry{ID: s.ID, SrNo: s.SrNo, Label: s.Label, Rate: rate}, nil
}

// StoredHistoryRecord is the serializable form of domain.HistoryRecord.
type StoredHistoryRecord struct {
	ID           int64  `json:"id"`
	Timestamp    string `json:"timestamp"`
	Weight       string `json:"weight"`
	Material     string `json:"material"`
	PricePerGram string `json:"price_per_gram"`
	WageAmount   string `json:"wage_amount"`
	Total        string `json:"total"`
	IncludeGST   bool   `json:"include_gst"`
}

// NewStoredHistoryRecord converts domain.HistoryRecord into its stored representation.
func NewStoredHistoryRecord(r domain.HistoryRecord) StoredHistoryRecord {
	return StoredHistoryRecord{
		ID:           r.ID,
		Timestamp:    r.Timestamp,
		Weight:       r.Weight.String(),
		Material:     r.Material.String(),
		PricePerGram: r.PricePerGram.String(),
		WageAmount:   r.WageAmount.String(),
		Total:        r.Total.String(),
		IncludeGST:   r.IncludeGST,
	}
}

// ToHistoryRecord reconstructs domain.HistoryRecord from stored data.
func (s StoredHistoryRecord) ToHistoryRecord() (domain.HistoryRecord, error) {
	weight, err := decodeDecimal(s.Weight)
	if err != nil {
		return domain.HistoryRecord{}, errors.Wrapf(err, "decode weight of history record %d", s.ID)
	}
	pricePerGram, err := decodeDecimal(s.PricePerGram)
	if err != nil {
		return domain.HistoryRecord{}, errors.Wrapf(err, "decode price of history record %d", s.ID)
	}
	wageAmount, err := decodeDecimal(s.WageAmount)
	if err != nil {
		return domain.HistoryRecord{}, errors.Wrapf(err, "decode wage of history record %d", s.ID)
	}
	total, err := decodeDecimal(s.Total)
	if err != nil {
		return domain.HistoryRecord{}, errors.Wrapf(err, "decode total of history record %d", s.ID)
	}
	material, err := domain.ParseMaterial(s.Material)
	if err != nil {
		return domain.HistoryRecord{}, err
	}

	return domain.HistoryRecord{
		ID:        s.ID,
		Timestamp: s.Timestamp,
		CalculationResult: domain.CalculationResult{
			Weight:       weight,
			Material:     material,
			PricePerGram: pricePerGram,
			WageAmount:   wageAmount,
			Total:        total,
			IncludeGST:   s.IncludeGST,
		},
	}, nil
}

func decodeDecimal(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
