package dataprocessing

import (
	"math"
	"time"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// FilterByYear keeps records whose FundingYear is within [startYear, endYear].
// Both bounds are inclusive. A FundingYear that is not a finite number is
// outside every window.
func FilterByYear(records []domain.ValidatedRecord, startYear, endYear int) []domain.ValidatedRecord {
	filtered := make([]domain.ValidatedRecord, 0, len(records))
	for _, rec := range records {
		if !rec.HasFundingYear {
			continue
		}
		if rec.FundingYear >= float64(startYear) && rec.FundingYear <= float64(endYear) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// DeriveFields computes CostSavings and CompletionDelayDays for each record,
// returning new values.
func DeriveFields(records []domain.ValidatedRecord) []domain.EnrichedRecord {
	enriched := make([]domain.EnrichedRecord, len(records))
	for i, rec := range records {
		enriched[i] = domain.EnrichedRecord{
			ValidatedRecord:     rec,
			CostSavings:         rec.ApprovedBudget - rec.ContractCost,
			CompletionDelayDays: daysBetween(rec.StartDate, rec.ActualCompletionDate),
		}
	}
	return enriched
}

// Normalize converts enriched records into the canonical typed form used by
// the report generators. Descriptive attributes are copied verbatim. A record
// without a numeric FundingYear has no canonical form and is dropped; after
// FilterByYear there are none.
func Normalize(records []domain.EnrichedRecord) []domain.CleanedRecord {
	cleaned := make([]domain.CleanedRecord, 0, len(records))
	for _, rec := range records {
		if !rec.HasFundingYear {
			continue
		}
		cleaned = append(cleaned, domain.CleanedRecord{
			Region:               rec.Raw.Get(domain.FieldRegion),
			MainIsland:           rec.Raw.Get(domain.FieldMainIsland),
			Contractor:           rec.Raw.Get(domain.FieldContractor),
			TypeOfWork:           rec.Raw.Get(domain.FieldTypeOfWork),
			Province:             rec.Raw.Get(domain.FieldProvince),
			District:             rec.Raw.Get(domain.FieldDistrict),
			FundingYear:          int(rec.FundingYear),
			ApprovedBudget:       rec.ApprovedBudget,
			ContractCost:         rec.ContractCost,
			CostSavings:          rec.CostSavings,
			CompletionDelayDays:  rec.CompletionDelayDays,
			StartDate:            rec.StartDate,
			ActualCompletionDate: rec.ActualCompletionDate,
			Attributes:           rec.Raw.Clone(),
		})
	}
	return cleaned
}

// daysBetween counts calendar days from start to end; both are UTC midnights.
func daysBetween(start, end time.Time) int {
	return int(math.Round(end.Sub(start).Hours() / 24))
}
