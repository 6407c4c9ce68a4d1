package analytics

import (
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// GenerateSummary computes the dataset-wide statistics. The province column
// is Province when the first record carries it, otherwise District, and that
// choice applies to every record.
//
// The caller must not pass an empty slice: the mean delay is undefined (NaN)
// for zero records.
func GenerateSummary(records []domain.CleanedRecord) domain.Summary {
	provinceField := domain.FieldDistrict
	if len(records) > 0 && records[0].Attributes.Has(domain.FieldProvince) {
		provinceField = domain.FieldProvince
	}

	contractors := make(map[string]struct{})
	provinces := make(map[string]struct{})
	var totalDelay int
	var totalSavings float64

	for _, rec := range records {
		contractors[rec.Contractor] = struct{}{}
		provinces[rec.Attributes.Get(provinceField)] = struct{}{}
		totalDelay += rec.CompletionDelayDays
		totalSavings += rec.CostSavings
	}

	return domain.Summary{
		TotalProjects:      len(records),
		TotalContractors:   len(contractors),
		TotalProvinces:     len(provinces),
		GlobalAverageDelay: float64(totalDelay) / float64(len(records)),
		TotalSavings:       totalSavings,
		ProvinceField:      provinceField,
	}
}
