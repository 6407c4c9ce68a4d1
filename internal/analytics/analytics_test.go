package analytics

import (
	"time"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// project builds a cleaned record with the fields the generators read.
type project struct {
	island, region, contractor, work string
	year                             int
	budget, cost                     float64
	delay                            int
	province                         string
}

func (p project) record() domain.CleanedRecord {
	start := time.Date(p.year, 1, 1, 0, 0, 0, 0, time.UTC)
	attrs := domain.RawRecord{
		domain.FieldRegion:     p.region,
		domain.FieldMainIsland: p.island,
		domain.FieldContractor: p.contractor,
		domain.FieldTypeOfWork: p.work,
	}
	if p.province != "" {
		attrs[domain.FieldProvince] = p.province
	}
	return domain.CleanedRecord{
		Region:               p.region,
		MainIsland:           p.island,
		Contractor:           p.contractor,
		TypeOfWork:           p.work,
		Province:             p.province,
		FundingYear:          p.year,
		ApprovedBudget:       p.budget,
		ContractCost:         p.cost,
		CostSavings:          p.budget - p.cost,
		CompletionDelayDays:  p.delay,
		StartDate:            start,
		ActualCompletionDate: start.AddDate(0, 0, p.delay),
		Attributes:           attrs,
	}
}

func records(ps ...project) []domain.CleanedRecord {
	out := make([]domain.CleanedRecord, len(ps))
	for i, p := range ps {
		out[i] = p.record()
	}
	return out
}

func cloneRecords(in []domain.CleanedRecord) []domain.CleanedRecord {
	out := make([]domain.CleanedRecord, len(in))
	for i, r := range in {
		r.Attributes = r.Attributes.Clone()
		out[i] = r
	}
	return out
}
