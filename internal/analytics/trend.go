package analytics

import (
	"math"
	"sort"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

type trendKey struct {
	FundingYear int
	TypeOfWork  string
}

type trendAccumulator struct {
	count        int
	totalSavings float64
	overruns     int
}

// GenerateAnnualOverrunTrends runs AnnualOverrunTrends with the default parameters.
func GenerateAnnualOverrunTrends(records []domain.CleanedRecord) []domain.TrendRow {
	return DefaultParams().AnnualOverrunTrends(records)
}

// AnnualOverrunTrends groups records by (FundingYear, TypeOfWork) and reports
// average savings, overrun rate and the change in average savings against
// the same TypeOfWork in BaselineYear. Rows are ordered by year, then
// TypeOfWork.
func (p Params) AnnualOverrunTrends(records []domain.CleanedRecord) []domain.TrendRow {
	groups := make(map[trendKey]*trendAccumulator)
	order := make([]trendKey, 0)

	for _, rec := range records {
		key := trendKey{FundingYear: rec.FundingYear, TypeOfWork: rec.TypeOfWork}
		acc, ok := groups[key]
		if !ok {
			acc = &trendAccumulator{}
			groups[key] = acc
			order = append(order, key)
		}
		acc.count++
		acc.totalSavings += rec.CostSavings
		if rec.IsOverrun() {
			acc.overruns++
		}
	}

	rows := make([]domain.TrendRow, 0, len(order))
	baseline := make(map[string]float64)
	for _, key := range order {
		acc := groups[key]
		avg := 0.0
		rate := 0.0
		if acc.count > 0 {
			avg = acc.totalSavings / float64(acc.count)
			rate = 100 * float64(acc.overruns) / float64(acc.count)
		}
		if key.FundingYear == p.BaselineYear {
			baseline[key.TypeOfWork] = avg
		}
		rows = append(rows, domain.TrendRow{
			FundingYear:        key.FundingYear,
			TypeOfWork:         key.TypeOfWork,
			TotalProjects:      acc.count,
			AverageCostSavings: avg,
			OverrunRate:        rate,
		})
	}

	for i := range rows {
		rows[i].YoYChange = p.yoyChange(rows[i], baseline)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].FundingYear != rows[j].FundingYear {
			return rows[i].FundingYear < rows[j].FundingYear
		}
		return rows[i].TypeOfWork < rows[j].TypeOfWork
	})

	return rows
}

// yoyChange is 0 in the baseline year, the percent change against a non-zero
// baseline, and not applicable when the baseline is missing or is zero while
// the current value is not.
func (p Params) yoyChange(row domain.TrendRow, baseline map[string]float64) domain.OptionalPercent {
	if row.FundingYear == p.BaselineYear {
		return domain.Percent(0)
	}

	base, ok := baseline[row.TypeOfWork]
	switch {
	case !ok:
		return domain.NotApplicable()
	case base == 0 && row.AverageCostSavings == 0:
		return domain.Percent(0)
	case base == 0:
		return domain.NotApplicable()
	default:
		return domain.Percent(100 * (row.AverageCostSavings - base) / math.Abs(base))
	}
}
