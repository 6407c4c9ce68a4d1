package analytics

import (
	"sort"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

type regionKey struct {
	MainIsland string
	Region     string
}

type regionAccumulator struct {
	totalBudget float64
	savings     []float64
	totalDelay  int
	delayed     int
}

// GenerateEfficiencyReport runs EfficiencyReport with the default parameters.
func GenerateEfficiencyReport(records []domain.CleanedRecord) []domain.EfficiencyRow {
	return DefaultParams().EfficiencyReport(records)
}

// EfficiencyReport groups records by (MainIsland, Region) and scores each
// group by median savings per day of average delay, min-max scaled to
// [0, 100]. Rows are ordered by score, highest first; ties keep the order in
// which groups were first seen.
func (p Params) EfficiencyReport(records []domain.CleanedRecord) []domain.EfficiencyRow {
	groups := make(map[regionKey]*regionAccumulator)
	order := make([]regionKey, 0)

	for _, rec := range records {
		key := regionKey{MainIsland: rec.MainIsland, Region: rec.Region}
		acc, ok := groups[key]
		if !ok {
			acc = &regionAccumulator{}
			groups[key] = acc
			order = append(order, key)
		}
		acc.totalBudget += rec.ApprovedBudget
		acc.savings = append(acc.savings, rec.CostSavings)
		acc.totalDelay += rec.CompletionDelayDays
		if rec.DelayedBeyond(p.DelayThresholdDays) {
			acc.delayed++
		}
	}

	rows := make([]domain.EfficiencyRow, 0, len(order))
	raw := make([]float64, 0, len(order))
	for _, key := range order {
		acc := groups[key]
		n := float64(len(acc.savings))
		median := Median(acc.savings)
		avgDelay := float64(acc.totalDelay) / n
		score := rawEfficiencyScore(median, avgDelay)

		rows = append(rows, domain.EfficiencyRow{
			MainIsland:                       key.MainIsland,
			Region:                           key.Region,
			TotalApprovedBudget:              acc.totalBudget,
			MedianCostSavings:                median,
			AverageCompletionDelayDays:       avgDelay,
			PercentProjectsDelayedOver30Days: 100 * float64(acc.delayed) / n,
			RawScore:                         score,
		})
		raw = append(raw, score)
	}

	for i, scaled := range MinMaxScale(raw) {
		rows[i].EfficiencyScore = scaled
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].EfficiencyScore > rows[j].EfficiencyScore
	})

	return rows
}

func rawEfficiencyScore(medianSavings, avgDelay float64) float64 {
	if avgDelay <= 0 {
		if medianSavings > 0 {
			return EfficiencySentinel
		}
		return 0
	}
	if medianSavings > 0 {
		return 100 * medianSavings / avgDelay
	}
	return 0
}
