package analytics

import (
	"math"
	"sort"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

type contractorAccumulator struct {
	count        int
	totalCost    float64
	totalSavings float64
	totalDelay   int
}

// GenerateContractorRanking runs ContractorRanking with the default parameters.
func GenerateContractorRanking(records []domain.CleanedRecord) []domain.ContractorRow {
	return DefaultParams().ContractorRanking(records)
}

// ContractorRanking ranks contractors with at least MinContractorProjects
// projects by total contract cost, highest first, keeping ContractorTopN rows.
func (p Params) ContractorRanking(records []domain.CleanedRecord) []domain.ContractorRow {
	groups := make(map[string]*contractorAccumulator)
	order := make([]string, 0)

	for _, rec := range records {
		acc, ok := groups[rec.Contractor]
		if !ok {
			acc = &contractorAccumulator{}
			groups[rec.Contractor] = acc
			order = append(order, rec.Contractor)
		}
		acc.count++
		acc.totalCost += rec.ContractCost
		acc.totalSavings += rec.CostSavings
		acc.totalDelay += rec.CompletionDelayDays
	}

	rows := make([]domain.ContractorRow, 0, len(order))
	for _, name := range order {
		acc := groups[name]
		if acc.count < p.MinContractorProjects {
			continue
		}

		avgDelay := float64(acc.totalDelay) / float64(acc.count)
		index := p.reliabilityIndex(avgDelay, acc.totalSavings, acc.totalCost)

		rows = append(rows, domain.ContractorRow{
			Contractor:                 name,
			NumProjects:                acc.count,
			AverageCompletionDelayDays: avgDelay,
			TotalCostSavings:           acc.totalSavings,
			ReliabilityIndex:           index,
			RiskFlag:                   p.riskFlag(index),
			TotalContractCost:          acc.totalCost,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalContractCost > rows[j].TotalContractCost
	})

	if p.ContractorTopN >= 0 && len(rows) > p.ContractorTopN {
		rows = rows[:p.ContractorTopN]
	}
	return rows
}

// reliabilityIndex combines a delay factor (1 at no delay, 0 at the
// normalizer, negative beyond it) with the savings ratio. Capped at 100,
// unbounded below.
func (p Params) reliabilityIndex(avgDelay, totalSavings, totalCost float64) float64 {
	delayFactor := 1 - avgDelay/p.ReliabilityDelayNormalizer

	savingsFactor := 0.0
	if totalCost != 0 {
		savingsFactor = totalSavings / totalCost
	}

	return math.Min(100, delayFactor*savingsFactor*100)
}

func (p Params) riskFlag(index float64) domain.RiskFlag {
	if index < p.HighRiskThreshold {
		return domain.Flagged(domain.HighRiskLabel)
	}
	return domain.Score(index)
}
