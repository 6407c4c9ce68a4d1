package exporter

import (
	"strconv"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// formatFloat formats a float64 value with the shortest exact representation
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// formatPercent leaves the cell empty when the value is not applicable
func formatPercent(p domain.OptionalPercent) string {
	return p.String()
}

func efficiencyRecord(row domain.EfficiencyRow) []string {
	return []string{
		row.MainIsland,
		row.Region,
		formatFloat(row.TotalApprovedBudget),
		formatFloat(row.MedianCostSavings),
		formatFloat(row.AverageCompletionDelayDays),
		formatFloat(row.PercentProjectsDelayedOver30Days),
		formatFloat(row.EfficiencyScore),
	}
}

func contractorRecord(row domain.ContractorRow) []string {
	return []string{
		row.Contractor,
		formatInt(row.NumProjects),
		formatFloat(row.AverageCompletionDelayDays),
		formatFloat(row.TotalCostSavings),
		formatFloat(row.ReliabilityIndex),
		row.RiskFlag.String(),
	}
}

func trendRecord(row domain.TrendRow) []string {
	return []string{
		formatInt(row.FundingYear),
		row.TypeOfWork,
		formatInt(row.TotalProjects),
		formatFloat(row.AverageCostSavings),
		formatFloat(row.OverrunRate),
		formatPercent(row.YoYChange),
	}
}
