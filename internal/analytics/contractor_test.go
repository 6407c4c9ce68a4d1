package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// repeat returns n copies of p.
func repeat(p project, n int) []project {
	out := make([]project, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestContractorRanking_HighRiskExample(t *testing.T) {
	rows := GenerateContractorRanking(records(
		repeat(project{contractor: "X", budget: 110, cost: 100, delay: 18}, 5)...,
	))

	require.Len(t, rows, 1)
	row := rows[0]
	assert.Equal(t, "X", row.Contractor)
	assert.Equal(t, 5, row.NumProjects)
	assert.Equal(t, 18.0, row.AverageCompletionDelayDays)
	assert.InDelta(t, 50.0, row.TotalCostSavings, 1e-9)
	assert.InDelta(t, 500.0, row.TotalContractCost, 1e-9)
	assert.InDelta(t, 8.0, row.ReliabilityIndex, 1e-9)
	assert.True(t, row.RiskFlag.IsFlagged())
	assert.Equal(t, domain.HighRiskLabel, row.RiskFlag.String())
}

func TestContractorRanking_MinimumProjects(t *testing.T) {
	var ps []project
	ps = append(ps, repeat(project{contractor: "Four", budget: 10, cost: 5}, 4)...)
	ps = append(ps, repeat(project{contractor: "Five", budget: 10, cost: 5}, 5)...)

	rows := GenerateContractorRanking(records(ps...))

	require.Len(t, rows, 1)
	assert.Equal(t, "Five", rows[0].Contractor)
}

func TestContractorRanking_SortedByTotalCostAndCapped(t *testing.T) {
	var ps []project
	for i := 0; i < 20; i++ {
		ps = append(ps, repeat(project{
			contractor: fmt.Sprintf("C%02d", i),
			budget:     float64(i+1) * 10,
			cost:       float64(i+1) * 10,
		}, 5)...)
	}

	rows := GenerateContractorRanking(records(ps...))

	require.Len(t, rows, 15)
	assert.Equal(t, "C19", rows[0].Contractor)
	assert.Equal(t, "C05", rows[14].Contractor)
	for i := 1; i < len(rows); i++ {
		assert.GreaterOrEqual(t, rows[i-1].TotalContractCost, rows[i].TotalContractCost)
	}
}

func TestContractorRanking_EqualCostKeepsFirstSeenOrder(t *testing.T) {
	var ps []project
	ps = append(ps, repeat(project{contractor: "Beta", budget: 10, cost: 10}, 5)...)
	ps = append(ps, repeat(project{contractor: "Alpha", budget: 10, cost: 10}, 5)...)

	rows := GenerateContractorRanking(records(ps...))

	require.Len(t, rows, 2)
	assert.Equal(t, "Beta", rows[0].Contractor)
	assert.Equal(t, "Alpha", rows[1].Contractor)
}

func TestContractorRanking_ReliabilityIndex(t *testing.T) {
	tests := []struct {
		name        string
		p           project
		wantIndex   float64
		wantFlagged bool
	}{
		{
			name:      "capped at 100",
			p:         project{contractor: "Cap", budget: 1000, cost: 100, delay: 0},
			wantIndex: 100,
		},
		{
			name:      "exact threshold is not high risk",
			p:         project{contractor: "Edge", budget: 150, cost: 100, delay: 0},
			wantIndex: 50,
		},
		{
			name:        "delay beyond normalizer goes negative",
			p:           project{contractor: "Late", budget: 200, cost: 100, delay: 180},
			wantIndex:   -100,
			wantFlagged: true,
		},
		{
			name:        "zero cost gives zero savings factor",
			p:           project{contractor: "Free", budget: 10, cost: 0, delay: 0},
			wantIndex:   0,
			wantFlagged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := GenerateContractorRanking(records(repeat(tt.p, 5)...))
			require.Len(t, rows, 1)

			assert.InDelta(t, tt.wantIndex, rows[0].ReliabilityIndex, 1e-9)
			assert.Equal(t, tt.wantFlagged, rows[0].RiskFlag.IsFlagged())
			if !tt.wantFlagged {
				assert.InDelta(t, tt.wantIndex, rows[0].RiskFlag.Value(), 1e-9)
			}
		})
	}
}

func TestContractorRanking_CustomParams(t *testing.T) {
	params := DefaultParams()
	params.MinContractorProjects = 2
	params.ContractorTopN = 1

	rows := params.ContractorRanking(records(
		project{contractor: "A", budget: 10, cost: 10},
		project{contractor: "A", budget: 10, cost: 10},
		project{contractor: "B", budget: 50, cost: 50},
		project{contractor: "B", budget: 50, cost: 50},
	))

	require.Len(t, rows, 1)
	assert.Equal(t, "B", rows[0].Contractor)
}

func TestContractorRanking_NoneQualify(t *testing.T) {
	rows := GenerateContractorRanking(records(project{contractor: "Solo", budget: 1, cost: 1}))
	assert.Empty(t, rows)
}
