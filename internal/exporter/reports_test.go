package exporter

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdsia/CSADPRG-MCO2/internal/config"
	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	cfg := config.Default()
	cfg.Paths.OutputDir = t.TempDir()
	return cfg.ResolvePaths()
}

func sampleReportSet() *domain.ReportSet {
	return &domain.ReportSet{
		Efficiency: []domain.EfficiencyRow{
			{MainIsland: "Luzon", Region: "NCR", TotalApprovedBudget: 300, MedianCostSavings: 12.5, AverageCompletionDelayDays: 5, PercentProjectsDelayedOver30Days: 0, EfficiencyScore: 100},
			{MainIsland: "Visayas", Region: "VII", TotalApprovedBudget: 120.25, MedianCostSavings: 0, AverageCompletionDelayDays: 40, PercentProjectsDelayedOver30Days: 100, EfficiencyScore: 0},
		},
		Contractors: []domain.ContractorRow{
			{Contractor: "Alpha", NumProjects: 6, AverageCompletionDelayDays: 10, TotalCostSavings: 600, ReliabilityIndex: 66.66666666666667, RiskFlag: domain.Score(66.66666666666667)},
			{Contractor: "Beta", NumProjects: 5, AverageCompletionDelayDays: 18, TotalCostSavings: 50, ReliabilityIndex: 8, RiskFlag: domain.Flagged(domain.HighRiskLabel)},
		},
		Trends: []domain.TrendRow{
			{FundingYear: 2021, TypeOfWork: "Dike", TotalProjects: 2, AverageCostSavings: 100, OverrunRate: 0, YoYChange: domain.Percent(0)},
			{FundingYear: 2022, TypeOfWork: "Canal", TotalProjects: 1, AverageCostSavings: 20, OverrunRate: 0, YoYChange: domain.NotApplicable()},
			{FundingYear: 2022, TypeOfWork: "Dike", TotalProjects: 3, AverageCostSavings: 50, OverrunRate: 33.333333333333336, YoYChange: domain.Percent(-50)},
		},
		Summary: domain.Summary{
			TotalProjects:      6,
			TotalContractors:   2,
			TotalProvinces:     3,
			GlobalAverageDelay: 14.5,
			TotalSavings:       650,
		},
		BaselineYear: 2021,
		GeneratedAt:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestReportExporter_ExportAll(t *testing.T) {
	paths := testPaths(t)
	exp := NewReportExporter(paths, discardLogger())

	written, err := exp.ExportAll(context.Background(), sampleReportSet())
	require.NoError(t, err)
	assert.Equal(t, paths.ReportFiles(), written)
	assert.NoFileExists(t, paths.WorkbookXLSX)

	efficiency := readCSV(t, paths.EfficiencyCSV)
	assert.Equal(t, domain.EfficiencyColumns, efficiency[0])
	assert.Equal(t, []string{"Luzon", "NCR", "300", "12.5", "5", "0", "100"}, efficiency[1])
	assert.Len(t, efficiency, 3)

	contractors := readCSV(t, paths.ContractorCSV)
	assert.Equal(t, domain.ContractorColumns, contractors[0])
	assert.Equal(t, "66.66666666666667", contractors[1][4])
	assert.Equal(t, "66.66666666666667", contractors[1][5])
	assert.Equal(t, "High Risk", contractors[2][5])

	trends := readCSV(t, paths.TrendCSV)
	assert.Equal(t, "YoY % Change (vs 2021)", trends[0][5])
	assert.Equal(t, []string{"2021", "Dike", "2", "100", "0", "0"}, trends[1])
	assert.Equal(t, "", trends[2][5])
	assert.Equal(t, []string{"2022", "Dike", "3", "50", "33.333333333333336", "-50"}, trends[3])
}

func TestReportExporter_SummaryJSON(t *testing.T) {
	paths := testPaths(t)
	exp := NewReportExporter(paths, discardLogger())

	require.NoError(t, exp.WriteSummary(paths.SummaryJSON, sampleReportSet().Summary))

	data, err := os.ReadFile(paths.SummaryJSON)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, map[string]interface{}{
		"TotalProjects":      6.0,
		"TotalContractors":   2.0,
		"TotalProvinces":     3.0,
		"GlobalAverageDelay": 14.5,
		"TotalSavings":       650.0,
	}, got)
}

func TestReportExporter_WithWorkbook(t *testing.T) {
	paths := testPaths(t)
	exp := NewReportExporter(paths, discardLogger(), WithWorkbook(true))

	written, err := exp.ExportAll(context.Background(), sampleReportSet())
	require.NoError(t, err)
	assert.Contains(t, written, paths.WorkbookXLSX)
	assert.FileExists(t, paths.WorkbookXLSX)
}

func TestReportExporter_EmptySetWritesNothing(t *testing.T) {
	paths := testPaths(t)
	exp := NewReportExporter(paths, discardLogger(), WithWorkbook(true))

	for _, set := range []*domain.ReportSet{nil, {}} {
		written, err := exp.ExportAll(context.Background(), set)
		assert.Empty(t, written)
		assert.ErrorIs(t, err, apperrors.ErrEmptyInput)
	}

	entries, err := os.ReadDir(paths.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReportExporter_EmptyReportWritesHeaderOnly(t *testing.T) {
	paths := testPaths(t)
	exp := NewReportExporter(paths, discardLogger())

	set := sampleReportSet()
	set.Contractors = nil

	written, err := exp.ExportAll(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, paths.ReportFiles(), written)
	assert.Equal(t, [][]string{domain.ContractorColumns}, readCSV(t, paths.ContractorCSV))
}

func TestReportExporter_ReexportReplacesStaleReport(t *testing.T) {
	paths := testPaths(t)
	exp := NewReportExporter(paths, discardLogger())

	_, err := exp.ExportAll(context.Background(), sampleReportSet())
	require.NoError(t, err)
	require.Len(t, readCSV(t, paths.ContractorCSV), 3)

	reloaded := sampleReportSet()
	reloaded.Contractors = nil
	written, err := exp.ExportAll(context.Background(), reloaded)
	require.NoError(t, err)
	assert.Contains(t, written, paths.ContractorCSV)

	data, err := os.ReadFile(paths.ContractorCSV)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "Alpha")
	assert.NotContains(t, string(data), "High Risk")
	assert.Equal(t, [][]string{domain.ContractorColumns}, readCSV(t, paths.ContractorCSV))
}

func TestReportExporter_CancelledContext(t *testing.T) {
	paths := testPaths(t)
	exp := NewReportExporter(paths, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	written, err := exp.ExportAll(ctx, sampleReportSet())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, written)
}
