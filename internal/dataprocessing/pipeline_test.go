package dataprocessing

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdsia/CSADPRG-MCO2/internal/infrastructure"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

const sampleCSV = `StartDate,ActualCompletionDate,ApprovedBudgetForContract,ContractCost,Region,FundingYear,MainIsland,Contractor,TypeOfWork,Province
2021-01-01,2021-01-11,100,80,A,2021,Luzon,X,Dike,P1
2021-02-01,2021-02-01,200,220,A,2021,Luzon,X,Dike,P1

2022-01-01,2021-12-01,100,80,A,2022,Luzon,X,Dike,P1
2022-01-01,2022-01-05,abc,80,A,2022,Luzon,X,Dike,P1
2020-01-01,2020-01-05,100,80,A,2020,Luzon,X,Dike,P1
2024-01-01,2024-01-05,100,80,A,2024,Luzon,X,Dike,P1
2023-05-01,2023-05-31,50,50,B,2023,Visayas,Y,Seawall,P2
`

func TestPipeline_Process(t *testing.T) {
	raw, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, raw, 7)

	result, err := NewPipeline(nil).Process(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 7, result.Loaded)
	assert.Equal(t, 2, result.Invalid)
	assert.Equal(t, 2, result.OutOfRange)
	require.Len(t, result.Records, 3)

	assert.Equal(t, []float64{20, -20, 0}, []float64{
		result.Records[0].CostSavings, result.Records[1].CostSavings, result.Records[2].CostSavings,
	})
	assert.Equal(t, []int{10, 0, 30}, []int{
		result.Records[0].CompletionDelayDays, result.Records[1].CompletionDelayDays, result.Records[2].CompletionDelayDays,
	})
}

func TestPipeline_WithYearRange(t *testing.T) {
	raw, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	result, err := NewPipeline(nil, WithYearRange(2020, 2020)).Process(context.Background(), raw)
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, 2020, result.Records[0].FundingYear)
	assert.Equal(t, 2, result.Invalid)
	assert.Equal(t, 4, result.OutOfRange)
}

func TestPipeline_IsDeterministic(t *testing.T) {
	raw, err := LoadCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	p := NewPipeline(nil)
	first, err := p.Process(context.Background(), raw)
	require.NoError(t, err)
	second, err := p.Process(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
}

func TestPipeline_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewPipeline(nil).Process(ctx, []domain.RawRecord{validRaw()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_LoadAndProcess(t *testing.T) {
	path := filepath.Join(t.TempDir(), "projects.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0644))

	var logs bytes.Buffer
	logger := infrastructure.NewJSONLogger(&logs, "debug")

	providers, err := infrastructure.InitializeOTel(&infrastructure.OTelConfig{
		ServiceName:   "test",
		TraceExporter: "none",
		EnableMetrics: true,
	}, logger)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())

	p := NewPipeline(logger,
		WithTracer(infrastructure.TracerOrGlobal(providers)),
		WithMetrics(providers.Metrics))

	ctx := infrastructure.WithTraceID(context.Background(), "run-1")
	result, err := p.LoadAndProcess(ctx, path)
	require.NoError(t, err)
	assert.Len(t, result.Records, 3)

	out := logs.String()
	assert.Contains(t, out, `"msg":"loaded records"`)
	assert.Contains(t, out, `"removed":2`)
	assert.Contains(t, out, `"trace_id":"run-1"`)
	assert.Contains(t, out, `"component":"pipeline"`)

	textfile := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, providers.WriteMetricsTextfile(textfile))
	metrics, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "records_cleaned_total")
}

func TestPipeline_LoadAndProcess_MissingFile(t *testing.T) {
	_, err := NewPipeline(nil).LoadAndProcess(context.Background(), filepath.Join(t.TempDir(), "none.csv"))
	assert.Error(t, err)
}
