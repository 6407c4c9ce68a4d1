package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdsia/CSADPRG-MCO2/internal/config"
	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
)

const projectsCSV = `StartDate,ActualCompletionDate,ApprovedBudgetForContract,ContractCost,Region,FundingYear,MainIsland,Contractor,TypeOfWork,Province
2021-01-01,2021-01-19,110,100,NCR,2021,Luzon,Alpha,Dike,Manila
2021-02-01,2021-02-19,110,100,NCR,2021,Luzon,Alpha,Dike,Manila
2022-03-01,2022-03-19,110,100,NCR,2022,Luzon,Alpha,Dike,Manila
2022-04-01,2022-04-19,110,100,NCR,2022,Luzon,Alpha,Dike,Manila
2023-05-01,2023-05-19,110,100,NCR,2023,Luzon,Alpha,Dike,Manila
2023-05-01,2023-06-30,50,70,VII,2023,Visayas,Beta,Seawall,Cebu
2020-01-01,2020-01-05,100,80,NCR,2020,Luzon,Alpha,Dike,Manila
2022-01-01,2021-12-01,100,80,NCR,2022,Luzon,Alpha,Dike,Manila
`

type testEnv struct {
	app *Application
	cfg *config.Config
	out *bytes.Buffer
	dir string
}

func newTestEnv(t *testing.T, mutate ...func(*config.Config)) *testEnv {
	t.Helper()
	dir := t.TempDir()

	input := filepath.Join(dir, "projects.csv")
	require.NoError(t, os.WriteFile(input, []byte(projectsCSV), 0644))

	cfg := config.Default()
	cfg.Paths.InputFile = input
	cfg.Paths.OutputDir = filepath.Join(dir, "out")
	cfg.Telemetry.MetricsTextfile = filepath.Join(dir, "floodreport.prom")
	for _, m := range mutate {
		m(cfg)
	}

	var out bytes.Buffer
	a, err := New(cfg,
		WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))),
		WithOutput(&out))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Stop(context.Background()) })

	return &testEnv{app: a, cfg: cfg, out: &out, dir: dir}
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Pipeline.EndYear = cfg.Pipeline.StartYear - 1

	_, err := New(cfg, WithLogger(slog.New(slog.NewJSONHandler(io.Discard, nil))))
	assert.Error(t, err)
}

func TestApplication_GenerateBeforeLoad(t *testing.T) {
	env := newTestEnv(t)

	err := env.app.GenerateReports(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)
	assert.Nil(t, env.app.Reports())

	entries, err := os.ReadDir(env.app.Paths.OutputDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApplication_LoadFile(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.app.LoadFile(context.Background()))

	result := env.app.LastResult()
	require.NotNil(t, result)
	assert.Equal(t, 8, result.Loaded)
	assert.Equal(t, 1, result.Invalid)
	assert.Equal(t, 1, result.OutOfRange)
	assert.Len(t, env.app.Records(), 6)
	assert.Contains(t, env.out.String(), "Loaded 8 records")
}

func TestApplication_LoadFile_MissingInput(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.Paths.InputFile = filepath.Join(c.Paths.OutputDir, "missing.csv")
	})

	err := env.app.LoadFile(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeNotFound))
	assert.Empty(t, env.app.Records())
}

func TestApplication_Run(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.app.Run(context.Background()))

	for _, path := range env.app.Paths.ReportFiles() {
		assert.FileExists(t, path)
	}
	assert.NoFileExists(t, env.app.Paths.WorkbookXLSX)
	assert.FileExists(t, env.cfg.Telemetry.MetricsTextfile)

	data, err := os.ReadFile(env.app.Paths.SummaryJSON)
	require.NoError(t, err)
	var summary map[string]float64
	require.NoError(t, json.Unmarshal(data, &summary))
	assert.Equal(t, 6.0, summary["TotalProjects"])
	assert.Equal(t, 2.0, summary["TotalContractors"])
	assert.Equal(t, 2.0, summary["TotalProvinces"])

	contractors, err := os.ReadFile(env.app.Paths.ContractorCSV)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(contractors)), "\n")
	require.Len(t, lines, 2, "only Alpha has five projects")
	assert.True(t, strings.HasPrefix(lines[1], "Alpha,5,18,50,"))
	assert.True(t, strings.HasSuffix(lines[1], ",High Risk"))

	set := env.app.Reports()
	require.NotNil(t, set)
	assert.Len(t, set.Efficiency, 2)

	out := env.out.String()
	assert.Contains(t, out, "Report 1")
	assert.Contains(t, out, "Report 3")
	assert.Contains(t, out, "Wrote "+env.app.Paths.SummaryJSON)
}

func TestApplication_RunWithWorkbook(t *testing.T) {
	env := newTestEnv(t, func(c *config.Config) {
		c.Reports.WriteWorkbook = true
	})

	require.NoError(t, env.app.Run(context.Background()))
	assert.FileExists(t, env.app.Paths.WorkbookXLSX)
}

func TestApplication_RunMenu(t *testing.T) {
	env := newTestEnv(t)

	err := env.app.RunMenu(context.Background(), strings.NewReader("2\n1\n2\n3\n"))
	require.NoError(t, err)

	out := env.out.String()
	assert.Contains(t, out, "Nothing to write")
	assert.Contains(t, out, "File loaded!")
	assert.Contains(t, out, "Reports generated!")
	assert.Contains(t, out, "Process Terminated")
	assert.FileExists(t, env.app.Paths.EfficiencyCSV)
}

func TestApplication_ReloadClearsReports(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	require.NoError(t, env.app.Run(ctx))
	require.NotNil(t, env.app.Reports())

	require.NoError(t, env.app.LoadFile(ctx))
	assert.Nil(t, env.app.Reports())
}
