package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/jdsia/CSADPRG-MCO2/internal/analytics"
	"github.com/jdsia/CSADPRG-MCO2/internal/config"
	"github.com/jdsia/CSADPRG-MCO2/internal/console"
	"github.com/jdsia/CSADPRG-MCO2/internal/dataprocessing"
	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/internal/exporter"
	"github.com/jdsia/CSADPRG-MCO2/internal/infrastructure"
	"github.com/jdsia/CSADPRG-MCO2/internal/validation"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// Application holds the loaded dataset between menu actions and wires the
// pipeline, report generator and exporter together.
type Application struct {
	Config        *config.Config
	Paths         *config.Paths
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders

	pipeline  *dataprocessing.Pipeline
	generator *analytics.Generator
	exporter  *exporter.ReportExporter
	files     *validation.FileValidator
	out       io.Writer

	mu      sync.Mutex
	records []domain.CleanedRecord
	result  *dataprocessing.ProcessResult
	reports *domain.ReportSet
}

// Option configures an Application.
type Option func(*Application)

// WithLogger uses logger instead of initializing one from the logging config.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Application) {
		a.Logger = logger
	}
}

// WithOutput sets where the preview and menu are written. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(a *Application) {
		a.out = w
	}
}

// New creates an application from a validated configuration.
func New(cfg *config.Config, opts ...Option) (*Application, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &Application{
		Config: cfg,
		Paths:  cfg.ResolvePaths(),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(a)
	}

	if a.Logger == nil {
		logger, err := infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		a.Logger = logger
	}

	a.Logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", config.AppVersion))

	if err := a.Paths.EnsureDirectories(); err != nil {
		return nil, apperrors.NewStorageError("failed to ensure directories", err)
	}
	a.Paths.LogPathResolution(a.Logger)

	providers, err := infrastructure.InitializeOTel(infrastructure.OTelConfigFromTelemetry(cfg.Telemetry), a.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}
	a.OTelProviders = providers

	tracer := infrastructure.TracerOrGlobal(providers)
	metrics := providers.Metrics

	a.pipeline = dataprocessing.NewPipeline(a.Logger,
		dataprocessing.WithYearRange(cfg.Pipeline.StartYear, cfg.Pipeline.EndYear),
		dataprocessing.WithTracer(tracer),
		dataprocessing.WithMetrics(metrics))
	a.generator = analytics.NewGenerator(analytics.ParamsFromConfig(cfg.Reports), a.Logger,
		analytics.WithTracer(tracer),
		analytics.WithMetrics(metrics))
	a.exporter = exporter.NewReportExporter(a.Paths, a.Logger,
		exporter.WithWorkbook(cfg.Reports.WriteWorkbook),
		exporter.WithTracer(tracer))
	a.files = validation.NewFileValidator(a.Logger)

	return a, nil
}

// LoadFile loads the configured input file and runs the cleaning pipeline.
// The cleaned records replace any previously loaded dataset.
func (a *Application) LoadFile(ctx context.Context) error {
	ctx = infrastructure.EnsureTraceID(ctx)

	if err := a.files.ValidateInputFile(a.Paths.InputFile); err != nil {
		return err
	}

	result, err := a.pipeline.LoadAndProcess(ctx, a.Paths.InputFile)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.records = result.Records
	a.result = result
	a.reports = nil
	a.mu.Unlock()

	fmt.Fprintf(a.out, "Loaded %d records, %d invalid, %d outside %d-%d, %d ready.\n",
		result.Loaded, result.Invalid, result.OutOfRange,
		a.Config.Pipeline.StartYear, a.Config.Pipeline.EndYear, len(result.Records))
	return nil
}

// GenerateReports builds every report from the loaded dataset, writes the
// report files and prints a preview. Without loaded records it returns an
// EmptyInput error and writes nothing.
func (a *Application) GenerateReports(ctx context.Context) error {
	ctx = infrastructure.EnsureTraceID(ctx)

	a.mu.Lock()
	records := a.records
	a.mu.Unlock()

	set, err := a.generator.GenerateAll(ctx, records)
	if err != nil {
		return err
	}

	if err := a.files.ValidateOutputDirectory(a.Paths.OutputDir); err != nil {
		return err
	}

	written, err := a.exporter.ExportAll(ctx, set)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.reports = set
	a.mu.Unlock()

	if err := console.RenderPreview(a.out, set, a.Config.Reports.PreviewRows); err != nil {
		return fmt.Errorf("render preview: %w", err)
	}
	for _, path := range written {
		fmt.Fprintln(a.out, console.FormatSuccess("Wrote "+path))
	}

	if a.OTelProviders != nil {
		a.OTelProviders.Runtime.Collect(ctx)
	}
	if err := a.OTelProviders.WriteMetricsTextfile(a.Config.Telemetry.MetricsTextfile); err != nil {
		a.Logger.WarnContext(ctx, "failed to write metrics textfile", slog.String("error", err.Error()))
	}
	return nil
}

// Run performs a single load and generate without the menu.
func (a *Application) Run(ctx context.Context) error {
	if err := a.LoadFile(ctx); err != nil {
		return fmt.Errorf("load %s: %w", a.Paths.InputFile, err)
	}
	return a.GenerateReports(ctx)
}

// RunMenu runs the interactive menu reading choices from in.
func (a *Application) RunMenu(ctx context.Context, in io.Reader) error {
	return console.NewMenu(a, in, a.out, a.Logger).Run(ctx)
}

// Records returns the currently loaded cleaned records.
func (a *Application) Records() []domain.CleanedRecord {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.records
}

// LastResult returns the counts of the most recent load, or nil.
func (a *Application) LastResult() *dataprocessing.ProcessResult {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result
}

// Reports returns the most recently generated report set, or nil.
func (a *Application) Reports() *domain.ReportSet {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.reports
}

// Stop flushes telemetry and closes the log file.
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.Info("Application stopping")

	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var errs []error
	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}
	}
	if err := infrastructure.CloseLogFile(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("shutdown errors: %v", errs)
	}
	return nil
}
