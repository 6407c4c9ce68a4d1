package analytics

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/internal/infrastructure"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// Report names used in logs, spans and metrics.
const (
	ReportEfficiency = "efficiency"
	ReportContractor = "contractor"
	ReportTrend      = "trend"
	ReportSummary    = "summary"
)

// Generator produces every report from one set of cleaned records.
type Generator struct {
	params  Params
	logger  *slog.Logger
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
	now     func() time.Time
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithTracer enables a span per report.
func WithTracer(t trace.Tracer) GeneratorOption {
	return func(g *Generator) {
		if t != nil {
			g.tracer = t
		}
	}
}

// WithMetrics records row counts and durations per report.
func WithMetrics(m *infrastructure.PipelineMetrics) GeneratorOption {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithClock overrides the GeneratedAt timestamp source.
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a report generator.
func NewGenerator(params Params, logger *slog.Logger, opts ...GeneratorOption) *Generator {
	if logger == nil {
		logger = slog.Default()
	}

	g := &Generator{
		params: params,
		logger: infrastructure.WithComponent(logger, "analytics"),
		tracer: noop.NewTracerProvider().Tracer(""),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Params returns the generator's parameters.
func (g *Generator) Params() Params {
	return g.params
}

// GenerateAll runs the four generators in parallel over the same read-only
// records. Each goroutine writes only its own field of the result. Zero
// records is an EmptyInput error.
func (g *Generator) GenerateAll(ctx context.Context, records []domain.CleanedRecord) (*domain.ReportSet, error) {
	if len(records) == 0 {
		g.logger.WarnContext(ctx, "no records to generate reports from")
		return nil, apperrors.NewEmptyInputError("generate reports")
	}

	start := time.Now()
	g.logger.InfoContext(ctx, "generating reports", slog.Int("records", len(records)))

	ctx, span := g.tracer.Start(ctx, "analytics.generate_all",
		trace.WithAttributes(attribute.Int("records", len(records))))
	defer span.End()

	set := &domain.ReportSet{BaselineYear: g.params.BaselineYear}
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		return g.run(egCtx, ReportEfficiency, func() int {
			set.Efficiency = g.params.EfficiencyReport(records)
			return len(set.Efficiency)
		})
	})
	eg.Go(func() error {
		return g.run(egCtx, ReportContractor, func() int {
			set.Contractors = g.params.ContractorRanking(records)
			return len(set.Contractors)
		})
	})
	eg.Go(func() error {
		return g.run(egCtx, ReportTrend, func() int {
			set.Trends = g.params.AnnualOverrunTrends(records)
			return len(set.Trends)
		})
	})
	eg.Go(func() error {
		return g.run(egCtx, ReportSummary, func() int {
			set.Summary = GenerateSummary(records)
			return 1
		})
	})

	if err := eg.Wait(); err != nil {
		infrastructure.RecordError(ctx, err)
		return nil, err
	}

	set.GeneratedAt = g.now()

	g.logger.InfoContext(ctx, "reports generated",
		slog.Int("efficiency_rows", len(set.Efficiency)),
		slog.Int("contractor_rows", len(set.Contractors)),
		slog.Int("trend_rows", len(set.Trends)),
		slog.Duration("duration", time.Since(start)))

	return set, nil
}

func (g *Generator) run(ctx context.Context, name string, fn func() int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, span := g.tracer.Start(ctx, "analytics."+name)
	defer span.End()

	start := time.Now()
	rows := fn()
	span.SetAttributes(attribute.Int("rows", rows))

	infrastructure.RecordStage(ctx, g.metrics, "report_"+name, time.Since(start), nil)
	infrastructure.RecordReportRows(ctx, g.metrics, name, rows)
	g.logger.DebugContext(ctx, "report generated", slog.String("report", name), slog.Int("rows", rows))
	return nil
}
