package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jdsia/CSADPRG-MCO2/internal/infrastructure"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// ProcessResult is the output of one pipeline run.
type ProcessResult struct {
	Records    []domain.CleanedRecord
	Loaded     int
	Invalid    int
	OutOfRange int
	Duration   time.Duration
}

// Pipeline threads validation, year filtering, derivation and normalization.
// Stages run strictly in sequence, each consuming the full output of the
// previous one.
type Pipeline struct {
	logger    *slog.Logger
	tracer    trace.Tracer
	metrics   *infrastructure.PipelineMetrics
	startYear int
	endYear   int
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithYearRange sets the inclusive FundingYear window.
func WithYearRange(start, end int) PipelineOption {
	return func(p *Pipeline) {
		p.startYear = start
		p.endYear = end
	}
}

// WithTracer enables a span per stage.
func WithTracer(t trace.Tracer) PipelineOption {
	return func(p *Pipeline) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithMetrics records record counts and stage durations.
func WithMetrics(m *infrastructure.PipelineMetrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// NewPipeline creates a pipeline with the 2021-2023 window unless overridden.
func NewPipeline(logger *slog.Logger, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pipeline{
		logger:    infrastructure.WithComponent(logger, "pipeline"),
		tracer:    noop.NewTracerProvider().Tracer(""),
		startYear: 2021,
		endYear:   2023,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadAndProcess loads path and runs Process on its records.
func (p *Pipeline) LoadAndProcess(ctx context.Context, path string) (*ProcessResult, error) {
	ctx, span := p.tracer.Start(ctx, "pipeline.load", trace.WithAttributes(attribute.String("path", path)))
	start := time.Now()
	raw, err := Load(ctx, path, p.logger)
	infrastructure.RecordStage(ctx, p.metrics, "load", time.Since(start), err)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		span.End()
		return nil, err
	}
	span.End()

	return p.Process(ctx, raw)
}

// Process runs stages validate through normalize. Dropped records are counted,
// never reported as errors; the only error is context cancellation.
func (p *Pipeline) Process(ctx context.Context, raw []domain.RawRecord) (*ProcessResult, error) {
	begin := time.Now()
	result := &ProcessResult{Loaded: len(raw)}

	var validated []domain.ValidatedRecord
	if err := p.stage(ctx, "validate", func() {
		validated, result.Invalid = Validate(raw)
	}); err != nil {
		return nil, err
	}
	p.logger.InfoContext(ctx, "validated records",
		slog.Int("valid", len(validated)),
		slog.Int("removed", result.Invalid))

	var inRange []domain.ValidatedRecord
	if err := p.stage(ctx, "filter", func() {
		inRange = FilterByYear(validated, p.startYear, p.endYear)
	}); err != nil {
		return nil, err
	}
	result.OutOfRange = len(validated) - len(inRange)
	p.logger.InfoContext(ctx, "filtered records",
		slog.Int("start_year", p.startYear),
		slog.Int("end_year", p.endYear),
		slog.Int("kept", len(inRange)),
		slog.Int("out_of_range", result.OutOfRange))

	var enriched []domain.EnrichedRecord
	if err := p.stage(ctx, "derive", func() {
		enriched = DeriveFields(inRange)
	}); err != nil {
		return nil, err
	}
	p.logger.DebugContext(ctx, "derived fields computed", slog.Int("count", len(enriched)))

	if err := p.stage(ctx, "normalize", func() {
		result.Records = Normalize(enriched)
	}); err != nil {
		return nil, err
	}
	p.logger.InfoContext(ctx, "data cleaned and normalized", slog.Int("count", len(result.Records)))

	result.Duration = time.Since(begin)
	infrastructure.RecordRecordCounts(ctx, p.metrics, result.Loaded, result.Invalid, result.OutOfRange, len(result.Records))

	return result, nil
}

// stage runs fn inside a span after checking for cancellation.
func (p *Pipeline) stage(ctx context.Context, name string, fn func()) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, span := p.tracer.Start(ctx, "pipeline."+name)
	defer span.End()

	start := time.Now()
	fn()
	infrastructure.RecordStage(ctx, p.metrics, name, time.Since(start), nil)
	return nil
}
