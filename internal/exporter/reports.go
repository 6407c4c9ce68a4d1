package exporter

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/jdsia/CSADPRG-MCO2/internal/config"
	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/internal/infrastructure"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// ReportExporter writes a generated report set to the configured files.
type ReportExporter struct {
	paths    *config.Paths
	csv      *CSVWriter
	workbook bool
	logger   *slog.Logger
	tracer   trace.Tracer
}

// Option configures a ReportExporter.
type Option func(*ReportExporter)

// WithWorkbook also writes every report to a single XLSX workbook.
func WithWorkbook(enabled bool) Option {
	return func(e *ReportExporter) {
		e.workbook = enabled
	}
}

// WithTracer enables a span per written file.
func WithTracer(t trace.Tracer) Option {
	return func(e *ReportExporter) {
		if t != nil {
			e.tracer = t
		}
	}
}

// NewReportExporter creates an exporter writing to paths.
func NewReportExporter(paths *config.Paths, logger *slog.Logger, opts ...Option) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}

	e := &ReportExporter{
		paths:  paths,
		csv:    NewCSVWriter(logger),
		logger: infrastructure.WithComponent(logger, "exporter"),
		tracer: noop.NewTracerProvider().Tracer(""),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type exportStep struct {
	path  string
	write func() error
}

// ExportAll writes the three report CSVs, the summary JSON and, when enabled,
// the workbook. A report without rows still gets its header-only file so no
// output from an earlier run survives. It returns the paths written so far,
// also on error.
func (e *ReportExporter) ExportAll(ctx context.Context, set *domain.ReportSet) ([]string, error) {
	if set == nil || set.Summary.TotalProjects == 0 {
		e.logger.WarnContext(ctx, "nothing to write")
		return nil, apperrors.NewEmptyInputError("export reports")
	}

	ctx, span := e.tracer.Start(ctx, "exporter.export_all")
	defer span.End()

	steps := []exportStep{
		{e.paths.EfficiencyCSV, func() error { return e.WriteEfficiency(e.paths.EfficiencyCSV, set.Efficiency) }},
		{e.paths.ContractorCSV, func() error { return e.WriteContractors(e.paths.ContractorCSV, set.Contractors) }},
		{e.paths.TrendCSV, func() error { return e.WriteTrends(e.paths.TrendCSV, set.Trends, set.BaselineYear) }},
		{e.paths.SummaryJSON, func() error { return e.WriteSummary(e.paths.SummaryJSON, set.Summary) }},
	}
	if e.workbook {
		steps = append(steps, exportStep{e.paths.WorkbookXLSX, func() error { return WriteWorkbook(e.paths.WorkbookXLSX, set) }})
	}

	written := make([]string, 0, len(steps))
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		_, fileSpan := e.tracer.Start(ctx, "exporter.write",
			trace.WithAttributes(attribute.String("path", step.path)))
		err := step.write()
		fileSpan.End()

		if err != nil {
			infrastructure.RecordError(ctx, err)
			e.logger.ErrorContext(ctx, "failed to write report",
				slog.String("path", step.path),
				slog.String("error", err.Error()))
			return written, err
		}
		written = append(written, step.path)
	}

	e.logger.InfoContext(ctx, "reports written", slog.Any("files", written))
	return written, nil
}

// WriteEfficiency writes the regional efficiency report.
func (e *ReportExporter) WriteEfficiency(path string, rows []domain.EfficiencyRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, efficiencyRecord(row))
	}
	return e.writeReport(path, domain.EfficiencyColumns, records)
}

// WriteContractors writes the contractor performance ranking.
func (e *ReportExporter) WriteContractors(path string, rows []domain.ContractorRow) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, contractorRecord(row))
	}
	return e.writeReport(path, domain.ContractorColumns, records)
}

// WriteTrends writes the annual overrun trend. Not applicable YoY values are
// written as empty cells.
func (e *ReportExporter) WriteTrends(path string, rows []domain.TrendRow, baselineYear int) error {
	records := make([][]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, trendRecord(row))
	}
	return e.writeReport(path, domain.TrendColumns(baselineYear), records)
}

// WriteSummary writes the summary statistics as an indented JSON object.
func (e *ReportExporter) WriteSummary(path string, summary domain.Summary) error {
	if summary.TotalProjects == 0 {
		e.logger.Warn("nothing to write", slog.String("file_path", path))
		return apperrors.NewEmptyInputError("write summary").WithContext("file_path", path)
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return apperrors.NewStorageError("failed to encode summary", err)
	}

	if err := ensureDir(path); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperrors.NewStorageError("failed to write summary", err).WithContext("file_path", path)
	}

	e.logger.Info("Summary written", slog.String("file_path", path))
	return nil
}

// writeReport replaces path with the header and records; zero records leave
// a header-only file.
func (e *ReportExporter) writeReport(path string, headers []string, records [][]string) error {
	return e.csv.WriteCSV(path, WriteOptions{
		Headers:    headers,
		Records:    records,
		AllowEmpty: true,
	})
}
