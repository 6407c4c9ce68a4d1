// Package exporter writes the generated reports to disk.
//
// CSVWriter is the low-level writer: a header row plus string records, with an
// optional UTF-8 BOM. ReportExporter formats each report with full numeric
// precision and writes the three report CSVs and summary.json. WriteWorkbook
// puts every report on its own sheet of one XLSX file.
//
// Writing zero rows never creates a file. The writer logs "nothing to write"
// and returns an EmptyInput error.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(cfg.ResolvePaths(), logger, exporter.WithWorkbook(true))
//	written, err := exp.ExportAll(ctx, set)
package exporter
