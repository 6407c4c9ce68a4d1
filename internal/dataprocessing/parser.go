package dataprocessing

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

const utf8BOM = "\ufeff"

// Load reads the project records from path. The format is chosen by file
// extension: .xlsx/.xlsm are read from the first sheet, anything else as CSV.
func Load(ctx context.Context, path string, logger *slog.Logger) ([]domain.RawRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		records []domain.RawRecord
		err     error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		records, err = LoadXLSXFile(path)
	default:
		records, err = LoadCSVFile(path)
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to load input",
			slog.String("path", path),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.InfoContext(ctx, "loaded records",
		slog.String("path", path),
		slog.Int("count", len(records)))

	return records, nil
}

// LoadCSVFile opens path and parses it with LoadCSV.
func LoadCSVFile(path string) ([]domain.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperrors.NewStorageError("input file not found", err).WithContext("path", path)
		}
		return nil, apperrors.NewStorageError("failed to open input file", err).WithContext("path", path)
	}
	defer f.Close()

	records, err := LoadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return records, nil
}

// LoadCSV parses CSV with a header row. Header names become record keys
// verbatim; blank lines are skipped. Rows may be shorter or longer than the
// header: missing trailing cells are absent from the record, extra cells are
// ignored.
func LoadCSV(r io.Reader) ([]domain.RawRecord, error) {
	br := bufio.NewReader(r)
	if lead, err := br.Peek(len(utf8BOM)); err == nil && string(lead) == utf8BOM {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return []domain.RawRecord{}, nil
	}
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read CSV header", err)
	}

	records := make([]domain.RawRecord, 0, 1024)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, apperrors.NewParsingError("failed to read CSV row", err)
		}
		if isBlankRow(row) {
			continue
		}
		records = append(records, rowToRecord(header, row))
	}

	return records, nil
}

// LoadXLSXFile reads the first sheet of an Excel workbook using the same
// header and blank-row rules as LoadCSV.
func LoadXLSXFile(path string) ([]domain.RawRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []domain.RawRecord{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewParsingError("failed to read worksheet", err).
			WithContext("path", path).
			WithContext("sheet", sheets[0])
	}

	// Skip leading blank rows before the header
	start := 0
	for start < len(rows) && isBlankRow(rows[start]) {
		start++
	}
	if start == len(rows) {
		return []domain.RawRecord{}, nil
	}

	header := rows[start]
	records := make([]domain.RawRecord, 0, len(rows)-start)
	for _, row := range rows[start+1:] {
		if isBlankRow(row) {
			continue
		}
		records = append(records, rowToRecord(header, row))
	}

	return records, nil
}

func rowToRecord(header, row []string) domain.RawRecord {
	rec := make(domain.RawRecord, len(header))
	for i, name := range header {
		if i >= len(row) {
			break
		}
		rec[name] = row[i]
	}
	return rec
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
