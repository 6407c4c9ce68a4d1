package exporter

import (
	"github.com/xuri/excelize/v2"

	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// Workbook sheet names.
const (
	SheetEfficiency = "Regional Efficiency"
	SheetContractor = "Contractor Ranking"
	SheetTrend      = "Annual Trends"
	SheetSummary    = "Summary"
)

// WriteWorkbook writes every report of set into one XLSX file, one sheet per
// report plus a Summary sheet. Numeric cells keep full precision; a not
// applicable YoY value is left blank.
func WriteWorkbook(path string, set *domain.ReportSet) error {
	if set == nil || set.Summary.TotalProjects == 0 {
		return apperrors.NewEmptyInputError("write workbook").WithContext("file_path", path)
	}

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return apperrors.NewStorageError("failed to create header style", err)
	}

	if err := f.SetSheetName("Sheet1", SheetEfficiency); err != nil {
		return apperrors.NewStorageError("failed to rename sheet", err)
	}

	efficiency := make([][]interface{}, 0, len(set.Efficiency))
	for _, row := range set.Efficiency {
		efficiency = append(efficiency, []interface{}{
			row.MainIsland, row.Region, row.TotalApprovedBudget, row.MedianCostSavings,
			row.AverageCompletionDelayDays, row.PercentProjectsDelayedOver30Days, row.EfficiencyScore,
		})
	}

	contractors := make([][]interface{}, 0, len(set.Contractors))
	for _, row := range set.Contractors {
		var flag interface{} = row.RiskFlag.Value()
		if row.RiskFlag.IsFlagged() {
			flag = row.RiskFlag.Label()
		}
		contractors = append(contractors, []interface{}{
			row.Contractor, row.NumProjects, row.AverageCompletionDelayDays,
			row.TotalCostSavings, row.ReliabilityIndex, flag,
		})
	}

	trends := make([][]interface{}, 0, len(set.Trends))
	for _, row := range set.Trends {
		var yoy interface{}
		if row.YoYChange.Valid {
			yoy = row.YoYChange.Value
		}
		trends = append(trends, []interface{}{
			row.FundingYear, row.TypeOfWork, row.TotalProjects,
			row.AverageCostSavings, row.OverrunRate, yoy,
		})
	}

	s := set.Summary
	summary := [][]interface{}{
		{"TotalProjects", s.TotalProjects},
		{"TotalContractors", s.TotalContractors},
		{"TotalProvinces", s.TotalProvinces},
		{"GlobalAverageDelay", s.GlobalAverageDelay},
		{"TotalSavings", s.TotalSavings},
	}

	sheets := []struct {
		name    string
		columns []string
		rows    [][]interface{}
	}{
		{SheetEfficiency, domain.EfficiencyColumns, efficiency},
		{SheetContractor, domain.ContractorColumns, contractors},
		{SheetTrend, domain.TrendColumns(set.BaselineYear), trends},
		{SheetSummary, []string{"Metric", "Value"}, summary},
	}

	for _, sheet := range sheets {
		if sheet.name != SheetEfficiency {
			if _, err := f.NewSheet(sheet.name); err != nil {
				return apperrors.NewStorageError("failed to create sheet", err).WithContext("sheet", sheet.name)
			}
		}
		if err := writeSheet(f, sheet.name, sheet.columns, sheet.rows, header); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := ensureDir(path); err != nil {
		return err
	}
	if err := f.SaveAs(path); err != nil {
		return apperrors.NewStorageError("failed to save workbook", err).WithContext("file_path", path)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, columns []string, rows [][]interface{}, headerStyle int) error {
	head := make([]interface{}, len(columns))
	for i, c := range columns {
		head[i] = c
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return apperrors.NewStorageError("failed to write header", err).WithContext("sheet", sheet)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return apperrors.NewStorageError("failed to style header", err).WithContext("sheet", sheet)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return apperrors.NewStorageError("invalid cell reference", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return apperrors.NewStorageError("failed to write row", err).WithContext("sheet", sheet)
		}
	}
	return nil
}
