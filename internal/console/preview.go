package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// NotApplicableText is shown for a year-over-year change with no baseline.
const NotApplicableText = "N/A"

// Preview section titles.
const (
	EfficiencyTitle = "Report 1: Regional Flood Mitigation Efficiency Summary"
	ContractorTitle = "Report 2: Top Contractors Performance Ranking"
	TrendTitle      = "Report 3: Annual Project Type Cost Overrun Trends"
	SummaryTitle    = "Summary"
)

// RenderPreview writes the first rows of the efficiency, contractor and
// trend reports as aligned tables, followed by the summary figures.
func RenderPreview(w io.Writer, set *domain.ReportSet, rows int) error {
	if set == nil {
		return nil
	}

	efficiency := make([][]string, 0, rows)
	for _, row := range head(len(set.Efficiency), rows) {
		r := set.Efficiency[row]
		efficiency = append(efficiency, []string{
			r.MainIsland,
			r.Region,
			full(r.TotalApprovedBudget),
			full(r.MedianCostSavings),
			full(r.AverageCompletionDelayDays),
			full(r.PercentProjectsDelayedOver30Days),
			full(r.EfficiencyScore),
		})
	}

	contractors := make([][]string, 0, rows)
	for _, row := range head(len(set.Contractors), rows) {
		r := set.Contractors[row]
		contractors = append(contractors, []string{
			r.Contractor,
			strconv.Itoa(r.NumProjects),
			full(r.AverageCompletionDelayDays),
			full(r.TotalCostSavings),
			full(r.ReliabilityIndex),
			r.RiskFlag.String(),
		})
	}

	trends := make([][]string, 0, rows)
	for _, row := range head(len(set.Trends), rows) {
		r := set.Trends[row]
		yoy := NotApplicableText
		if r.YoYChange.Valid {
			yoy = fixed(r.YoYChange.Value)
		}
		trends = append(trends, []string{
			strconv.Itoa(r.FundingYear),
			r.TypeOfWork,
			strconv.Itoa(r.TotalProjects),
			fixed(r.AverageCostSavings),
			fixed(r.OverrunRate),
			yoy,
		})
	}

	sections := []struct {
		title   string
		columns []string
		rows    [][]string
		total   int
	}{
		{EfficiencyTitle, domain.EfficiencyColumns, efficiency, len(set.Efficiency)},
		{ContractorTitle, domain.ContractorColumns, contractors, len(set.Contractors)},
		{TrendTitle, domain.TrendColumns(set.BaselineYear), trends, len(set.Trends)},
	}

	for _, s := range sections {
		if err := renderTable(w, s.title, s.columns, s.rows, s.total); err != nil {
			return err
		}
	}

	return RenderSummary(w, set.Summary)
}

// RenderSummary writes the dataset-wide statistics.
func RenderSummary(w io.Writer, s domain.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, TitleStyle.Render(SummaryTitle))
	fmt.Fprintf(tw, "TotalProjects\t%d\n", s.TotalProjects)
	fmt.Fprintf(tw, "TotalContractors\t%d\n", s.TotalContractors)
	fmt.Fprintf(tw, "TotalProvinces\t%d\n", s.TotalProvinces)
	fmt.Fprintf(tw, "GlobalAverageDelay\t%s\n", fixed(s.GlobalAverageDelay))
	fmt.Fprintf(tw, "TotalSavings\t%s\n", fixed(s.TotalSavings))
	fmt.Fprintln(tw)
	return tw.Flush()
}

func renderTable(w io.Writer, title string, columns []string, rows [][]string, total int) error {
	fmt.Fprintln(w, TitleStyle.Render(title))
	if len(rows) == 0 {
		fmt.Fprintln(w, SubtleStyle.Render("(no rows)"))
		fmt.Fprintln(w)
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(columns, "\t"))

	rules := make([]string, len(columns))
	for i, c := range columns {
		rules[i] = strings.Repeat("-", len(c))
	}
	fmt.Fprintln(tw, strings.Join(rules, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if total > len(rows) {
		fmt.Fprintln(w, SubtleStyle.Render(fmt.Sprintf("... %d more rows", total-len(rows))))
	}
	fmt.Fprintln(w)
	return nil
}

// head returns the indexes of the first n of total rows.
func head(total, n int) []int {
	if n > total {
		n = total
	}
	if n < 0 {
		n = 0
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

func full(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func fixed(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
