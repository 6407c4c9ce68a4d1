package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// HighRiskLabel is the flag surfaced for contractors whose reliability
// index falls below the high-risk threshold.
const HighRiskLabel = "High Risk"

// Report column headers. Row order within a report is significant and is
// defined by the generator that produced it.
var (
	EfficiencyColumns = []string{
		"MainIsland",
		"Region",
		"TotalApprovedBudget",
		"MedianCostSavings",
		"AverageCompletionDelayDays",
		"PercentProjectsDelayedOver30Days",
		"EfficiencyScore",
	}

	ContractorColumns = []string{
		"Contractor",
		"NumProjects",
		"AverageCompletionDelayDays",
		"TotalCostSavings",
		"ReliabilityIndex",
		"RiskFlag",
	}
)

// TrendColumns returns the annual trend header for the given baseline year.
func TrendColumns(baselineYear int) []string {
	return []string{
		"FundingYear",
		"TypeOfWork",
		"TotalProjects",
		"AverageCostSavings",
		"OverrunRate",
		YoYColumnName(baselineYear),
	}
}

// YoYColumnName is the header of the year-over-year column, e.g. "YoY % Change (vs 2021)".
func YoYColumnName(baselineYear int) string {
	return fmt.Sprintf("YoY %% Change (vs %d)", baselineYear)
}

// EfficiencyRow is one (MainIsland, Region) group of the regional efficiency report.
type EfficiencyRow struct {
	MainIsland                       string  `json:"MainIsland"`
	Region                           string  `json:"Region"`
	TotalApprovedBudget              float64 `json:"TotalApprovedBudget"`
	MedianCostSavings                float64 `json:"MedianCostSavings"`
	AverageCompletionDelayDays       float64 `json:"AverageCompletionDelayDays"`
	PercentProjectsDelayedOver30Days float64 `json:"PercentProjectsDelayedOver30Days"`
	EfficiencyScore                  float64 `json:"EfficiencyScore"`

	// RawScore is the pre-normalization score. Not part of the output contract.
	RawScore float64 `json:"-"`
}

// RiskFlag is either a textual flag ("High Risk") or the numeric reliability
// index itself. The two cases never mix.
type RiskFlag struct {
	label   string
	score   float64
	flagged bool
}

// Flagged builds the labelled variant.
func Flagged(label string) RiskFlag {
	return RiskFlag{label: label, flagged: true}
}

// Score builds the numeric variant.
func Score(value float64) RiskFlag {
	return RiskFlag{score: value}
}

// IsFlagged reports whether this is the labelled variant.
func (f RiskFlag) IsFlagged() bool { return f.flagged }

// Label returns the flag label; empty for the numeric variant.
func (f RiskFlag) Label() string { return f.label }

// Value returns the numeric score; zero for the labelled variant.
func (f RiskFlag) Value() float64 { return f.score }

// String renders the flag with full numeric precision.
func (f RiskFlag) String() string {
	if f.flagged {
		return f.label
	}
	return strconv.FormatFloat(f.score, 'f', -1, 64)
}

// MarshalJSON emits a JSON string for the labelled variant and a JSON number otherwise.
func (f RiskFlag) MarshalJSON() ([]byte, error) {
	if f.flagged {
		return json.Marshal(f.label)
	}
	return json.Marshal(f.score)
}

// ContractorRow is one contractor of the performance ranking.
type ContractorRow struct {
	Contractor                 string   `json:"Contractor"`
	NumProjects                int      `json:"NumProjects"`
	AverageCompletionDelayDays float64  `json:"AverageCompletionDelayDays"`
	TotalCostSavings           float64  `json:"TotalCostSavings"`
	ReliabilityIndex           float64  `json:"ReliabilityIndex"`
	RiskFlag                   RiskFlag `json:"RiskFlag"`

	// TotalContractCost drives the ranking order. Not part of the output contract.
	TotalContractCost float64 `json:"-"`
}

// OptionalPercent is a percentage that may be not applicable, e.g. a
// year-over-year change against a missing or zero baseline.
type OptionalPercent struct {
	Value float64
	Valid bool
}

// Percent returns an applicable percentage.
func Percent(v float64) OptionalPercent {
	return OptionalPercent{Value: v, Valid: true}
}

// NotApplicable returns the "no meaningful comparison" value.
func NotApplicable() OptionalPercent {
	return OptionalPercent{}
}

// MarshalJSON emits null when the value is not applicable.
func (p OptionalPercent) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Value)
}

// String renders the value with full precision, or "" when not applicable.
func (p OptionalPercent) String() string {
	if !p.Valid {
		return ""
	}
	return strconv.FormatFloat(p.Value, 'f', -1, 64)
}

// TrendRow is one (FundingYear, TypeOfWork) group of the annual overrun trend.
type TrendRow struct {
	FundingYear        int             `json:"FundingYear"`
	TypeOfWork         string          `json:"TypeOfWork"`
	TotalProjects      int             `json:"TotalProjects"`
	AverageCostSavings float64         `json:"AverageCostSavings"`
	OverrunRate        float64         `json:"OverrunRate"`
	YoYChange          OptionalPercent `json:"YoYChange"`
}

// Summary holds the dataset-wide statistics written to the summary file.
type Summary struct {
	TotalProjects      int     `json:"TotalProjects"`
	TotalContractors   int     `json:"TotalContractors"`
	TotalProvinces     int     `json:"TotalProvinces"`
	GlobalAverageDelay float64 `json:"GlobalAverageDelay"`
	TotalSavings       float64 `json:"TotalSavings"`

	// ProvinceField records which column (Province or District) was counted.
	ProvinceField string `json:"-"`
}

// ReportSet bundles the output of one report-generation run.
type ReportSet struct {
	Efficiency   []EfficiencyRow `json:"efficiency"`
	Contractors  []ContractorRow `json:"contractors"`
	Trends       []TrendRow      `json:"trends"`
	Summary      Summary         `json:"summary"`
	BaselineYear int             `json:"baseline_year"`
	GeneratedAt  time.Time       `json:"generated_at"`
}
