package domain

import (
	"strings"
	"time"
)

// Column names used by the pipeline. Header names from the input file are
// used verbatim as field keys, so these must match the source data exactly.
const (
	FieldStartDate            = "StartDate"
	FieldActualCompletionDate = "ActualCompletionDate"
	FieldApprovedBudget       = "ApprovedBudgetForContract"
	FieldContractCost         = "ContractCost"
	FieldRegion               = "Region"
	FieldFundingYear          = "FundingYear"
	FieldMainIsland           = "MainIsland"
	FieldContractor           = "Contractor"
	FieldTypeOfWork           = "TypeOfWork"
	FieldProvince             = "Province"
	FieldDistrict             = "District"
)

// RequiredFields lists the columns every record must carry with a non-empty value.
var RequiredFields = []string{
	FieldStartDate,
	FieldActualCompletionDate,
	FieldApprovedBudget,
	FieldContractCost,
	FieldRegion,
	FieldFundingYear,
}

// RawRecord is one input row keyed by column name, exactly as read.
// No type guarantees are made about its values.
type RawRecord map[string]string

// Get returns the value stored under field, or "" when the field is absent.
func (r RawRecord) Get(field string) string {
	return r[field]
}

// Has reports whether the field is present on the record (even if empty).
func (r RawRecord) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Trimmed returns the whitespace-trimmed value of field.
func (r RawRecord) Trimmed(field string) string {
	return strings.TrimSpace(r[field])
}

// Clone returns an independent copy of the record.
func (r RawRecord) Clone() RawRecord {
	out := make(RawRecord, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// ValidatedRecord is a RawRecord that passed validation. The numeric and date
// fields have been parsed exactly once, at the validation boundary.
//
// Invariant: ActualCompletionDate is not before StartDate (calendar days).
type ValidatedRecord struct {
	Raw                  RawRecord `json:"-"`
	ApprovedBudget       float64   `json:"approved_budget"`
	ContractCost         float64   `json:"contract_cost"`
	StartDate            time.Time `json:"start_date" validate:"required"`
	ActualCompletionDate time.Time `json:"actual_completion_date" validate:"required,gtefield=StartDate"`

	// FundingYear is parsed alongside the other fields but a non-numeric year
	// does not fail validation; HasFundingYear is false and the year filter
	// drops the record.
	FundingYear    float64 `json:"funding_year"`
	HasFundingYear bool    `json:"-"`
}

// EnrichedRecord is a ValidatedRecord plus the two derived attributes.
// It is always built as a new value; the validated record is never modified.
type EnrichedRecord struct {
	ValidatedRecord

	// CostSavings is ApprovedBudget - ContractCost. Negative values are overruns.
	CostSavings float64 `json:"cost_savings"`

	// CompletionDelayDays is the number of calendar days between StartDate
	// and ActualCompletionDate. Never negative after validation.
	CompletionDelayDays int `json:"completion_delay_days"`
}

// CleanedRecord is the canonical unit consumed by the report generators.
// Every numeric and date field is typed and finite; no further validation
// happens downstream.
type CleanedRecord struct {
	Region     string `json:"region"`
	MainIsland string `json:"main_island"`
	Contractor string `json:"contractor"`
	TypeOfWork string `json:"type_of_work"`
	Province   string `json:"province,omitempty"`
	District   string `json:"district,omitempty"`

	FundingYear          int       `json:"funding_year"`
	ApprovedBudget       float64   `json:"approved_budget"`
	ContractCost         float64   `json:"contract_cost"`
	CostSavings          float64   `json:"cost_savings"`
	CompletionDelayDays  int       `json:"completion_delay_days"`
	StartDate            time.Time `json:"start_date"`
	ActualCompletionDate time.Time `json:"actual_completion_date"`

	// Attributes keeps every input column so field presence (Province vs
	// District) can be checked after normalization.
	Attributes RawRecord `json:"-"`
}

// DelayedBeyond reports whether the project finished more than days late.
func (c CleanedRecord) DelayedBeyond(days int) bool {
	return c.CompletionDelayDays > days
}

// IsOverrun reports whether the contract cost exceeded the approved budget.
func (c CleanedRecord) IsOverrun() bool {
	return c.CostSavings < 0
}
