package dataprocessing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

// dateLayouts are the ISO-8601 forms accepted for StartDate and ActualCompletionDate.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

var recordValidator = validator.New()

// Validate keeps the records that pass ValidateRecord and counts the rest.
// Input records are never modified.
func Validate(records []domain.RawRecord) ([]domain.ValidatedRecord, int) {
	valid := make([]domain.ValidatedRecord, 0, len(records))
	invalid := 0

	for _, rec := range records {
		vr, err := ValidateRecord(rec)
		if err != nil {
			invalid++
			continue
		}
		valid = append(valid, vr)
	}

	return valid, invalid
}

// ValidateRecord checks one record. The checks short-circuit in order:
// required fields non-empty, budget and cost numeric, dates parse,
// completion not before start. Failures are MalformedRecord errors.
func ValidateRecord(rec domain.RawRecord) (domain.ValidatedRecord, error) {
	for _, field := range domain.RequiredFields {
		if rec.Trimmed(field) == "" {
			return domain.ValidatedRecord{}, apperrors.NewMalformedRecordError(
				fmt.Sprintf("missing required field %s", field), nil)
		}
	}

	budget, err := ParseNumber(rec.Get(domain.FieldApprovedBudget))
	if err != nil {
		return domain.ValidatedRecord{}, apperrors.NewMalformedRecordError("invalid approved budget", err)
	}
	cost, err := ParseNumber(rec.Get(domain.FieldContractCost))
	if err != nil {
		return domain.ValidatedRecord{}, apperrors.NewMalformedRecordError("invalid contract cost", err)
	}

	start, err := ParseDate(rec.Get(domain.FieldStartDate))
	if err != nil {
		return domain.ValidatedRecord{}, apperrors.NewMalformedRecordError("invalid start date", err)
	}
	end, err := ParseDate(rec.Get(domain.FieldActualCompletionDate))
	if err != nil {
		return domain.ValidatedRecord{}, apperrors.NewMalformedRecordError("invalid completion date", err)
	}

	vr := domain.ValidatedRecord{
		Raw:                  rec,
		ApprovedBudget:       budget,
		ContractCost:         cost,
		StartDate:            start,
		ActualCompletionDate: end,
	}
	if year, err := ParseNumber(rec.Get(domain.FieldFundingYear)); err == nil {
		vr.FundingYear = year
		vr.HasFundingYear = true
	}

	// gtefield on ActualCompletionDate rejects completion before start
	if err := recordValidator.Struct(vr); err != nil {
		return domain.ValidatedRecord{}, apperrors.NewMalformedRecordError("completion date before start date", err)
	}

	return vr, nil
}

// ParseNumber parses a trimmed decimal number. NaN and infinities are rejected.
func ParseNumber(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite number %q", s)
	}
	return v, nil
}

// ParseDate parses an ISO-8601 date or date-time and truncates it to the
// calendar day as written, returned as UTC midnight.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}
