package dataprocessing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/jdsia/CSADPRG-MCO2/internal/errors"
	"github.com/jdsia/CSADPRG-MCO2/pkg/contracts/domain"
)

func validRaw() domain.RawRecord {
	return domain.RawRecord{
		domain.FieldStartDate:            "2021-01-01",
		domain.FieldActualCompletionDate: "2021-01-11",
		domain.FieldApprovedBudget:       "100",
		domain.FieldContractCost:         "80",
		domain.FieldRegion:               "A",
		domain.FieldFundingYear:          "2021",
		domain.FieldMainIsland:           "Luzon",
		domain.FieldContractor:           "X",
		domain.FieldTypeOfWork:           "Dike",
		domain.FieldProvince:             "P1",
	}
}

func withField(field, value string) domain.RawRecord {
	rec := validRaw()
	rec[field] = value
	return rec
}

func withoutField(field string) domain.RawRecord {
	rec := validRaw()
	delete(rec, field)
	return rec
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name    string
		record  domain.RawRecord
		wantErr bool
	}{
		{name: "valid record", record: validRaw()},
		{name: "same day completion is valid", record: withField(domain.FieldActualCompletionDate, "2021-01-01")},
		{name: "numbers with surrounding spaces", record: withField(domain.FieldContractCost, "  80.25 ")},
		{name: "negative and zero amounts are valid", record: withField(domain.FieldApprovedBudget, "0")},
		{name: "date time form", record: withField(domain.FieldStartDate, "2021-01-01T08:30:00")},
		{name: "rfc3339 form", record: withField(domain.FieldStartDate, "2021-01-01T08:30:00+08:00")},
		{name: "missing region", record: withoutField(domain.FieldRegion), wantErr: true},
		{name: "whitespace-only funding year", record: withField(domain.FieldFundingYear, "   "), wantErr: true},
		{name: "empty start date", record: withField(domain.FieldStartDate, ""), wantErr: true},
		{name: "non-numeric budget", record: withField(domain.FieldApprovedBudget, "one hundred"), wantErr: true},
		{name: "thousands separator is not numeric", record: withField(domain.FieldContractCost, "1,000"), wantErr: true},
		{name: "infinite cost", record: withField(domain.FieldContractCost, "Inf"), wantErr: true},
		{name: "NaN budget", record: withField(domain.FieldApprovedBudget, "NaN"), wantErr: true},
		{name: "unparsable start date", record: withField(domain.FieldStartDate, "01/02/2021"), wantErr: true},
		{name: "impossible calendar date", record: withField(domain.FieldActualCompletionDate, "2021-02-30"), wantErr: true},
		{name: "completion before start", record: withField(domain.FieldActualCompletionDate, "2020-12-31"), wantErr: true},
		{name: "optional fields may be missing", record: withoutField(domain.FieldContractor)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateRecord(tt.record)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrMalformedRecord)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateRecord_CarriesParsedValues(t *testing.T) {
	raw := withField(domain.FieldStartDate, "2021-01-01T23:59:59")

	vr, err := ValidateRecord(raw)
	require.NoError(t, err)

	assert.Equal(t, 100.0, vr.ApprovedBudget)
	assert.Equal(t, 80.0, vr.ContractCost)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), vr.StartDate, "truncated to the calendar day")
	assert.Equal(t, time.Date(2021, 1, 11, 0, 0, 0, 0, time.UTC), vr.ActualCompletionDate)
	assert.Equal(t, raw, vr.Raw)
	assert.Equal(t, 2021.0, vr.FundingYear)
	assert.True(t, vr.HasFundingYear)
}

func TestValidateRecord_NonNumericFundingYearIsNotInvalid(t *testing.T) {
	vr, err := ValidateRecord(withField(domain.FieldFundingYear, "FY2022"))
	require.NoError(t, err)
	assert.False(t, vr.HasFundingYear)
	assert.Zero(t, vr.FundingYear)
}

func TestValidate_CountsAndDoesNotMutate(t *testing.T) {
	records := []domain.RawRecord{
		validRaw(),
		withoutField(domain.FieldRegion),
		withField(domain.FieldContractCost, "abc"),
		withField(domain.FieldActualCompletionDate, "2020-01-01"),
		withField(domain.FieldRegion, "B"),
	}
	snapshot := make([]domain.RawRecord, len(records))
	for i, r := range records {
		snapshot[i] = r.Clone()
	}

	valid, invalid := Validate(records)

	assert.Len(t, valid, 2)
	assert.Equal(t, 3, invalid)
	assert.Equal(t, "A", valid[0].Raw.Get(domain.FieldRegion))
	assert.Equal(t, "B", valid[1].Raw.Get(domain.FieldRegion))
	assert.Equal(t, snapshot, records)
}

func TestValidate_Empty(t *testing.T) {
	valid, invalid := Validate(nil)
	assert.Empty(t, valid)
	assert.Zero(t, invalid)
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{in: "42", want: 42},
		{in: " -1.5 ", want: -1.5},
		{in: "1e3", want: 1000},
		{in: "", wantErr: true},
		{in: "12abc", wantErr: true},
		{in: "+Inf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseNumber(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDate(t *testing.T) {
	want := time.Date(2022, 3, 15, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2022-03-15",
		" 2022-03-15 ",
		"2022-03-15T10:00",
		"2022-03-15T10:00:00",
		"2022-03-15 10:00:00",
		"2022-03-15T10:00:00Z",
		"2022-03-15T23:30:00-05:00",
		"2022-03-15T10:00:00.123Z",
	} {
		t.Run(in, func(t *testing.T) {
			got, err := ParseDate(in)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}

	_, err := ParseDate("March 15, 2022")
	assert.Error(t, err)
}
