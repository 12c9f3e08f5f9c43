package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

func validRecord() model.Record {
	return model.Record{
		CustomerID:    42,
		FirstName:     "John",
		LastName:      "Doe",
		Email:         "john.doe@gmail.com",
		Phone:         "555-123-4567",
		DateOfBirth:   time.Date(1985, 3, 15, 0, 0, 0, 0, time.UTC),
		Address:       "12 Main Street, Springfield",
		Income:        55000,
		AccountStatus: model.AccountStatusActive,
		CreatedDate:   time.Date(2023, 1, 10, 0, 0, 0, 0, time.UTC),
	}
}

func validRow(index int, id string) table.Row {
	row := validRecord().ToRow(index)
	row.Set(model.ColumnCustomerID, table.String(id))
	return row
}

func newTestValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(zaptest.NewLogger(t))
	require.NoError(t, err)
	return v
}

func TestNewValidatorRequiresLogger(t *testing.T) {
	_, err := NewValidator(nil)
	assert.Error(t, err)
}

func TestValidateRecord(t *testing.T) {
	v := newTestValidator(t)

	tests := []struct {
		name   string
		mutate func(*model.Record)
		field  string
	}{
		{"zero id", func(r *model.Record) { r.CustomerID = 0 }, model.ColumnCustomerID},
		{"negative id", func(r *model.Record) { r.CustomerID = -3 }, model.ColumnCustomerID},
		{"short first name", func(r *model.Record) { r.FirstName = "J" }, model.ColumnFirstName},
		{"digits in last name", func(r *model.Record) { r.LastName = "D0e" }, model.ColumnLastName},
		{"empty first name", func(r *model.Record) { r.FirstName = "" }, model.ColumnFirstName},
		{"email without at", func(r *model.Record) { r.Email = "john.example.com" }, model.ColumnEmail},
		{"email without dotted domain", func(r *model.Record) { r.Email = "john@localhost" }, model.ColumnEmail},
		{"short phone", func(r *model.Record) { r.Phone = "12345" }, model.ColumnPhone},
		{"short address", func(r *model.Record) { r.Address = "Elm St" }, model.ColumnAddress},
		{"negative income", func(r *model.Record) { r.Income = -50 }, model.ColumnIncome},
		{"income over cap", func(r *model.Record) { r.Income = 10_000_001 }, model.ColumnIncome},
		{"closed status", func(r *model.Record) { r.AccountStatus = "closed" }, model.ColumnAccountStatus},
		{"missing dob", func(r *model.Record) { r.DateOfBirth = time.Time{} }, model.ColumnDateOfBirth},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			errs := v.ValidateRecord(rec)
			require.Len(t, errs, 1)
			assert.Equal(t, tt.field, errs[0].Field)
		})
	}

	t.Run("valid record", func(t *testing.T) {
		assert.Empty(t, v.ValidateRecord(validRecord()))
	})

	t.Run("placeholders are legal", func(t *testing.T) {
		rec := validRecord()
		rec.FirstName = model.PlaceholderName
		rec.LastName = model.PlaceholderName
		rec.Email = model.PlaceholderEmail
		rec.Phone = model.PlaceholderPhone
		rec.Address = model.PlaceholderAddress
		rec.Income = model.PlaceholderIncome
		rec.AccountStatus = model.PlaceholderAccountStatus
		assert.Empty(t, v.ValidateRecord(rec))
	})

	t.Run("reports every violation", func(t *testing.T) {
		rec := validRecord()
		rec.Email = "bad"
		rec.Income = -1
		rec.AccountStatus = "closed"

		errs := v.ValidateRecord(rec)
		require.Len(t, errs, 3)
		assert.Equal(t, model.ColumnEmail, errs[0].Field)
		assert.Equal(t, model.ColumnIncome, errs[1].Field)
		assert.Equal(t, model.ColumnAccountStatus, errs[2].Field)
	})
}

func TestValidateTableDuplicates(t *testing.T) {
	v := newTestValidator(t)

	tbl := table.New(model.CustomerTable.ColumnNames())
	tbl.Append(validRow(0, "42"))
	tbl.Append(validRow(1, "42"))
	tbl.Append(validRow(2, "7"))
	tbl.Append(validRow(3, "42.0"))

	result := v.ValidateTable(tbl)

	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 2, result.PassedCount)
	assert.Equal(t, 2, result.FailedCount)
	assert.False(t, result.Passed)

	require.Len(t, result.Failures, 2)
	assert.Equal(t, 1, result.Failures[0].RowIndex)
	assert.Equal(t, "42", result.Failures[0].CustomerID)
	assert.Equal(t, model.ColumnCustomerID, result.Failures[0].Column)
	assert.Contains(t, result.Failures[0].Message, "duplicate")
	assert.Equal(t, 3, result.Failures[1].RowIndex)
	assert.Len(t, result.ByColumn[model.ColumnCustomerID], 2)
}

func TestValidateTableDuplicateOfInvalidRow(t *testing.T) {
	v := newTestValidator(t)

	first := validRow(0, "9")
	first.Set(model.ColumnIncome, table.String("-5"))
	second := validRow(1, "9")

	tbl := table.New(model.CustomerTable.ColumnNames())
	tbl.Append(first)
	tbl.Append(second)

	result := v.ValidateTable(tbl)
	require.Len(t, result.Failures, 2)
	assert.Equal(t, model.ColumnIncome, result.Failures[0].Column)
	assert.Equal(t, model.ColumnCustomerID, result.Failures[1].Column)
}

func TestValidateTableGranularity(t *testing.T) {
	row := validRow(0, "abc")
	row.Set(model.ColumnEmail, table.String("nope"))
	row.Set(model.ColumnIncome, table.Null())

	tbl := table.New(model.CustomerTable.ColumnNames())
	tbl.Append(row)

	t.Run("first error", func(t *testing.T) {
		result := newTestValidator(t).ValidateTable(tbl)
		require.Len(t, result.Failures, 1)
		assert.Equal(t, model.ColumnCustomerID, result.Failures[0].Column)
		assert.Equal(t, 1, result.FailedCount)
	})

	t.Run("all errors", func(t *testing.T) {
		result := newTestValidator(t).WithAllErrors(true).ValidateTable(tbl)
		require.Len(t, result.Failures, 3)
		assert.Equal(t, model.ColumnCustomerID, result.Failures[0].Column)
		assert.Equal(t, model.ColumnEmail, result.Failures[1].Column)
		assert.Equal(t, model.ColumnIncome, result.Failures[2].Column)
		assert.Equal(t, 1, result.FailedCount)
	})
}

func TestValidateTableDoesNotMutate(t *testing.T) {
	tbl := table.New(model.CustomerTable.ColumnNames())
	tbl.Append(validRow(0, "1"))
	before := tbl.Clone()

	result := newTestValidator(t).ValidateTable(tbl)
	assert.True(t, result.Passed)
	assert.Equal(t, before, tbl)
}
