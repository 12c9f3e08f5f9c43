package pii

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

func newRow(index int, values map[string]table.Value) table.Row {
	row := table.NewRow(index)
	for k, v := range values {
		row.Set(k, v)
	}
	return row
}

func newTestDetector(t *testing.T) *Detector {
	t.Helper()
	d, err := NewDetector(zaptest.NewLogger(t))
	require.NoError(t, err)
	return d
}

func TestNewDetectorRequiresLogger(t *testing.T) {
	_, err := NewDetector(nil)
	assert.Error(t, err)
}

func TestIsEmail(t *testing.T) {
	assert.True(t, IsEmail(table.String("john.doe@gmail.com")))
	assert.True(t, IsEmail(table.String(model.PlaceholderEmail)))
	assert.False(t, IsEmail(table.String("john doe@gmail.com")))
	assert.False(t, IsEmail(table.String("a@b@c.com")))
	assert.False(t, IsEmail(table.String("john@localhost")))
	assert.False(t, IsEmail(table.Null()))
}

func TestIsPhone(t *testing.T) {
	assert.True(t, IsPhone(table.String("555-123-4567")))
	assert.True(t, IsPhone(table.String("+44 (20) 7946.0958")))
	assert.True(t, IsPhone(table.String(model.PlaceholderPhone)))
	assert.False(t, IsPhone(table.String("123")))
	assert.False(t, IsPhone(table.String("call me maybe")))
	assert.False(t, IsPhone(table.Null()))
}

func TestDetect(t *testing.T) {
	tbl := table.New(model.CustomerTable.ColumnNames())
	tbl.Append(newRow(0, map[string]table.Value{
		model.ColumnFirstName:   table.String("John"),
		model.ColumnLastName:    table.String("Doe"),
		model.ColumnEmail:       table.String("john.doe@gmail.com"),
		model.ColumnPhone:       table.String("555-123-4567"),
		model.ColumnAddress:     table.String("12 Main Street Springfield"),
		model.ColumnDateOfBirth: table.String("1985-03-15"),
	}))
	tbl.Append(newRow(1, map[string]table.Value{
		model.ColumnFirstName: table.String("Jane"),
		model.ColumnEmail:     table.String("not-an-email"),
		model.ColumnPhone:     table.String("n/a"),
		model.ColumnAddress:   table.String(model.PlaceholderAddress),
	}))
	tbl.Append(newRow(2, map[string]table.Value{
		model.ColumnFirstName: table.String(model.PlaceholderName),
		model.ColumnLastName:  table.String(model.PlaceholderName),
		model.ColumnEmail:     table.String(model.PlaceholderEmail),
	}))

	result := newTestDetector(t).Detect(tbl)

	assert.Equal(t, map[string]int{
		"emails_found":        2,
		"phones_found":        1,
		"full_identity_found": 2,
		"addresses_found":     2,
		"dob_found":           1,
	}, result.Summary)

	require.Len(t, result.Details[model.PiiEmails], 2)
	assert.Equal(t, 0, result.Details[model.PiiEmails][0].Index)
	assert.Equal(t, 2, result.Details[model.PiiEmails][1].Index)
	assert.Equal(t, 1, result.Details[model.PiiAddresses][1].Index)
	assert.Equal(t, 2, result.Count(model.PiiFullIdentity))
}

func TestDetectSkipsAbsentColumns(t *testing.T) {
	tbl := table.New([]string{model.ColumnCustomerID, model.ColumnEmail})
	tbl.Append(newRow(0, map[string]table.Value{
		model.ColumnCustomerID: table.String("1"),
		model.ColumnEmail:      table.String("a@b.co"),
	}))

	result := newTestDetector(t).Detect(tbl)

	assert.Equal(t, map[string]int{"emails_found": 1}, result.Summary)
	_, ok := result.Details[model.PiiPhones]
	assert.False(t, ok)
}

func TestDetectEmptyTable(t *testing.T) {
	result := newTestDetector(t).Detect(table.New(model.CustomerTable.ColumnNames()))
	for _, c := range model.PiiCategories {
		assert.Zero(t, result.Count(c))
		assert.NotNil(t, result.Details[c])
	}
}
