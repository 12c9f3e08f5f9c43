package masking

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/David-Botos/data-quality/pkg/dataerr"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

func cleanedTable() *table.Table {
	tbl := table.New(model.CustomerTable.ColumnNames())

	john := table.NewRow(0)
	john.Set(model.ColumnCustomerID, table.String("1"))
	john.Set(model.ColumnFirstName, table.String("John"))
	john.Set(model.ColumnLastName, table.String("Doe"))
	john.Set(model.ColumnEmail, table.String("john.doe@gmail.com"))
	john.Set(model.ColumnPhone, table.String("555-123-4567"))
	john.Set(model.ColumnDateOfBirth, table.String("1985-03-15"))
	john.Set(model.ColumnAddress, table.String("12 Main Street Springfield"))
	john.Set(model.ColumnIncome, table.String("55000"))
	john.Set(model.ColumnAccountStatus, table.String("active"))
	john.Set(model.ColumnCreatedDate, table.String("2023-01-10"))
	tbl.Append(john)

	unknown := table.NewRow(3)
	unknown.Set(model.ColumnCustomerID, table.String("4"))
	unknown.Set(model.ColumnFirstName, table.String(model.PlaceholderName))
	unknown.Set(model.ColumnLastName, table.String(model.PlaceholderName))
	unknown.Set(model.ColumnEmail, table.String(model.PlaceholderEmail))
	unknown.Set(model.ColumnPhone, table.String(model.PlaceholderPhone))
	unknown.Set(model.ColumnDateOfBirth, table.Null())
	unknown.Set(model.ColumnAddress, table.String(model.PlaceholderAddress))
	unknown.Set(model.ColumnIncome, table.String("0"))
	unknown.Set(model.ColumnAccountStatus, table.String("inactive"))
	unknown.Set(model.ColumnCreatedDate, table.String("2024-06-01"))
	tbl.Append(unknown)

	return tbl
}

func newTestMasker(t *testing.T) *Masker {
	t.Helper()
	m, err := NewMasker(zaptest.NewLogger(t))
	require.NoError(t, err)
	return m
}

func TestNewMaskerRequiresLogger(t *testing.T) {
	_, err := NewMasker(nil)
	assert.Error(t, err)
}

func TestMask(t *testing.T) {
	in := cleanedTable()
	before := in.Clone()

	out := newTestMasker(t).Mask(in)

	assert.Equal(t, before, in, "input must not be modified")
	require.Equal(t, 2, out.Len())

	john := out.Rows[0]
	assert.Equal(t, "J***", john.Get(model.ColumnFirstName).Text)
	assert.Equal(t, "D***", john.Get(model.ColumnLastName).Text)
	assert.Equal(t, "j***@gmail.com", john.Get(model.ColumnEmail).Text)
	assert.Equal(t, "***-***-4567", john.Get(model.ColumnPhone).Text)
	assert.Equal(t, "1985-**-**", john.Get(model.ColumnDateOfBirth).Text)
	assert.Equal(t, MaskedAddress, john.Get(model.ColumnAddress).Text)
	assert.Equal(t, "55000", john.Get(model.ColumnIncome).Text)
	assert.Equal(t, "1", john.Get(model.ColumnCustomerID).Text)

	unknown := out.Rows[1]
	assert.Equal(t, 3, unknown.Index)
	assert.Equal(t, model.PlaceholderName, unknown.Get(model.ColumnFirstName).Text)
	assert.Equal(t, model.PlaceholderEmail, unknown.Get(model.ColumnEmail).Text)
	assert.Equal(t, model.PlaceholderPhone, unknown.Get(model.ColumnPhone).Text)
	assert.Equal(t, model.PlaceholderAddress, unknown.Get(model.ColumnAddress).Text)
	assert.True(t, unknown.Get(model.ColumnDateOfBirth).IsNull())
}

func TestMaskTwice(t *testing.T) {
	m := newTestMasker(t)
	once := m.Mask(cleanedTable())
	twice := m.Mask(once)
	assert.Equal(t, once, twice)
}

func TestRun(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "masked.csv")

	masked, result, err := newTestMasker(t).Run(context.Background(), cleanedTable(), dest)
	require.NoError(t, err)
	assert.Equal(t, model.MaskingResult{TotalRows: 2, MaskedRows: 2}, result)

	back, err := table.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, masked.Columns, back.Columns)
	assert.Equal(t, "j***@gmail.com", back.Rows[0].Get(model.ColumnEmail).Text)
}

func TestRunWriteFailure(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "missing", "masked.csv")

	_, result, err := newTestMasker(t).Run(context.Background(), cleanedTable(), dest)
	require.Error(t, err)
	assert.True(t, dataerr.IsFatal(err))
	assert.Equal(t, 2, result.TotalRows)
	assert.Zero(t, result.MaskedRows)
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := newTestMasker(t).Run(ctx, cleanedTable(), filepath.Join(t.TempDir(), "masked.csv"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareSample(t *testing.T) {
	m := newTestMasker(t)
	before := cleanedTable()
	after := m.Mask(before)

	cmp := CompareSample(before, after, 1)
	assert.Equal(t, MaskedColumns(), cmp.Columns)
	require.Len(t, cmp.Before, 1)
	require.Len(t, cmp.After, 1)
	assert.Equal(t, "John", cmp.Before[0].Get(model.ColumnFirstName).Text)
	assert.Equal(t, "J***", cmp.After[0].Get(model.ColumnFirstName).Text)
	_, hasIncome := cmp.After[0].Values[model.ColumnIncome]
	assert.False(t, hasIncome)

	all := CompareSample(before, after, 10)
	assert.Len(t, all.Before, 2)
}
