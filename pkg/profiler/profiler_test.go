package profiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

const profileCSV = `customer_id,first_name,date_of_birth,income,account_status
1,John,1985-03-15,55000,active
2,,not-a-date,-50,closed
2,Ann,1990-01-01,42000.5,inactive
3,Bob,,20000000,suspended
`

func newTestProfiler(t *testing.T) *Profiler {
	t.Helper()
	p, err := NewProfiler(zaptest.NewLogger(t))
	require.NoError(t, err)
	return p
}

func issueByName(result model.ProfileResult, name string) *model.ProfileIssue {
	for i := range result.Issues {
		if result.Issues[i].Name == name {
			return &result.Issues[i]
		}
	}
	return nil
}

func indexes(rows []table.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

func TestNewProfilerRequiresLogger(t *testing.T) {
	_, err := NewProfiler(nil)
	assert.Error(t, err)
}

func TestProfile(t *testing.T) {
	tbl, err := table.Read(strings.NewReader(profileCSV))
	require.NoError(t, err)

	result := newTestProfiler(t).Profile(tbl)
	assert.Equal(t, 4, result.RowCount)

	require.Len(t, result.Columns, 5)
	assert.Equal(t, model.ColumnProfile{Name: "customer_id", PercentComplete: 100, MissingCount: 0, InferredType: TypeInteger}, result.Columns[0])
	assert.Equal(t, model.ColumnProfile{Name: "first_name", PercentComplete: 75, MissingCount: 1, InferredType: TypeString}, result.Columns[1])
	assert.Equal(t, TypeString, result.Columns[2].InferredType)
	assert.Equal(t, TypeFloat, result.Columns[3].InferredType)

	dup := issueByName(result, IssueDuplicateCustomerID)
	require.NotNil(t, dup)
	assert.Equal(t, model.SeverityCritical, dup.Severity)
	assert.Equal(t, []int{1, 2}, indexes(dup.Rows))

	dates := issueByName(result, IssueInvalidDateOfBirth)
	require.NotNil(t, dates)
	assert.Equal(t, []int{1}, indexes(dates.Rows))

	negative := issueByName(result, IssueNegativeIncome)
	require.NotNil(t, negative)
	assert.Equal(t, []int{1}, indexes(negative.Rows))

	above := issueByName(result, IssueIncomeAboveMaximum)
	require.NotNil(t, above)
	assert.Equal(t, []int{3}, indexes(above.Rows))

	status := issueByName(result, IssueInvalidAccountStatus)
	require.NotNil(t, status)
	assert.Equal(t, []int{1}, indexes(status.Rows))

	// first_name and date_of_birth are 75% complete
	assert.Equal(t, map[model.Severity]int{
		model.SeverityCritical: 1,
		model.SeverityHigh:     6,
		model.SeverityMedium:   0,
	}, result.SeverityCounts)
}

func TestProfileCleanTable(t *testing.T) {
	tbl, err := table.Read(strings.NewReader("customer_id,date_of_birth,income\n1,1985-03-15,10\n2,1990-01-01,20\n"))
	require.NoError(t, err)

	result := newTestProfiler(t).Profile(tbl)
	assert.Empty(t, result.Issues)
	assert.Equal(t, TypeDate, result.Columns[1].InferredType)
	assert.Equal(t, TypeInteger, result.Columns[2].InferredType)
	for _, n := range result.SeverityCounts {
		assert.Zero(t, n)
	}
}

func TestProfileEmptyTable(t *testing.T) {
	result := newTestProfiler(t).Profile(table.New([]string{"customer_id"}))
	require.Len(t, result.Columns, 1)
	assert.Equal(t, TypeEmpty, result.Columns[0].InferredType)
	assert.Zero(t, result.SeverityCounts[model.SeverityHigh])
}
