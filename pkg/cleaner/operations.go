package cleaner

import (
	"fmt"
	"strings"
	"time"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

// fillPolicy is the placeholder substituted for a missing value in a column
type fillPolicy struct {
	column      string
	placeholder func(now time.Time) string
}

func constant(s string) func(time.Time) string {
	return func(time.Time) string { return s }
}

// fillPolicies lists every FILL column. customer_id is absent: its policy is
// DELETE.
var fillPolicies = map[string]fillPolicy{
	model.ColumnFirstName:     {model.ColumnFirstName, constant(model.PlaceholderName)},
	model.ColumnLastName:      {model.ColumnLastName, constant(model.PlaceholderName)},
	model.ColumnEmail:         {model.ColumnEmail, constant(model.PlaceholderEmail)},
	model.ColumnPhone:         {model.ColumnPhone, constant(model.PlaceholderPhone)},
	model.ColumnDateOfBirth:   {model.ColumnDateOfBirth, constant(model.PlaceholderDateOfBirth)},
	model.ColumnAddress:       {model.ColumnAddress, constant(model.PlaceholderAddress)},
	model.ColumnIncome:        {model.ColumnIncome, constant(model.FormatIncome(model.PlaceholderIncome))},
	model.ColumnAccountStatus: {model.ColumnAccountStatus, constant(model.PlaceholderAccountStatus)},
	model.ColumnCreatedDate: {model.ColumnCreatedDate, func(now time.Time) string {
		return now.Format(model.DateLayout)
	}},
}

// NormalizePhone strips every non-digit and formats a 10 digit result as
// DDD-DDD-DDDD. Any other digit count is reported as unparseable.
func NormalizePhone(s string) (string, bool) {
	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}

	d := digits.String()
	if len(d) != 10 {
		return "", false
	}
	return fmt.Sprintf("%s-%s-%s", d[:3], d[3:6], d[6:]), true
}

// operationLog accumulates the cell changes of one cleaning run
type operationLog struct {
	tableName  string
	cleanedAt  time.Time
	operations []model.CleaningOperation
}

func newOperationLog(tableName string, cleanedAt time.Time) *operationLog {
	return &operationLog{tableName: tableName, cleanedAt: cleanedAt}
}

func (l *operationLog) record(row table.Row, column string, original, updated table.Value, operation, reason string) {
	var orig *string
	if original.Valid {
		text := original.Text
		orig = &text
	}

	l.operations = append(l.operations, model.CleaningOperation{
		TableName:         l.tableName,
		ColumnName:        column,
		OriginalValue:     orig,
		NewValue:          updated.Text,
		RowIdentifier:     rowIdentifier(row),
		CleaningOperation: operation,
		CleaningReason:    reason,
		CleanedAt:         l.cleanedAt,
	})
}

// rowIdentifier names a row by its customer_id, or by source index when the
// key is absent
func rowIdentifier(row table.Row) string {
	if id := row.Get(model.ColumnCustomerID); id.Valid {
		return id.Text
	}
	return fmt.Sprintf("row:%d", row.Index)
}
