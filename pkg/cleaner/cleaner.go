// pkg/cleaner/cleaner.go
package cleaner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/David-Botos/data-quality/pkg/dataerr"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/schema"
	"github.com/David-Botos/data-quality/pkg/table"
)

// StageName identifies the cleaner in errors and metrics
const StageName = "clean"

// ErrEmptyResult is returned when no row survives cleaning
var ErrEmptyResult = errors.New("all rows failed validation")

// DataCleaner repairs a raw customer table by deleting rows without a usable
// key, filling every other missing value and re-validating the result
type DataCleaner struct {
	validator *schema.Validator
	recorder  OperationRecorder
	logger    *zap.Logger
	now       func() time.Time
}

// NewDataCleaner creates a new DataCleaner instance
func NewDataCleaner(validator *schema.Validator, logger *zap.Logger) (*DataCleaner, error) {
	if validator == nil {
		return nil, errors.New("validator cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &DataCleaner{
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}, nil
}

// WithRecorder returns a copy that persists cleaning operations after a
// successful write
func (c *DataCleaner) WithRecorder(recorder OperationRecorder) *DataCleaner {
	cp := *c
	cp.recorder = recorder
	return &cp
}

// WithClock returns a copy using now as the processing time
func (c *DataCleaner) WithClock(now func() time.Time) *DataCleaner {
	cp := *c
	cp.now = now
	return &cp
}

// Clean returns a new cleaned table and the run's result. The raw table is not
// modified. A run that accepts zero rows fails with ErrEmptyResult.
func (c *DataCleaner) Clean(raw *table.Table) (*table.Table, model.CleaningResult, error) {
	start := c.now()
	c.logger.Info("Starting data cleaning", zap.Int("rowCount", raw.Len()))

	result := model.CleaningResult{
		InitialCount: raw.Len(),
		FlaggedRows:  make([]model.FlaggedRow, 0),
		FillCounts:   make(map[string]int, len(fillPolicies)),
	}
	for column := range fillPolicies {
		result.FillCounts[column] = 0
	}
	ops := newOperationLog(model.CustomerTable.Table, start)

	working := c.trim(raw, ops)
	working = c.deleteInvalidKeys(working, ops, &result)

	caser := cases.Title(language.Und)
	for _, row := range working.Rows {
		c.repairRow(row, caser, ops, result.FillCounts, start)
	}

	cleaned := c.revalidate(working, &result)
	result.Operations = ops.operations

	if cleaned.Len() == 0 {
		c.logger.Error("Data cleaning produced no rows",
			zap.Int("initialCount", result.InitialCount),
			zap.Int("deletedCount", result.DeletedCount),
			zap.Int("flaggedCount", result.FlaggedCount))
		return nil, result, dataerr.EmptyResult(StageName, ErrEmptyResult)
	}

	c.logger.Info("Data cleaning completed",
		zap.Int("initialCount", result.InitialCount),
		zap.Int("deletedCount", result.DeletedCount),
		zap.Int("cleanedCount", result.CleanedCount),
		zap.Int("flaggedCount", result.FlaggedCount),
		zap.Int("operationCount", len(result.Operations)))

	return cleaned, result, nil
}

// Run cleans raw and writes the cleaned table to dest. Operations are handed
// to the recorder, if any, once the table is written.
func (c *DataCleaner) Run(ctx context.Context, raw *table.Table, dest string) (*table.Table, model.CleaningResult, error) {
	cleaned, result, err := c.Clean(raw)
	if err != nil {
		return nil, result, err
	}

	if err := ctx.Err(); err != nil {
		return nil, result, fmt.Errorf("cleaning cancelled: %w", err)
	}

	written, err := table.WriteFile(dest, cleaned)
	if err != nil {
		return nil, result, dataerr.Write(StageName, dest, err)
	}
	c.logger.Info("Wrote cleaned table",
		zap.String("path", dest),
		zap.Int("rowCount", written))

	if c.recorder != nil && len(result.Operations) > 0 {
		if err := c.recorder.RecordCleaningOperations(ctx, result.Operations); err != nil {
			return cleaned, result, fmt.Errorf("failed to record cleaning operations: %w", err)
		}
	}

	return cleaned, result, nil
}

// trim copies raw into the canonical column layout, trimming every cell and
// mapping missing markers to null
func (c *DataCleaner) trim(raw *table.Table, ops *operationLog) *table.Table {
	columns := model.CustomerTable.ColumnNames()
	for _, col := range raw.Columns {
		name := table.NormalizeColumnName(col)
		if model.CustomerTable.GetColumnByName(name) == nil {
			columns = append(columns, name)
		}
	}

	out := table.New(columns)
	for _, src := range raw.Rows {
		row := table.NewRow(src.Index)
		for col, v := range src.Values {
			row.Set(table.NormalizeColumnName(col), table.Normalize(v))
		}
		for _, col := range raw.Columns {
			v := src.Get(col)
			name := table.NormalizeColumnName(col)
			if normalized := row.Get(name); normalized.Valid && normalized.Text != v.Text {
				ops.record(row, name, v, normalized, model.OperationTrim, model.ReasonWhitespace)
			}
		}
		out.Append(row)
	}
	return out
}

// deleteInvalidKeys drops every row whose customer_id is absent or does not
// coerce to an integer. Surviving keys are rewritten in canonical form.
func (c *DataCleaner) deleteInvalidKeys(t *table.Table, ops *operationLog, result *model.CleaningResult) *table.Table {
	out := table.New(t.Columns)
	for _, row := range t.Rows {
		v := row.Get(model.ColumnCustomerID)
		if v.IsNull() {
			result.DeletedCount++
			ops.record(row, model.ColumnCustomerID, v, table.Null(), model.OperationDeleteRow, model.ReasonMissingPrimaryKey)
			c.logger.Warn("Deleted row with missing customer_id", zap.Int("rowIndex", row.Index))
			continue
		}

		id, err := schema.ParseCustomerID(v.Text)
		if err != nil {
			result.DeletedCount++
			ops.record(row, model.ColumnCustomerID, v, table.Null(), model.OperationDeleteRow, model.ReasonInvalidPrimaryKey)
			c.logger.Warn("Deleted row with non-numeric customer_id",
				zap.Int("rowIndex", row.Index),
				zap.String("customerId", v.Text),
				zap.Error(err))
			continue
		}

		if canonical := strconv.FormatInt(id, 10); canonical != v.Text {
			updated := table.String(canonical)
			row.Set(model.ColumnCustomerID, updated)
			ops.record(row, model.ColumnCustomerID, v, updated, model.OperationCanonicalizeID, model.ReasonNonStandardFormat)
		}
		out.Append(row)
	}
	return out
}

// repairRow applies the fill and normalization policy to one row in place.
// The order matters: names are filled before casing, and phone, dates and
// income are nulled when unparseable before their fill runs.
func (c *DataCleaner) repairRow(row table.Row, caser cases.Caser, ops *operationLog, counts map[string]int, now time.Time) {
	for _, col := range []string{model.ColumnFirstName, model.ColumnLastName, model.ColumnEmail} {
		c.fill(row, col, ops, counts, now)
	}

	for _, col := range []string{model.ColumnFirstName, model.ColumnLastName} {
		v := row.Get(col)
		if v.Text == model.PlaceholderName {
			continue
		}
		if titled := caser.String(strings.ToLower(v.Text)); titled != v.Text {
			updated := table.String(titled)
			row.Set(col, updated)
			ops.record(row, col, v, updated, model.OperationTitleCase, model.ReasonInconsistentCase)
		}
	}

	c.normalizePhone(row, ops)
	c.fill(row, model.ColumnPhone, ops, counts, now)

	for _, col := range model.CustomerTable.ColumnsOfType(model.DataTypeDate) {
		c.normalizeDate(row, col, ops)
		c.fill(row, col, ops, counts, now)
	}

	c.fill(row, model.ColumnAddress, ops, counts, now)

	c.normalizeIncome(row, ops)
	c.fill(row, model.ColumnIncome, ops, counts, now)

	c.fill(row, model.ColumnAccountStatus, ops, counts, now)
}

func (c *DataCleaner) fill(row table.Row, column string, ops *operationLog, counts map[string]int, now time.Time) {
	v := row.Get(column)
	if !v.IsNull() {
		return
	}

	policy := fillPolicies[column]
	updated := table.String(policy.placeholder(now))
	row.Set(column, updated)
	counts[column]++
	ops.record(row, column, v, updated, model.OperationFillPlaceholder, model.ReasonMissingValue)
}

func (c *DataCleaner) normalizePhone(row table.Row, ops *operationLog) {
	v := row.Get(model.ColumnPhone)
	if v.IsNull() {
		return
	}

	formatted, ok := NormalizePhone(v.Text)
	if !ok {
		c.logger.Warn("Invalid phone format",
			zap.Int("rowIndex", row.Index),
			zap.String("phone", v.Text))
		row.Set(model.ColumnPhone, table.Null())
		ops.record(row, model.ColumnPhone, v, table.Null(), model.OperationNullify, model.ReasonUnparseable)
		return
	}

	if formatted != v.Text {
		updated := table.String(formatted)
		row.Set(model.ColumnPhone, updated)
		ops.record(row, model.ColumnPhone, v, updated, model.OperationFormatPhone, model.ReasonNonStandardFormat)
	}
}

func (c *DataCleaner) normalizeDate(row table.Row, column string, ops *operationLog) {
	v := row.Get(column)
	if v.IsNull() {
		return
	}

	d, err := schema.ParseDate(v.Text)
	if err != nil {
		c.logger.Warn("Unparseable date",
			zap.Int("rowIndex", row.Index),
			zap.String("column", column),
			zap.String("value", v.Text))
		row.Set(column, table.Null())
		ops.record(row, column, v, table.Null(), model.OperationNullify, model.ReasonUnparseable)
		return
	}

	if formatted := d.Format(model.DateLayout); formatted != v.Text {
		updated := table.String(formatted)
		row.Set(column, updated)
		ops.record(row, column, v, updated, model.OperationFormatDate, model.ReasonNonStandardFormat)
	}
}

func (c *DataCleaner) normalizeIncome(row table.Row, ops *operationLog) {
	v := row.Get(model.ColumnIncome)
	if v.IsNull() {
		return
	}

	f, err := schema.ParseIncome(v.Text)
	if err != nil {
		c.logger.Warn("Unparseable income",
			zap.Int("rowIndex", row.Index),
			zap.String("value", v.Text))
		row.Set(model.ColumnIncome, table.Null())
		ops.record(row, model.ColumnIncome, v, table.Null(), model.OperationNullify, model.ReasonUnparseable)
		return
	}

	if formatted := model.FormatIncome(f); formatted != v.Text {
		updated := table.String(formatted)
		row.Set(model.ColumnIncome, updated)
		ops.record(row, model.ColumnIncome, v, updated, model.OperationFormatNumber, model.ReasonNonStandardFormat)
	}
}

// revalidate runs the repaired table through the validator and keeps only the
// rows with no violation. Everything else goes to the flagged ledger.
func (c *DataCleaner) revalidate(repaired *table.Table, result *model.CleaningResult) *table.Table {
	validation := c.validator.ValidateTable(repaired)

	messages := make(map[int][]string, validation.FailedCount)
	for _, f := range validation.Failures {
		messages[f.RowIndex] = append(messages[f.RowIndex], fmt.Sprintf("%s: %s", f.Column, f.Message))
	}

	cleaned := table.New(repaired.Columns)
	for _, row := range repaired.Rows {
		msgs, failed := messages[row.Index]
		if !failed {
			cleaned.Append(row)
			continue
		}

		result.FlaggedRows = append(result.FlaggedRows, model.FlaggedRow{
			RowIndex:   row.Index,
			CustomerID: row.Get(model.ColumnCustomerID).Text,
			Error:      strings.Join(msgs, "; "),
		})
	}

	result.CleanedCount = cleaned.Len()
	result.FlaggedCount = len(result.FlaggedRows)
	return cleaned
}
