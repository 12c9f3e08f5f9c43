package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

// Validator checks records and tables against the customer rule table
type Validator struct {
	logger    *zap.Logger
	validate  *validator.Validate
	rules     []FieldRule
	allErrors bool
}

// NewValidator creates a Validator with the canonical rules. By default each
// failing row reports only its first violation.
func NewValidator(logger *zap.Logger) (*Validator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Validator{
		logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		rules:    DefaultRules(),
	}, nil
}

// WithAllErrors returns a copy that reports every violation of a row
func (v *Validator) WithAllErrors(enabled bool) *Validator {
	cp := *v
	cp.allErrors = enabled
	return &cp
}

// ValidateRecord evaluates every rule against rec and returns all violations.
// An empty result means the record is legal.
func (v *Validator) ValidateRecord(rec model.Record) []FieldError {
	var errs []FieldError

	for _, rule := range v.rules {
		value := rule.Value(rec)

		if rule.Tag != "" {
			if err := v.validate.Var(value, rule.Tag); err != nil {
				errs = append(errs, FieldError{Field: rule.Field, Message: ruleMessage(rule, value)})
				continue
			}
		}

		if rule.Pattern != nil {
			s, _ := value.(string)
			if !rule.Pattern.MatchString(s) {
				errs = append(errs, FieldError{Field: rule.Field, Message: ruleMessage(rule, value)})
			}
		}
	}

	return errs
}

// ValidateRow coerces and validates a single row. The row's customer_id is
// checked against seen for duplicates and then added to it.
func (v *Validator) ValidateRow(row table.Row, seen map[string]struct{}) []FieldError {
	var errs []FieldError

	if key, ok := DuplicateKey(row.Get(model.ColumnCustomerID)); ok {
		if _, dup := seen[key]; dup {
			errs = append(errs, FieldError{
				Field:   model.ColumnCustomerID,
				Message: fmt.Sprintf("duplicate customer_id %s", key),
			})
			if !v.allErrors {
				return errs
			}
		}
		seen[key] = struct{}{}
	}

	rec, coerceErrs := CoerceRow(row)
	failed := make(map[string]bool, len(coerceErrs))
	for _, e := range coerceErrs {
		failed[e.Field] = true
	}

	ruleErrs := make([]FieldError, 0)
	for _, e := range v.ValidateRecord(rec) {
		// a field that failed coercion holds a zero value; report the coercion
		if !failed[e.Field] {
			ruleErrs = append(ruleErrs, e)
		}
	}

	fieldErrs := append(coerceErrs, ruleErrs...)
	sort.SliceStable(fieldErrs, func(i, j int) bool {
		return model.CustomerTable.ColumnIndex(fieldErrs[i].Field) < model.CustomerTable.ColumnIndex(fieldErrs[j].Field)
	})
	errs = append(errs, fieldErrs...)

	if !v.allErrors && len(errs) > 1 {
		errs = errs[:1]
	}
	return errs
}

// ValidateTable validates every row in order and aggregates the verdict. The
// first occurrence of a customer_id passes the uniqueness check and every
// later occurrence fails it. The table is not modified.
func (v *Validator) ValidateTable(t *table.Table) model.ValidationResult {
	v.logger.Info("Starting table validation",
		zap.Int("rowCount", t.Len()),
		zap.Bool("allErrors", v.allErrors))

	result := model.ValidationResult{
		TotalRows: t.Len(),
		Failures:  make([]model.RowFailure, 0),
		ByColumn:  make(map[string][]model.RowFailure),
	}

	seen := make(map[string]struct{}, t.Len())
	for _, row := range t.Rows {
		errs := v.ValidateRow(row, seen)
		if len(errs) == 0 {
			result.PassedCount++
			continue
		}

		result.FailedCount++
		customerID := row.Get(model.ColumnCustomerID).Text
		for _, e := range errs {
			failure := model.RowFailure{
				RowIndex:   row.Index,
				CustomerID: customerID,
				Column:     e.Field,
				Message:    e.Message,
			}
			result.Failures = append(result.Failures, failure)
			result.ByColumn[e.Field] = append(result.ByColumn[e.Field], failure)
		}

		v.logger.Warn("Row failed validation",
			zap.Int("rowIndex", row.Index),
			zap.String("customerId", customerID),
			zap.String("error", JoinErrors(errs)))
	}

	result.Passed = result.FailedCount == 0

	v.logger.Info("Table validation completed",
		zap.Int("totalRows", result.TotalRows),
		zap.Int("passedCount", result.PassedCount),
		zap.Int("failedCount", result.FailedCount),
		zap.Bool("passed", result.Passed))

	return result
}

// JoinErrors renders violations as a single line
func JoinErrors(errs []FieldError) string {
	parts := make([]string, len(errs))
	for i, e := range errs {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}

func ruleMessage(rule FieldRule, value interface{}) string {
	return fmt.Sprintf("%s (got '%v')", rule.Message, value)
}
