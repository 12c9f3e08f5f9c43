// Package profiler computes descriptive quality statistics for a customer
// table without modifying it.
package profiler

import (
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/schema"
	"github.com/David-Botos/data-quality/pkg/table"
)

// Issue names
const (
	IssueDuplicateCustomerID  = "Duplicate customer_id"
	IssueInvalidDateOfBirth   = "Invalid date_of_birth values"
	IssueNegativeIncome       = "Negative income values"
	IssueIncomeAboveMaximum   = "Income above maximum values"
	IssueInvalidAccountStatus = "Invalid account_status values"
)

// Completeness thresholds, in percent
const (
	highCompletenessThreshold   = 90.0
	mediumCompletenessThreshold = 100.0
)

// Inferred type tags
const (
	TypeInteger = "integer"
	TypeFloat   = "float"
	TypeDate    = "date"
	TypeString  = "string"
	TypeEmpty   = "empty"
)

// Profiler computes completeness, type and defect statistics
type Profiler struct {
	logger *zap.Logger
}

// NewProfiler creates a new Profiler
func NewProfiler(logger *zap.Logger) (*Profiler, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Profiler{logger: logger}, nil
}

// Profile inspects t and reports per-column completeness and type plus every
// detected issue. Checks whose column is absent are skipped.
func (p *Profiler) Profile(t *table.Table) model.ProfileResult {
	p.logger.Info("Starting data profiling",
		zap.Int("rowCount", t.Len()),
		zap.Int("columnCount", len(t.Columns)))

	result := model.ProfileResult{
		RowCount: t.Len(),
		Columns:  make([]model.ColumnProfile, 0, len(t.Columns)),
		Issues:   make([]model.ProfileIssue, 0),
		SeverityCounts: map[model.Severity]int{
			model.SeverityCritical: 0,
			model.SeverityHigh:     0,
			model.SeverityMedium:   0,
		},
	}

	for _, col := range t.Columns {
		profile := profileColumn(t, col)
		result.Columns = append(result.Columns, profile)

		if t.Len() == 0 {
			continue
		}
		switch {
		case profile.PercentComplete < highCompletenessThreshold:
			result.SeverityCounts[model.SeverityHigh]++
		case profile.PercentComplete < mediumCompletenessThreshold:
			result.SeverityCounts[model.SeverityMedium]++
		}
	}

	checks := []struct {
		column   string
		name     string
		severity model.Severity
		find     func(*table.Table) []table.Row
	}{
		{model.ColumnCustomerID, IssueDuplicateCustomerID, model.SeverityCritical, duplicateKeys},
		{model.ColumnDateOfBirth, IssueInvalidDateOfBirth, model.SeverityHigh, invalidDates(model.ColumnDateOfBirth)},
		{model.ColumnIncome, IssueNegativeIncome, model.SeverityHigh, incomeOutside(func(f float64) bool { return f < model.IncomeMin })},
		{model.ColumnIncome, IssueIncomeAboveMaximum, model.SeverityHigh, incomeOutside(func(f float64) bool { return f > model.IncomeMax })},
		{model.ColumnAccountStatus, IssueInvalidAccountStatus, model.SeverityHigh, invalidStatuses},
	}

	for _, check := range checks {
		if !t.HasColumn(check.column) {
			continue
		}
		rows := check.find(t)
		if len(rows) == 0 {
			continue
		}

		result.Issues = append(result.Issues, model.ProfileIssue{
			Name:     check.name,
			Severity: check.severity,
			Rows:     rows,
		})
		result.SeverityCounts[check.severity]++

		p.logger.Warn("Data quality issue detected",
			zap.String("issue", check.name),
			zap.String("severity", string(check.severity)),
			zap.Int("rowCount", len(rows)))
	}

	p.logger.Info("Data profiling completed",
		zap.Int("issueCount", len(result.Issues)),
		zap.Int("critical", result.SeverityCounts[model.SeverityCritical]),
		zap.Int("high", result.SeverityCounts[model.SeverityHigh]),
		zap.Int("medium", result.SeverityCounts[model.SeverityMedium]))

	return result
}

func profileColumn(t *table.Table, column string) model.ColumnProfile {
	missing := t.NullCount(column)
	profile := model.ColumnProfile{
		Name:         column,
		MissingCount: missing,
		InferredType: inferType(t, column),
	}
	if t.Len() > 0 {
		pct := float64(t.Len()-missing) / float64(t.Len()) * 100
		profile.PercentComplete = math.Round(pct*100) / 100
	}
	return profile
}

// inferType returns the narrowest type every present value of column fits
func inferType(t *table.Table, column string) string {
	isInt, isFloat, isDate := true, true, true
	present := 0

	for _, row := range t.Rows {
		v := row.Get(column)
		if v.IsNull() {
			continue
		}
		present++

		if isInt {
			if _, err := schema.ParseCustomerID(v.Text); err != nil {
				isInt = false
			}
		}
		if isFloat {
			if _, err := schema.ParseIncome(v.Text); err != nil {
				isFloat = false
			}
		}
		if isDate {
			if _, err := schema.ParseDate(v.Text); err != nil {
				isDate = false
			}
		}
	}

	switch {
	case present == 0:
		return TypeEmpty
	case isInt:
		return TypeInteger
	case isFloat:
		return TypeFloat
	case isDate:
		return TypeDate
	default:
		return TypeString
	}
}

// duplicateKeys returns every row whose customer_id occurs more than once
func duplicateKeys(t *table.Table) []table.Row {
	counts := make(map[string]int)
	for _, row := range t.Rows {
		if key, ok := schema.DuplicateKey(row.Get(model.ColumnCustomerID)); ok {
			counts[key]++
		}
	}

	var rows []table.Row
	for _, row := range t.Rows {
		if key, ok := schema.DuplicateKey(row.Get(model.ColumnCustomerID)); ok && counts[key] > 1 {
			rows = append(rows, row)
		}
	}
	return rows
}

func invalidDates(column string) func(*table.Table) []table.Row {
	return func(t *table.Table) []table.Row {
		var rows []table.Row
		for _, row := range t.Rows {
			v := row.Get(column)
			if v.IsNull() {
				continue
			}
			if _, err := schema.ParseDate(v.Text); err != nil {
				rows = append(rows, row)
			}
		}
		return rows
	}
}

func incomeOutside(outside func(float64) bool) func(*table.Table) []table.Row {
	return func(t *table.Table) []table.Row {
		var rows []table.Row
		for _, row := range t.Rows {
			v := row.Get(model.ColumnIncome)
			if v.IsNull() {
				continue
			}
			if f, err := schema.ParseIncome(v.Text); err == nil && outside(f) {
				rows = append(rows, row)
			}
		}
		return rows
	}
}

func invalidStatuses(t *table.Table) []table.Row {
	var rows []table.Row
	for _, row := range t.Rows {
		v := row.Get(model.ColumnAccountStatus)
		if v.Valid && !model.IsValidAccountStatus(v.Text) {
			rows = append(rows, row)
		}
	}
	return rows
}
