// Package pii classifies the rows of a cleaned customer table into
// overlapping categories of personally identifiable information.
package pii

import (
	"errors"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

// rule decides whether a row belongs to a category. A rule is only evaluated
// when every column it needs is present in the table.
type rule struct {
	category model.PiiCategory
	columns  []string
	match    func(table.Row) bool
}

var rules = []rule{
	{
		category: model.PiiEmails,
		columns:  []string{model.ColumnEmail},
		match:    func(r table.Row) bool { return IsEmail(r.Get(model.ColumnEmail)) },
	},
	{
		category: model.PiiPhones,
		columns:  []string{model.ColumnPhone},
		match:    func(r table.Row) bool { return IsPhone(r.Get(model.ColumnPhone)) },
	},
	{
		category: model.PiiFullIdentity,
		columns:  []string{model.ColumnFirstName, model.ColumnLastName, model.ColumnEmail},
		match: func(r table.Row) bool {
			return r.Get(model.ColumnFirstName).Valid &&
				r.Get(model.ColumnLastName).Valid &&
				IsEmail(r.Get(model.ColumnEmail))
		},
	},
	{
		category: model.PiiAddresses,
		columns:  []string{model.ColumnAddress},
		match:    func(r table.Row) bool { return r.Get(model.ColumnAddress).Valid },
	},
	{
		category: model.PiiDateOfBirth,
		columns:  []string{model.ColumnDateOfBirth},
		match:    func(r table.Row) bool { return r.Get(model.ColumnDateOfBirth).Valid },
	},
}

// IsEmail reports whether v holds a single-@ address with a dotted domain
func IsEmail(v table.Value) bool {
	return v.Valid && model.EmailPattern.MatchString(v.Text)
}

// IsPhone reports whether v looks like a phone number in any common layout
func IsPhone(v table.Value) bool {
	return v.Valid && model.PhonePattern.MatchString(v.Text)
}

// Detector classifies rows into PII categories
type Detector struct {
	logger *zap.Logger
}

// NewDetector creates a new Detector
func NewDetector(logger *zap.Logger) (*Detector, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	return &Detector{logger: logger}, nil
}

// Detect returns, per category, the rows that match it and their count. A row
// may appear in several categories. Categories whose columns are absent from
// the table are omitted. The table is not modified.
func (d *Detector) Detect(t *table.Table) model.PiiDetectionResult {
	d.logger.Info("Starting PII detection", zap.Int("rowCount", t.Len()))

	result := model.PiiDetectionResult{
		Details: make(map[model.PiiCategory][]table.Row),
		Summary: make(map[string]int),
	}

	for _, r := range rules {
		if !hasColumns(t, r.columns) {
			d.logger.Debug("Skipping PII category, column absent",
				zap.String("category", string(r.category)))
			continue
		}

		matched := make([]table.Row, 0)
		for _, row := range t.Rows {
			if r.match(row) {
				matched = append(matched, row.Clone())
			}
		}

		result.Details[r.category] = matched
		result.Summary[r.category.SummaryKey()] = len(matched)
	}

	d.logger.Info("PII detection completed",
		zap.Int("emailsFound", result.Count(model.PiiEmails)),
		zap.Int("phonesFound", result.Count(model.PiiPhones)),
		zap.Int("fullIdentityFound", result.Count(model.PiiFullIdentity)),
		zap.Int("addressesFound", result.Count(model.PiiAddresses)),
		zap.Int("dobFound", result.Count(model.PiiDateOfBirth)))

	return result
}

func hasColumns(t *table.Table, columns []string) bool {
	for _, c := range columns {
		if !t.HasColumn(c) {
			return false
		}
	}
	return true
}
