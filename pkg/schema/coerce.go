package schema

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

// ErrMissingValue is returned when a required cell is absent
var ErrMissingValue = errors.New("value is missing")

// dateLayouts are tried in order when parsing a calendar date
var dateLayouts = []string{
	model.DateLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"01/02/2006",
	"01-02-2006",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
}

// ParseDate parses a calendar date, accepting the common layouts
func ParseDate(s string) (time.Time, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return time.Time{}, ErrMissingValue
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			y, m, d := t.Date()
			return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
		}
	}

	return time.Time{}, fmt.Errorf("cannot parse date from '%s'", cleaned)
}

// ParseCustomerID coerces key text to an integer. Integral float text such as
// "42.0" is accepted.
func ParseCustomerID(s string) (int64, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, ErrMissingValue
	}

	if id, err := strconv.ParseInt(cleaned, 10, 64); err == nil {
		return id, nil
	}

	f, err := cast.ToFloat64E(cleaned)
	if err != nil {
		return 0, fmt.Errorf("cannot parse '%s' as integer", cleaned)
	}
	if math.IsInf(f, 0) || math.IsNaN(f) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return 0, fmt.Errorf("'%s' is not an integer", cleaned)
	}
	return int64(f), nil
}

// ParseIncome coerces income text to a float
func ParseIncome(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	if cleaned == "" {
		return 0, ErrMissingValue
	}

	f, err := cast.ToFloat64E(cleaned)
	if err != nil || math.IsNaN(f) {
		return 0, fmt.Errorf("cannot parse '%s' as number", cleaned)
	}
	return f, nil
}

// DuplicateKey returns the key a row is deduplicated on. Keys that coerce to
// an integer are canonicalised so "42" and "42.0" collide. An absent key
// returns false.
func DuplicateKey(v table.Value) (string, bool) {
	if v.IsNull() {
		return "", false
	}
	if id, err := ParseCustomerID(v.Text); err == nil {
		return strconv.FormatInt(id, 10), true
	}
	return v.Text, true
}

// CoerceRow converts a row's cells to a typed record. Every coercion failure
// is returned, in column order; the failing fields keep their zero values.
func CoerceRow(row table.Row) (model.Record, []FieldError) {
	var rec model.Record
	var errs []FieldError

	fail := func(field string, err error) {
		errs = append(errs, FieldError{Field: field, Message: err.Error()})
	}

	if v := row.Get(model.ColumnCustomerID); v.IsNull() {
		fail(model.ColumnCustomerID, ErrMissingValue)
	} else if id, err := ParseCustomerID(v.Text); err != nil {
		fail(model.ColumnCustomerID, err)
	} else {
		rec.CustomerID = id
	}

	rec.FirstName = row.Get(model.ColumnFirstName).Text
	rec.LastName = row.Get(model.ColumnLastName).Text
	rec.Email = row.Get(model.ColumnEmail).Text
	rec.Phone = row.Get(model.ColumnPhone).Text

	if v := row.Get(model.ColumnDateOfBirth); v.IsNull() {
		fail(model.ColumnDateOfBirth, ErrMissingValue)
	} else if d, err := ParseDate(v.Text); err != nil {
		fail(model.ColumnDateOfBirth, err)
	} else {
		rec.DateOfBirth = d
	}

	rec.Address = row.Get(model.ColumnAddress).Text

	if v := row.Get(model.ColumnIncome); v.IsNull() {
		fail(model.ColumnIncome, ErrMissingValue)
	} else if f, err := ParseIncome(v.Text); err != nil {
		fail(model.ColumnIncome, err)
	} else {
		rec.Income = f
	}

	rec.AccountStatus = row.Get(model.ColumnAccountStatus).Text

	if v := row.Get(model.ColumnCreatedDate); v.IsNull() {
		fail(model.ColumnCreatedDate, ErrMissingValue)
	} else if d, err := ParseDate(v.Text); err != nil {
		fail(model.ColumnCreatedDate, err)
	} else {
		rec.CreatedDate = d
	}

	return rec, errs
}
