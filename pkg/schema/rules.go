// Package schema defines the canonical customer record rules and validates
// rows and tables against them.
package schema

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/David-Botos/data-quality/pkg/model"
)

// FieldRule is one legality check on a single field. Tag is evaluated with
// go-playground/validator and Pattern is matched against the string value;
// either may be empty.
type FieldRule struct {
	Field   string
	Tag     string
	Pattern *regexp.Regexp
	Message string
	Value   func(model.Record) interface{}
}

// FieldError is a single rule violation
type FieldError struct {
	Field   string
	Message string
}

// Error implements error
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// DefaultRules returns the canonical rule table in column order
func DefaultRules() []FieldRule {
	return []FieldRule{
		{
			Field:   model.ColumnCustomerID,
			Tag:     "gt=0",
			Message: "must be a positive integer",
			Value:   func(r model.Record) interface{} { return r.CustomerID },
		},
		{
			Field:   model.ColumnFirstName,
			Tag:     "required",
			Pattern: model.NamePattern,
			Message: nameMessage(),
			Value:   func(r model.Record) interface{} { return r.FirstName },
		},
		{
			Field:   model.ColumnLastName,
			Tag:     "required",
			Pattern: model.NamePattern,
			Message: nameMessage(),
			Value:   func(r model.Record) interface{} { return r.LastName },
		},
		{
			Field:   model.ColumnEmail,
			Tag:     "required,email",
			Pattern: model.EmailPattern,
			Message: "must be a valid email address",
			Value:   func(r model.Record) interface{} { return r.Email },
		},
		{
			Field:   model.ColumnPhone,
			Tag:     fmt.Sprintf("min=%d,max=%d", model.PhoneMinLength, model.PhoneMaxLength),
			Message: fmt.Sprintf("length must be between %d and %d", model.PhoneMinLength, model.PhoneMaxLength),
			Value:   func(r model.Record) interface{} { return r.Phone },
		},
		{
			Field:   model.ColumnDateOfBirth,
			Tag:     "required",
			Message: "must be a calendar date",
			Value:   func(r model.Record) interface{} { return r.DateOfBirth },
		},
		{
			Field:   model.ColumnAddress,
			Tag:     fmt.Sprintf("min=%d,max=%d", model.AddressMinLength, model.AddressMaxLength),
			Message: fmt.Sprintf("length must be between %d and %d", model.AddressMinLength, model.AddressMaxLength),
			Value:   func(r model.Record) interface{} { return r.Address },
		},
		{
			Field:   model.ColumnIncome,
			Tag:     fmt.Sprintf("gte=%s,lte=%s", model.FormatIncome(model.IncomeMin), model.FormatIncome(model.IncomeMax)),
			Message: fmt.Sprintf("must be between %s and %s", model.FormatIncome(model.IncomeMin), model.FormatIncome(model.IncomeMax)),
			Value:   func(r model.Record) interface{} { return r.Income },
		},
		{
			Field:   model.ColumnAccountStatus,
			Tag:     "oneof=" + strings.Join(model.ValidAccountStatuses, " "),
			Message: "must be one of " + strings.Join(model.ValidAccountStatuses, ", "),
			Value:   func(r model.Record) interface{} { return r.AccountStatus },
		},
		{
			Field:   model.ColumnCreatedDate,
			Tag:     "required",
			Message: "must be a calendar date",
			Value:   func(r model.Record) interface{} { return r.CreatedDate },
		},
	}
}

func nameMessage() string {
	return fmt.Sprintf("must be %d-%d alphabetic characters", model.NameMinLength, model.NameMaxLength)
}
