package model

import "regexp"

// Canonical column names
const (
	ColumnCustomerID    = "customer_id"
	ColumnFirstName     = "first_name"
	ColumnLastName      = "last_name"
	ColumnEmail         = "email"
	ColumnPhone         = "phone"
	ColumnDateOfBirth   = "date_of_birth"
	ColumnAddress       = "address"
	ColumnIncome        = "income"
	ColumnAccountStatus = "account_status"
	ColumnCreatedDate   = "created_date"
)

// Placeholders substituted for missing values
const (
	PlaceholderName          = "Unknown"
	PlaceholderEmail         = "noemail@placeholder.com"
	PlaceholderPhone         = "000-000-0000"
	PlaceholderAddress       = "Address Not Provided"
	PlaceholderIncome        = 0.0
	PlaceholderAccountStatus = "inactive"
	PlaceholderDateOfBirth   = "1900-01-01"
)

// DateLayout is the calendar date form written to every output table
const DateLayout = "2006-01-02"

// Field bounds shared by the validator and the profiler
const (
	IncomeMin = 0.0
	IncomeMax = 10_000_000.0

	NameMinLength    = 2
	NameMaxLength    = 50
	PhoneMinLength   = 7
	PhoneMaxLength   = 20
	AddressMinLength = 10
	AddressMaxLength = 200
)

// Account status values
const (
	AccountStatusActive    = "active"
	AccountStatusInactive  = "inactive"
	AccountStatusSuspended = "suspended"
)

// ValidAccountStatuses is the closed set of legal account_status values
var ValidAccountStatuses = []string{
	AccountStatusActive,
	AccountStatusInactive,
	AccountStatusSuspended,
}

// IsValidAccountStatus reports whether s is a legal account_status
func IsValidAccountStatus(s string) bool {
	for _, v := range ValidAccountStatuses {
		if s == v {
			return true
		}
	}
	return false
}

var (
	// EmailPattern is a single-@ address with a dotted domain
	EmailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

	// PhonePattern is the loose phone shape used for PII detection
	PhonePattern = regexp.MustCompile(`^\+?[\d\s().-]{7,20}$`)

	// NormalizedPhonePattern is the DDD-DDD-DDDD form produced by cleaning
	NormalizedPhonePattern = regexp.MustCompile(`^\d{3}-\d{3}-(\d{4})$`)

	// NamePattern is an alphabetic name within the length bounds
	NamePattern = regexp.MustCompile(`^[A-Za-z]{2,50}$`)

	// DatePattern is a YYYY-MM-DD shaped value
	DatePattern = regexp.MustCompile(`^(\d{4})-\d{2}-\d{2}$`)
)
