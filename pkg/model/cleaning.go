// pkg/model/cleaning.go
package model

import (
	"time"
)

// CleaningOperation represents a single cell change made by the cleaner
type CleaningOperation struct {
	TableName         string    // Logical table name
	ColumnName        string    // Column that was cleaned
	OriginalValue     *string   // Original value (nil when the cell was absent)
	NewValue          string    // New value after cleaning, empty when nulled
	RowIdentifier     string    // customer_id of the row, or its source index
	CleaningOperation string    // Type of cleaning performed (e.g., "fill_placeholder")
	CleaningReason    string    // Reason for cleaning (e.g., "missing_value")
	CleanedAt         time.Time // When the cleaning occurred
}

// Cleaning operation types
const (
	OperationTrim            = "trim_whitespace"
	OperationDeleteRow       = "delete_row"
	OperationCanonicalizeID  = "canonicalize_id"
	OperationFillPlaceholder = "fill_placeholder"
	OperationTitleCase       = "title_case"
	OperationFormatPhone     = "format_phone"
	OperationNullify         = "nullify_unparseable"
	OperationFormatDate      = "format_date"
	OperationFormatNumber    = "format_number"
)

// Cleaning reasons
const (
	ReasonMissingValue      = "missing_value"
	ReasonMissingPrimaryKey = "missing_primary_key"
	ReasonInvalidPrimaryKey = "invalid_primary_key"
	ReasonInconsistentCase  = "inconsistent_case"
	ReasonNonStandardFormat = "non_standard_format"
	ReasonUnparseable       = "unparseable_value"
	ReasonWhitespace        = "surrounding_whitespace"
)

// FlaggedRow is a row that passed the delete gate but failed re-validation
type FlaggedRow struct {
	RowIndex   int
	CustomerID string
	Error      string
}

// CleaningResult summarises one cleaner run
type CleaningResult struct {
	InitialCount int
	DeletedCount int // rows removed by the customer_id delete gate
	CleanedCount int // rows accepted into the cleaned table
	FlaggedCount int // rows excluded by re-validation
	FlaggedRows  []FlaggedRow
	FillCounts   map[string]int // column -> rows filled with a placeholder
	Operations   []CleaningOperation
}

// RemovedCount returns every row absent from the cleaned table
func (r CleaningResult) RemovedCount() int {
	return r.DeletedCount + r.FlaggedCount
}
