package model

import "github.com/David-Botos/data-quality/pkg/table"

// RowFailure is one rule violation attributed to a source row
type RowFailure struct {
	RowIndex   int
	CustomerID string // raw customer_id text, empty when absent
	Column     string
	Message    string
}

// ValidationResult summarises a schema validation pass over a table
type ValidationResult struct {
	TotalRows   int
	PassedCount int
	FailedCount int // rows with at least one failure
	Failures    []RowFailure
	ByColumn    map[string][]RowFailure
	Passed      bool
}

// PiiCategory names a class of identifying information
type PiiCategory string

const (
	PiiEmails       PiiCategory = "emails"
	PiiPhones       PiiCategory = "phones"
	PiiFullIdentity PiiCategory = "full_identity"
	PiiAddresses    PiiCategory = "addresses"
	PiiDateOfBirth  PiiCategory = "dob"
)

// PiiCategories lists every category in report order
var PiiCategories = []PiiCategory{
	PiiEmails,
	PiiPhones,
	PiiFullIdentity,
	PiiAddresses,
	PiiDateOfBirth,
}

// SummaryKey returns the key the category is counted under
func (c PiiCategory) SummaryKey() string {
	return string(c) + "_found"
}

// PiiDetectionResult holds the rows matched per category and their counts
type PiiDetectionResult struct {
	Details map[PiiCategory][]table.Row
	Summary map[string]int
}

// Count returns the number of rows matched for a category
func (r PiiDetectionResult) Count(c PiiCategory) int {
	return r.Summary[c.SummaryKey()]
}

// MaskingResult summarises one masking run
type MaskingResult struct {
	TotalRows  int
	MaskedRows int // rows present in the written output
}

// Severity ranks a profiling finding
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// ColumnProfile describes completeness and inferred type of one column
type ColumnProfile struct {
	Name            string
	PercentComplete float64
	MissingCount    int
	InferredType    string
}

// ProfileIssue is a named defect with the rows that exhibit it
type ProfileIssue struct {
	Name     string
	Severity Severity
	Rows     []table.Row
}

// ProfileResult is the Profiler's output
type ProfileResult struct {
	RowCount       int
	Columns        []ColumnProfile
	Issues         []ProfileIssue
	SeverityCounts map[Severity]int
}
