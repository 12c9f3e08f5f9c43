// Package report renders stage results as plain-text reports.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"github.com/David-Botos/data-quality/pkg/masking"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/table"
)

// Report file names written under the report directory
const (
	CleaningLogFile       = "cleaning_log.txt"
	ValidationResultFile  = "validation_result.txt"
	DataQualityReportFile = "data_quality_report.txt"
	PiiDetectionFile      = "pii_detection_report.txt"
	MaskingSampleFile     = "masking_sample.txt"
	ExecutionReportFile   = "pipeline_execution_report.txt"
)

// maxExamples caps the example rows listed per issue or failure group
const maxExamples = 5

// WriteFile renders a report into dir/name, creating dir if needed
func WriteFile(dir, name string, render func(io.Writer) error) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory %s: %w", dir, err)
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", path, err)
	}

	if err := render(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to render report %s: %w", path, err)
	}
	return f.Close()
}

// writer collects the first write error so render functions stay linear
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) printf(format string, args ...interface{}) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

func (w *writer) title(s string) {
	w.printf("%s\n%s\n\n", s, strings.Repeat("=", len(s)))
}

func (w *writer) section(s string) {
	w.printf("\n%s:\n", s)
}

func (w *writer) table(header pretty.Row, rows []pretty.Row) {
	t := pretty.NewWriter()
	t.SetStyle(pretty.StyleLight)
	t.AppendHeader(header)
	for _, r := range rows {
		t.AppendRow(r)
	}
	w.printf("%s\n", t.Render())
}

// WriteCleaning renders a cleaning result
func WriteCleaning(out io.Writer, result model.CleaningResult) error {
	w := &writer{w: out}
	w.title("DATA CLEANING LOG")

	w.table(pretty.Row{"Metric", "Count"}, []pretty.Row{
		{"Initial rows", result.InitialCount},
		{"Deleted rows", result.DeletedCount},
		{"Flagged rows", result.FlaggedCount},
		{"Cleaned rows", result.CleanedCount},
		{"Cell operations", len(result.Operations)},
	})

	w.section("PLACEHOLDER FILLS")
	columns := make([]string, 0, len(result.FillCounts))
	for col := range result.FillCounts {
		columns = append(columns, col)
	}
	sort.Slice(columns, func(i, j int) bool {
		return model.CustomerTable.ColumnIndex(columns[i]) < model.CustomerTable.ColumnIndex(columns[j])
	})
	fills := make([]pretty.Row, 0, len(columns))
	for _, col := range columns {
		fills = append(fills, pretty.Row{col, result.FillCounts[col]})
	}
	w.table(pretty.Row{"Column", "Rows filled"}, fills)

	w.section("FLAGGED ROWS")
	if len(result.FlaggedRows) == 0 {
		w.printf("None\n")
	} else {
		rows := make([]pretty.Row, 0, len(result.FlaggedRows))
		for _, f := range result.FlaggedRows {
			rows = append(rows, pretty.Row{f.RowIndex, f.CustomerID, f.Error})
		}
		w.table(pretty.Row{"Row", "customer_id", "Error"}, rows)
	}

	return w.err
}

// WriteValidation renders a validation result
func WriteValidation(out io.Writer, result model.ValidationResult) error {
	w := &writer{w: out}
	w.title("VALIDATION RESULT")

	verdict := "PASS"
	if !result.Passed {
		verdict = "FAIL"
	}
	w.table(pretty.Row{"Metric", "Value"}, []pretty.Row{
		{"Total rows", result.TotalRows},
		{"Passed", result.PassedCount},
		{"Failed", result.FailedCount},
		{"Verdict", verdict},
	})

	if len(result.Failures) == 0 {
		return w.err
	}

	w.section("FAILURES BY COLUMN")
	columns := make([]string, 0, len(result.ByColumn))
	for col := range result.ByColumn {
		columns = append(columns, col)
	}
	sort.Slice(columns, func(i, j int) bool {
		return model.CustomerTable.ColumnIndex(columns[i]) < model.CustomerTable.ColumnIndex(columns[j])
	})
	summary := make([]pretty.Row, 0, len(columns))
	for _, col := range columns {
		summary = append(summary, pretty.Row{col, len(result.ByColumn[col])})
	}
	w.table(pretty.Row{"Column", "Failures"}, summary)

	w.section("FAILED ROWS")
	rows := make([]pretty.Row, 0, len(result.Failures))
	for _, f := range result.Failures {
		rows = append(rows, pretty.Row{f.RowIndex, f.CustomerID, f.Column, f.Message})
	}
	w.table(pretty.Row{"Row", "customer_id", "Column", "Error"}, rows)

	return w.err
}

// WriteProfile renders a profiling result
func WriteProfile(out io.Writer, result model.ProfileResult) error {
	w := &writer{w: out}
	w.title("DATA QUALITY PROFILE REPORT")
	w.printf("Rows profiled: %d\n", result.RowCount)

	w.section("COMPLETENESS AND DATA TYPES")
	cols := make([]pretty.Row, 0, len(result.Columns))
	for _, c := range result.Columns {
		cols = append(cols, pretty.Row{c.Name, fmt.Sprintf("%.2f%%", c.PercentComplete), c.MissingCount, c.InferredType})
	}
	w.table(pretty.Row{"Column", "Complete", "Missing", "Type"}, cols)

	w.section("QUALITY ISSUES")
	if len(result.Issues) == 0 {
		w.printf("No major quality issues detected.\n")
	}
	for i, issue := range result.Issues {
		w.printf("%d. %s [%s] (%d rows)\n", i+1, issue.Name, issue.Severity, len(issue.Rows))
		w.rows(issue.Rows)
	}

	w.section("SEVERITY")
	w.printf("- Critical (blocks processing): %d\n", result.SeverityCounts[model.SeverityCritical])
	w.printf("- High (data incorrect): %d\n", result.SeverityCounts[model.SeverityHigh])
	w.printf("- Medium (needs cleaning): %d\n", result.SeverityCounts[model.SeverityMedium])

	return w.err
}

// WritePiiDetection renders a PII detection result
func WritePiiDetection(out io.Writer, result model.PiiDetectionResult) error {
	w := &writer{w: out}
	w.title("PII DETECTION REPORT")

	rows := make([]pretty.Row, 0, len(model.PiiCategories))
	for _, c := range model.PiiCategories {
		if _, ok := result.Details[c]; !ok {
			rows = append(rows, pretty.Row{c.SummaryKey(), "column absent"})
			continue
		}
		rows = append(rows, pretty.Row{c.SummaryKey(), result.Count(c)})
	}
	w.table(pretty.Row{"Category", "Rows"}, rows)

	return w.err
}

// WriteMaskingSample renders a masking result with a before/after sample
func WriteMaskingSample(out io.Writer, result model.MaskingResult, cmp masking.Comparison) error {
	w := &writer{w: out}
	w.title("PII MASKING SAMPLE")
	w.printf("Rows in: %d\nRows masked: %d\n", result.TotalRows, result.MaskedRows)

	for i := range cmp.Before {
		w.section(fmt.Sprintf("ROW %d", cmp.Before[i].Index))
		rows := make([]pretty.Row, 0, len(cmp.Columns))
		for _, col := range cmp.Columns {
			rows = append(rows, pretty.Row{col, cmp.Before[i].Get(col).Text, cmp.After[i].Get(col).Text})
		}
		w.table(pretty.Row{"Column", "Before", "After"}, rows)
	}

	return w.err
}

// rows prints up to maxExamples rows in canonical column order
func (w *writer) rows(rows []table.Row) {
	if len(rows) == 0 {
		return
	}

	columns := model.CustomerTable.ColumnNames()
	header := make(pretty.Row, 0, len(columns)+1)
	header = append(header, "Row")
	for _, c := range columns {
		header = append(header, c)
	}

	out := make([]pretty.Row, 0, maxExamples)
	for i, r := range rows {
		if i == maxExamples {
			break
		}
		line := make(pretty.Row, 0, len(columns)+1)
		line = append(line, r.Index)
		for _, c := range columns {
			line = append(line, r.Get(c).Text)
		}
		out = append(out, line)
	}
	w.table(header, out)
}
