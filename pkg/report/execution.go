package report

import (
	"io"
	"time"

	pretty "github.com/jedib0t/go-pretty/v6/table"

	"github.com/David-Botos/data-quality/pkg/metrics"
)

// Run status values
const (
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
)

// Execution summarises one pipeline run
type Execution struct {
	RunID       string
	Status      string
	StartTime   time.Time
	Duration    time.Duration
	InputPath   string
	InputRows   int
	CleanedRows int
	MaskedRows  int
	Stages      []metrics.StageMetrics
	Error       string
}

// PiiRisk returns MITIGATED when every cleaned row reached the masked output
func (e Execution) PiiRisk() string {
	if e.Status == StatusSuccess && e.MaskedRows == e.CleanedRows {
		return "MITIGATED"
	}
	return "AT RISK"
}

// WriteExecution renders the run summary
func WriteExecution(out io.Writer, e Execution) error {
	w := &writer{w: out}
	w.title("PIPELINE EXECUTION REPORT")

	w.table(pretty.Row{"Field", "Value"}, []pretty.Row{
		{"Run ID", e.RunID},
		{"Status", e.Status},
		{"Started", e.StartTime.Format(time.RFC3339)},
		{"Duration", e.Duration.Round(time.Millisecond).String()},
		{"Input", e.InputPath},
		{"Input rows", e.InputRows},
		{"Cleaned rows", e.CleanedRows},
		{"Masked rows", e.MaskedRows},
		{"PII risk", e.PiiRisk()},
	})

	w.section("STAGES")
	rows := make([]pretty.Row, 0, len(e.Stages))
	for _, s := range e.Stages {
		status := StatusSuccess
		if !s.Succeeded() {
			status = StatusFailed
		}
		rows = append(rows, pretty.Row{s.Name, status, s.RowsIn, s.RowsOut, s.Duration().Round(time.Millisecond).String()})
	}
	w.table(pretty.Row{"Stage", "Status", "Rows in", "Rows out", "Duration"}, rows)

	if e.Error != "" {
		w.section("ERROR")
		w.printf("%s\n", e.Error)
	}

	return w.err
}
