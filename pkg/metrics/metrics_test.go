package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/David-Botos/data-quality/pkg/model"
)

func TestStageTracking(t *testing.T) {
	m := NewPipelineMetrics("run-1", zaptest.NewLogger(t))

	m.StartStage("clean", 10)
	m.EndStage("clean", 7, nil)
	m.StartStage("mask", 7)
	m.EndStage("mask", 0, errors.New("disk full"))
	m.EndStage("unknown", 1, nil)

	stages := m.Stages()
	require.Len(t, stages, 2)
	assert.Equal(t, "clean", stages[0].Name)
	assert.Equal(t, 10, stages[0].RowsIn)
	assert.Equal(t, 7, stages[0].RowsOut)
	assert.True(t, stages[0].Succeeded())
	assert.False(t, stages[1].Succeeded())
	assert.Equal(t, "disk full", stages[1].Error)

	assert.Equal(t, 10.0, testutil.ToFloat64(m.stageRowsIn.WithLabelValues("clean")))
	assert.Equal(t, 7.0, testutil.ToFloat64(m.stageRowsOut.WithLabelValues("clean")))
}

func TestRecordResults(t *testing.T) {
	m := NewPipelineMetrics("run-2", nil)

	m.RecordCleaning(model.CleaningResult{DeletedCount: 2, FlaggedCount: 3})
	m.RecordValidation(model.ValidationResult{ByColumn: map[string][]model.RowFailure{
		model.ColumnIncome: {{RowIndex: 1}, {RowIndex: 4}},
	}})
	m.RecordDetection(model.PiiDetectionResult{Summary: map[string]int{"emails_found": 5}})
	m.Complete(true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowsDeleted))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.rowsFlagged))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rowFailures.WithLabelValues(model.ColumnIncome)))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.piiMatches.WithLabelValues("emails")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.piiMatches.WithLabelValues("phones")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.runSuccess))
	assert.False(t, m.EndTime.IsZero())
}

func TestRegistriesAreIndependent(t *testing.T) {
	a := NewPipelineMetrics("a", nil)
	b := NewPipelineMetrics("b", nil)
	a.RecordCleaning(model.CleaningResult{DeletedCount: 1})

	assert.Equal(t, 1.0, testutil.ToFloat64(a.rowsDeleted))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.rowsDeleted))
}

func TestWriteTextfile(t *testing.T) {
	m := NewPipelineMetrics("run-3", nil)
	m.StartStage("load", 0)
	m.EndStage("load", 4, nil)

	path := filepath.Join(t.TempDir(), "metrics.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `dataquality_stage_rows_out_total{run_id="run-3",stage="load"} 4`)

	assert.Error(t, m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "metrics.prom")))
}
