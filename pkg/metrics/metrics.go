// Package metrics tracks per-stage timings and row counts of a pipeline run
// and exports them in the Prometheus text format.
package metrics

import (
	"fmt"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/model"
)

const namespace = "dataquality"

// StageMetrics tracks metrics for a single pipeline stage
type StageMetrics struct {
	Name      string
	StartTime time.Time
	EndTime   time.Time
	RowsIn    int
	RowsOut   int
	Error     string
}

// Duration returns how long the stage ran
func (sm StageMetrics) Duration() time.Duration {
	if sm.EndTime.IsZero() {
		return time.Since(sm.StartTime)
	}
	return sm.EndTime.Sub(sm.StartTime)
}

// Succeeded reports whether the stage ended without error
func (sm StageMetrics) Succeeded() bool {
	return !sm.EndTime.IsZero() && sm.Error == ""
}

// PipelineMetrics tracks metrics for one pipeline run. Collectors live in a
// private registry so concurrent runs in one process never share state.
type PipelineMetrics struct {
	mu         sync.Mutex
	logger     *zap.Logger
	registry   *prometheus.Registry
	RunID      string
	StartTime  time.Time
	EndTime    time.Time
	stages     map[string]*StageMetrics
	stageOrder []string

	stageDuration *prometheus.GaugeVec
	stageRowsIn   *prometheus.CounterVec
	stageRowsOut  *prometheus.CounterVec
	rowsDeleted   prometheus.Counter
	rowsFlagged   prometheus.Counter
	rowFailures   *prometheus.CounterVec
	piiMatches    *prometheus.GaugeVec
	runSuccess    prometheus.Gauge
}

// NewPipelineMetrics creates a metrics tracker for the run identified by runID
func NewPipelineMetrics(runID string, logger *zap.Logger) *PipelineMetrics {
	constLabels := prometheus.Labels{"run_id": runID}

	m := &PipelineMetrics{
		logger:    logger,
		registry:  prometheus.NewRegistry(),
		RunID:     runID,
		StartTime: time.Now(),
		stages:    make(map[string]*StageMetrics),

		stageDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "stage",
			Name:        "duration_seconds",
			Help:        "Duration of each pipeline stage in seconds",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		stageRowsIn: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "stage",
			Name:        "rows_in_total",
			Help:        "Rows received by each pipeline stage",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		stageRowsOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "stage",
			Name:        "rows_out_total",
			Help:        "Rows produced by each pipeline stage",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		rowsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "clean",
			Name:        "rows_deleted_total",
			Help:        "Rows deleted for a missing or non-numeric customer_id",
			ConstLabels: constLabels,
		}),
		rowsFlagged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "clean",
			Name:        "rows_flagged_total",
			Help:        "Rows excluded by re-validation after repair",
			ConstLabels: constLabels,
		}),
		rowFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   namespace,
			Subsystem:   "validate",
			Name:        "failures_total",
			Help:        "Rule violations by column",
			ConstLabels: constLabels,
		}, []string{"column"}),
		piiMatches: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "pii",
			Name:        "rows",
			Help:        "Rows matched per PII category",
			ConstLabels: constLabels,
		}, []string{"category"}),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Subsystem:   "run",
			Name:        "success",
			Help:        "1 when the run completed every stage, 0 otherwise",
			ConstLabels: constLabels,
		}),
	}

	m.registry.MustRegister(
		m.stageDuration,
		m.stageRowsIn,
		m.stageRowsOut,
		m.rowsDeleted,
		m.rowsFlagged,
		m.rowFailures,
		m.piiMatches,
		m.runSuccess,
	)

	return m
}

// Registry returns the registry holding this run's collectors
func (m *PipelineMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// StartStage begins tracking a stage
func (m *PipelineMetrics) StartStage(name string, rowsIn int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.stages[name]; !ok {
		m.stageOrder = append(m.stageOrder, name)
	}
	sm := &StageMetrics{Name: name, StartTime: time.Now(), RowsIn: rowsIn}
	m.stages[name] = sm
	m.stageRowsIn.WithLabelValues(name).Add(float64(rowsIn))

	if m.logger != nil {
		m.logger.Info("Started stage",
			zap.String("stage", name),
			zap.Int("rowsIn", rowsIn))
	}
}

// EndStage completes tracking a stage. A non-nil err marks the stage failed.
func (m *PipelineMetrics) EndStage(name string, rowsOut int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sm, ok := m.stages[name]
	if !ok {
		return
	}

	sm.EndTime = time.Now()
	sm.RowsOut = rowsOut
	if err != nil {
		sm.Error = err.Error()
	}

	m.stageDuration.WithLabelValues(name).Set(sm.Duration().Seconds())
	m.stageRowsOut.WithLabelValues(name).Add(float64(rowsOut))

	if m.logger != nil {
		m.logger.Info("Completed stage",
			zap.String("stage", name),
			zap.Duration("duration", sm.Duration()),
			zap.Int("rowsIn", sm.RowsIn),
			zap.Int("rowsOut", rowsOut),
			zap.Bool("success", err == nil))
	}
}

// RecordCleaning records the delete and flag counts of a cleaning run
func (m *PipelineMetrics) RecordCleaning(result model.CleaningResult) {
	m.rowsDeleted.Add(float64(result.DeletedCount))
	m.rowsFlagged.Add(float64(result.FlaggedCount))
}

// RecordValidation records rule violations per column
func (m *PipelineMetrics) RecordValidation(result model.ValidationResult) {
	for column, failures := range result.ByColumn {
		m.rowFailures.WithLabelValues(column).Add(float64(len(failures)))
	}
}

// RecordDetection records the matched row count per PII category
func (m *PipelineMetrics) RecordDetection(result model.PiiDetectionResult) {
	for _, c := range model.PiiCategories {
		m.piiMatches.WithLabelValues(string(c)).Set(float64(result.Count(c)))
	}
}

// Complete marks the end of the run
func (m *PipelineMetrics) Complete(success bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EndTime = time.Now()
	if success {
		m.runSuccess.Set(1)
	} else {
		m.runSuccess.Set(0)
	}
}

// Duration returns the total duration of the run
func (m *PipelineMetrics) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.EndTime.IsZero() {
		return time.Since(m.StartTime)
	}
	return m.EndTime.Sub(m.StartTime)
}

// Stages returns a copy of every tracked stage in start order
func (m *PipelineMetrics) Stages() []StageMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]StageMetrics, 0, len(m.stageOrder))
	for _, name := range m.stageOrder {
		out = append(out, *m.stages[name])
	}
	return out
}

// WriteTextfile writes every collector to path in the Prometheus text format
func (m *PipelineMetrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
