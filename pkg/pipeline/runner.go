// Package pipeline runs the data-quality stages in order against one input
// table and writes their reports.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/cleaner"
	"github.com/David-Botos/data-quality/pkg/config"
	"github.com/David-Botos/data-quality/pkg/dataerr"
	"github.com/David-Botos/data-quality/pkg/masking"
	"github.com/David-Botos/data-quality/pkg/metrics"
	"github.com/David-Botos/data-quality/pkg/model"
	"github.com/David-Botos/data-quality/pkg/pii"
	"github.com/David-Botos/data-quality/pkg/profiler"
	"github.com/David-Botos/data-quality/pkg/report"
	"github.com/David-Botos/data-quality/pkg/schema"
	"github.com/David-Botos/data-quality/pkg/table"
)

// Runner wires the pipeline components together
type Runner struct {
	cfg       *config.Config
	logger    *zap.Logger
	validator *schema.Validator
	cleaner   *cleaner.DataCleaner
	profiler  *profiler.Profiler
	detector  *pii.Detector
	masker    *masking.Masker
	newRunID  func() string
}

// NewRunner builds every component from cfg
func NewRunner(cfg *config.Config, logger *zap.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	validator, err := schema.NewValidator(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create validator: %w", err)
	}
	validator = validator.WithAllErrors(cfg.AllErrors)

	dataCleaner, err := cleaner.NewDataCleaner(validator, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create cleaner: %w", err)
	}
	if cfg.OperationsPath != "" {
		recorder, err := cleaner.NewCSVRecorder(cfg.OperationsPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create operation recorder: %w", err)
		}
		dataCleaner = dataCleaner.WithRecorder(recorder)
	}

	prof, err := profiler.NewProfiler(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create profiler: %w", err)
	}

	detector, err := pii.NewDetector(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create PII detector: %w", err)
	}

	masker, err := masking.NewMasker(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create masker: %w", err)
	}

	return &Runner{
		cfg:       cfg,
		logger:    logger,
		validator: validator,
		cleaner:   dataCleaner,
		profiler:  prof,
		detector:  detector,
		masker:    masker,
		newRunID:  uuid.NewString,
	}, nil
}

// Load reads the input table at path
func (r *Runner) Load(path string) (*table.Table, error) {
	t, err := table.ReadFile(path)
	if err != nil {
		return nil, dataerr.Input(StageLoad, path, err)
	}
	r.logger.Info("Loaded input table",
		zap.String("path", path),
		zap.Int("rowCount", t.Len()),
		zap.Int("columnCount", len(t.Columns)))
	return t, nil
}

// Clean repairs raw and writes the cleaned table to dest
func (r *Runner) Clean(ctx context.Context, raw *table.Table, dest string) (*table.Table, model.CleaningResult, error) {
	return r.cleaner.Run(ctx, raw, dest)
}

// Validate runs the standalone schema validation pass
func (r *Runner) Validate(t *table.Table) model.ValidationResult {
	return r.validator.ValidateTable(t)
}

// Profile computes quality statistics for t
func (r *Runner) Profile(t *table.Table) model.ProfileResult {
	return r.profiler.Profile(t)
}

// Detect classifies the rows of t into PII categories
func (r *Runner) Detect(t *table.Table) model.PiiDetectionResult {
	return r.detector.Detect(t)
}

// Mask redacts t and writes the masked table to dest
func (r *Runner) Mask(ctx context.Context, t *table.Table, dest string) (*table.Table, model.MaskingResult, error) {
	return r.masker.Run(ctx, t, dest)
}

// Run executes LOAD, PROFILE, CLEAN, VALIDATE, DETECT and MASK in order and
// writes a report per stage. Any fatal error stops the run, which is then
// reported as failed as a whole.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	result := NewResult(r.newRunID())
	logger := r.logger.With(zap.String("runId", result.RunID))
	m := metrics.NewPipelineMetrics(result.RunID, logger)

	logger.Info("Starting pipeline run",
		zap.String("input", r.cfg.InputPath),
		zap.String("reportDir", r.cfg.ReportDir))

	err := r.execute(ctx, result, m)
	result.Complete(err)
	m.Complete(err == nil)

	if reportErr := r.writeExecutionReport(result, m); reportErr != nil {
		logger.Error("Failed to write execution report", zap.Error(reportErr))
		if err == nil {
			err = reportErr
			result.Complete(err)
		}
	}

	if r.cfg.MetricsPath != "" {
		if metricsErr := m.WriteTextfile(r.cfg.MetricsPath); metricsErr != nil {
			logger.Error("Failed to write metrics", zap.Error(metricsErr))
		}
	}

	if err != nil {
		logger.Error("Pipeline run failed",
			zap.Duration("duration", result.Duration()),
			zap.Error(err))
		return result, err
	}

	logger.Info("Pipeline run completed",
		zap.Duration("duration", result.Duration()),
		zap.Int("inputRows", result.InputRows),
		zap.Int("cleanedRows", result.Cleaning.CleanedCount),
		zap.Int("maskedRows", result.Masking.MaskedRows))
	return result, nil
}

func (r *Runner) execute(ctx context.Context, result *Result, m *metrics.PipelineMetrics) error {
	var raw, cleaned *table.Table

	if err := stage(m, StageLoad, 0, func() (int, error) {
		var err error
		raw, err = r.Load(r.cfg.InputPath)
		if err != nil {
			return 0, err
		}
		result.InputRows = raw.Len()
		return raw.Len(), nil
	}); err != nil {
		return err
	}

	if err := stage(m, StageProfile, raw.Len(), func() (int, error) {
		result.Profile = r.Profile(raw)
		return raw.Len(), r.writeReport(report.DataQualityReportFile, func(w io.Writer) error {
			return report.WriteProfile(w, result.Profile)
		})
	}); err != nil {
		return err
	}

	if err := stage(m, StageClean, raw.Len(), func() (int, error) {
		var err error
		cleaned, result.Cleaning, err = r.Clean(ctx, raw, r.cfg.CleanedPath)
		m.RecordCleaning(result.Cleaning)
		if reportErr := r.writeReport(report.CleaningLogFile, func(w io.Writer) error {
			return report.WriteCleaning(w, result.Cleaning)
		}); err == nil {
			err = reportErr
		}
		return result.Cleaning.CleanedCount, err
	}); err != nil {
		return err
	}

	if err := stage(m, StageValidate, cleaned.Len(), func() (int, error) {
		result.Validation = r.Validate(cleaned)
		m.RecordValidation(result.Validation)
		return result.Validation.PassedCount, r.writeReport(report.ValidationResultFile, func(w io.Writer) error {
			return report.WriteValidation(w, result.Validation)
		})
	}); err != nil {
		return err
	}

	if err := stage(m, StageDetect, cleaned.Len(), func() (int, error) {
		result.Detection = r.Detect(cleaned)
		m.RecordDetection(result.Detection)
		return cleaned.Len(), r.writeReport(report.PiiDetectionFile, func(w io.Writer) error {
			return report.WritePiiDetection(w, result.Detection)
		})
	}); err != nil {
		return err
	}

	return stage(m, StageMask, cleaned.Len(), func() (int, error) {
		masked, maskResult, err := r.Mask(ctx, cleaned, r.cfg.MaskedPath)
		result.Masking = maskResult
		if err != nil {
			return maskResult.MaskedRows, err
		}
		cmp := masking.CompareSample(cleaned, masked, r.cfg.SampleSize)
		return maskResult.MaskedRows, r.writeReport(report.MaskingSampleFile, func(w io.Writer) error {
			return report.WriteMaskingSample(w, maskResult, cmp)
		})
	})
}

// stage runs fn between StartStage and EndStage
func stage(m *metrics.PipelineMetrics, name string, rowsIn int, fn func() (int, error)) error {
	m.StartStage(name, rowsIn)
	rowsOut, err := fn()
	m.EndStage(name, rowsOut, err)
	return err
}

func (r *Runner) writeReport(name string, render func(io.Writer) error) error {
	if err := report.WriteFile(r.cfg.ReportDir, name, render); err != nil {
		return dataerr.Write(StageReport, name, err)
	}
	return nil
}

func (r *Runner) writeExecutionReport(result *Result, m *metrics.PipelineMetrics) error {
	execution := report.Execution{
		RunID:       result.RunID,
		Status:      report.StatusSuccess,
		StartTime:   result.StartTime,
		Duration:    result.Duration(),
		InputPath:   r.cfg.InputPath,
		InputRows:   result.InputRows,
		CleanedRows: result.Cleaning.CleanedCount,
		MaskedRows:  result.Masking.MaskedRows,
		Stages:      m.Stages(),
	}
	if result.Err != nil {
		execution.Status = report.StatusFailed
		execution.Error = result.Err.Error()
	}

	return r.writeReport(report.ExecutionReportFile, func(w io.Writer) error {
		return report.WriteExecution(w, execution)
	})
}
