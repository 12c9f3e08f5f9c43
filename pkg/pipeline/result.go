package pipeline

import (
	"time"

	"github.com/David-Botos/data-quality/pkg/model"
)

// Stage names, in execution order
const (
	StageLoad     = "load"
	StageProfile  = "profile"
	StageClean    = "clean"
	StageValidate = "validate"
	StageDetect   = "detect"
	StageMask     = "mask"
	StageReport   = "report"
)

// Result holds every stage result of a pipeline run
type Result struct {
	RunID      string
	StartTime  time.Time
	EndTime    time.Time
	InputRows  int
	Profile    model.ProfileResult
	Cleaning   model.CleaningResult
	Validation model.ValidationResult
	Detection  model.PiiDetectionResult
	Masking    model.MaskingResult
	Success    bool
	Err        error
}

// NewResult creates a result for a run starting now
func NewResult(runID string) *Result {
	return &Result{
		RunID:     runID,
		StartTime: time.Now(),
	}
}

// Complete marks the run finished. A non-nil err marks the whole run failed,
// whatever stages succeeded before it.
func (r *Result) Complete(err error) {
	r.EndTime = time.Now()
	r.Err = err
	r.Success = err == nil
}

// Duration returns the run's wall time
func (r *Result) Duration() time.Duration {
	if r.EndTime.IsZero() {
		return time.Since(r.StartTime)
	}
	return r.EndTime.Sub(r.StartTime)
}
