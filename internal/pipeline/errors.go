package pipeline

import (
	"fmt"

	"github.com/alexanderramin/metis/internal/contract"
)

// Stage names as they appear in results and logs.
const (
	StageParsing        = "parsing"
	StagePrediction     = "workload_prediction"
	StagePrioritization = "prioritization"
	StageScheduling     = "scheduling"
)

// FatalStageError aborts a workflow: no downstream stage can run without
// this stage's output.
type FatalStageError struct {
	Stage string
	Err   error
}

func (e *FatalStageError) Error() string {
	return fmt.Sprintf("stage %s failed: %v", e.Stage, e.Err)
}

func (e *FatalStageError) Unwrap() error { return e.Err }

// Failure renders the error in the structured shape callers return to
// their own consumers.
func (e *FatalStageError) Failure() contract.StageFailure {
	return contract.StageFailure{
		Success: false,
		Stage:   e.Stage,
		Error:   e.Err.Error(),
	}
}

// DegradedStageError records a stage that fell back to its deterministic
// path. It is logged, never returned: degraded stages still succeed.
type DegradedStageError struct {
	Stage string
	Err   error
}

func (e *DegradedStageError) Error() string {
	return fmt.Sprintf("stage %s degraded: %v", e.Stage, e.Err)
}

func (e *DegradedStageError) Unwrap() error { return e.Err }

// ValidationError rejects a malformed request before any stage runs.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
