package contract

import "github.com/alexanderramin/metis/internal/domain"

// StageStatus records what happened in one pipeline stage.
type StageStatus struct {
	Success  bool   `json:"success"`
	Degraded bool   `json:"degraded,omitempty"`
	Error    string `json:"error,omitempty"`
	Detail   string `json:"detail,omitempty"`
}

// PipelineRequest drives the full parse-to-schedule workflow.
type PipelineRequest struct {
	Text        string                  `json:"text"`
	SourceType  string                  `json:"source_type,omitempty"`
	HoursPerDay int                     `json:"hours_per_day"`
	StartDate   string                  `json:"start_date,omitempty"` // YYYY-MM-DD, defaults to tomorrow
	UseHybrid   bool                    `json:"use_hybrid"`
	Preferences *domain.UserPreferences `json:"preferences,omitempty"`
}

// PipelineResult aggregates every stage output of the full pipeline.
// Stages that degrade still leave their upstream results intact.
type PipelineResult struct {
	RunID           string                 `json:"run_id"`
	Tasks           []domain.Task          `json:"tasks"`
	Priorities      []TaskPriority         `json:"priorities"`
	Schedule        SchedulePlan           `json:"schedule"`
	Recommendations []string               `json:"recommendations,omitempty"`
	Stages          map[string]StageStatus `json:"stages"`
}

// StageFailure is the structured result returned when a fatal stage aborts
// a workflow.
type StageFailure struct {
	Success bool   `json:"success"`
	Stage   string `json:"stage"`
	Error   string `json:"error"`
}
