package contract

import "github.com/alexanderramin/metis/internal/domain"

// TaskPriority is one entry of the fused priority output.
type TaskPriority struct {
	TaskID        string                 `json:"task_id"`
	PriorityScore float64                `json:"priority_score"`
	Rank          int                    `json:"rank"`
	Factors       domain.PriorityFactors `json:"factors"`
	Explanation   string                 `json:"explanation,omitempty"`
}

// PriorityResult is the full output of the prioritization stage.
type PriorityResult struct {
	Priorities        []TaskPriority `json:"priorities"`
	Recommendations   []string       `json:"recommendations,omitempty"`
	HighPriorityCount int            `json:"high_priority_count"`
}
