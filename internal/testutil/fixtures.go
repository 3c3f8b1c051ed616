package testutil

import (
	"time"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/google/uuid"
)

// Task options
type TaskOption func(*domain.Task)

func WithTaskType(tt domain.TaskType) TaskOption {
	return func(t *domain.Task) {
		t.Type = tt
	}
}

func WithDueDate(d time.Time) TaskOption {
	return func(t *domain.Task) {
		t.DueDate = &d
	}
}

func WithGrade(pct float64) TaskOption {
	return func(t *domain.Task) {
		t.GradePercentage = pct
	}
}

func WithEstimatedHours(h float64) TaskOption {
	return func(t *domain.Task) {
		t.EstimatedHours = h
	}
}

func WithStressScore(s float64) TaskOption {
	return func(t *domain.Task) {
		t.StressScore = s
	}
}

func WithPriorityScore(s float64) TaskOption {
	return func(t *domain.Task) {
		t.PriorityScore = s
	}
}

func WithComplexity(c domain.Complexity) TaskOption {
	return func(t *domain.Task) {
		t.Complexity = c
	}
}

func WithRemainingHours(h float64) TaskOption {
	return func(t *domain.Task) {
		t.RemainingHours = &h
	}
}

func NewTestTask(title string, opts ...TaskOption) domain.Task {
	t := domain.Task{
		ID:             uuid.New().String(),
		Title:          title,
		Type:           domain.TypeAssignment,
		Status:         domain.StatusPending,
		EstimatedHours: 3.0,
		StressScore:    0.5,
		Complexity:     domain.ComplexityMedium,
	}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}

// CompletionRecord options
type CompletionOption func(*domain.CompletionRecord)

func WithEstimated(h float64) CompletionOption {
	return func(r *domain.CompletionRecord) {
		r.EstimatedHours = h
	}
}

func WithSessionHours(h float64) CompletionOption {
	return func(r *domain.CompletionRecord) {
		r.SessionHours = h
	}
}

func WithCompletedAt(at time.Time) CompletionOption {
	return func(r *domain.CompletionRecord) {
		r.CompletedAt = at
	}
}

func NewTestCompletion(taskType domain.TaskType, actualHours float64, opts ...CompletionOption) domain.CompletionRecord {
	r := domain.CompletionRecord{
		ID:             uuid.New().String(),
		TaskTitle:      "completed " + string(taskType),
		TaskType:       taskType,
		EstimatedHours: actualHours,
		ActualHours:    actualHours,
		CompletedAt:    time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}
