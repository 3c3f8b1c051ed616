package domain

import "time"

// Task is the mutable record that flows through the planning pipeline.
// The extractor creates it, the estimate fusion and priority stages enrich
// it in place (additive fields only), and the scheduler consumes it.
type Task struct {
	ID              string
	Title           string
	Description     string
	Type            TaskType
	Status          TaskStatus
	DueDate         *time.Time
	GradePercentage float64

	// Populated by estimate fusion; zero before that stage.
	EstimatedHours float64
	StressScore    float64
	Complexity     Complexity

	// Populated by the priority scorer.
	PriorityScore float64
	PriorityRank  int

	// Mutable scheduling state. Nil until the scheduler initializes it
	// from EstimatedHours; zero means fully scheduled.
	RemainingHours *float64
}

// EffectiveID returns the task's stable identifier, falling back to the
// title when no explicit id was assigned.
func (t *Task) EffectiveID() string {
	return CoalesceStr(t.ID, t.Title)
}

// DaysUntilDue returns whole days between now and the due date.
// Negative when overdue. The boolean is false when no due date is set.
func (t *Task) DaysUntilDue(now time.Time) (int, bool) {
	if t.DueDate == nil {
		return 0, false
	}
	return int(t.DueDate.Sub(now).Hours() / 24), true
}
