package scheduler

import (
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/metis/internal/domain"
)

// Heuristic factor weights. They must sum to 1.0.
type ScoringWeights struct {
	Urgency    float64
	Importance float64
	Stress     float64
	Effort     float64
}

func DefaultWeights() ScoringWeights {
	return ScoringWeights{
		Urgency:    0.4,
		Importance: 0.3,
		Stress:     0.2,
		Effort:     0.1,
	}
}

// Defaults for tasks the estimation stage never reached.
const (
	defaultGradePct    = 10.0
	defaultStressScore = 0.5
	defaultEstHours    = 3.0
	effortCeilingHours = 20.0
)

// ScoredTask is one task's heuristic score with its factor breakdown.
type ScoredTask struct {
	TaskID  string
	Score   float64
	Factors domain.PriorityFactors
}

// ScoreHeuristic computes the deterministic multi-factor score for every
// task and returns the list sorted descending by score (ties broken by
// task id for determinism).
func ScoreHeuristic(tasks []domain.Task, now time.Time, w ScoringWeights) []ScoredTask {
	scored := make([]ScoredTask, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		f := Factors(t, now)
		score := f.Urgency*w.Urgency + f.Importance*w.Importance +
			f.Stress*w.Stress + f.Effort*w.Effort
		scored = append(scored, ScoredTask{
			TaskID:  t.EffectiveID(),
			Score:   math.Min(score, 1.0),
			Factors: f,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].TaskID < scored[j].TaskID
	})
	return scored
}

// Factors returns the per-task factor breakdown, each factor in [0, 1].
func Factors(t *domain.Task, now time.Time) domain.PriorityFactors {
	grade := t.GradePercentage
	if grade == 0 {
		grade = defaultGradePct
	}
	stress := t.StressScore
	if stress == 0 {
		stress = defaultStressScore
	}
	hours := t.EstimatedHours
	if hours == 0 {
		hours = defaultEstHours
	}

	return domain.PriorityFactors{
		Urgency:    Urgency(t.DueDate, now),
		Importance: math.Min(grade/100.0, 1.0),
		Stress:     stress,
		Effort:     math.Min(hours/effortCeilingHours, 1.0),
	}
}

// Urgency maps days-until-due onto a piecewise step scale. Overdue work
// saturates at 1.0; tasks with no due date sit at the floor.
func Urgency(dueDate *time.Time, now time.Time) float64 {
	if dueDate == nil {
		return 0.30
	}
	days := int(dueDate.Sub(now).Hours() / 24)
	switch {
	case days < 0:
		return 1.0
	case days <= 1:
		return 0.95
	case days <= 3:
		return 0.85
	case days <= 7:
		return 0.70
	case days <= 14:
		return 0.50
	default:
		return 0.30
	}
}
