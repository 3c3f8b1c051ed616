package scheduler

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/google/uuid"
)

// Session shape bounds.
const (
	defaultMaxSessionHours = 2.0
	shortSessionCapHours   = 1.5
	minSessionHours        = 0.5
	fallbackTaskHours      = 2.0
)

// Estimation-bias correction thresholds (see domain.UserPreferences).
const (
	underEstimateBias   = 0.9
	overEstimateBias    = 1.1
	underEstimateFactor = 1.1
	overEstimateFactor  = 0.95
)

const hourEpsilon = 1e-9

// DefaultStartDate returns the first plannable day: tomorrow at local
// midnight relative to now.
func DefaultStartDate(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, 1)
}

// poolEntry is the mutable scheduling state for one task.
type poolEntry struct {
	task      *domain.Task
	remaining float64
}

// BuildPlan allocates the tasks' remaining hours across consecutive days
// into bounded work sessions, starting at startDate. Tasks are consumed
// round-robin from a rotating pool so a single day mixes tasks instead of
// grinding one to completion. The plan is deterministic for a given input.
//
// Each task's remaining hours are initialized from its RemainingHours
// field when set, else its estimated hours. Sessions for one task always
// sum to exactly the hours it entered the plan with.
func BuildPlan(
	tasks []domain.Task,
	hoursPerDay int,
	startDate time.Time,
	prefs *domain.UserPreferences,
) contract.SchedulePlan {
	pool := buildPool(tasks)
	if len(pool) == 0 {
		return contract.SchedulePlan{
			Sessions:            []contract.ScheduleSession{},
			AdjustedHoursPerDay: hoursPerDay,
		}
	}

	totalHours := 0.0
	for _, e := range pool {
		totalHours += e.remaining
	}
	if totalHours <= hourEpsilon {
		// Everything already scheduled; nothing to plan.
		return contract.SchedulePlan{
			Sessions:            []contract.ScheduleSession{},
			TotalHours:          0,
			AdjustedHoursPerDay: hoursPerDay,
		}
	}

	plan := contract.SchedulePlan{
		TotalHours:          round1(totalHours),
		AdjustedHoursPerDay: hoursPerDay,
	}

	horizon := int(math.Ceil(totalHours / float64(hoursPerDay)))
	deadlineCapped := false

	// Feasibility: can the total workload fit before the earliest deadline
	// at the requested daily pace?
	if earliest := earliestDueDate(pool); earliest != nil {
		daysUntilDue := int(earliest.Sub(startDate).Hours() / 24)
		if daysUntilDue > 0 && totalHours/float64(daysUntilDue) > float64(hoursPerDay) {
			plan.NeedsMoreHours = true
			plan.AdjustedHoursPerDay = int(math.Ceil(totalHours / float64(daysUntilDue)))
			plan.Warning = fmt.Sprintf(
				"You need at least %d hours/day to meet your earliest deadline. Consider increasing your daily hours or adjusting task priorities.",
				plan.AdjustedHoursPerDay)
			horizon = daysUntilDue
			deadlineCapped = true
		}
	}

	maxSession := maxSessionLength(prefs)

	// Day-budget residue below the session floor can strand small tails
	// past the nominal horizon. An hours-driven plan keeps adding days
	// until the pool drains; a deadline-capped plan never extends past
	// the deadline.
	maxDays := horizon
	if !deadlineCapped {
		maxDays = horizon + int(math.Ceil(totalHours/minSessionHours)) + 1
	}

	daysUsed := 0
	for day := 0; day < maxDays; day++ {
		if nextWithRemaining(pool) == nil {
			break
		}
		date := startDate.AddDate(0, 0, day)
		hoursLeft := float64(plan.AdjustedHoursPerDay)

		for hoursLeft > hourEpsilon {
			entry := nextWithRemaining(pool)
			if entry == nil {
				break
			}

			hours := math.Min(maxSession, math.Min(entry.remaining, hoursLeft))
			hours = applyBias(hours, prefs)
			// The bias correction must never let a session exceed the
			// task's remaining work, or the per-task session sum breaks.
			hours = math.Min(hours, entry.remaining)

			// Never strand a sub-floor tail: stretch the session to
			// finish the task when the day allows it, otherwise shrink
			// so the tail stays schedulable tomorrow.
			if tail := entry.remaining - hours; tail > hourEpsilon && tail < minSessionHours {
				if entry.remaining <= hoursLeft+hourEpsilon {
					hours = entry.remaining
				} else {
					hours = entry.remaining - minSessionHours
				}
			}
			hours = round2(hours)
			if hours < minSessionHours {
				break
			}

			plan.Sessions = append(plan.Sessions, contract.ScheduleSession{
				ID:             uuid.New().String(),
				TaskID:         entry.task.EffectiveID(),
				TaskTitle:      entry.task.Title,
				Day:            date.Format("2006-01-02"),
				Priority:       entry.task.PriorityScore,
				EstimatedHours: hours,
			})

			entry.remaining -= hours
			hoursLeft -= hours
			rotateToBack(pool, entry)
			daysUsed = day + 1
		}
	}

	plan.DaysPlanned = horizon
	if !deadlineCapped && daysUsed > horizon {
		plan.DaysPlanned = daysUsed
	}
	if plan.Sessions == nil {
		plan.Sessions = []contract.ScheduleSession{}
	}
	return plan
}

// buildPool sorts tasks by descending priority, then earliest due date
// (no-due-date last), and initializes per-task remaining hours.
func buildPool(tasks []domain.Task) []*poolEntry {
	sorted := make([]*domain.Task, 0, len(tasks))
	for i := range tasks {
		sorted = append(sorted, &tasks[i])
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.PriorityScore != b.PriorityScore {
			return a.PriorityScore > b.PriorityScore
		}
		if (a.DueDate == nil) != (b.DueDate == nil) {
			return a.DueDate != nil // tasks without due dates sort last
		}
		if a.DueDate != nil && !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
		return a.EffectiveID() < b.EffectiveID()
	})

	pool := make([]*poolEntry, 0, len(sorted))
	for _, t := range sorted {
		estimated := t.EstimatedHours
		if estimated <= 0 {
			estimated = fallbackTaskHours
		}
		remaining := round2(domain.Float64FromPtrWithDefault(estimated, t.RemainingHours))
		if remaining < 0 {
			remaining = 0
		}
		if remaining > 0 && remaining < minSessionHours {
			// Below the session floor; schedulable only as one floor-length session.
			remaining = minSessionHours
		}
		pool = append(pool, &poolEntry{task: t, remaining: remaining})
	}
	return pool
}

func earliestDueDate(pool []*poolEntry) *time.Time {
	var earliest *time.Time
	for _, e := range pool {
		d := e.task.DueDate
		if d == nil {
			continue
		}
		if earliest == nil || d.Before(*earliest) {
			earliest = d
		}
	}
	return earliest
}

// nextWithRemaining returns the first pool entry that still has work,
// preserving pool order. Nil when the pool is drained.
func nextWithRemaining(pool []*poolEntry) *poolEntry {
	for _, e := range pool {
		if e.remaining > hourEpsilon {
			return e
		}
	}
	return nil
}

// rotateToBack moves the just-scheduled entry to the end of the pool so
// consecutive sessions in a day interleave tasks.
func rotateToBack(pool []*poolEntry, entry *poolEntry) {
	for i, e := range pool {
		if e == entry {
			copy(pool[i:], pool[i+1:])
			pool[len(pool)-1] = entry
			return
		}
	}
}

func maxSessionLength(prefs *domain.UserPreferences) float64 {
	max := defaultMaxSessionHours
	if prefs == nil {
		return max
	}
	if prefs.RecommendedSessionLength > 0 {
		max = prefs.RecommendedSessionLength
	}
	if prefs.PrefersShortSessions {
		max = math.Min(max, shortSessionCapHours)
	}
	return max
}

// applyBias corrects a session length for the user's historical estimation
// accuracy: chronic under-estimators get a 10% buffer, over-estimators a
// 5% trim.
func applyBias(hours float64, prefs *domain.UserPreferences) float64 {
	if prefs == nil || prefs.EstimationBias == 0 {
		return hours
	}
	switch {
	case prefs.EstimationBias < underEstimateBias:
		return hours * underEstimateFactor
	case prefs.EstimationBias > overEstimateBias:
		return hours * overEstimateFactor
	default:
		return hours
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
