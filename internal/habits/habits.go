// Package habits derives scheduling preferences from completion history.
// With too little history it reports nothing and callers fall back to
// domain.DefaultPreferences.
package habits

import (
	"math"

	"github.com/alexanderramin/metis/internal/domain"
)

// minRecords is the history size below which no preferences are derived.
const minRecords = 3

// shortSessionThreshold marks a user as preferring short sessions when
// their typical sitting stays under it.
const shortSessionThreshold = 1.0

// DerivePreferences analyzes completion records into UserPreferences.
// Returns (prefs, false) with defaults when history is too thin to trust.
func DerivePreferences(history []domain.CompletionRecord) (domain.UserPreferences, bool) {
	prefs := domain.DefaultPreferences()
	if len(history) < minRecords {
		return prefs, false
	}

	if bias, ok := estimationBias(history); ok {
		prefs.EstimationBias = bias
	}
	if length, ok := typicalSessionLength(history); ok {
		prefs.RecommendedSessionLength = length
		prefs.PrefersShortSessions = length < shortSessionThreshold
	}
	prefs.OptimalTimeOfDay = optimalTimeOfDay(history)

	return prefs, true
}

// estimationBias is the mean actual/estimated ratio. Above 1.0 the user
// under-estimates; the scheduler reads it the other way around (bias < 0.9
// inflates sessions), so the ratio is inverted here: estimated/actual.
func estimationBias(history []domain.CompletionRecord) (float64, bool) {
	sum := 0.0
	n := 0
	for _, rec := range history {
		if rec.EstimatedHours <= 0 || rec.ActualHours <= 0 {
			continue
		}
		sum += rec.EstimatedHours / rec.ActualHours
		n++
	}
	if n < minRecords {
		return 0, false
	}
	bias := sum / float64(n)
	// Keep the multiplier in a band where the correction stays gentle.
	bias = math.Max(0.25, math.Min(bias, 4.0))
	return round2(bias), true
}

// typicalSessionLength averages the recorded single-sitting lengths,
// bounded to what the allocator can actually use.
func typicalSessionLength(history []domain.CompletionRecord) (float64, bool) {
	sum := 0.0
	n := 0
	for _, rec := range history {
		if rec.SessionHours <= 0 {
			continue
		}
		sum += rec.SessionHours
		n++
	}
	if n < minRecords {
		return 0, false
	}
	length := sum / float64(n)
	length = math.Max(0.5, math.Min(length, 4.0))
	return round2(length), true
}

// optimalTimeOfDay buckets completion timestamps into morning, afternoon,
// and evening and returns the busiest bucket.
func optimalTimeOfDay(history []domain.CompletionRecord) string {
	counts := map[string]int{}
	for _, rec := range history {
		if rec.CompletedAt.IsZero() {
			continue
		}
		switch h := rec.CompletedAt.Hour(); {
		case h >= 5 && h < 12:
			counts["morning"]++
		case h >= 12 && h < 18:
			counts["afternoon"]++
		default:
			counts["evening"]++
		}
	}

	best := "morning"
	bestCount := 0
	for _, bucket := range []string{"morning", "afternoon", "evening"} {
		if counts[bucket] > bestCount {
			best = bucket
			bestCount = counts[bucket]
		}
	}
	return best
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
