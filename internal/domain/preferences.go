package domain

// UserPreferences personalizes session shape during scheduling. It is
// read-only input to a pipeline invocation: refreshed between runs, never
// mutated mid-pipeline.
type UserPreferences struct {
	OptimalTimeOfDay         string
	RecommendedSessionLength float64
	PrefersShortSessions     bool

	// EstimationBias is the historical actual/estimated ratio. Below 0.9
	// the user under-estimates (sessions inflated 10%); above 1.1 the user
	// over-estimates (sessions deflated 5%).
	EstimationBias float64
}

// DefaultPreferences returns the neutral preference set used when no
// history exists.
func DefaultPreferences() UserPreferences {
	return UserPreferences{
		OptimalTimeOfDay:         "morning",
		RecommendedSessionLength: 2.0,
		EstimationBias:           1.0,
	}
}
