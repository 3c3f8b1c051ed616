package domain

// StressBreakdown decomposes a stress score into three weighted display
// buckets. It is a presentation aid, not a probabilistic model: each bucket
// is a fixed share of the final stress score, independently capped at its
// own weight.
type StressBreakdown struct {
	TimePressure     float64 `json:"time_pressure"`
	ComplexityStress float64 `json:"complexity_stress"`
	ImportanceStress float64 `json:"importance_stress"`
}

// WorkloadEstimate is the fused workload prediction for one task.
type WorkloadEstimate struct {
	EstimatedHours float64         `json:"estimated_hours"`
	StressScore    float64         `json:"stress_score"`
	Complexity     Complexity      `json:"complexity"`
	Confidence     float64         `json:"confidence"`
	Breakdown      StressBreakdown `json:"breakdown"`
	Explanation    string          `json:"explanation,omitempty"`
}

// PriorityFactors is the per-task factor breakdown used both for scoring
// and for audit output. Each factor is in [0, 1].
type PriorityFactors struct {
	Urgency    float64 `json:"urgency"`
	Importance float64 `json:"importance"`
	Stress     float64 `json:"stress"`
	Effort     float64 `json:"effort"`
}
