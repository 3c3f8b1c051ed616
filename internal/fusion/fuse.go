// Package fusion blends a freeform workload estimate with a calibrated
// numeric estimate into one workload figure and a stress breakdown.
package fusion

import (
	"math"

	"github.com/alexanderramin/metis/internal/domain"
)

// FreeformEstimate is an unconstrained workload prediction from a
// language-reasoning source, carrying its own confidence.
type FreeformEstimate struct {
	EstimatedHours float64           `json:"estimated_hours"`
	StressScore    float64           `json:"stress_score"`
	Complexity     domain.Complexity `json:"complexity"`
	Confidence     float64           `json:"confidence"`
	Explanation    string            `json:"explanation,omitempty"`
}

// calibratedReliability is the assumed reliability of the calibrated
// source, averaged into the returned confidence whenever blending happens.
const calibratedReliability = 0.8

// Fuse combines a freeform estimate with an optional calibrated hour
// figure. With no calibrated estimate the freeform estimate passes through
// verbatim. Otherwise hours are blended with a confidence-derived weight:
// the freeform source gets 0.3 + 0.3*confidence (so between 0.3 and 0.6)
// and the calibrated source the remainder. Stress and complexity always
// come from the freeform side; the calibrated source only refines hours.
//
// The weight formula is hand-tuned; treat it as a tunable.
func Fuse(ff FreeformEstimate, calibratedHours *float64) domain.WorkloadEstimate {
	conf := clamp01(ff.Confidence)

	est := domain.WorkloadEstimate{
		EstimatedHours: ff.EstimatedHours,
		StressScore:    clamp01(ff.StressScore),
		Complexity:     ff.Complexity,
		Confidence:     conf,
		Explanation:    ff.Explanation,
	}

	if calibratedHours != nil {
		llmWeight := 0.3 + 0.3*conf
		calWeight := 1.0 - llmWeight
		est.EstimatedHours = round1(ff.EstimatedHours*llmWeight + *calibratedHours*calWeight)
		est.Confidence = (conf + calibratedReliability) / 2
	}

	est.Breakdown = breakdown(est.StressScore)
	return est
}

// breakdown decomposes a stress score into the fixed display buckets:
// 40% time pressure, 30% complexity, 30% importance, each independently
// capped at its own weight.
func breakdown(stress float64) domain.StressBreakdown {
	return domain.StressBreakdown{
		TimePressure:     round2(math.Min(stress*0.4, 0.4)),
		ComplexityStress: round2(math.Min(stress*0.3, 0.3)),
		ImportanceStress: round2(math.Min(stress*0.3, 0.3)),
	}
}

// FallbackEstimate is the conservative default used when the freeform
// estimator fails or returns malformed data. This stage never aborts the
// pipeline.
func FallbackEstimate() FreeformEstimate {
	return FreeformEstimate{
		EstimatedHours: 3.0,
		StressScore:    0.5,
		Complexity:     domain.ComplexityMedium,
		Confidence:     0.3,
		Explanation:    "estimation unavailable, using default estimates",
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
