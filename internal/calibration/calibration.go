// Package calibration produces deterministic workload predictions from a
// rule-based model, refined by per-type completion history when enough
// samples exist. Its output is the steady second opinion the estimate
// fusion blends against the freeform estimator.
package calibration

import (
	"math"

	"github.com/alexanderramin/metis/internal/domain"
)

// baseHours is the rule model's anchor estimate per task type.
var baseHours = map[domain.TaskType]float64{
	domain.TypeAssignment: 3.0,
	domain.TypeExam:       8.0,
	domain.TypeQuiz:       2.0,
	domain.TypeProject:    12.0,
	domain.TypeReading:    1.5,
	domain.TypeLab:        4.0,
}

const (
	defaultBaseHours = 3.0
	minPrediction    = 0.5
	maxPrediction    = 40.0

	// Weights for blending the rule prediction with history, mirroring
	// the re-estimate smoothing used elsewhere: trust the model, nudge
	// toward observed reality.
	ruleWeight    = 0.7
	historyWeight = 0.3

	// Minimum completions of a task type before its history is used.
	minHistorySamples = 3
)

// Predictor predicts task hours from the rule model plus whatever
// completion history it was built with. The zero value is a pure rule
// model.
type Predictor struct {
	meanActualByType map[domain.TaskType]float64
	samplesByType    map[domain.TaskType]int
}

// NewPredictor builds a Predictor over the given completion history.
func NewPredictor(history []domain.CompletionRecord) *Predictor {
	sums := map[domain.TaskType]float64{}
	counts := map[domain.TaskType]int{}
	for _, rec := range history {
		if rec.ActualHours <= 0 {
			continue
		}
		taskType := domain.NormalizeTaskType(string(rec.TaskType))
		sums[taskType] += rec.ActualHours
		counts[taskType]++
	}

	means := make(map[domain.TaskType]float64, len(sums))
	for taskType, sum := range sums {
		means[taskType] = sum / float64(counts[taskType])
	}
	return &Predictor{meanActualByType: means, samplesByType: counts}
}

// Trained reports whether the predictor has enough history for the given
// task type to refine the rule model.
func (p *Predictor) Trained(taskType domain.TaskType) bool {
	return p.samplesByType[taskType] >= minHistorySamples
}

// Predict returns the calibrated hour estimate for a task. With enough
// history for the task's type, the rule prediction is blended toward the
// observed mean; otherwise the rule model stands alone.
func (p *Predictor) Predict(t *domain.Task) float64 {
	predicted := RulePredict(t)
	if p.Trained(t.Type) {
		predicted = ruleWeight*predicted + historyWeight*p.meanActualByType[t.Type]
	}
	return clamp(predicted)
}

// RulePredict is the pure rule model: a per-type anchor scaled by grade
// weight and complexity, stacked on any pre-existing estimate.
func RulePredict(t *domain.Task) float64 {
	base := defaultBaseHours
	if h, ok := baseHours[t.Type]; ok {
		base = h
	}

	est := t.EstimatedHours
	gradeWeight := base * (t.GradePercentage / 100.0)
	difficultyWeight := (complexityDifficulty(t.Complexity) / 5.0) * base

	predicted := est + 0.5*est + gradeWeight + difficultyWeight
	return clamp(predicted)
}

func complexityDifficulty(c domain.Complexity) float64 {
	switch c {
	case domain.ComplexityLow:
		return 2
	case domain.ComplexityHigh:
		return 4
	default:
		return 3
	}
}

func clamp(hours float64) float64 {
	return math.Max(minPrediction, math.Min(hours, maxPrediction))
}
