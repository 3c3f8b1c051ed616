package intelligence

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/fusion"
	"github.com/alexanderramin/metis/internal/scheduler"
)

// extractPayload is the JSON shape the extraction prompt asks for.
type extractPayload struct {
	Tasks []contract.RawTask `json:"tasks"`
}

// rankPayload is the JSON shape the ranking prompt asks for.
type rankPayload struct {
	OrderedIDs      []string          `json:"ordered_ids"`
	RationaleByID   map[string]string `json:"rationale_by_id"`
	Recommendations []string          `json:"recommendations"`
}

// RankResult is the ranking advisor's full output: the ordering advice the
// priority scorer fuses, plus free-text workload recommendations.
type RankResult struct {
	Advice          *scheduler.RankAdvice
	Recommendations []string
}

func validateExtractPayload(p extractPayload) error {
	for i, t := range p.Tasks {
		if strings.TrimSpace(t.Title) == "" {
			return fmt.Errorf("task %d: title is required", i)
		}
		if t.DueDate != "" {
			if _, err := time.Parse("2006-01-02", t.DueDate); err != nil {
				return fmt.Errorf("task %d: due_date %q is not YYYY-MM-DD", i, t.DueDate)
			}
		}
		if t.GradePercentage != nil && (*t.GradePercentage < 0 || *t.GradePercentage > 100) {
			return fmt.Errorf("task %d: grade_percentage must be in [0,100], got %f", i, *t.GradePercentage)
		}
		if t.EstimatedHours != nil && *t.EstimatedHours < 0 {
			return fmt.Errorf("task %d: estimated_hours must be non-negative", i)
		}
	}
	return nil
}

// validateFreeformEstimate rejects out-of-range estimator output. Hours are
// range-checked rather than clamped so garbage triggers the repair path
// and, failing that, the deterministic fallback.
func validateFreeformEstimate(e fusion.FreeformEstimate) error {
	if e.EstimatedHours <= 0 || e.EstimatedHours > 100 {
		return fmt.Errorf("estimated_hours out of range: %f", e.EstimatedHours)
	}
	if e.StressScore < 0 || e.StressScore > 1 {
		return fmt.Errorf("stress_score must be in [0,1], got %f", e.StressScore)
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("confidence must be in [0,1], got %f", e.Confidence)
	}
	return nil
}

func validateRankPayload(p rankPayload) error {
	if len(p.OrderedIDs) == 0 {
		return fmt.Errorf("ordered_ids is empty")
	}
	seen := make(map[string]bool, len(p.OrderedIDs))
	for _, id := range p.OrderedIDs {
		if id == "" {
			return fmt.Errorf("ordered_ids contains an empty id")
		}
		if seen[id] {
			return fmt.Errorf("ordered_ids repeats id %q", id)
		}
		seen[id] = true
	}
	return nil
}

// normalizeRawTask fills in defaults and canonical forms on an extracted
// record in place.
func normalizeRawTask(t *contract.RawTask) {
	t.Title = strings.TrimSpace(t.Title)
	t.TaskType = string(domain.NormalizeTaskType(t.TaskType))
	if e := t.EstimatedHours; e != nil && *e > 40 {
		capped := 40.0
		t.EstimatedHours = &capped
	}
}
