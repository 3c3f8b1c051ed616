package scheduler

import (
	"math"
	"sort"

	"github.com/alexanderramin/metis/internal/contract"
)

// RankAdvice is the external holistic ordering supplied by the ranking
// advisor: a permutation (possibly partial) of task ids plus free-text
// rationale per id.
type RankAdvice struct {
	OrderedIDs    []string          `json:"ordered_ids"`
	RationaleByID map[string]string `json:"rationale_by_id,omitempty"`
}

// High-priority threshold, used for reporting counts only.
const highPriorityThreshold = 0.7

// Rank fusion weights: the external ordering dominates, the heuristic
// score grounds it.
const (
	externalWeight  = 0.7
	heuristicWeight = 0.3
)

// FuseRankings merges the heuristic scores with the external rank advice
// into the final priority list. When advice is nil (advisor failed or
// disabled) the heuristic ranking is used unmodified. Every scored task
// appears exactly once in the output: tasks missing from the external
// ordering keep their discounted heuristic contribution and are appended
// after the externally ranked entries, ordered by descending score.
func FuseRankings(heuristic []ScoredTask, advice *RankAdvice) []contract.TaskPriority {
	if advice == nil || len(advice.OrderedIDs) == 0 {
		return heuristicOnly(heuristic)
	}

	byID := make(map[string]ScoredTask, len(heuristic))
	for _, s := range heuristic {
		byID[s.TaskID] = s
	}

	n := len(advice.OrderedIDs)
	out := make([]contract.TaskPriority, 0, len(heuristic))
	seen := make(map[string]bool, n)

	for i, id := range advice.OrderedIDs {
		if seen[id] {
			continue // defensive: advisors occasionally repeat ids
		}
		seen[id] = true

		rankScore := 1.0 - float64(i)/float64(n)
		p := contract.TaskPriority{
			TaskID:        id,
			PriorityScore: round3(rankScore * externalWeight),
			Rank:          len(out) + 1,
		}
		if s, ok := byID[id]; ok {
			p.PriorityScore = round3(rankScore*externalWeight + s.Score*heuristicWeight)
			p.Factors = s.Factors
		}
		if advice.RationaleByID != nil {
			p.Explanation = advice.RationaleByID[id]
		}
		out = append(out, p)
	}

	// Tasks the advisor never mentioned are still ranked, on their
	// discounted heuristic score alone.
	var leftover []contract.TaskPriority
	for _, s := range heuristic {
		if seen[s.TaskID] {
			continue
		}
		leftover = append(leftover, contract.TaskPriority{
			TaskID:        s.TaskID,
			PriorityScore: round3(s.Score * heuristicWeight),
			Factors:       s.Factors,
		})
	}
	sort.SliceStable(leftover, func(i, j int) bool {
		return leftover[i].PriorityScore > leftover[j].PriorityScore
	})
	for i := range leftover {
		leftover[i].Rank = len(out) + 1
		out = append(out, leftover[i])
	}

	return out
}

func heuristicOnly(heuristic []ScoredTask) []contract.TaskPriority {
	out := make([]contract.TaskPriority, 0, len(heuristic))
	for i, s := range heuristic {
		out = append(out, contract.TaskPriority{
			TaskID:        s.TaskID,
			PriorityScore: round3(s.Score),
			Rank:          i + 1,
			Factors:       s.Factors,
		})
	}
	return out
}

// CountHighPriority counts entries above the reporting threshold.
func CountHighPriority(priorities []contract.TaskPriority) int {
	n := 0
	for _, p := range priorities {
		if p.PriorityScore > highPriorityThreshold {
			n++
		}
	}
	return n
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
