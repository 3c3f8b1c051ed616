package scheduler

import (
	"testing"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuseRankings_NilAdviceFallsBackToHeuristic(t *testing.T) {
	heuristic := []ScoredTask{
		{TaskID: "a", Score: 0.8},
		{TaskID: "b", Score: 0.6},
		{TaskID: "c", Score: 0.4},
	}

	out := FuseRankings(heuristic, nil)

	require.Len(t, out, 3)
	assert.Equal(t, "a", out[0].TaskID)
	assert.Equal(t, 0.8, out[0].PriorityScore)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, 3, out[2].Rank)
}

func TestFuseRankings_EmptyAdviceFallsBackToHeuristic(t *testing.T) {
	heuristic := []ScoredTask{{TaskID: "a", Score: 0.5}}

	out := FuseRankings(heuristic, &RankAdvice{})

	require.Len(t, out, 1)
	assert.Equal(t, 0.5, out[0].PriorityScore)
}

func TestFuseRankings_BlendsExternalAndHeuristic(t *testing.T) {
	heuristic := []ScoredTask{
		{TaskID: "a", Score: 0.9},
		{TaskID: "b", Score: 0.2},
	}
	advice := &RankAdvice{
		OrderedIDs: []string{"b", "a"},
		RationaleByID: map[string]string{
			"b": "blocks everything else",
		},
	}

	out := FuseRankings(heuristic, advice)

	require.Len(t, out, 2)

	// b: rank_score = 1 - 0/2 = 1.0 -> 0.7*1.0 + 0.3*0.2
	assert.Equal(t, "b", out[0].TaskID)
	assert.InDelta(t, 0.76, out[0].PriorityScore, 1e-9)
	assert.Equal(t, 1, out[0].Rank)
	assert.Equal(t, "blocks everything else", out[0].Explanation)

	// a: rank_score = 1 - 1/2 = 0.5 -> 0.7*0.5 + 0.3*0.9
	assert.Equal(t, "a", out[1].TaskID)
	assert.InDelta(t, 0.62, out[1].PriorityScore, 1e-9)
	assert.Equal(t, 2, out[1].Rank)
}

func TestFuseRankings_UnknownExternalIDScoredOnRankAlone(t *testing.T) {
	heuristic := []ScoredTask{{TaskID: "a", Score: 0.5}}
	advice := &RankAdvice{OrderedIDs: []string{"ghost", "a"}}

	out := FuseRankings(heuristic, advice)

	require.Len(t, out, 2)
	assert.Equal(t, "ghost", out[0].TaskID)
	assert.InDelta(t, 0.7, out[0].PriorityScore, 1e-9)
	assert.Equal(t, domain.PriorityFactors{}, out[0].Factors)
}

func TestFuseRankings_PartialAdviceAppendsLeftovers(t *testing.T) {
	heuristic := []ScoredTask{
		{TaskID: "a", Score: 0.9},
		{TaskID: "b", Score: 0.6},
		{TaskID: "c", Score: 0.3},
	}
	advice := &RankAdvice{OrderedIDs: []string{"c"}}

	out := FuseRankings(heuristic, advice)

	require.Len(t, out, 3)
	assert.Equal(t, "c", out[0].TaskID)

	// Leftovers carry their discounted heuristic score, sorted descending.
	assert.Equal(t, "a", out[1].TaskID)
	assert.InDelta(t, 0.27, out[1].PriorityScore, 1e-9)
	assert.Equal(t, 2, out[1].Rank)
	assert.Equal(t, "b", out[2].TaskID)
	assert.Equal(t, 3, out[2].Rank)
}

func TestFuseRankings_DuplicateExternalIDsIgnored(t *testing.T) {
	heuristic := []ScoredTask{
		{TaskID: "a", Score: 0.5},
		{TaskID: "b", Score: 0.5},
	}
	advice := &RankAdvice{OrderedIDs: []string{"a", "a", "b"}}

	out := FuseRankings(heuristic, advice)

	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].TaskID)
	assert.Equal(t, "b", out[1].TaskID)
}

func TestFuseRankings_EveryTaskAppearsExactlyOnce(t *testing.T) {
	heuristic := []ScoredTask{
		{TaskID: "a", Score: 0.9},
		{TaskID: "b", Score: 0.7},
		{TaskID: "c", Score: 0.5},
		{TaskID: "d", Score: 0.3},
	}
	advice := &RankAdvice{OrderedIDs: []string{"c", "a"}}

	out := FuseRankings(heuristic, advice)

	seen := map[string]int{}
	for _, p := range out {
		seen[p.TaskID]++
	}
	for _, s := range heuristic {
		assert.Equal(t, 1, seen[s.TaskID], "task %s", s.TaskID)
	}
}

func TestCountHighPriority(t *testing.T) {
	out := FuseRankings([]ScoredTask{
		{TaskID: "a", Score: 0.95},
		{TaskID: "b", Score: 0.71},
		{TaskID: "c", Score: 0.70},
		{TaskID: "d", Score: 0.10},
	}, nil)

	assert.Equal(t, 2, CountHighPriority(out))
}
