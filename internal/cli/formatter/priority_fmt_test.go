package formatter

import (
	"testing"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestFormatPriorities_ResolvesTitlesAndCounts(t *testing.T) {
	tasks := []domain.Task{
		{ID: "t1", Title: "Final exam"},
		{ID: "t2", Title: "Essay draft"},
	}
	res := &contract.PriorityResult{
		Priorities: []contract.TaskPriority{
			{TaskID: "t1", Rank: 1, PriorityScore: 0.85},
			{TaskID: "t2", Rank: 2, PriorityScore: 0.42},
		},
		Recommendations:   []string{"Start with the exam"},
		HighPriorityCount: 1,
	}

	out := stripANSI(FormatPriorities(res, tasks))

	assert.Contains(t, out, "RANK")
	assert.Contains(t, out, "Final exam")
	assert.Contains(t, out, "Essay draft")
	assert.Contains(t, out, "0.85")
	assert.Contains(t, out, "● HIGH")
	assert.Contains(t, out, "● MEDIUM")
	assert.Contains(t, out, "1 high priority")
	assert.Contains(t, out, "Start with the exam")
}

func TestFormatPriorities_FallsBackToRawID(t *testing.T) {
	res := &contract.PriorityResult{
		Priorities: []contract.TaskPriority{
			{TaskID: "orphan-id", Rank: 1, PriorityScore: 0.2},
		},
	}

	out := stripANSI(FormatPriorities(res, nil))

	assert.Contains(t, out, "orphan-id")
	assert.Contains(t, out, "● LOW")
	assert.Contains(t, out, "No high-priority tasks")
}

func TestFormatPriorities_Empty(t *testing.T) {
	out := stripANSI(FormatPriorities(&contract.PriorityResult{}, nil))
	assert.Contains(t, out, "Nothing to prioritize.")
}
