package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type estimatePayload struct {
	EstimatedHours float64 `json:"estimated_hours"`
	StressScore    float64 `json:"stress_score"`
	Complexity     string  `json:"complexity"`
}

func TestExtractJSON_Plain(t *testing.T) {
	raw := `{"estimated_hours": 4.5, "stress_score": 0.6, "complexity": "high"}`

	got, err := ExtractJSON[estimatePayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 4.5, got.EstimatedHours)
	assert.Equal(t, "high", got.Complexity)
}

func TestExtractJSON_MarkdownFencesAndProse(t *testing.T) {
	raw := "Here is my estimate:\n```json\n{\"estimated_hours\": 2, \"stress_score\": 0.3, \"complexity\": \"low\"}\n```\nHope that helps!"

	got, err := ExtractJSON[estimatePayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 2.0, got.EstimatedHours)
}

func TestExtractJSON_LeadingDecimalAndComments(t *testing.T) {
	raw := `{
		"estimated_hours": 3, // rough guess
		"stress_score": .75,
		"complexity": "medium" /* typical */
	}`

	got, err := ExtractJSON[estimatePayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.75, got.StressScore)
}

func TestExtractJSON_BracesInsideStrings(t *testing.T) {
	raw := `{"estimated_hours": 1, "stress_score": 0.1, "complexity": "low { or } medium"}`

	got, err := ExtractJSON[estimatePayload](raw, nil)
	require.NoError(t, err)
	assert.Equal(t, "low { or } medium", got.Complexity)
}

func TestExtractJSON_NoObject(t *testing.T) {
	_, err := ExtractJSON[estimatePayload]("sorry, I cannot answer that", nil)
	assert.ErrorIs(t, err, ErrInvalidOutput)
}

func TestExtractJSON_ValidatorRejects(t *testing.T) {
	raw := `{"estimated_hours": -2, "stress_score": 0.5, "complexity": "medium"}`

	_, err := ExtractJSON[estimatePayload](raw, func(p estimatePayload) error {
		if p.EstimatedHours <= 0 {
			return errors.New("estimated_hours must be positive")
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrInvalidOutput)
}
