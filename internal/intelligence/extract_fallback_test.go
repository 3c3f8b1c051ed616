package intelligence

import (
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractByPattern_SyllabusLines(t *testing.T) {
	text := `Course overview
- Essay 2 due 2025-03-05 (20%)
- Midterm exam on 2025-03-20, worth 30%
- Chapter 4 reading
Office hours Tuesday`

	tasks := ExtractByPattern(text)

	require.Len(t, tasks, 3)

	assert.Equal(t, "Essay 2", tasks[0].Title)
	assert.Equal(t, string(domain.TypeAssignment), tasks[0].TaskType)
	assert.Equal(t, "2025-03-05", tasks[0].DueDate)
	require.NotNil(t, tasks[0].GradePercentage)
	assert.Equal(t, 20.0, *tasks[0].GradePercentage)

	assert.Equal(t, string(domain.TypeExam), tasks[1].TaskType)
	assert.Equal(t, "2025-03-20", tasks[1].DueDate)
	require.NotNil(t, tasks[1].GradePercentage)
	assert.Equal(t, 30.0, *tasks[1].GradePercentage)

	assert.Equal(t, string(domain.TypeReading), tasks[2].TaskType)
	assert.Empty(t, tasks[2].DueDate)
	assert.Nil(t, tasks[2].GradePercentage)
}

func TestExtractByPattern_SlashDates(t *testing.T) {
	year := time.Now().Year() + 1
	text := fmt.Sprintf("Quiz 3 due 1/15/%d", year)

	tasks := ExtractByPattern(text)

	require.Len(t, tasks, 1)
	assert.Equal(t, fmt.Sprintf("%d-01-15", year), tasks[0].DueDate)
}

func TestExtractByPattern_WordDatesRollForward(t *testing.T) {
	// A yearless date in the past resolves to next year.
	text := "Final project due January 1"

	tasks := ExtractByPattern(text)

	require.Len(t, tasks, 1)
	due, err := time.Parse("2006-01-02", tasks[0].DueDate)
	require.NoError(t, err)
	assert.False(t, due.Before(time.Now().Truncate(24*time.Hour)))
	assert.Equal(t, time.January, due.Month())
}

func TestExtractByPattern_TypeKeywords(t *testing.T) {
	tests := []struct {
		line     string
		taskType domain.TaskType
	}{
		{"Homework 5 posted", domain.TypeAssignment},
		{"Final exam schedule", domain.TypeExam},
		{"Weekly quiz", domain.TypeQuiz},
		{"Group project milestone", domain.TypeProject},
		{"Lab 3 writeup", domain.TypeLab},
		{"In-class presentation", domain.TypePresentation},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			tasks := ExtractByPattern(tt.line)
			require.Len(t, tasks, 1)
			assert.Equal(t, string(tt.taskType), tasks[0].TaskType)
		})
	}
}

func TestExtractByPattern_IgnoresNonTaskLines(t *testing.T) {
	text := `Welcome to the course!
Grading is curved.
See the website for details.`

	assert.Empty(t, ExtractByPattern(text))
}

func TestExtractByPattern_RejectsBogusGradePct(t *testing.T) {
	tasks := ExtractByPattern("Assignment 1 counts for 250%")

	require.Len(t, tasks, 1)
	assert.Nil(t, tasks[0].GradePercentage)
}
