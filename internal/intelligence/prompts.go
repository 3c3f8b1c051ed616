package intelligence

import (
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/metis/internal/domain"
)

// extractSystemPrompt instructs the LLM to pull task records out of
// unstructured text.
const extractSystemPrompt = `You are an expert at extracting tasks, deadlines, and requirements from documents. Be thorough and accurate.

You must output ONLY a JSON object with this exact shape:
- tasks: array of task objects, each with:
  - title: task name (required)
  - description: task details
  - task_type: one of [Assignment, Exam, Quiz, Project, Reading, Lab, Other]
  - due_date: deadline in YYYY-MM-DD format, or null if not mentioned
  - grade_percentage: grade weight as a number 0-100 if mentioned, or null
  - estimated_hours: estimated hours if explicitly mentioned, or null

CRITICAL RULES:
1. Extract ALL tasks mentioned, including recurring ones
2. Never invent due dates; use null when the text gives none
3. Use strict JSON numeric literals (e.g., 0.5, never .5)
4. Output ONLY the JSON object, no markdown, no explanation`

// estimateSystemPrompt instructs the LLM to predict workload for one task.
const estimateSystemPrompt = `You are an expert at estimating academic workload. Analyze the task and predict the effort realistically.

You must output ONLY a JSON object with these exact fields:
- estimated_hours: realistic hours needed, between 0.5 and 40
- stress_score: stress level from 0.0 (low) to 1.0 (high burnout risk)
- complexity: "low", "medium", or "high"
- confidence: number 0 to 1 (how sure you are)
- explanation: brief explanation of your estimates

CRITICAL RULES:
1. Ground the estimate in the task type and description, not wishful thinking
2. Use strict JSON numeric literals (e.g., 0.85, never .85)
3. Output ONLY the JSON object, no markdown, no explanation`

// rankSystemPrompt instructs the LLM to order a task list holistically.
const rankSystemPrompt = `You are an expert at task prioritization and time management. Help users focus on what matters most.

You must output ONLY a JSON object with these exact fields:
- ordered_ids: array of task ids in priority order, highest first
- rationale_by_id: object mapping each task id to a one-sentence explanation
- recommendations: array of short overall workload-management suggestions

CRITICAL RULES:
1. ordered_ids must contain every task id exactly once, using the ids as given
2. Consider deadlines, grade weight, stress, and effort together
3. Output ONLY the JSON object, no markdown, no explanation`

func buildExtractUserPrompt(text, sourceType string) string {
	return fmt.Sprintf("Extract all tasks, assignments, and deadlines from this %s:\n\n%s", sourceType, text)
}

func buildEstimateUserPrompt(t *domain.Task) string {
	desc := domain.CoalesceStr(t.Description, t.Title)
	prompt := fmt.Sprintf("Analyze this task and estimate the workload:\n\nTask Type: %s\nDescription: %s", t.Type, desc)
	if t.DueDate != nil {
		prompt += "\nDue: " + t.DueDate.Format("2006-01-02")
	}
	if t.GradePercentage > 0 {
		prompt += fmt.Sprintf("\nGrade weight: %.0f%%", t.GradePercentage)
	}
	return prompt
}

func buildRankUserPrompt(tasks []domain.Task) string {
	type rankInput struct {
		ID             string  `json:"id"`
		Title          string  `json:"title"`
		TaskType       string  `json:"task_type"`
		DueDate        string  `json:"due_date,omitempty"`
		GradePct       float64 `json:"grade_percentage,omitempty"`
		EstimatedHours float64 `json:"estimated_hours,omitempty"`
		StressScore    float64 `json:"stress_score,omitempty"`
	}

	inputs := make([]rankInput, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		in := rankInput{
			ID:             t.EffectiveID(),
			Title:          t.Title,
			TaskType:       string(t.Type),
			GradePct:       t.GradePercentage,
			EstimatedHours: t.EstimatedHours,
			StressScore:    t.StressScore,
		}
		if t.DueDate != nil {
			in.DueDate = t.DueDate.Format("2006-01-02")
		}
		inputs = append(inputs, in)
	}

	encoded, _ := json.MarshalIndent(inputs, "", "  ")
	return "Prioritize these tasks:\n\n" + string(encoded)
}
