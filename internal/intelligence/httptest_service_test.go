package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newFakeOllama serves canned generate responses over real HTTP so the
// tests exercise the full transport + JSON-repair path, not a mock client.
func newFakeOllama(t *testing.T, response string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"model":    "test-model",
			"response": response,
		})
	}))
}

func testClient(srv *httptest.Server) llm.Client {
	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	cfg.Model = "test-model"
	cfg.MaxRetries = 0
	return llm.NewOllamaClient(cfg, llm.NoopObserver{})
}

func TestExtractService_WithHTTPTestServer(t *testing.T) {
	srv := newFakeOllama(t, `{"tasks": [
		{"title": "Essay 2", "task_type": "Assignment", "due_date": "2025-03-05", "grade_percentage": 20},
		{"title": "Midterm", "task_type": "exam", "due_date": "2025-03-20"}
	]}`)
	defer srv.Close()

	svc := NewExtractService(testClient(srv))

	tasks, err := svc.Extract(context.Background(), "syllabus text", "syllabus")
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "Essay 2", tasks[0].Title)
	assert.Equal(t, "2025-03-05", tasks[0].DueDate)
	require.NotNil(t, tasks[0].GradePercentage)
	assert.Equal(t, 20.0, *tasks[0].GradePercentage)

	// Task types come back canonical even when the model lowercases them.
	assert.Equal(t, string(domain.TypeExam), tasks[1].TaskType)
}

func TestExtractService_CodeFencedOutput(t *testing.T) {
	srv := newFakeOllama(t, "```json\n{\"tasks\": [{\"title\": \"Lab 1\", \"task_type\": \"Lab\"}]}\n```")
	defer srv.Close()

	svc := NewExtractService(testClient(srv))

	tasks, err := svc.Extract(context.Background(), "text", "document")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Lab 1", tasks[0].Title)
}

func TestExtractService_ServerErrorFallsBackToPatterns(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model exploded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := NewExtractService(testClient(srv))

	tasks, err := svc.Extract(context.Background(), "Essay 1 due 2025-04-01", "document")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Essay 1", tasks[0].Title)
	assert.Equal(t, "2025-04-01", tasks[0].DueDate)
}

func TestExtractService_InvalidJSONFallsBackToPatterns(t *testing.T) {
	srv := newFakeOllama(t, "I could not find any structured tasks, sorry!")
	defer srv.Close()

	svc := NewExtractService(testClient(srv))

	tasks, err := svc.Extract(context.Background(), "Quiz 1 on 2025-05-02", "document")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, string(domain.TypeQuiz), tasks[0].TaskType)
}

func TestExtractService_NilClientUsesPatterns(t *testing.T) {
	svc := NewExtractService(nil)

	tasks, err := svc.Extract(context.Background(), "Homework 3 due 2025-02-10", "document")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, string(domain.TypeAssignment), tasks[0].TaskType)
}

func TestExtractService_EmptyTextErrors(t *testing.T) {
	svc := NewExtractService(nil)

	_, err := svc.Extract(context.Background(), "   ", "document")
	assert.Error(t, err)
}

func TestEstimateService_WithHTTPTestServer(t *testing.T) {
	srv := newFakeOllama(t, `{"estimated_hours": 6.5, "stress_score": 0.7, "complexity": "high", "confidence": 0.8, "explanation": "research heavy"}`)
	defer srv.Close()

	svc := NewEstimateService(testClient(srv))

	est, err := svc.Estimate(context.Background(), &domain.Task{Title: "Research paper", Type: domain.TypeAssignment})
	require.NoError(t, err)

	assert.Equal(t, 6.5, est.EstimatedHours)
	assert.Equal(t, 0.7, est.StressScore)
	assert.Equal(t, domain.ComplexityHigh, est.Complexity)
	assert.Equal(t, 0.8, est.Confidence)
	assert.Equal(t, "research heavy", est.Explanation)
}

func TestEstimateService_ClampsHours(t *testing.T) {
	srv := newFakeOllama(t, `{"estimated_hours": 80, "stress_score": 0.9, "complexity": "high", "confidence": 0.6, "explanation": "thesis"}`)
	defer srv.Close()

	svc := NewEstimateService(testClient(srv))

	est, err := svc.Estimate(context.Background(), &domain.Task{Title: "Thesis"})
	require.NoError(t, err)
	assert.Equal(t, 40.0, est.EstimatedHours)
}

func TestEstimateService_NormalizesComplexity(t *testing.T) {
	srv := newFakeOllama(t, `{"estimated_hours": 2, "stress_score": 0.3, "complexity": "extreme", "confidence": 0.5, "explanation": ""}`)
	defer srv.Close()

	svc := NewEstimateService(testClient(srv))

	est, err := svc.Estimate(context.Background(), &domain.Task{Title: "Reading"})
	require.NoError(t, err)
	assert.Equal(t, domain.ComplexityMedium, est.Complexity)
}

func TestEstimateService_InvalidOutputErrors(t *testing.T) {
	srv := newFakeOllama(t, `{"estimated_hours": -3, "stress_score": 0.5, "complexity": "low", "confidence": 0.5}`)
	defer srv.Close()

	svc := NewEstimateService(testClient(srv))

	_, err := svc.Estimate(context.Background(), &domain.Task{Title: "Broken"})
	assert.Error(t, err)
}

func TestEstimateService_ServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	svc := NewEstimateService(testClient(srv))

	_, err := svc.Estimate(context.Background(), &domain.Task{Title: "Anything"})
	assert.Error(t, err)
}

func TestRankService_WithHTTPTestServer(t *testing.T) {
	srv := newFakeOllama(t, `{
		"ordered_ids": ["b", "a"],
		"rationale_by_id": {"b": "due first", "a": "lower stakes"},
		"recommendations": ["Start with the exam prep."]
	}`)
	defer srv.Close()

	svc := NewRankService(testClient(srv))

	result, err := svc.Rank(context.Background(), []domain.Task{
		{ID: "a", Title: "A"},
		{ID: "b", Title: "B"},
	})
	require.NoError(t, err)
	require.NotNil(t, result.Advice)

	assert.Equal(t, []string{"b", "a"}, result.Advice.OrderedIDs)
	assert.Equal(t, "due first", result.Advice.RationaleByID["b"])
	assert.Equal(t, []string{"Start with the exam prep."}, result.Recommendations)
}

func TestRankService_DuplicateIDsRejected(t *testing.T) {
	srv := newFakeOllama(t, `{"ordered_ids": ["a", "a"], "rationale_by_id": {}}`)
	defer srv.Close()

	svc := NewRankService(testClient(srv))

	_, err := svc.Rank(context.Background(), []domain.Task{{ID: "a", Title: "A"}})
	assert.Error(t, err)
}

func TestRankService_EmptyTaskListErrors(t *testing.T) {
	svc := NewRankService(nil)

	_, err := svc.Rank(context.Background(), nil)
	assert.Error(t, err)
}
