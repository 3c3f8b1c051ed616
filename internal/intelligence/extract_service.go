package intelligence

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/llm"
)

// ExtractService turns unstructured text into raw task records.
type ExtractService interface {
	Extract(ctx context.Context, text, sourceType string) ([]contract.RawTask, error)
}

type extractService struct {
	client llm.Client
}

// NewExtractService creates an ExtractService backed by an LLM client.
// A nil client skips straight to the pattern-based extractor.
func NewExtractService(client llm.Client) ExtractService {
	return &extractService{client: client}
}

// Extract parses text with the LLM and falls back to line-pattern
// extraction when the model is unavailable or its output cannot be
// repaired. An empty result with no error means the text genuinely
// contains no recognizable tasks.
func (s *extractService) Extract(ctx context.Context, text, sourceType string) ([]contract.RawTask, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no text to extract tasks from")
	}
	if sourceType == "" {
		sourceType = "document"
	}

	if s.client == nil {
		return ExtractByPattern(text), nil
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskExtract,
		SystemPrompt: extractSystemPrompt,
		UserPrompt:   buildExtractUserPrompt(text, sourceType),
	})
	if err != nil {
		return ExtractByPattern(text), nil
	}

	payload, err := llm.ExtractJSON[extractPayload](resp.Text, validateExtractPayload)
	if err != nil {
		return ExtractByPattern(text), nil
	}

	tasks := payload.Tasks
	for i := range tasks {
		normalizeRawTask(&tasks[i])
	}
	return tasks, nil
}
