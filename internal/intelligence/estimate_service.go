package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/fusion"
	"github.com/alexanderramin/metis/internal/llm"
)

// EstimateService produces a freeform workload estimate for one task.
// Callers are expected to substitute fusion.FallbackEstimate when it
// errors; estimation must never sink a whole pipeline run.
type EstimateService interface {
	Estimate(ctx context.Context, task *domain.Task) (fusion.FreeformEstimate, error)
}

type estimateService struct {
	client llm.Client
}

// NewEstimateService creates an EstimateService backed by an LLM client.
func NewEstimateService(client llm.Client) EstimateService {
	return &estimateService{client: client}
}

func (s *estimateService) Estimate(ctx context.Context, task *domain.Task) (fusion.FreeformEstimate, error) {
	var zero fusion.FreeformEstimate
	if s.client == nil {
		return zero, fmt.Errorf("no estimator configured")
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskEstimate,
		SystemPrompt: estimateSystemPrompt,
		UserPrompt:   buildEstimateUserPrompt(task),
	})
	if err != nil {
		return zero, fmt.Errorf("llm estimate failed: %w", err)
	}

	est, err := llm.ExtractJSON[fusion.FreeformEstimate](resp.Text, validateFreeformEstimate)
	if err != nil {
		return zero, fmt.Errorf("failed to extract estimate: %w", err)
	}

	// Soft clamp after validation: hours above the sane ceiling survive
	// extraction but never propagate further.
	if est.EstimatedHours > 40 {
		est.EstimatedHours = 40
	}
	if est.EstimatedHours < 0.5 {
		est.EstimatedHours = 0.5
	}
	est.Complexity = domain.NormalizeComplexity(string(est.Complexity))
	return est, nil
}
