package intelligence

import (
	"context"
	"fmt"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/llm"
	"github.com/alexanderramin/metis/internal/scheduler"
)

// RankService asks the LLM for a holistic priority ordering over a task
// list. Unlike estimation it reports failure as an explicit error so the
// caller can fall back to the heuristic ranking alone.
type RankService interface {
	Rank(ctx context.Context, tasks []domain.Task) (*RankResult, error)
}

type rankService struct {
	client llm.Client
}

// NewRankService creates a RankService backed by an LLM client.
func NewRankService(client llm.Client) RankService {
	return &rankService{client: client}
}

func (s *rankService) Rank(ctx context.Context, tasks []domain.Task) (*RankResult, error) {
	if len(tasks) == 0 {
		return nil, fmt.Errorf("no tasks to rank")
	}
	if s.client == nil {
		return nil, fmt.Errorf("no ranking advisor configured")
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Task:         llm.TaskRank,
		SystemPrompt: rankSystemPrompt,
		UserPrompt:   buildRankUserPrompt(tasks),
	})
	if err != nil {
		return nil, fmt.Errorf("llm rank failed: %w", err)
	}

	payload, err := llm.ExtractJSON[rankPayload](resp.Text, validateRankPayload)
	if err != nil {
		return nil, fmt.Errorf("failed to extract ranking: %w", err)
	}

	return &RankResult{
		Advice: &scheduler.RankAdvice{
			OrderedIDs:    payload.OrderedIDs,
			RationaleByID: payload.RationaleByID,
		},
		Recommendations: payload.Recommendations,
	}, nil
}
