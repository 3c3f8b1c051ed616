package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// StoredPlan is a generated schedule persisted for later review.
type StoredPlan struct {
	ID          string
	Label       string
	CreatedAt   time.Time
	HoursPerDay int
	Plan        contract.SchedulePlan
}

// PlanSummary is the listing view of a stored plan, without its sessions.
type PlanSummary struct {
	ID           string
	Label        string
	CreatedAt    time.Time
	TotalHours   float64
	DaysPlanned  int
	SessionCount int
}

type PreferencesRepo interface {
	Get(ctx context.Context) (*domain.UserPreferences, error)
	Upsert(ctx context.Context, p *domain.UserPreferences) error
}

type CompletionRepo interface {
	Create(ctx context.Context, rec *domain.CompletionRecord) error
	ListAll(ctx context.Context) ([]domain.CompletionRecord, error)
	ListByType(ctx context.Context, taskType domain.TaskType) ([]domain.CompletionRecord, error)
	ListRecent(ctx context.Context, days int) ([]domain.CompletionRecord, error)
}

type PlanRepo interface {
	Save(ctx context.Context, p *StoredPlan) error
	GetByID(ctx context.Context, id string) (*StoredPlan, error)
	List(ctx context.Context) ([]PlanSummary, error)
	Delete(ctx context.Context, id string) error
}
