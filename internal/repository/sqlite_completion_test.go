package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/metis/internal/domain"
	"github.com/alexanderramin/metis/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionRepo_Create_AssignsIDAndTimestamp(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(db)
	ctx := context.Background()

	rec := domain.CompletionRecord{
		TaskTitle:   "Essay draft",
		TaskType:    domain.TypeAssignment,
		ActualHours: 4.5,
	}
	require.NoError(t, repo.Create(ctx, &rec))

	assert.NotEmpty(t, rec.ID)
	assert.False(t, rec.CompletedAt.IsZero())
}

func TestCompletionRepo_CreateAndListAll_RoundTrip(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(db)
	ctx := context.Background()

	completed := time.Date(2025, 2, 10, 21, 30, 0, 0, time.UTC)
	rec := testutil.NewTestCompletion(domain.TypeExam, 9.0,
		testutil.WithEstimated(8.0),
		testutil.WithSessionHours(1.5),
		testutil.WithCompletedAt(completed),
	)
	require.NoError(t, repo.Create(ctx, &rec))

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, domain.TypeExam, got.TaskType)
	assert.Equal(t, 8.0, got.EstimatedHours)
	assert.Equal(t, 9.0, got.ActualHours)
	assert.Equal(t, 1.5, got.SessionHours)
	assert.True(t, got.CompletedAt.Equal(completed))
}

func TestCompletionRepo_ListAll_NewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(db)
	ctx := context.Background()

	base := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		rec := testutil.NewTestCompletion(domain.TypeReading, 1.0,
			testutil.WithCompletedAt(base.AddDate(0, 0, i)))
		require.NoError(t, repo.Create(ctx, &rec))
	}

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.True(t, records[0].CompletedAt.After(records[1].CompletedAt))
	assert.True(t, records[1].CompletedAt.After(records[2].CompletedAt))
}

func TestCompletionRepo_ListByType_FiltersOthers(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(db)
	ctx := context.Background()

	for _, tt := range []domain.TaskType{domain.TypeExam, domain.TypeExam, domain.TypeQuiz} {
		rec := testutil.NewTestCompletion(tt, 2.0)
		require.NoError(t, repo.Create(ctx, &rec))
	}

	exams, err := repo.ListByType(ctx, domain.TypeExam)
	require.NoError(t, err)
	assert.Len(t, exams, 2)
	for _, rec := range exams {
		assert.Equal(t, domain.TypeExam, rec.TaskType)
	}

	labs, err := repo.ListByType(ctx, domain.TypeLab)
	require.NoError(t, err)
	assert.Empty(t, labs)
}

func TestCompletionRepo_ListRecent_CutsOffOldRecords(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(db)
	ctx := context.Background()

	old := testutil.NewTestCompletion(domain.TypeProject, 10.0,
		testutil.WithCompletedAt(time.Now().UTC().AddDate(0, 0, -60)))
	require.NoError(t, repo.Create(ctx, &old))

	fresh := testutil.NewTestCompletion(domain.TypeProject, 12.0,
		testutil.WithCompletedAt(time.Now().UTC().AddDate(0, 0, -2)))
	require.NoError(t, repo.Create(ctx, &fresh))

	recent, err := repo.ListRecent(ctx, 30)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, fresh.ID, recent[0].ID)
}

func TestCompletionRepo_HistoryFeedsPredictorShape(t *testing.T) {
	// The calibration predictor consumes ListAll output directly; verify
	// the round trip preserves everything it reads.
	db := testutil.NewTestDB(t)
	repo := NewSQLiteCompletionRepo(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		rec := testutil.NewTestCompletion(domain.TypeQuiz, 2.5)
		require.NoError(t, repo.Create(ctx, &rec))
	}

	records, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for _, rec := range records {
		assert.Equal(t, domain.TypeQuiz, rec.TaskType)
		assert.Greater(t, rec.ActualHours, 0.0)
	}
}
