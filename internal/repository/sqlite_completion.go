package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/metis/internal/db"
	"github.com/alexanderramin/metis/internal/domain"
	"github.com/google/uuid"
)

// SQLiteCompletionRepo implements CompletionRepo using a SQLite database.
type SQLiteCompletionRepo struct {
	db db.DBTX
}

// NewSQLiteCompletionRepo creates a new SQLiteCompletionRepo.
func NewSQLiteCompletionRepo(conn db.DBTX) *SQLiteCompletionRepo {
	return &SQLiteCompletionRepo{db: conn}
}

func (r *SQLiteCompletionRepo) Create(ctx context.Context, rec *domain.CompletionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CompletedAt.IsZero() {
		rec.CompletedAt = time.Now().UTC()
	}
	query := `INSERT INTO completions (id, task_title, task_type, estimated_hours,
		actual_hours, session_hours, completed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.TaskTitle,
		string(rec.TaskType),
		rec.EstimatedHours,
		rec.ActualHours,
		rec.SessionHours,
		rec.CompletedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting completion: %w", err)
	}
	return nil
}

func (r *SQLiteCompletionRepo) ListAll(ctx context.Context) ([]domain.CompletionRecord, error) {
	query := selectCompletions + ` ORDER BY completed_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing completions: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *SQLiteCompletionRepo) ListByType(ctx context.Context, taskType domain.TaskType) ([]domain.CompletionRecord, error) {
	query := selectCompletions + ` WHERE task_type = ? ORDER BY completed_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, string(taskType))
	if err != nil {
		return nil, fmt.Errorf("listing completions by type: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

func (r *SQLiteCompletionRepo) ListRecent(ctx context.Context, days int) ([]domain.CompletionRecord, error) {
	cutoff := time.Now().UTC().AddDate(0, 0, -days).Format(time.RFC3339)
	query := selectCompletions + ` WHERE completed_at >= ? ORDER BY completed_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("listing recent completions: %w", err)
	}
	defer rows.Close()
	return scanCompletions(rows)
}

const selectCompletions = `SELECT id, task_title, task_type, estimated_hours,
	actual_hours, session_hours, completed_at
	FROM completions`

func scanCompletions(rows *sql.Rows) ([]domain.CompletionRecord, error) {
	var records []domain.CompletionRecord
	for rows.Next() {
		var rec domain.CompletionRecord
		var taskType, completedAt string
		err := rows.Scan(
			&rec.ID,
			&rec.TaskTitle,
			&taskType,
			&rec.EstimatedHours,
			&rec.ActualHours,
			&rec.SessionHours,
			&completedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		rec.TaskType = domain.TaskType(taskType)
		rec.CompletedAt = parseStoredTime(completedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating completions: %w", err)
	}
	return records, nil
}
