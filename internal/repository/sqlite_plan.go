package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/metis/internal/contract"
	"github.com/alexanderramin/metis/internal/db"
	"github.com/google/uuid"
)

// SQLitePlanRepo implements PlanRepo using a SQLite database. Construct it
// over a transaction DBTX when a plan and its sessions must land together.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(conn db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: conn}
}

func (r *SQLitePlanRepo) Save(ctx context.Context, p *StoredPlan) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO plans (id, label, created_at, hours_per_day, total_hours,
		days_planned, needs_more_hours, adjusted_hours_per_day, warning)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.Label,
		p.CreatedAt.UTC().Format(time.RFC3339),
		p.HoursPerDay,
		p.Plan.TotalHours,
		p.Plan.DaysPlanned,
		boolToInt(p.Plan.NeedsMoreHours),
		p.Plan.AdjustedHoursPerDay,
		p.Plan.Warning,
	)
	if err != nil {
		return fmt.Errorf("inserting plan: %w", err)
	}

	sessionQuery := `INSERT INTO plan_sessions (id, plan_id, task_id, task_title,
		day, priority, hours, order_index)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	for i, s := range p.Plan.Sessions {
		sessionID := s.ID
		if sessionID == "" {
			sessionID = uuid.New().String()
		}
		_, err := r.db.ExecContext(ctx, sessionQuery,
			sessionID,
			p.ID,
			s.TaskID,
			s.TaskTitle,
			s.Day,
			s.Priority,
			s.EstimatedHours,
			i,
		)
		if err != nil {
			return fmt.Errorf("inserting plan session %d: %w", i, err)
		}
	}
	return nil
}

func (r *SQLitePlanRepo) GetByID(ctx context.Context, id string) (*StoredPlan, error) {
	query := `SELECT id, label, created_at, hours_per_day, total_hours,
		days_planned, needs_more_hours, adjusted_hours_per_day, warning
		FROM plans WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	var p StoredPlan
	var createdAt string
	var needsMore int
	err := row.Scan(
		&p.ID,
		&p.Label,
		&createdAt,
		&p.HoursPerDay,
		&p.Plan.TotalHours,
		&p.Plan.DaysPlanned,
		&needsMore,
		&p.Plan.AdjustedHoursPerDay,
		&p.Plan.Warning,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("plan %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning plan: %w", err)
	}
	p.CreatedAt = parseStoredTime(createdAt)
	p.Plan.NeedsMoreHours = intToBool(needsMore)

	sessions, err := r.loadSessions(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Plan.Sessions = sessions
	return &p, nil
}

func (r *SQLitePlanRepo) loadSessions(ctx context.Context, planID string) ([]contract.ScheduleSession, error) {
	query := `SELECT id, task_id, task_title, day, priority, hours
		FROM plan_sessions WHERE plan_id = ? ORDER BY order_index`
	rows, err := r.db.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("listing plan sessions: %w", err)
	}
	defer rows.Close()

	sessions := []contract.ScheduleSession{}
	for rows.Next() {
		var s contract.ScheduleSession
		err := rows.Scan(&s.ID, &s.TaskID, &s.TaskTitle, &s.Day, &s.Priority, &s.EstimatedHours)
		if err != nil {
			return nil, fmt.Errorf("scanning plan session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plan sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]PlanSummary, error) {
	query := `SELECT p.id, p.label, p.created_at, p.total_hours, p.days_planned,
		COUNT(s.id)
		FROM plans p
		LEFT JOIN plan_sessions s ON s.plan_id = p.id
		GROUP BY p.id
		ORDER BY p.created_at DESC, p.id`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	defer rows.Close()

	var summaries []PlanSummary
	for rows.Next() {
		var s PlanSummary
		var createdAt string
		err := rows.Scan(&s.ID, &s.Label, &createdAt, &s.TotalHours, &s.DaysPlanned, &s.SessionCount)
		if err != nil {
			return nil, fmt.Errorf("scanning plan summary: %w", err)
		}
		s.CreatedAt = parseStoredTime(createdAt)
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating plans: %w", err)
	}
	return summaries, nil
}

func (r *SQLitePlanRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting plan: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking plan deletion: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("plan %s: %w", id, ErrNotFound)
	}
	return nil
}
