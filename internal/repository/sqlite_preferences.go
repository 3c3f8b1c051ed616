package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/metis/internal/db"
	"github.com/alexanderramin/metis/internal/domain"
)

// SQLitePreferencesRepo implements PreferencesRepo using a SQLite database.
// Preferences are a singleton row seeded by the migrations.
type SQLitePreferencesRepo struct {
	db db.DBTX
}

// NewSQLitePreferencesRepo creates a new SQLitePreferencesRepo.
func NewSQLitePreferencesRepo(conn db.DBTX) *SQLitePreferencesRepo {
	return &SQLitePreferencesRepo{db: conn}
}

func (r *SQLitePreferencesRepo) Get(ctx context.Context) (*domain.UserPreferences, error) {
	query := `SELECT optimal_time_of_day, recommended_session_length,
		prefers_short_sessions, estimation_bias
		FROM user_preferences WHERE id = 'default'`
	row := r.db.QueryRowContext(ctx, query)

	var p domain.UserPreferences
	var short int
	err := row.Scan(
		&p.OptimalTimeOfDay,
		&p.RecommendedSessionLength,
		&short,
		&p.EstimationBias,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("user preferences: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning user preferences: %w", err)
	}
	p.PrefersShortSessions = intToBool(short)
	return &p, nil
}

func (r *SQLitePreferencesRepo) Upsert(ctx context.Context, p *domain.UserPreferences) error {
	query := `INSERT OR REPLACE INTO user_preferences (id, optimal_time_of_day,
		recommended_session_length, prefers_short_sessions, estimation_bias, updated_at)
		VALUES ('default', ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.OptimalTimeOfDay,
		p.RecommendedSessionLength,
		boolToInt(p.PrefersShortSessions),
		p.EstimationBias,
		nowUTC(),
	)
	if err != nil {
		return fmt.Errorf("upserting user preferences: %w", err)
	}
	return nil
}
