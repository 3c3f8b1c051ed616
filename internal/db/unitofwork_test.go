package db_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/alexanderramin/metis/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestUOW(t *testing.T) *db.SQLiteUnitOfWork {
	t.Helper()
	database, err := db.OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return db.NewSQLiteUnitOfWork(database)
}

func planExists(uow *db.SQLiteUnitOfWork, id string) bool {
	var found bool
	_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		var n int
		row := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans WHERE id = ?`, id)
		if err := row.Scan(&n); err != nil {
			return err
		}
		found = n > 0
		return nil
	})
	return found
}

func insertPlan(ctx context.Context, tx db.DBTX, id string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO plans (id, created_at, hours_per_day, total_hours, days_planned)
		VALUES (?, '2025-01-01T00:00:00Z', 4, 6.0, 2)`, id)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	uow := openTestUOW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertPlan(ctx, tx, "p1")
	})
	require.NoError(t, err)

	assert.True(t, planExists(uow, "p1"), "plan should exist after commit")
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	uow := openTestUOW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPlan(ctx, tx, "p2"); err != nil {
			return err
		}
		return fmt.Errorf("deliberate failure")
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deliberate failure")

	assert.False(t, planExists(uow, "p2"), "plan should not exist after rollback")
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	uow := openTestUOW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertPlan(ctx, tx, "p3")
			panic("boom")
		})
	})

	assert.False(t, planExists(uow, "p3"), "plan should not exist after panic rollback")
}

func TestWithinTx_PlanWithSessionsIsAtomic(t *testing.T) {
	uow := openTestUOW(t)

	// Second insert violates the plan_sessions primary key, so the plan
	// row written first must roll back with it.
	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertPlan(ctx, tx, "p4"); err != nil {
			return err
		}
		for _, id := range []string{"s1", "s1"} {
			_, err := tx.ExecContext(ctx, `INSERT INTO plan_sessions (id, plan_id, task_id, day, hours, order_index)
				VALUES (?, 'p4', 't1', '2025-01-02', 2.0, 0)`, id)
			if err != nil {
				return err
			}
		}
		return nil
	})
	require.Error(t, err)

	assert.False(t, planExists(uow, "p4"))
}
