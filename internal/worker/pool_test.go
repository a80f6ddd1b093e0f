package worker

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-tracker/tests"
)

func TestPool_DispatchReminders(t *testing.T) {
	pool, cleanup := tests.SetupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	ctx := context.Background()

	tests.TruncateTables(t, pool)
	userID := tests.CreateUser(t, pool, "worker@example.com")

	// Пять задач с уже наступившими напоминаниями
	past := time.Now().Add(-time.Minute)
	for i := 0; i < 5; i++ {
		_, err := pool.Exec(ctx, `
			INSERT INTO tasks (user_id, title, reminder_time)
			VALUES ($1, $2, $3)
		`, userID, fmt.Sprintf("Reminder %d", i+1), past)
		require.NoError(t, err)
	}

	t.Run("workers dispatch due reminders", func(t *testing.T) {
		workerPool := NewPool(pool, logger, 2)
		workerPool.Start(ctx)

		success := tests.WaitForCondition(t, 15*time.Second, func() bool {
			var dispatched int
			pool.QueryRow(ctx, "SELECT COUNT(*) FROM reminder_dispatches").Scan(&dispatched)
			return dispatched >= 5
		})

		workerPool.Stop()
		assert.True(t, success, "all due reminders should be dispatched")
	})

	t.Run("no duplicate dispatches", func(t *testing.T) {
		var total, distinct int
		pool.QueryRow(ctx, "SELECT COUNT(*) FROM reminder_dispatches").Scan(&total)
		pool.QueryRow(ctx, "SELECT COUNT(DISTINCT task_id) FROM reminder_dispatches").Scan(&distinct)

		assert.Equal(t, 5, total)
		assert.Equal(t, total, distinct, "each reminder goes out exactly once")
	})
}

func TestPool_SkipsCompletedAndFutureReminders(t *testing.T) {
	pool, cleanup := tests.SetupTestDB(t)
	defer cleanup()

	logger := zap.NewNop()
	ctx := context.Background()

	tests.TruncateTables(t, pool)
	userID := tests.CreateUser(t, pool, "worker2@example.com")

	past := time.Now().Add(-time.Minute)
	future := time.Now().Add(time.Hour)

	_, err := pool.Exec(ctx, `
		INSERT INTO tasks (user_id, title, reminder_time, completed)
		VALUES ($1, 'done already', $2, true),
		       ($1, 'not due yet', $3, false),
		       ($1, 'no reminder', NULL, false)
	`, userID, past, future)
	require.NoError(t, err)

	workerPool := NewPool(pool, logger, 2)
	workerPool.Start(ctx)
	time.Sleep(3 * time.Second)
	workerPool.Stop()

	var dispatched int
	pool.QueryRow(ctx, "SELECT COUNT(*) FROM reminder_dispatches").Scan(&dispatched)
	assert.Equal(t, 0, dispatched, "completed, future and absent reminders must not be dispatched")
}
