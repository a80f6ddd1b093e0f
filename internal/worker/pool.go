package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Pool - пул воркеров, рассылающих напоминания по наступившим reminder_time.
// Факт отправки фиксируется в отдельной таблице reminder_dispatches, поэтому
// сами задачи воркеры не изменяют, а каждое напоминание уходит ровно один раз.
type Pool struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
	count  int
	wg     sync.WaitGroup
	stop   chan struct{}
}

func NewPool(pool *pgxpool.Pool, logger *zap.Logger, count int) *Pool {
	return &Pool{
		pool:   pool,
		logger: logger,
		count:  count,
		stop:   make(chan struct{}),
	}
}

func (p *Pool) Start(ctx context.Context) {
	p.logger.Info("Starting reminder workers", zap.Int("workers", p.count))

	for i := 0; i < p.count; i++ {
		p.wg.Add(1)
		go p.worker(ctx, i)
	}
}

func (p *Pool) Stop() {
	p.logger.Info("Stopping reminder workers...")
	close(p.stop)
	p.wg.Wait()
	p.logger.Info("Reminder workers stopped")
}

func (p *Pool) worker(ctx context.Context, id int) {
	defer p.wg.Done()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-p.stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.dispatchNext(ctx, id); err != nil && !errors.Is(err, pgx.ErrNoRows) {
				p.logger.Error("reminder worker error", zap.Int("worker", id), zap.Error(err))
			}
		}
	}
}

type reminder struct {
	TaskID       int64
	UserID       uuid.UUID
	Title        string
	ReminderTime time.Time
}

// dispatchNext забирает одно наступившее напоминание и логирует отправку.
// Если напоминаний нет - pgx.ErrNoRows, цикл воркера его игнорирует.
func (p *Pool) dispatchNext(ctx context.Context, workerID int) error {
	rem, err := p.claimReminder(ctx)
	if err != nil {
		return err
	}

	p.logger.Info("Reminder dispatched",
		zap.Int("worker", workerID),
		zap.Int64("task_id", rem.TaskID),
		zap.String("user_id", rem.UserID.String()),
		zap.String("title", rem.Title),
		zap.Time("reminder_time", rem.ReminderTime),
	)

	return nil
}

// claimReminder атомарно выбирает одно наступившее напоминание незавершенной
// задачи и записывает отправку. FOR UPDATE SKIP LOCKED не дает двум воркерам
// забрать одну и ту же задачу, уникальность task_id в reminder_dispatches
// закрывает повторную отправку между перезапусками.
func (p *Pool) claimReminder(ctx context.Context) (reminder, error) {
	var rem reminder

	err := p.pool.QueryRow(ctx, `
		WITH due AS (
			SELECT t.id
			FROM tasks t
			WHERE t.reminder_time IS NOT NULL
			  AND t.reminder_time <= now()
			  AND t.completed = false
			  AND NOT EXISTS (
				SELECT 1 FROM reminder_dispatches d WHERE d.task_id = t.id
			  )
			ORDER BY t.reminder_time
			FOR UPDATE OF t SKIP LOCKED
			LIMIT 1
		), dispatched AS (
			INSERT INTO reminder_dispatches (task_id)
			SELECT id FROM due
			RETURNING task_id
		)
		SELECT t.id, t.user_id, t.title, t.reminder_time
		FROM tasks t
		JOIN dispatched ON dispatched.task_id = t.id
	`).Scan(&rem.TaskID, &rem.UserID, &rem.Title, &rem.ReminderTime)

	return rem, err
}
