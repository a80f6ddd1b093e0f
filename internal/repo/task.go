package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/recurrence"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `id, user_id, title, description, completed, due_date, reminder_time,
		recurrence_type, recurrence_interval, parent_task_id, created_at, updated_at`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

type row interface {
	Scan(dest ...any) error
}

func scanTask(r row) (model.Task, error) {
	var t model.Task
	err := r.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.DueDate, &t.ReminderTime,
		&t.RecurrenceType, &t.RecurrenceInterval, &t.ParentTaskID, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	created, err := scanTask(r.pool.QueryRow(ctx, `
		INSERT INTO tasks (user_id, title, description, due_date, reminder_time,
			recurrence_type, recurrence_interval, parent_task_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING `+taskColumns+`
	`, t.UserID, t.Title, t.Description, t.DueDate, t.ReminderTime,
		t.RecurrenceType, t.RecurrenceInterval, t.ParentTaskID))
	return created, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id int64, userID uuid.UUID) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID))

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TaskRepo) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Update заменяет все редактируемые поля целиком; id и completed не меняются
func (r *TaskRepo) Update(ctx context.Context, t model.Task) (model.Task, error) {
	updated, err := scanTask(r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET title = $3, description = $4, due_date = $5, reminder_time = $6,
			recurrence_type = $7, recurrence_interval = $8, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+taskColumns+`
	`, t.ID, t.UserID, t.Title, t.Description, t.DueDate, t.ReminderTime,
		t.RecurrenceType, t.RecurrenceInterval))

	if errors.Is(err, pgx.ErrNoRows) {
		return updated, ErrorNotFound
	}
	return updated, err
}

func (r *TaskRepo) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// Toggle переключает статус завершения и при переходе в completed
// для повторяющейся задачи с due_date вставляет задачу следующего повторения.
// Обе записи идут в одной транзакции: неудачная вставка откатывает и переключение.
func (r *TaskRepo) Toggle(ctx context.Context, id int64, userID uuid.UUID) (model.Task, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Task{}, err
	}
	defer tx.Rollback(ctx)

	t, err := scanTask(tx.QueryRow(ctx, `
		UPDATE tasks
		SET completed = NOT completed, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING `+taskColumns+`
	`, id, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, err
	}

	if t.Completed && t.RecurrenceType != model.RecurrenceNone && t.DueDate != nil {
		next := recurrence.Successor(t)
		if _, err := tx.Exec(ctx, `
			INSERT INTO tasks (user_id, title, description, due_date, reminder_time,
				recurrence_type, recurrence_interval, parent_task_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, next.UserID, next.Title, next.Description, next.DueDate, next.ReminderTime,
			next.RecurrenceType, next.RecurrenceInterval, next.ParentTaskID); err != nil {
			return model.Task{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
