package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// TaskRepository определяет интерфейс для работы с задачами.
// Все операции над конкретной задачей привязаны к (id, владелец):
// чужая задача неотличима от несуществующей.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id int64, userID uuid.UUID) (model.Task, error)
	List(ctx context.Context, userID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id int64, userID uuid.UUID) error
	Toggle(ctx context.Context, id int64, userID uuid.UUID) (model.Task, error)
}

// UserRepository определяет интерфейс для работы с учетными записями
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
}
