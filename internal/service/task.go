package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/BuzzLyutic/task-tracker/internal/repo"
)

var ErrValidation = errors.New("validation error")

type TaskService struct {
	repo repo.TaskRepository
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, userID uuid.UUID, t model.Task) (model.Task, error) {
	t.UserID = userID
	t.Title = model.NormalizeTitle(t.Title)
	applyDefaults(&t)

	if err := validate(t); err != nil {
		return t, err
	}

	// Новая задача всегда не завершена и не является чьим-то повторением
	t.Completed = false
	t.ParentTaskID = nil

	return s.repo.Create(ctx, t)
}

func (s *TaskService) Get(ctx context.Context, id int64, userID uuid.UUID) (model.Task, error) {
	return s.repo.Get(ctx, id, userID)
}

func (s *TaskService) List(ctx context.Context, userID uuid.UUID) ([]model.Task, error) {
	return s.repo.List(ctx, userID)
}

// Update заменяет все редактируемые поля; id и completed остаются прежними
func (s *TaskService) Update(ctx context.Context, id int64, userID uuid.UUID, t model.Task) (model.Task, error) {
	t.ID = id
	t.UserID = userID
	t.Title = model.NormalizeTitle(t.Title)
	applyDefaults(&t)

	if err := validate(t); err != nil {
		return t, err
	}

	return s.repo.Update(ctx, t)
}

func (s *TaskService) Delete(ctx context.Context, id int64, userID uuid.UUID) error {
	return s.repo.Delete(ctx, id, userID)
}

func (s *TaskService) Toggle(ctx context.Context, id int64, userID uuid.UUID) (model.Task, error) {
	return s.repo.Toggle(ctx, id, userID)
}

func applyDefaults(t *model.Task) {
	if t.RecurrenceType == "" {
		t.RecurrenceType = model.RecurrenceNone
	}
	if t.RecurrenceInterval == 0 {
		t.RecurrenceInterval = 1
	}
}

func validate(t model.Task) error {
	if t.Title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(t.Title) > model.MaxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, model.MaxTitleLen)
	}
	if t.Description != nil && utf8.RuneCountInString(*t.Description) > model.MaxDescriptionLen {
		return fmt.Errorf("%w: description exceeds %d characters", ErrValidation, model.MaxDescriptionLen)
	}
	if !t.RecurrenceType.Valid() {
		return fmt.Errorf("%w: unknown recurrence type %q", ErrValidation, t.RecurrenceType)
	}
	// Интервал меньше 1 либо зацикливает повторение, либо двигает даты назад
	if t.RecurrenceInterval < 1 {
		return fmt.Errorf("%w: recurrence interval must be at least 1", ErrValidation)
	}
	return nil
}
