package memstore

import (
	"errors"
	"fmt"
	"sort"
	"time"
	"unicode/utf8"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

var (
	ErrNotFound   = errors.New("task not found")
	ErrValidation = errors.New("validation error")
)

// Store - хранилище однопользовательского CLI-варианта: один процесс, без
// персистентности. Счетчик ID только растет, удаленные номера не выдаются заново.
type Store struct {
	tasks  map[int64]model.Task
	nextID int64
}

func New() *Store {
	return &Store{
		tasks:  make(map[int64]model.Task),
		nextID: 1,
	}
}

func (s *Store) Create(title, description string) (model.Task, error) {
	title = model.NormalizeTitle(title)
	if err := validateTitle(title); err != nil {
		return model.Task{}, err
	}
	if utf8.RuneCountInString(description) > model.MaxDescriptionLen {
		return model.Task{}, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, model.MaxDescriptionLen)
	}

	now := time.Now()
	task := model.Task{
		ID:                 s.nextID,
		Title:              title,
		Description:        &description,
		Completed:          false,
		RecurrenceType:     model.RecurrenceNone,
		RecurrenceInterval: 1,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	s.nextID++
	s.tasks[task.ID] = task

	return task, nil
}

func (s *Store) Get(id int64) (model.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return model.Task{}, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return task, nil
}

// List возвращает все задачи, отсортированные по ID
func (s *Store) List() []model.Task {
	tasks := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func (s *Store) SetTitle(id int64, title string) (model.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return model.Task{}, err
	}

	title = model.NormalizeTitle(title)
	if err := validateTitle(title); err != nil {
		return model.Task{}, err
	}

	task.Title = title
	task.UpdatedAt = time.Now()
	s.tasks[id] = task
	return task, nil
}

func (s *Store) SetDescription(id int64, description string) (model.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return model.Task{}, err
	}

	if utf8.RuneCountInString(description) > model.MaxDescriptionLen {
		return model.Task{}, fmt.Errorf("%w: description exceeds %d characters", ErrValidation, model.MaxDescriptionLen)
	}

	task.Description = &description
	task.UpdatedAt = time.Now()
	s.tasks[id] = task
	return task, nil
}

func (s *Store) SetCompleted(id int64, completed bool) (model.Task, error) {
	task, err := s.Get(id)
	if err != nil {
		return model.Task{}, err
	}

	task.Completed = completed
	task.UpdatedAt = time.Now()
	s.tasks[id] = task
	return task, nil
}

func (s *Store) Delete(id int64) error {
	if _, ok := s.tasks[id]; !ok {
		return fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	delete(s.tasks, id)
	return nil
}

// Counts возвращает общее число задач и число завершенных
func (s *Store) Counts() (total, completed int) {
	total = len(s.tasks)
	for _, t := range s.tasks {
		if t.Completed {
			completed++
		}
	}
	return total, completed
}

func validateTitle(title string) error {
	if title == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	if utf8.RuneCountInString(title) > model.MaxTitleLen {
		return fmt.Errorf("%w: title exceeds %d characters", ErrValidation, model.MaxTitleLen)
	}
	return nil
}
