package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RecurrenceType определяет правило повторения задачи
type RecurrenceType string

const (
	RecurrenceNone    RecurrenceType = "none"
	RecurrenceDaily   RecurrenceType = "daily"
	RecurrenceWeekly  RecurrenceType = "weekly"
	RecurrenceMonthly RecurrenceType = "monthly"
	RecurrenceYearly  RecurrenceType = "yearly"
)

func (rt RecurrenceType) Valid() bool {
	switch rt {
	case RecurrenceNone, RecurrenceDaily, RecurrenceWeekly, RecurrenceMonthly, RecurrenceYearly:
		return true
	}
	return false
}

type Task struct {
	ID                 int64          `json:"id"`
	UserID             uuid.UUID      `json:"user_id"`
	Title              string         `json:"title"`
	Description        *string        `json:"description"`
	Completed          bool           `json:"completed"`
	DueDate            *time.Time     `json:"due_date"`
	ReminderTime       *time.Time     `json:"reminder_time"`
	RecurrenceType     RecurrenceType `json:"recurrence_type"`
	RecurrenceInterval int            `json:"recurrence_interval"`
	ParentTaskID       *int64         `json:"parent_task_id"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

const (
	MaxTitleLen       = 200
	MaxDescriptionLen = 1000
)

// NormalizeTitle убирает крайние пробелы и схлопывает внутренние в один
func NormalizeTitle(title string) string {
	return strings.Join(strings.Fields(title), " ")
}
