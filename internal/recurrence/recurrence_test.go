package recurrence

import (
	"testing"
	"time"

	"github.com/BuzzLyutic/task-tracker/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		rt       model.RecurrenceType
		interval int
		want     time.Time
	}{
		{
			name:     "daily",
			from:     date(2025, time.January, 1),
			rt:       model.RecurrenceDaily,
			interval: 1,
			want:     date(2025, time.January, 2),
		},
		{
			name:     "daily with interval",
			from:     date(2025, time.January, 30),
			rt:       model.RecurrenceDaily,
			interval: 3,
			want:     date(2025, time.February, 2),
		},
		{
			name:     "weekly every two weeks",
			from:     date(2025, time.January, 1),
			rt:       model.RecurrenceWeekly,
			interval: 2,
			want:     date(2025, time.January, 15),
		},
		{
			name:     "monthly simple",
			from:     date(2025, time.March, 15),
			rt:       model.RecurrenceMonthly,
			interval: 1,
			want:     date(2025, time.April, 15),
		},
		{
			name:     "monthly jan 31 clamps to feb 28",
			from:     date(2025, time.January, 31),
			rt:       model.RecurrenceMonthly,
			interval: 1,
			want:     date(2025, time.February, 28),
		},
		{
			name:     "monthly jan 31 clamps to feb 29 on leap year",
			from:     date(2024, time.January, 31),
			rt:       model.RecurrenceMonthly,
			interval: 1,
			want:     date(2024, time.February, 29),
		},
		{
			name:     "monthly crosses year boundary",
			from:     date(2025, time.November, 30),
			rt:       model.RecurrenceMonthly,
			interval: 3,
			want:     date(2026, time.February, 28),
		},
		{
			name:     "monthly with interval 12 equals one year",
			from:     date(2025, time.May, 10),
			rt:       model.RecurrenceMonthly,
			interval: 12,
			want:     date(2026, time.May, 10),
		},
		{
			name:     "yearly",
			from:     date(2025, time.June, 15),
			rt:       model.RecurrenceYearly,
			interval: 1,
			want:     date(2026, time.June, 15),
		},
		{
			name:     "yearly feb 29 clamps to feb 28",
			from:     date(2024, time.February, 29),
			rt:       model.RecurrenceYearly,
			interval: 1,
			want:     date(2025, time.February, 28),
		},
		{
			name:     "yearly feb 29 to next leap year stays feb 29",
			from:     date(2024, time.February, 29),
			rt:       model.RecurrenceYearly,
			interval: 4,
			want:     date(2028, time.February, 29),
		},
		{
			name:     "none returns input unchanged",
			from:     date(2025, time.January, 1),
			rt:       model.RecurrenceNone,
			interval: 5,
			want:     date(2025, time.January, 1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Next(tt.from, tt.rt, tt.interval)
			assert.True(t, got.Equal(tt.want), "want %s, got %s", tt.want, got)
		})
	}
}

func TestNext_PreservesTimeOfDay(t *testing.T) {
	from := time.Date(2025, time.January, 31, 9, 30, 45, 0, time.UTC)
	got := Next(from, model.RecurrenceMonthly, 1)

	assert.Equal(t, 9, got.Hour())
	assert.Equal(t, 30, got.Minute())
	assert.Equal(t, 45, got.Second())
}

func TestSuccessor(t *testing.T) {
	due := date(2025, time.January, 1)
	reminder := date(2024, time.December, 30)
	desc := "every two weeks"

	task := model.Task{
		ID:                 42,
		Title:              "Water plants",
		Description:        &desc,
		Completed:          true,
		DueDate:            &due,
		ReminderTime:       &reminder,
		RecurrenceType:     model.RecurrenceWeekly,
		RecurrenceInterval: 2,
	}

	next := Successor(task)

	assert.False(t, next.Completed)
	assert.Equal(t, task.Title, next.Title)
	assert.Equal(t, task.Description, next.Description)
	assert.Equal(t, task.RecurrenceType, next.RecurrenceType)
	assert.Equal(t, task.RecurrenceInterval, next.RecurrenceInterval)

	require.NotNil(t, next.ParentTaskID)
	assert.Equal(t, int64(42), *next.ParentTaskID)

	require.NotNil(t, next.DueDate)
	assert.True(t, next.DueDate.Equal(date(2025, time.January, 15)))

	// Напоминание сдвигается тем же правилом независимо от due_date,
	// поэтому исходный зазор в два дня сохраняется
	require.NotNil(t, next.ReminderTime)
	assert.True(t, next.ReminderTime.Equal(date(2025, time.January, 13)))
}

func TestSuccessor_NoReminder(t *testing.T) {
	due := date(2025, time.March, 31)
	task := model.Task{
		ID:                 7,
		Title:              "Pay rent",
		DueDate:            &due,
		RecurrenceType:     model.RecurrenceMonthly,
		RecurrenceInterval: 1,
	}

	next := Successor(task)

	assert.Nil(t, next.ReminderTime)
	require.NotNil(t, next.DueDate)
	assert.True(t, next.DueDate.Equal(date(2025, time.April, 30)))
}
