package recurrence

import (
	"time"

	"github.com/BuzzLyutic/task-tracker/internal/model"
)

// Next вычисляет дату следующего повторения.
// Месяцы и годы добавляются по календарю: если в целевом месяце нет такого
// числа, берется последний день месяца (31 янв + 1 мес = 28/29 фев, а не 3 марта).
// time.AddDate здесь не подходит: он нормализует переполнение в следующий месяц.
func Next(t time.Time, rt model.RecurrenceType, interval int) time.Time {
	switch rt {
	case model.RecurrenceDaily:
		return t.AddDate(0, 0, interval)
	case model.RecurrenceWeekly:
		return t.AddDate(0, 0, 7*interval)
	case model.RecurrenceMonthly:
		return addMonths(t, interval)
	case model.RecurrenceYearly:
		return addMonths(t, 12*interval)
	default:
		return t
	}
}

func addMonths(t time.Time, months int) time.Time {
	year, month, day := t.Date()

	total := int(month) - 1 + months
	year += total / 12
	month = time.Month(total%12 + 1)

	if last := lastDayOfMonth(year, month); day > last {
		day = last
	}

	return time.Date(year, month, day, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

func lastDayOfMonth(year int, month time.Month) int {
	// День 0 следующего месяца - последний день текущего
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Successor строит задачу следующего повторения для завершенной задачи.
// Владелец, заголовок, описание и настройки повторения наследуются как есть;
// смещение применяется к due_date и reminder_time независимо, одной и той же
// функцией. Вызывающий обязан гарантировать task.DueDate != nil.
func Successor(task model.Task) model.Task {
	next := model.Task{
		UserID:             task.UserID,
		Title:              task.Title,
		Description:        task.Description,
		Completed:          false,
		RecurrenceType:     task.RecurrenceType,
		RecurrenceInterval: task.RecurrenceInterval,
		ParentTaskID:       &task.ID,
	}

	due := Next(*task.DueDate, task.RecurrenceType, task.RecurrenceInterval)
	next.DueDate = &due

	if task.ReminderTime != nil {
		reminder := Next(*task.ReminderTime, task.RecurrenceType, task.RecurrenceInterval)
		next.ReminderTime = &reminder
	}

	return next
}
