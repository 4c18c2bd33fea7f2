package domain

import (
	"fmt"
	"time"
)

// Wire layouts for Assignment.DueDate and Assignment.ReminderTime.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type Assignment struct {
	Name         string  `json:"name"`
	DueDate      string  `json:"dueDate"`
	ReminderTime *string `json:"reminderTime"`
	Notified     bool    `json:"notified"`
	ID           int64   `json:"id"`
}

// HasReminder reports whether a reminder was requested.
func (a Assignment) HasReminder() bool {
	return a.ReminderTime != nil
}

// ReminderAt combines DueDate and ReminderTime into an absolute instant in
// loc. It fails for assignments without a reminder.
func (a Assignment) ReminderAt(loc *time.Location) (time.Time, error) {
	if a.ReminderTime == nil {
		return time.Time{}, fmt.Errorf("assignment %d has no reminder time", a.ID)
	}
	day, err := ParseDate(a.DueDate)
	if err != nil {
		return time.Time{}, err
	}
	clock, err := ParseClock(*a.ReminderTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, loc), nil
}

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid due date %q: %w", s, err)
	}
	return t, nil
}

func ParseClock(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid reminder time %q: %w", s, err)
	}
	return t, nil
}
