package service

import "errors"

// Validation errors are safe to show to the user verbatim.
var (
	ErrEmptyTask               = errors.New("please enter a task")
	ErrMissingAssignmentFields = errors.New("please enter both assignment name and due date")
	ErrInvalidDate             = errors.New("due date must be formatted YYYY-MM-DD")
	ErrInvalidReminderTime     = errors.New("reminder time must be formatted HH:MM")
)

var (
	ErrIndexOutOfRange    = errors.New("no item at that position")
	ErrAssignmentNotFound = errors.New("assignment not found")
)

// IsValidation reports whether err came from rejected user input.
func IsValidation(err error) bool {
	return errors.Is(err, ErrEmptyTask) ||
		errors.Is(err, ErrMissingAssignmentFields) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidReminderTime)
}
