package domain

// Store keys for the two persisted lists.
const (
	TasksKey       = "tasks"
	AssignmentsKey = "assignments"
)

// Task has no identity of its own; its position in the task list is its
// identity.
type Task struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}
