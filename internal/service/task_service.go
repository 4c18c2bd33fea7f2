package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/Tomlord1122/assignment-tracker/internal/domain"
	"github.com/Tomlord1122/assignment-tracker/internal/repository"
)

// CreateTaskRequest holds the data needed to add a task.
type CreateTaskRequest struct {
	Text string `json:"text"`
}

// TaskView is how a task is rendered. Index is its current list position,
// which is also how it is addressed for toggle and delete.
type TaskView struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// TaskService manages the task list. Every mutation returns the full,
// freshly rebuilt view.
type TaskService interface {
	ListTasks(ctx context.Context) []TaskView
	AddTask(ctx context.Context, req CreateTaskRequest) ([]TaskView, error)
	ToggleTask(ctx context.Context, index int) ([]TaskView, error)
	DeleteTask(ctx context.Context, index int) ([]TaskView, error)
}

// taskService keeps the authoritative list in memory. The store is written
// before memory is updated, so a failed save leaves both unchanged.
type taskService struct {
	mu     sync.Mutex
	repo   repository.ListRepository[domain.Task]
	tasks  []domain.Task
	logger *slog.Logger
}

// NewTaskService hydrates the task list from repo.
func NewTaskService(ctx context.Context, repo repository.ListRepository[domain.Task], logger *slog.Logger) TaskService {
	tasks := repo.LoadList(ctx)
	logger.Info("tasks loaded", "count", len(tasks))
	return &taskService{
		repo:   repo,
		tasks:  tasks,
		logger: logger,
	}
}

func (s *taskService) ListTasks(ctx context.Context) []TaskView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return renderTasks(s.tasks)
}

func (s *taskService) AddTask(ctx context.Context, req CreateTaskRequest) ([]TaskView, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyTask
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := append(slices.Clone(s.tasks), domain.Task{Text: text})
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Debug("task added", "index", len(next)-1)
	return renderTasks(s.tasks), nil
}

func (s *taskService) ToggleTask(ctx context.Context, index int) ([]TaskView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.tasks) {
		return nil, fmt.Errorf("toggle task %d: %w", index, ErrIndexOutOfRange)
	}

	next := slices.Clone(s.tasks)
	next[index].Completed = !next[index].Completed
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return renderTasks(s.tasks), nil
}

func (s *taskService) DeleteTask(ctx context.Context, index int) ([]TaskView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.tasks) {
		return nil, fmt.Errorf("delete task %d: %w", index, ErrIndexOutOfRange)
	}

	next := slices.Delete(slices.Clone(s.tasks), index, index+1)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return renderTasks(s.tasks), nil
}

// commit persists next and then adopts it. Callers hold s.mu.
func (s *taskService) commit(ctx context.Context, next []domain.Task) error {
	if err := s.repo.SaveList(ctx, next); err != nil {
		s.logger.Error("failed to persist tasks", "error", err)
		return err
	}
	s.tasks = next
	return nil
}

func renderTasks(tasks []domain.Task) []TaskView {
	views := make([]TaskView, 0, len(tasks))
	for i, t := range tasks {
		views = append(views, TaskView{Index: i, Text: t.Text, Completed: t.Completed})
	}
	return views
}
