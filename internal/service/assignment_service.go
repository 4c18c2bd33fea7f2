package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/Tomlord1122/assignment-tracker/internal/domain"
	"github.com/Tomlord1122/assignment-tracker/internal/repository"
)

// CreateAssignmentRequest holds the data needed to add an assignment.
// ReminderTime is optional; blank means no reminder.
type CreateAssignmentRequest struct {
	Name         string `json:"name"`
	DueDate      string `json:"dueDate"`
	ReminderTime string `json:"reminderTime"`
}

// AssignmentService manages the assignment list.
type AssignmentService interface {
	ListAssignments(ctx context.Context) []domain.Assignment

	// AddAssignment validates req and appends a new, not yet notified
	// assignment whose ID is its creation time in milliseconds.
	AddAssignment(ctx context.Context, req CreateAssignmentRequest) ([]domain.Assignment, error)

	// DeleteAssignment removes the assignment with the given ID.
	DeleteAssignment(ctx context.Context, id int64) ([]domain.Assignment, error)

	// DeleteAssignmentAt removes whatever assignment currently sits at index.
	DeleteAssignmentAt(ctx context.Context, index int) ([]domain.Assignment, error)

	// Reconcile hands the authoritative list to fn under the service lock.
	// fn may mutate elements in place and reports whether it did; if so the
	// list is saved once. In-memory changes are kept even if that save fails.
	Reconcile(ctx context.Context, fn func(list []domain.Assignment) bool) error
}

type assignmentService struct {
	mu          sync.Mutex
	repo        repository.ListRepository[domain.Assignment]
	assignments []domain.Assignment
	now         func() time.Time
	logger      *slog.Logger
}

// NewAssignmentService hydrates the assignment list from repo. now stamps
// new IDs; nil means time.Now.
func NewAssignmentService(ctx context.Context, repo repository.ListRepository[domain.Assignment], now func() time.Time, logger *slog.Logger) AssignmentService {
	if now == nil {
		now = time.Now
	}
	assignments := repo.LoadList(ctx)
	logger.Info("assignments loaded", "count", len(assignments))
	return &assignmentService{
		repo:        repo,
		assignments: assignments,
		now:         now,
		logger:      logger,
	}
}

func (s *assignmentService) ListAssignments(ctx context.Context) []domain.Assignment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.assignments)
}

func (s *assignmentService) AddAssignment(ctx context.Context, req CreateAssignmentRequest) ([]domain.Assignment, error) {
	name := strings.TrimSpace(req.Name)
	dueDate := strings.TrimSpace(req.DueDate)
	if name == "" || dueDate == "" {
		return nil, ErrMissingAssignmentFields
	}
	if _, err := domain.ParseDate(dueDate); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	var reminder *string
	if rt := strings.TrimSpace(req.ReminderTime); rt != "" {
		if _, err := domain.ParseClock(rt); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidReminderTime, err)
		}
		reminder = &rt
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := domain.Assignment{
		Name:         name,
		DueDate:      dueDate,
		ReminderTime: reminder,
		Notified:     false,
		ID:           s.nextID(),
	}
	next := append(slices.Clone(s.assignments), a)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	s.logger.Debug("assignment added", "id", a.ID, "reminder", a.HasReminder())
	return slices.Clone(s.assignments), nil
}

func (s *assignmentService) DeleteAssignment(ctx context.Context, id int64) ([]domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	index := slices.IndexFunc(s.assignments, func(a domain.Assignment) bool { return a.ID == id })
	if index < 0 {
		return nil, fmt.Errorf("assignment %d: %w", id, ErrAssignmentNotFound)
	}
	return s.deleteAt(ctx, index)
}

func (s *assignmentService) DeleteAssignmentAt(ctx context.Context, index int) ([]domain.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.assignments) {
		return nil, fmt.Errorf("delete assignment %d: %w", index, ErrIndexOutOfRange)
	}
	return s.deleteAt(ctx, index)
}

func (s *assignmentService) deleteAt(ctx context.Context, index int) ([]domain.Assignment, error) {
	next := slices.Delete(slices.Clone(s.assignments), index, index+1)
	if err := s.commit(ctx, next); err != nil {
		return nil, err
	}
	return slices.Clone(s.assignments), nil
}

func (s *assignmentService) Reconcile(ctx context.Context, fn func(list []domain.Assignment) bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !fn(s.assignments) {
		return nil
	}
	if err := s.repo.SaveList(ctx, s.assignments); err != nil {
		s.logger.Error("failed to persist reconciled assignments", "error", err)
		return err
	}
	return nil
}

// nextID is the current time in milliseconds, bumped past the largest
// existing ID so two adds in the same millisecond stay distinct.
func (s *assignmentService) nextID() int64 {
	id := s.now().UnixMilli()
	for _, a := range s.assignments {
		if a.ID >= id {
			id = a.ID + 1
		}
	}
	return id
}

func (s *assignmentService) commit(ctx context.Context, next []domain.Assignment) error {
	if err := s.repo.SaveList(ctx, next); err != nil {
		s.logger.Error("failed to persist assignments", "error", err)
		return err
	}
	s.assignments = next
	return nil
}
