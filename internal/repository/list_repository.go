package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Tomlord1122/assignment-tracker/internal/database"
	"github.com/Tomlord1122/assignment-tracker/internal/domain"
)

// ListRepository persists one ordered list of records under a fixed key.
type ListRepository[T any] interface {
	// LoadList never fails: a missing key, a backend error or unparsable
	// content all yield an empty list.
	LoadList(ctx context.Context) []T
	// SaveList overwrites the stored list with list.
	SaveList(ctx context.Context, list []T) error
}

// jsonListRepository stores the list as a JSON array.
type jsonListRepository[T any] struct {
	store  database.Store
	key    string
	logger *slog.Logger
}

// NewListRepository binds a list of T to key in store.
func NewListRepository[T any](store database.Store, key string, logger *slog.Logger) ListRepository[T] {
	return &jsonListRepository[T]{
		store:  store,
		key:    key,
		logger: logger.With("list", key),
	}
}

func NewTaskRepository(store database.Store, logger *slog.Logger) ListRepository[domain.Task] {
	return NewListRepository[domain.Task](store, domain.TasksKey, logger)
}

func NewAssignmentRepository(store database.Store, logger *slog.Logger) ListRepository[domain.Assignment] {
	return NewListRepository[domain.Assignment](store, domain.AssignmentsKey, logger)
}

func (r *jsonListRepository[T]) LoadList(ctx context.Context) []T {
	data, err := r.store.Get(ctx, r.key)
	if err != nil {
		if !errors.Is(err, database.ErrKeyNotFound) {
			r.logger.Warn("failed to read list, treating as empty", "error", err)
		}
		return []T{}
	}

	var list []T
	if err := json.Unmarshal(data, &list); err != nil {
		r.logger.Warn("stored list is not valid JSON, treating as empty", "error", err)
		return []T{}
	}
	if list == nil {
		// "null" decodes to a nil slice
		list = []T{}
	}
	return list
}

func (r *jsonListRepository[T]) SaveList(ctx context.Context, list []T) error {
	if list == nil {
		list = []T{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encode %s: %w", r.key, err)
	}
	if err := r.store.Put(ctx, r.key, data); err != nil {
		return fmt.Errorf("save %s: %w", r.key, err)
	}
	return nil
}
