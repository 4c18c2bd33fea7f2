package repository

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Tomlord1122/assignment-tracker/internal/database"
	"github.com/Tomlord1122/assignment-tracker/internal/domain"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type brokenStore struct{}

func (brokenStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("disk on fire") }
func (brokenStore) Put(context.Context, string, []byte) error   { return errors.New("disk on fire") }

func TestLoadList_MissingKeyIsEmpty(t *testing.T) {
	repo := NewTaskRepository(database.NewMemory(), discard)

	got := repo.LoadList(context.Background())
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestLoadList_FailsSoft(t *testing.T) {
	ctx := context.Background()

	for name, raw := range map[string]string{
		"garbage":     "{not json",
		"wrong shape": `{"text":"x"}`,
		"null":        "null",
	} {
		t.Run(name, func(t *testing.T) {
			store := database.NewMemory()
			require.NoError(t, store.Put(ctx, domain.TasksKey, []byte(raw)))

			got := NewTaskRepository(store, discard).LoadList(ctx)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}

	t.Run("backend error", func(t *testing.T) {
		got := NewTaskRepository(brokenStore{}, discard).LoadList(ctx)
		assert.Empty(t, got)
	})
}

func TestSaveList_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemory()
	repo := NewAssignmentRepository(store, discard)

	at := "09:00"
	in := []domain.Assignment{
		{Name: "Essay", DueDate: "2024-06-01", ReminderTime: &at, ID: 1},
		{Name: "Lab", DueDate: "2024-06-02", ID: 2},
	}
	require.NoError(t, repo.SaveList(ctx, in))

	raw, err := store.Get(ctx, domain.AssignmentsKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"name":"Essay","dueDate":"2024-06-01","reminderTime":"09:00","notified":false,"id":1},
		{"name":"Lab","dueDate":"2024-06-02","reminderTime":null,"notified":false,"id":2}
	]`, string(raw))

	assert.Equal(t, in, repo.LoadList(ctx))
}

func TestSaveList_NilWritesEmptyArray(t *testing.T) {
	ctx := context.Background()
	store := database.NewMemory()

	require.NoError(t, NewTaskRepository(store, discard).SaveList(ctx, nil))

	raw, err := store.Get(ctx, domain.TasksKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(raw))
}

func TestSaveList_PropagatesStoreError(t *testing.T) {
	err := NewTaskRepository(brokenStore{}, discard).SaveList(context.Background(), []domain.Task{{Text: "x"}})
	assert.ErrorContains(t, err, "save tasks")
}
