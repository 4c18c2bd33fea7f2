package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/Tomlord1122/assignment-tracker/internal/database"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

// recordingStore wraps a MemoryStore, counting writes and optionally
// failing them.
type recordingStore struct {
	*database.MemoryStore
	mu      sync.Mutex
	puts    int
	failPut bool
}

func newRecordingStore() *recordingStore {
	return &recordingStore{MemoryStore: database.NewMemory()}
}

func (s *recordingStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failPut {
		return errors.New("write refused")
	}
	s.puts++
	return s.MemoryStore.Put(ctx, key, value)
}

func (s *recordingStore) setFailPut(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failPut = fail
}

func (s *recordingStore) putCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.puts
}
