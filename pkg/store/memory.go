package store

import (
	"context"
	"sort"
	"sync"

	errs "github.com/laneflow/laneflow/pkg/errors"
)

// MemoryStore keeps records in process memory. It is safe for
// concurrent use and intended for development and tests.
type MemoryStore struct {
	mu        sync.RWMutex
	processes map[string]*ProcessRecord
	diagrams  map[string]*DiagramRecord
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		processes: make(map[string]*ProcessRecord),
		diagrams:  make(map[string]*DiagramRecord),
	}
}

func (s *MemoryStore) SaveProcess(ctx context.Context, rec *ProcessRecord) error {
	if rec == nil {
		return errs.New(errs.ErrCodeInvalidInput, "save process: record is nil")
	}
	rec.stamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.processes[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetProcess(ctx context.Context, id string) (*ProcessRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.processes[id]
	if !ok {
		return nil, errs.New(errs.ErrCodeProcessNotFound, "process %q not found", id)
	}
	return rec, nil
}

func (s *MemoryStore) ListProcesses(ctx context.Context) ([]*ProcessRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ProcessRecord, 0, len(s.processes))
	for _, rec := range s.processes {
		out = append(out, rec)
	}
	// Newest first; IDs break ties so listings are stable.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *MemoryStore) SaveDiagram(ctx context.Context, rec *DiagramRecord) error {
	if rec == nil {
		return errs.New(errs.ErrCodeInvalidInput, "save diagram: record is nil")
	}
	rec.stamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.diagrams[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetDiagram(ctx context.Context, id string) (*DiagramRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.diagrams[id]
	if !ok {
		return nil, errs.New(errs.ErrCodeDiagramNotFound, "diagram %q not found", id)
	}
	return rec, nil
}

func (s *MemoryStore) Close(ctx context.Context) error {
	return nil
}
