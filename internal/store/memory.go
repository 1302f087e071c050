package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"meeting-minutes-go/internal/record"
)

type memoryStore struct {
	mu      sync.RWMutex
	records map[string]*record.MeetingRecord
}

// NewMemory creates an in-process Store. Used by tests and by dev runs
// without a configured Redis.
func NewMemory() Store {
	return &memoryStore{records: make(map[string]*record.MeetingRecord)}
}

func (s *memoryStore) Get(ctx context.Context, id string) (*record.MeetingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return rec.Clone(), nil
}

func (s *memoryStore) Save(ctx context.Context, rec *record.MeetingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := rec.Clone()
	cp.UpdatedAt = time.Now().UTC()
	s.records[cp.ID] = cp
	return nil
}

func (s *memoryStore) ClaimProcessing(ctx context.Context, id string) (*record.MeetingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	if rec.Status == record.StatusProcessing {
		return nil, ErrAlreadyProcessing
	}

	rec.Status = record.StatusProcessing
	rec.Progress = 0
	rec.ErrorMessage = ""
	rec.UpdatedAt = time.Now().UTC()
	return rec.Clone(), nil
}

func (s *memoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}

func (s *memoryStore) List(ctx context.Context, opts ListOptions) ([]*record.MeetingRecord, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var all []*record.MeetingRecord
	for _, rec := range s.records {
		if opts.Status != "" && rec.Status != opts.Status {
			continue
		}
		all = append(all, rec.Clone())
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	return paginate(all, opts), len(all), nil
}

func paginate(recs []*record.MeetingRecord, opts ListOptions) []*record.MeetingRecord {
	if opts.PerPage <= 0 {
		return recs
	}
	page := opts.Page
	if page < 1 {
		page = 1
	}
	start := (page - 1) * opts.PerPage
	if start >= len(recs) {
		return nil
	}
	end := start + opts.PerPage
	if end > len(recs) {
		end = len(recs)
	}
	return recs[start:end]
}
