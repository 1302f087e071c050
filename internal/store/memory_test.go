package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"meeting-minutes-go/internal/record"
)

func seedRecord(t *testing.T, s Store, title string, status record.Status, age time.Duration) *record.MeetingRecord {
	t.Helper()
	rec := record.New(title, title+".wav", "/data/uploads/"+title+".wav", 100)
	rec.Status = status
	rec.CreatedAt = time.Now().UTC().Add(-age)
	if err := s.Save(context.Background(), rec); err != nil {
		t.Fatalf("seed %s: %v", title, err)
	}
	return rec
}

func TestMemorySaveAndGet(t *testing.T) {
	s := NewMemory()
	rec := seedRecord(t, s, "standup", record.StatusUploaded, 0)

	got, err := s.Get(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Title != "standup" || got.Status != record.StatusUploaded {
		t.Errorf("got %+v", got)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("UpdatedAt not stamped on save")
	}
}

func TestMemoryGetNotFound(t *testing.T) {
	s := NewMemory()
	if _, err := s.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryGetReturnsIsolatedCopy(t *testing.T) {
	s := NewMemory()
	rec := seedRecord(t, s, "retro", record.StatusCompleted, 0)

	first, _ := s.Get(context.Background(), rec.ID)
	first.Title = "mutated"
	first.Decisions = append(first.Decisions, "injected")

	second, _ := s.Get(context.Background(), rec.ID)
	if second.Title != "retro" {
		t.Errorf("stored record mutated through a returned copy: %q", second.Title)
	}
	if len(second.Decisions) != 0 {
		t.Errorf("stored slices mutated through a returned copy: %v", second.Decisions)
	}
}

func TestMemorySaveIsolatesCaller(t *testing.T) {
	s := NewMemory()
	rec := record.New("planning", "planning.wav", "/data/uploads/planning.wav", 100)
	if err := s.Save(context.Background(), rec); err != nil {
		t.Fatal(err)
	}

	rec.Title = "mutated after save"

	got, _ := s.Get(context.Background(), rec.ID)
	if got.Title != "planning" {
		t.Errorf("stored record shares memory with caller: %q", got.Title)
	}
}

func TestMemoryClaimProcessing(t *testing.T) {
	s := NewMemory()
	rec := seedRecord(t, s, "kickoff", record.StatusFailed, 0)
	rec.ErrorMessage = "previous failure"
	rec.Progress = 50
	if err := s.Save(context.Background(), rec); err != nil {
		t.Fatal(err)
	}

	claimed, err := s.ClaimProcessing(context.Background(), rec.ID)
	if err != nil {
		t.Fatalf("ClaimProcessing() error = %v", err)
	}
	if claimed.Status != record.StatusProcessing {
		t.Errorf("status = %s, want processing", claimed.Status)
	}
	if claimed.Progress != 0 {
		t.Errorf("progress = %d, want 0", claimed.Progress)
	}
	if claimed.ErrorMessage != "" {
		t.Errorf("error = %q, want cleared", claimed.ErrorMessage)
	}

	if _, err := s.ClaimProcessing(context.Background(), rec.ID); !errors.Is(err, ErrAlreadyProcessing) {
		t.Errorf("second claim error = %v, want ErrAlreadyProcessing", err)
	}
}

func TestMemoryClaimProcessingNotFound(t *testing.T) {
	s := NewMemory()
	if _, err := s.ClaimProcessing(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("ClaimProcessing() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	s := NewMemory()
	rec := seedRecord(t, s, "sync", record.StatusCompleted, 0)

	if err := s.Delete(context.Background(), rec.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(context.Background(), rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
	if err := s.Delete(context.Background(), rec.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryListFilterAndOrder(t *testing.T) {
	s := NewMemory()
	oldest := seedRecord(t, s, "oldest", record.StatusCompleted, 3*time.Hour)
	failed := seedRecord(t, s, "failed", record.StatusFailed, 2*time.Hour)
	newest := seedRecord(t, s, "newest", record.StatusCompleted, time.Hour)

	recs, total, err := s.List(context.Background(), ListOptions{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 3 || len(recs) != 3 {
		t.Fatalf("total = %d, len = %d, want 3/3", total, len(recs))
	}
	if recs[0].ID != newest.ID || recs[2].ID != oldest.ID {
		t.Errorf("records not ordered newest first: %s, %s, %s", recs[0].Title, recs[1].Title, recs[2].Title)
	}

	recs, total, err = s.List(context.Background(), ListOptions{Status: record.StatusFailed})
	if err != nil {
		t.Fatalf("List(failed) error = %v", err)
	}
	if total != 1 || len(recs) != 1 || recs[0].ID != failed.ID {
		t.Errorf("status filter returned %d records (total %d)", len(recs), total)
	}
}

func TestMemoryListPagination(t *testing.T) {
	s := NewMemory()
	for i := 0; i < 5; i++ {
		seedRecord(t, s, string(rune('a'+i)), record.StatusUploaded, time.Duration(i)*time.Minute)
	}

	recs, total, err := s.List(context.Background(), ListOptions{Page: 2, PerPage: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 5 {
		t.Errorf("total = %d, want 5", total)
	}
	if len(recs) != 2 {
		t.Errorf("page 2 size = %d, want 2", len(recs))
	}

	recs, _, err = s.List(context.Background(), ListOptions{Page: 4, PerPage: 2})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("out-of-range page size = %d, want 0", len(recs))
	}
}
