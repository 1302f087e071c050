package document

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"meeting-minutes-go/internal/logger"
	"meeting-minutes-go/internal/record"
)

func sampleRecord() *record.MeetingRecord {
	return &record.MeetingRecord{
		ID:         "rec-1",
		Title:      "Sprint Planning",
		Filename:   "sprint.mp4",
		Duration:   1830,
		Transcript: "hello team",
		Summary:    "The team planned the next sprint.\nScope was agreed.",
		Decisions:  []string{"Ship v2 in September"},
		ActionItems: []record.ActionItem{
			{Task: "Prepare demo", Assignee: "An", Deadline: "2025-09-01", Priority: "high", Status: "pending"},
		},
		Participants: []string{"An", "Binh"},
		Status:       record.StatusProcessing,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestRender(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, logger.New("error", "text"))

	path, err := r.Render(context.Background(), sampleRecord(), "minutes.docx")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	if filepath.Dir(path) != dir {
		t.Errorf("document written to %s, want %s", filepath.Dir(path), dir)
	}
	stat, err := os.Stat(path)
	if err != nil {
		t.Fatalf("document not created: %v", err)
	}
	if stat.Size() == 0 {
		t.Error("document is empty")
	}
}

func TestRenderDefaultFilename(t *testing.T) {
	dir := t.TempDir()
	r := New(dir, logger.New("error", "text"))

	path, err := r.Render(context.Background(), sampleRecord(), "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasPrefix(base, "minutes_Sprint_Planning_") {
		t.Errorf("default filename = %q", base)
	}
	if !strings.HasSuffix(base, ".docx") {
		t.Errorf("default filename = %q, want .docx suffix", base)
	}
}

func TestRenderSparseRecord(t *testing.T) {
	// A record whose enrichment stages all failed must still render.
	dir := t.TempDir()
	r := New(dir, logger.New("error", "text"))

	rec := &record.MeetingRecord{
		ID:        "rec-2",
		Filename:  "call.wav",
		CreatedAt: time.Now().UTC(),
	}

	path, err := r.Render(context.Background(), rec, "")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.HasPrefix(filepath.Base(path), "minutes_meeting_") {
		t.Errorf("filename = %q, want meeting placeholder title", filepath.Base(path))
	}
}

func TestRenderUnwritableDir(t *testing.T) {
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, []byte("not a dir"), 0644); err != nil {
		t.Fatal(err)
	}

	r := New(filepath.Join(blocked, "out"), logger.New("error", "text"))

	_, err := r.Render(context.Background(), sampleRecord(), "minutes.docx")
	if err == nil {
		t.Fatal("Render() expected error for unwritable output dir")
	}
	if _, ok := err.(*RenderError); !ok {
		t.Errorf("error = %T, want *RenderError", err)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "unknown"},
		{42, "42s"},
		{90, "1m 30s"},
		{3725, "1h 2m"},
	}

	for _, tt := range tests {
		if got := formatDuration(tt.seconds); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
