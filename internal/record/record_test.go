package record

import (
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	rec := New("Standup", "standup.wav", "/data/uploads/standup.wav", 2048)

	if rec.ID == "" {
		t.Error("id not assigned")
	}
	if rec.Status != StatusUploaded {
		t.Errorf("status = %s, want uploaded", rec.Status)
	}
	if rec.Progress != 0 {
		t.Errorf("progress = %d, want 0", rec.Progress)
	}
	if rec.CreatedAt.IsZero() || rec.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}

	other := New("Standup", "standup.wav", "/data/uploads/standup.wav", 2048)
	if other.ID == rec.ID {
		t.Error("ids are not unique")
	}
}

func TestResetDerived(t *testing.T) {
	now := time.Now().UTC()
	rec := New("Retro", "retro.mp4", "/data/uploads/retro.mp4", 100)
	rec.AudioPath = "/tmp/a.wav"
	rec.Transcript = "text"
	rec.Segments = []Segment{{Start: 0, End: 1, Text: "text"}}
	rec.Summary = "summary"
	rec.Decisions = []string{"d"}
	rec.ActionItems = []ActionItem{{Task: "t"}}
	rec.Participants = []string{"p"}
	rec.DocumentPath = "/out/doc.docx"
	rec.ProcessedAt = &now

	rec.ResetDerived()

	if rec.AudioPath != "" || rec.Transcript != "" || rec.Summary != "" || rec.DocumentPath != "" {
		t.Error("derived strings not cleared")
	}
	if rec.Segments != nil || rec.Decisions != nil || rec.ActionItems != nil || rec.Participants != nil {
		t.Error("derived slices not cleared")
	}
	if rec.ProcessedAt != nil {
		t.Error("ProcessedAt not cleared")
	}
	if rec.Title != "Retro" || rec.FilePath == "" {
		t.Error("source fields must survive a reset")
	}
}

func TestClone(t *testing.T) {
	now := time.Now().UTC()
	rec := New("Sync", "sync.wav", "/data/uploads/sync.wav", 10)
	rec.Decisions = []string{"keep"}
	rec.ProcessedAt = &now

	cp := rec.Clone()
	cp.Decisions[0] = "mutated"
	*cp.ProcessedAt = now.Add(time.Hour)

	if rec.Decisions[0] != "keep" {
		t.Error("clone shares decision slice")
	}
	if !rec.ProcessedAt.Equal(now) {
		t.Error("clone shares ProcessedAt pointer")
	}
}
