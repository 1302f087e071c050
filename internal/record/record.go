package record

import (
	"time"

	"github.com/google/uuid"
)

// Status is the processing state of a meeting record.
type Status string

const (
	StatusUploaded   Status = "uploaded"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// ActionItem is a single task extracted from the meeting transcript.
type ActionItem struct {
	Task     string `json:"task"`
	Assignee string `json:"assignee"`
	Deadline string `json:"deadline"`
	Priority string `json:"priority"`
	Status   string `json:"status"`
}

// Segment is a time-aligned piece of the transcript. Start and End are
// seconds from the beginning of the audio track.
type Segment struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

// MeetingRecord is the unit of work: one uploaded recording and everything
// derived from it. Derived fields stay zero-valued until the pipeline
// produces them and are fully overwritten on each re-run.
type MeetingRecord struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Filename string `json:"filename"`
	FilePath string `json:"file_path"`
	FileSize int64  `json:"file_size"`

	// Duration in seconds, 0 until the source has been probed.
	Duration float64 `json:"duration"`

	AudioPath    string       `json:"audio_path,omitempty"`
	Transcript   string       `json:"transcript,omitempty"`
	Segments     []Segment    `json:"segments,omitempty"`
	Summary      string       `json:"summary,omitempty"`
	Decisions    []string     `json:"decisions"`
	ActionItems  []ActionItem `json:"action_items"`
	Participants []string     `json:"participants"`
	DocumentPath string       `json:"document_path,omitempty"`

	Status       Status `json:"status"`
	Progress     int    `json:"progress"`
	ErrorMessage string `json:"error_message,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ProcessedAt *time.Time `json:"processed_at,omitempty"`
}

// New creates a record in uploaded status for a stored source file.
func New(title, filename, filePath string, fileSize int64) *MeetingRecord {
	now := time.Now().UTC()
	return &MeetingRecord{
		ID:        uuid.NewString(),
		Title:     title,
		Filename:  filename,
		FilePath:  filePath,
		FileSize:  fileSize,
		Status:    StatusUploaded,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ResetDerived clears everything a pipeline run produces so a re-run
// overwrites instead of accumulating.
func (r *MeetingRecord) ResetDerived() {
	r.AudioPath = ""
	r.Transcript = ""
	r.Segments = nil
	r.Summary = ""
	r.Decisions = nil
	r.ActionItems = nil
	r.Participants = nil
	r.DocumentPath = ""
	r.ProcessedAt = nil
}

// Clone returns a deep copy so callers can hand out snapshots without
// sharing the slices behind the derived fields.
func (r *MeetingRecord) Clone() *MeetingRecord {
	cp := *r
	if r.Segments != nil {
		cp.Segments = append([]Segment(nil), r.Segments...)
	}
	if r.Decisions != nil {
		cp.Decisions = append([]string(nil), r.Decisions...)
	}
	if r.ActionItems != nil {
		cp.ActionItems = append([]ActionItem(nil), r.ActionItems...)
	}
	if r.Participants != nil {
		cp.Participants = append([]string(nil), r.Participants...)
	}
	if r.ProcessedAt != nil {
		t := *r.ProcessedAt
		cp.ProcessedAt = &t
	}
	return &cp
}
