package pipeline

import (
	"context"
	"fmt"
	"time"

	"meeting-minutes-go/internal/analyzer"
	"meeting-minutes-go/internal/media"
	"meeting-minutes-go/internal/record"
)

// Progress checkpoints, persisted after each stage completes.
const (
	progressClaimed     = 0
	progressAudioReady  = 20
	progressTranscribed = 50
	progressSummarized  = 70
	progressExtracted   = 85
	progressDone        = 100
)

// Start enqueues a pipeline run for the record id. It fails fast when
// the record does not exist, when a run for the id is already in flight
// in this process, or when the queue is full.
func (o *implOrchestrator) Start(ctx context.Context, id string) error {
	if _, err := o.store.Get(ctx, id); err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrStopped
	}
	if o.inflight[id] {
		return ErrAlreadyRunning
	}

	// The enqueue happens under the mutex: Shutdown closes the channel
	// under the same mutex, so the closed check and the send cannot be
	// separated by a close.
	select {
	case o.tasks <- id:
		o.inflight[id] = true
		o.logger.Info(ctx, "Enqueued pipeline run for record %s", id)
		return nil
	default:
		return ErrQueueFull
	}
}

// StartWorkers launches the worker pool. Workers exit when ctx is
// cancelled or after Shutdown drains the queue.
func (o *implOrchestrator) StartWorkers(ctx context.Context) {
	workers := o.cfg.Pipeline.Workers
	o.logger.Info(ctx, "Starting %d pipeline workers", workers)
	for i := 0; i < workers; i++ {
		o.wg.Add(1)
		go func(n int) {
			defer o.wg.Done()
			o.workerLoop(ctx, n)
		}(i)
	}
}

// Shutdown stops accepting work and waits for in-flight runs to finish.
func (o *implOrchestrator) Shutdown() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	close(o.tasks)
	o.mu.Unlock()

	o.wg.Wait()
}

func (o *implOrchestrator) workerLoop(ctx context.Context, n int) {
	for {
		select {
		case <-ctx.Done():
			return
		case id, ok := <-o.tasks:
			if !ok {
				return
			}
			o.run(ctx, id)
		}
	}
}

func (o *implOrchestrator) release(id string) {
	o.mu.Lock()
	delete(o.inflight, id)
	o.mu.Unlock()
}

// run drives one record through every stage. Normalization and
// transcription failures abort the run; analysis and rendering failures
// are logged and the run completes with whatever was produced.
func (o *implOrchestrator) run(ctx context.Context, id string) {
	defer o.release(id)

	started := time.Now()
	rec, err := o.store.ClaimProcessing(ctx, id)
	if err != nil {
		o.logger.Error(ctx, "Cannot claim record %s for processing: %v", id, err)
		return
	}

	// checkpoint persists the record after a stage. Losing a checkpoint
	// is fatal: continuing would let later stages report progress the
	// store never saw. On failure the record's progress is rolled back
	// to the last value the store accepted, so a failed record never
	// carries a progress the run did not actually persist.
	persisted := -1
	checkpoint := func() bool {
		rec.UpdatedAt = time.Now().UTC()
		if err := o.store.Save(ctx, rec); err != nil {
			attempted := rec.Progress
			if persisted >= 0 {
				rec.Progress = persisted
			} else {
				rec.Progress = progressClaimed
			}
			o.fail(ctx, rec, fmt.Errorf("persist checkpoint at %d%%: %w", attempted, err))
			return false
		}
		persisted = rec.Progress
		return true
	}

	rec.ResetDerived()
	rec.Progress = progressClaimed
	if !checkpoint() {
		return
	}
	o.logger.Info(ctx, "Processing record %s (%s)", rec.ID, rec.Filename)

	audioPath := rec.FilePath
	if media.IsVideoFile(rec.Filename) {
		path, err := o.extractAudio(ctx, rec)
		if err != nil {
			o.fail(ctx, rec, fmt.Errorf("audio extraction failed: %w", err))
			return
		}
		rec.AudioPath = path
		audioPath = path
		rec.Progress = progressAudioReady
		if !checkpoint() {
			return
		}
	}

	if err := o.transcribe(ctx, rec, audioPath); err != nil {
		o.fail(ctx, rec, fmt.Errorf("transcription failed: %w", err))
		return
	}
	rec.Progress = progressTranscribed
	if !checkpoint() {
		return
	}

	o.summarize(ctx, rec)
	rec.Progress = progressSummarized
	if !checkpoint() {
		return
	}

	o.extractStructure(ctx, rec)
	rec.Progress = progressExtracted
	if !checkpoint() {
		return
	}

	o.render(ctx, rec)

	now := time.Now().UTC()
	rec.Status = record.StatusCompleted
	rec.Progress = progressDone
	rec.ErrorMessage = ""
	rec.ProcessedAt = &now
	if !checkpoint() {
		return
	}

	o.logger.Info(ctx, "Record %s completed in %s", rec.ID, time.Since(started).Round(time.Millisecond))
}

func (o *implOrchestrator) extractAudio(ctx context.Context, rec *record.MeetingRecord) (string, error) {
	sctx, cancel := o.stageContext(ctx)
	defer cancel()
	return o.prober.ExtractAudio(sctx, rec.ID, rec.FilePath)
}

func (o *implOrchestrator) transcribe(ctx context.Context, rec *record.MeetingRecord, audioPath string) error {
	sctx, cancel := o.stageContext(ctx)
	defer cancel()

	res, err := o.transcriber.Transcribe(sctx, audioPath, o.cfg.Whisper.Language)
	if err != nil {
		return err
	}
	rec.Transcript = res.Text
	rec.Segments = res.Segments
	if res.Text == "" {
		o.logger.Warn(ctx, "Record %s produced an empty transcript, skipping analysis", rec.ID)
	}
	return nil
}

func (o *implOrchestrator) summarize(ctx context.Context, rec *record.MeetingRecord) {
	if rec.Transcript == "" {
		return
	}
	sctx, cancel := o.stageContext(ctx)
	defer cancel()

	meta := analyzer.Meta{Title: rec.Title, Filename: rec.Filename, Duration: rec.Duration}
	summary, err := o.analyzer.Summarize(sctx, rec.Transcript, meta)
	if err != nil {
		o.logger.Warn(ctx, "Summarization failed for record %s: %v", rec.ID, err)
		return
	}
	rec.Summary = summary.Text
	rec.Decisions = summary.Decisions
}

func (o *implOrchestrator) extractStructure(ctx context.Context, rec *record.MeetingRecord) {
	if rec.Transcript == "" {
		return
	}
	sctx, cancel := o.stageContext(ctx)
	defer cancel()

	items, err := o.analyzer.ExtractActionItems(sctx, rec.Transcript)
	if err != nil {
		o.logger.Warn(ctx, "Action item extraction failed for record %s: %v", rec.ID, err)
	} else {
		rec.ActionItems = items
	}

	participants, err := o.analyzer.IdentifyParticipants(sctx, rec.Transcript)
	if err != nil {
		o.logger.Warn(ctx, "Participant identification failed for record %s: %v", rec.ID, err)
	} else {
		rec.Participants = participants
	}
}

func (o *implOrchestrator) render(ctx context.Context, rec *record.MeetingRecord) {
	sctx, cancel := o.stageContext(ctx)
	defer cancel()

	path, err := o.renderer.Render(sctx, rec.Clone(), "")
	if err != nil {
		o.logger.Warn(ctx, "Document rendering failed for record %s: %v", rec.ID, err)
		return
	}
	rec.DocumentPath = path
}

func (o *implOrchestrator) fail(ctx context.Context, rec *record.MeetingRecord, cause error) {
	o.logger.Error(ctx, "Record %s failed: %v", rec.ID, cause)

	rec.Status = record.StatusFailed
	rec.ErrorMessage = cause.Error()
	rec.ProcessedAt = nil
	rec.UpdatedAt = time.Now().UTC()
	if err := o.store.Save(ctx, rec); err != nil {
		o.logger.Error(ctx, "Cannot persist failure for record %s: %v", rec.ID, err)
	}
}

func (o *implOrchestrator) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if o.stageTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, o.stageTimeout)
}
