package server

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"meeting-minutes-go/internal/record"
)

// IngestFile takes ownership of a media file dropped into the inbox:
// it moves the file into the uploads directory, creates a record and
// queues a pipeline run. Used as the watcher handler.
func (s *Server) IngestFile(ctx context.Context, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat inbox file: %w", err)
	}

	filename := sanitizeFilename(filepath.Base(path))
	dst := filepath.Join(s.cfg.Paths.Uploads, filename)
	if _, err := os.Stat(dst); err == nil {
		filename = fmt.Sprintf("%d_%s", time.Now().Unix(), filename)
		dst = filepath.Join(s.cfg.Paths.Uploads, filename)
	}

	if err := moveFile(path, dst); err != nil {
		return fmt.Errorf("move inbox file: %w", err)
	}

	title := filepath.Base(path)
	title = title[:len(title)-len(filepath.Ext(title))]

	rec := s.newRecord(ctx, title, filename, dst, info.Size())
	if err := s.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("save record: %w", err)
	}

	s.logger.Info(ctx, "Ingested %s as record %s", filename, rec.ID)
	return s.orch.Start(ctx, rec.ID)
}

// newRecord creates a record for a stored source file, probing its
// duration when ffprobe can read it.
func (s *Server) newRecord(ctx context.Context, title, filename, path string, size int64) *record.MeetingRecord {
	rec := record.New(title, filename, path, size)
	if info, err := s.prober.Probe(ctx, path); err == nil {
		rec.Duration = info.Duration
	} else {
		s.logger.Warn(ctx, "Cannot probe %s: %v", filename, err)
	}
	return rec
}

// moveFile renames when possible and falls back to copy-and-remove for
// cross-device inboxes.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
