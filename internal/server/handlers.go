package server

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gin-gonic/gin"

	"meeting-minutes-go/internal/media"
	"meeting-minutes-go/internal/pipeline"
	"meeting-minutes-go/internal/record"
	"meeting-minutes-go/internal/store"
)

// handleUpload stores the uploaded media file, creates its record and
// queues a pipeline run. The record is returned even when the queue is
// full; processing can be retried through the process endpoint.
func (s *Server) handleUpload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "no file provided")
		return
	}

	if !media.IsMediaFile(header.Filename) {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("unsupported file type: %s", filepath.Ext(header.Filename)))
		return
	}
	if header.Size > s.cfg.MaxUploadBytes() {
		respondError(c, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("file exceeds the %dMB upload limit", s.cfg.Server.MaxUploadMB))
		return
	}

	filename := sanitizeFilename(header.Filename)
	dst := filepath.Join(s.cfg.Paths.Uploads, filename)
	if _, err := os.Stat(dst); err == nil {
		filename = fmt.Sprintf("%d_%s", time.Now().Unix(), filename)
		dst = filepath.Join(s.cfg.Paths.Uploads, filename)
	}

	if err := c.SaveUploadedFile(header, dst); err != nil {
		s.logger.Error(c.Request.Context(), "Cannot store upload %s: %v", filename, err)
		respondError(c, http.StatusInternalServerError, "cannot store uploaded file")
		return
	}

	// Extension alone is spoofable, check the actual content.
	if mime, err := mimetype.DetectFile(dst); err == nil {
		if !strings.HasPrefix(mime.String(), "video/") && !strings.HasPrefix(mime.String(), "audio/") {
			os.Remove(dst)
			respondError(c, http.StatusBadRequest,
				fmt.Sprintf("file content is %s, not a media file", mime.String()))
			return
		}
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		title = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}

	rec := s.newRecord(c.Request.Context(), title, filename, dst, header.Size)
	if err := s.store.Save(c.Request.Context(), rec); err != nil {
		os.Remove(dst)
		respondError(c, http.StatusInternalServerError, "cannot save record")
		return
	}

	if err := s.orch.Start(c.Request.Context(), rec.ID); err != nil {
		s.logger.Warn(c.Request.Context(), "Cannot queue record %s: %v", rec.ID, err)
	}

	s.logger.Info(c.Request.Context(), "Uploaded %s as record %s", filename, rec.ID)
	respondOK(c, http.StatusCreated, rec)
}

func (s *Server) handleList(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	opts := store.ListOptions{
		Status:  record.Status(c.Query("status")),
		Page:    page,
		PerPage: perPage,
	}

	recs, total, err := s.store.List(c.Request.Context(), opts)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "cannot list records")
		return
	}
	if recs == nil {
		recs = []*record.MeetingRecord{}
	}

	respondOK(c, http.StatusOK, gin.H{
		"meetings": recs,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (s *Server) handleGet(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "record not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "cannot load record")
		return
	}
	respondOK(c, http.StatusOK, rec)
}

// handleUpdate edits the user-ownable fields of a record: title,
// summary, action items and participants. Absent fields are left
// untouched; records in flight cannot be edited.
func (s *Server) handleUpdate(c *gin.Context) {
	var req struct {
		Title        *string              `json:"title"`
		Summary      *string              `json:"summary"`
		ActionItems  *[]record.ActionItem `json:"action_items"`
		Participants *[]string            `json:"participants"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "record not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "cannot load record")
		return
	}

	if rec.Status == record.StatusProcessing {
		respondError(c, http.StatusConflict, "record is being processed")
		return
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			respondError(c, http.StatusBadRequest, "title cannot be empty")
			return
		}
		rec.Title = title
	}
	if req.Summary != nil {
		rec.Summary = *req.Summary
	}
	if req.ActionItems != nil {
		rec.ActionItems = *req.ActionItems
	}
	if req.Participants != nil {
		rec.Participants = *req.Participants
	}

	if err := s.store.Save(c.Request.Context(), rec); err != nil {
		respondError(c, http.StatusInternalServerError, "cannot save record")
		return
	}

	s.logger.Info(c.Request.Context(), "Updated record %s", rec.ID)
	respondOK(c, http.StatusOK, rec)
}

// handleProcess queues a (re-)run for an existing record.
func (s *Server) handleProcess(c *gin.Context) {
	id := c.Param("id")
	err := s.orch.Start(c.Request.Context(), id)
	switch {
	case err == nil:
		respondOK(c, http.StatusAccepted, gin.H{"id": id, "status": "queued"})
	case errors.Is(err, store.ErrNotFound):
		respondError(c, http.StatusNotFound, "record not found")
	case errors.Is(err, pipeline.ErrAlreadyRunning), errors.Is(err, store.ErrAlreadyProcessing):
		respondError(c, http.StatusConflict, "record is already being processed")
	case errors.Is(err, pipeline.ErrQueueFull), errors.Is(err, pipeline.ErrStopped):
		respondError(c, http.StatusServiceUnavailable, "processing queue unavailable")
	default:
		respondError(c, http.StatusInternalServerError, "cannot queue record")
	}
}

func (s *Server) handleDownload(c *gin.Context) {
	rec, err := s.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "record not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "cannot load record")
		return
	}

	if rec.DocumentPath == "" {
		respondError(c, http.StatusNotFound, "no document available for this record")
		return
	}
	if _, err := os.Stat(rec.DocumentPath); err != nil {
		respondError(c, http.StatusNotFound, "document file is missing")
		return
	}

	c.FileAttachment(rec.DocumentPath, filepath.Base(rec.DocumentPath))
}

// handleDelete removes the record and every file it owns. Records in
// flight cannot be deleted.
func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	rec, err := s.store.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			respondError(c, http.StatusNotFound, "record not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "cannot load record")
		return
	}

	if rec.Status == record.StatusProcessing {
		respondError(c, http.StatusConflict, "record is being processed")
		return
	}

	for _, path := range []string{rec.FilePath, rec.AudioPath, rec.DocumentPath} {
		if path == "" {
			continue
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			s.logger.Warn(c.Request.Context(), "Cannot remove %s: %v", path, err)
		}
	}

	if err := s.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, http.StatusInternalServerError, "cannot delete record")
		return
	}

	s.logger.Info(c.Request.Context(), "Deleted record %s", id)
	respondOK(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (s *Server) handleStats(c *gin.Context) {
	recs, total, err := s.store.List(c.Request.Context(), store.ListOptions{})
	if err != nil {
		respondError(c, http.StatusInternalServerError, "cannot load records")
		return
	}

	byStatus := map[record.Status]int{}
	var totalDuration float64
	for _, rec := range recs {
		byStatus[rec.Status]++
		totalDuration += rec.Duration
	}

	respondOK(c, http.StatusOK, gin.H{
		"total":            total,
		"by_status":        byStatus,
		"total_duration_s": totalDuration,
	})
}

// sanitizeFilename keeps the basename and replaces path-hostile
// characters.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := b.String()
	if out == "" || strings.Trim(out, "._") == "" {
		out = "upload" + filepath.Ext(name)
	}
	return out
}
