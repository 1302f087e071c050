package transcriber

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"meeting-minutes-go/internal/record"
)

// whisper.cpp JSON output file (-oj). Offsets are milliseconds.
type whisperOutput struct {
	Result struct {
		Language string `json:"language"`
	} `json:"result"`
	Transcription []struct {
		Offsets struct {
			From int64 `json:"from"`
			To   int64 `json:"to"`
		} `json:"offsets"`
		Text string `json:"text"`
	} `json:"transcription"`
}

// Transcribe runs whisper on the audio file and parses its JSON output
// into text plus time-aligned segments.
func (t *implTranscriber) Transcribe(ctx context.Context, audioPath, language string) (*Result, error) {
	if _, err := os.Stat(audioPath); err != nil {
		return nil, &TranscriptionError{Path: audioPath, Err: fmt.Errorf("audio file not found: %w", err)}
	}

	if language == "" {
		language = "auto"
	}

	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	t.logger.Info(ctx, "Starting transcription (%d threads, language=%s): %s",
		t.cfg.Whisper.Threads, language, audioPath)

	// -oj: JSON output with per-segment offsets
	// -ml/-mc 0: no segment length or context limit, better for long meetings
	args := []string{
		"-m", t.cfg.Whisper.ModelPath,
		"-f", audioPath,
		"-oj",
		"-l", language,
		"-t", strconv.Itoa(t.cfg.Whisper.Threads),
		"-ml", "0",
		"-mc", "0",
		"--output-file", outputPrefix,
	}

	if _, err := t.executor.Execute(ctx, t.cfg.Whisper.BinaryPath, args...); err != nil {
		return nil, &TranscriptionError{Path: audioPath, Err: err}
	}

	jsonPath := outputPrefix + ".json"
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, &TranscriptionError{Path: audioPath, Err: fmt.Errorf("read whisper output: %w", err)}
	}

	var parsed whisperOutput
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &TranscriptionError{Path: audioPath, Err: fmt.Errorf("parse whisper output: %w", err)}
	}

	result := &Result{Language: parsed.Result.Language}
	var sb strings.Builder
	for _, seg := range parsed.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		result.Segments = append(result.Segments, record.Segment{
			Start: float64(seg.Offsets.From) / 1000,
			End:   float64(seg.Offsets.To) / 1000,
			Text:  text,
		})
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
	}
	result.Text = sb.String()

	t.logger.Info(ctx, "Transcription completed: %d segments, %d characters",
		len(result.Segments), len(result.Text))
	return result, nil
}
