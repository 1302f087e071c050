package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExtractAudio extracts the audio track from a video file and converts it
// to 16kHz mono WAV, the format the transcription engine expects.
func (p *implProber) ExtractAudio(ctx context.Context, recordID, videoPath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(p.cfg.Paths.Temp, fmt.Sprintf("%s_%s_audio.wav", recordID, base))

	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", &ExtractionError{Path: videoPath, Err: fmt.Errorf("create temp dir: %w", err)}
	}

	p.logger.Info(ctx, "Extracting audio: %s -> %s", videoPath, audioPath)

	// -vn: drop video
	// -ar 16000 -ac 1 -c:a pcm_s16le: mono 16kHz 16-bit PCM
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := p.executor.Execute(ctx, p.cfg.FFmpeg.BinaryPath, args...); err != nil {
		return "", &ExtractionError{Path: videoPath, Err: err}
	}

	// The codec run can exit zero and still leave nothing usable behind.
	stat, err := os.Stat(audioPath)
	if err != nil {
		return "", &ExtractionError{Path: videoPath, Err: fmt.Errorf("output not created: %w", err)}
	}
	if stat.Size() == 0 {
		return "", &ExtractionError{Path: videoPath, Err: fmt.Errorf("output file is empty")}
	}

	p.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
