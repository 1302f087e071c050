package media

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
)

// ffprobe JSON output, only the fields we care about.
type probeOutput struct {
	Format struct {
		Duration   string `json:"duration"`
		Size       string `json:"size"`
		FormatName string `json:"format_name"`
		BitRate    string `json:"bit_rate"`
	} `json:"format"`
	Streams []struct {
		CodecType  string `json:"codec_type"`
		CodecName  string `json:"codec_name"`
		Width      int    `json:"width"`
		Height     int    `json:"height"`
		SampleRate string `json:"sample_rate"`
		Channels   int    `json:"channels"`
	} `json:"streams"`
}

// Probe runs ffprobe and parses duration, size and stream metadata.
func (p *implProber) Probe(ctx context.Context, path string) (*Info, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	}

	out, err := p.executor.Execute(ctx, p.cfg.FFmpeg.ProbePath, args...)
	if err != nil {
		return nil, &ProbeError{Path: path, Err: err}
	}

	var parsed probeOutput
	if err := json.Unmarshal([]byte(out), &parsed); err != nil {
		return nil, &ProbeError{Path: path, Err: fmt.Errorf("parse ffprobe output: %w", err)}
	}
	if parsed.Format.Duration == "" && len(parsed.Streams) == 0 {
		return nil, &ProbeError{Path: path, Err: fmt.Errorf("no container or stream info")}
	}

	info := &Info{FormatName: parsed.Format.FormatName}
	info.Duration, _ = strconv.ParseFloat(parsed.Format.Duration, 64)
	info.Size, _ = strconv.ParseInt(parsed.Format.Size, 10, 64)
	info.BitRate, _ = strconv.ParseInt(parsed.Format.BitRate, 10, 64)

	for _, s := range parsed.Streams {
		switch s.CodecType {
		case "video":
			if info.Video == nil {
				info.Video = &VideoStream{
					Codec:  s.CodecName,
					Width:  s.Width,
					Height: s.Height,
				}
			}
		case "audio":
			if info.Audio == nil {
				rate, _ := strconv.Atoi(s.SampleRate)
				info.Audio = &AudioStream{
					Codec:      s.CodecName,
					SampleRate: rate,
					Channels:   s.Channels,
				}
			}
		}
	}

	p.logger.Debug(ctx, "Probed %s: duration=%.1fs format=%s", path, info.Duration, info.FormatName)
	return info, nil
}
