package media

import "context"

// Prober inspects media files and extracts normalized audio tracks from
// video containers.
type Prober interface {
	Probe(ctx context.Context, path string) (*Info, error)

	// ExtractAudio writes a mono 16kHz 16-bit PCM WAV derived from the
	// video. The output name includes recordID so two sources sharing a
	// basename cannot collide.
	ExtractAudio(ctx context.Context, recordID, videoPath string) (string, error)
}

// Info is the parsed container metadata of a media file.
type Info struct {
	Duration   float64
	Size       int64
	FormatName string
	BitRate    int64
	Video      *VideoStream
	Audio      *AudioStream
}

type VideoStream struct {
	Codec  string
	Width  int
	Height int
}

type AudioStream struct {
	Codec      string
	SampleRate int
	Channels   int
}
