package media

import (
	"path/filepath"
	"strings"
)

var (
	videoExtensions = []string{".mp4", ".avi", ".mov", ".mkv", ".webm", ".flv", ".wmv", ".m4v"}
	audioExtensions = []string{".mp3", ".wav", ".flac", ".aac", ".m4a", ".ogg", ".wma"}
)

// IsVideoFile reports whether the filename has a supported video container
// extension.
func IsVideoFile(name string) bool {
	return hasExtension(name, videoExtensions)
}

// IsAudioFile reports whether the filename has a supported audio extension.
func IsAudioFile(name string) bool {
	return hasExtension(name, audioExtensions)
}

// IsMediaFile reports whether the filename is a supported upload type.
func IsMediaFile(name string) bool {
	return IsVideoFile(name) || IsAudioFile(name)
}

func hasExtension(name string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}
