package config

import (
	"os"
	"testing"
	"time"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name: "valid config",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					Uploads: "data/uploads",
					Outputs: "data/outputs",
				},
			},
			wantErr: false,
		},
		{
			name: "missing model path",
			config: Config{
				Whisper: WhisperConfig{
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{
					Uploads: "data/uploads",
					Outputs: "data/outputs",
				},
			},
			wantErr: true,
		},
		{
			name: "missing paths",
			config: Config{
				Whisper: WhisperConfig{
					ModelPath:  "models/test.bin",
					BinaryPath: "./whisper",
				},
				Paths: PathsConfig{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateDefaults(t *testing.T) {
	cfg := Config{
		Whisper: WhisperConfig{
			ModelPath:  "models/test.bin",
			BinaryPath: "./whisper",
		},
		Paths: PathsConfig{
			Uploads: "data/uploads",
			Outputs: "data/outputs",
		},
	}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	if cfg.Whisper.Language != "auto" {
		t.Errorf("Language = %v, want auto", cfg.Whisper.Language)
	}
	if cfg.Pipeline.Workers != 2 {
		t.Errorf("Workers = %v, want 2", cfg.Pipeline.Workers)
	}
	if cfg.Pipeline.QueueSize != 32 {
		t.Errorf("QueueSize = %v, want 32", cfg.Pipeline.QueueSize)
	}
	if cfg.StageTimeout() != 30*time.Minute {
		t.Errorf("StageTimeout() = %v, want 30m", cfg.StageTimeout())
	}
	if cfg.MaxUploadBytes() != 500*1024*1024 {
		t.Errorf("MaxUploadBytes() = %v, want 500MB", cfg.MaxUploadBytes())
	}
	if cfg.FFmpeg.BinaryPath != "ffmpeg" || cfg.FFmpeg.ProbePath != "ffprobe" {
		t.Errorf("ffmpeg defaults = %v/%v", cfg.FFmpeg.BinaryPath, cfg.FFmpeg.ProbePath)
	}
}

func TestLoad(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "config-*.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	content := `
server:
  port: "9090"

whisper:
  model_path: "models/test.bin"
  binary_path: "./whisper"
  language: "en"

paths:
  uploads: "data/uploads"
  outputs: "data/outputs"

pipeline:
  workers: 4

logging:
  level: "debug"
`

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Whisper.ModelPath != "models/test.bin" {
		t.Errorf("ModelPath = %v, want %v", cfg.Whisper.ModelPath, "models/test.bin")
	}
	if cfg.Server.Port != "9090" && os.Getenv("PORT") == "" {
		t.Errorf("Port = %v, want 9090", cfg.Server.Port)
	}
	if cfg.Pipeline.Workers != 4 {
		t.Errorf("Workers = %v, want 4", cfg.Pipeline.Workers)
	}
	if cfg.Paths.Uploads != "data/uploads" {
		t.Errorf("Uploads = %v, want %v", cfg.Paths.Uploads, "data/uploads")
	}
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := Load("nonexistent.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestAPIKeysFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEYS", "key-a, key-b,,key-c")

	cfg := Config{}
	cfg.applyEnv()

	want := []string{"key-a", "key-b", "key-c"}
	if len(cfg.Gemini.APIKeys) != len(want) {
		t.Fatalf("APIKeys = %v, want %v", cfg.Gemini.APIKeys, want)
	}
	for i, k := range want {
		if cfg.Gemini.APIKeys[i] != k {
			t.Errorf("APIKeys[%d] = %v, want %v", i, cfg.Gemini.APIKeys[i], k)
		}
	}
}
