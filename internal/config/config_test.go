package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default configuration failed validation: %v", err)
	}

	if cfg.Audio.InputSampleRate != 48000 {
		t.Errorf("Expected input sample rate 48000, got %d", cfg.Audio.InputSampleRate)
	}
	if cfg.Audio.TargetSampleRate != 16000 {
		t.Errorf("Expected target sample rate 16000, got %d", cfg.Audio.TargetSampleRate)
	}
	if cfg.Audio.BlockSize != 1024 {
		t.Errorf("Expected block size 1024, got %d", cfg.Audio.BlockSize)
	}
	if cfg.Segmentation.SilenceThreshold != 0.01 {
		t.Errorf("Expected silence threshold 0.01, got %f", cfg.Segmentation.SilenceThreshold)
	}
	if cfg.Segmentation.GetSilenceDuration() != 1500*time.Millisecond {
		t.Errorf("Expected silence duration 1.5s, got %v", cfg.Segmentation.GetSilenceDuration())
	}
	if !cfg.Output.Clipboard {
		t.Error("Expected clipboard enabled by default")
	}
	if cfg.Metrics.Enabled {
		t.Error("Expected metrics disabled by default")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with empty path failed: %v", err)
	}

	if cfg.Transcription.ModelPath != Default().Transcription.ModelPath {
		t.Errorf("Expected default model path, got %s", cfg.Transcription.ModelPath)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
audio:
  device_index: 3
segmentation:
  silence_duration: 2.0
transcription:
  model_path: models/ggml-small.bin
  language: en
output:
  clipboard: false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Audio.DeviceIndex != 3 {
		t.Errorf("Expected device index 3, got %d", cfg.Audio.DeviceIndex)
	}
	if cfg.Segmentation.SilenceDuration != 2.0 {
		t.Errorf("Expected silence duration 2.0, got %f", cfg.Segmentation.SilenceDuration)
	}
	if cfg.Transcription.ModelPath != "models/ggml-small.bin" {
		t.Errorf("Expected overridden model path, got %s", cfg.Transcription.ModelPath)
	}
	if cfg.Output.Clipboard {
		t.Error("Expected clipboard disabled by override")
	}

	// Untouched fields keep their defaults.
	if cfg.Audio.InputSampleRate != 48000 {
		t.Errorf("Expected default input sample rate, got %d", cfg.Audio.InputSampleRate)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Expected error for missing config file")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("audio: ["), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestAudioConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*AudioConfig)
		expectErr bool
	}{
		{
			name:      "valid defaults",
			mutate:    func(a *AudioConfig) {},
			expectErr: false,
		},
		{
			name:      "input rate too low",
			mutate:    func(a *AudioConfig) { a.InputSampleRate = 4000 },
			expectErr: true,
		},
		{
			name:      "target above input",
			mutate:    func(a *AudioConfig) { a.TargetSampleRate = 96000 },
			expectErr: true,
		},
		{
			name:      "block size too small",
			mutate:    func(a *AudioConfig) { a.BlockSize = 16 },
			expectErr: true,
		},
		{
			name:      "invalid device index",
			mutate:    func(a *AudioConfig) { a.DeviceIndex = -2 },
			expectErr: true,
		},
		{
			name:      "queue capacity too small",
			mutate:    func(a *AudioConfig) { a.QueueCapacity = 1 },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default().Audio
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestSegmentationConfigValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SegmentationConfig)
		expectErr bool
	}{
		{
			name:      "valid defaults",
			mutate:    func(s *SegmentationConfig) {},
			expectErr: false,
		},
		{
			name:      "zero threshold",
			mutate:    func(s *SegmentationConfig) { s.SilenceThreshold = 0 },
			expectErr: true,
		},
		{
			name:      "threshold at one",
			mutate:    func(s *SegmentationConfig) { s.SilenceThreshold = 1 },
			expectErr: true,
		},
		{
			name:      "negative silence duration",
			mutate:    func(s *SegmentationConfig) { s.SilenceDuration = -1 },
			expectErr: true,
		},
		{
			name:      "zero window duration",
			mutate:    func(s *SegmentationConfig) { s.WindowDuration = 0 },
			expectErr: true,
		},
		{
			name:      "poll interval exceeds silence duration",
			mutate:    func(s *SegmentationConfig) { s.PollInterval = 2.0 },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default().Segmentation
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.expectErr && err == nil {
				t.Error("Expected error but got none")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("Expected no error but got: %v", err)
			}
		})
	}
}

func TestTranscriptionConfigValidation(t *testing.T) {
	cfg := TranscriptionConfig{ModelPath: "", Language: "en"}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty model path")
	}

	cfg = TranscriptionConfig{ModelPath: "models/ggml-base.en.bin", Language: ""}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty language")
	}
}

func TestMetricsConfigValidation(t *testing.T) {
	cfg := MetricsConfig{Enabled: true, Address: "", Port: 9090}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for empty address with metrics enabled")
	}

	cfg = MetricsConfig{Enabled: true, Address: "127.0.0.1", Port: 0}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid port")
	}

	// Disabled metrics skip endpoint validation.
	cfg = MetricsConfig{Enabled: false}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected no error for disabled metrics, got: %v", err)
	}
}

func TestLoggingConfigValidation(t *testing.T) {
	cfg := LoggingConfig{Level: "verbose", Format: "text"}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid level")
	}

	cfg = LoggingConfig{Level: "info", Format: "xml"}
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for invalid format")
	}
}
