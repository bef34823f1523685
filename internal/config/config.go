package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the complete tool configuration
type Config struct {
	Audio         AudioConfig         `yaml:"audio"`
	Segmentation  SegmentationConfig  `yaml:"segmentation"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	Output        OutputConfig        `yaml:"output"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// AudioConfig contains capture stream parameters
type AudioConfig struct {
	InputSampleRate  int `yaml:"input_sample_rate"`  // Hz, capture rate
	TargetSampleRate int `yaml:"target_sample_rate"` // Hz, rate fed to the engine
	BlockSize        int `yaml:"block_size"`         // samples per capture callback
	DeviceIndex      int `yaml:"device_index"`       // -1 selects the default input device
	QueueCapacity    int `yaml:"queue_capacity"`     // frames buffered between capture and segmentation
}

// SegmentationConfig contains silence detection parameters
type SegmentationConfig struct {
	SilenceThreshold float32 `yaml:"silence_threshold"` // normalized peak amplitude
	SilenceDuration  float64 `yaml:"silence_duration"`  // seconds without a loud frame that closes an utterance
	WindowDuration   float64 `yaml:"window_duration"`   // seconds; fixed flush window for continuous mode
	PollInterval     float64 `yaml:"poll_interval"`     // seconds; empty-queue wait before re-checking
}

// TranscriptionConfig contains recognition engine configuration
type TranscriptionConfig struct {
	ModelPath string `yaml:"model_path"`
	Language  string `yaml:"language"`
}

// OutputConfig contains transcript delivery configuration
type OutputConfig struct {
	Clipboard  bool   `yaml:"clipboard"`   // copy transcripts to the system clipboard
	Notify     bool   `yaml:"notify"`      // desktop notification per transcript
	ArchiveDir string `yaml:"archive_dir"` // when set, flushed utterances are saved as WAV files
}

// MetricsConfig contains the optional Prometheus endpoint configuration
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Default returns the built-in configuration: 48 kHz mono capture in 1024
// sample blocks, resampled to 16 kHz, 0.01 silence threshold, 1.5 s silence
// gap, base English model.
func Default() *Config {
	return &Config{
		Audio: AudioConfig{
			InputSampleRate:  48000,
			TargetSampleRate: 16000,
			BlockSize:        1024,
			DeviceIndex:      -1,
			QueueCapacity:    4096,
		},
		Segmentation: SegmentationConfig{
			SilenceThreshold: 0.01,
			SilenceDuration:  1.5,
			WindowDuration:   1.0,
			PollInterval:     0.1,
		},
		Transcription: TranscriptionConfig{
			ModelPath: "models/ggml-base.en.bin",
			Language:  "en",
		},
		Output: OutputConfig{
			Clipboard: true,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Address: "127.0.0.1",
			Port:    9090,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}

// Load reads a YAML configuration file over the defaults and validates the
// result. An empty path returns the validated defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

// Validate performs validation of the complete configuration
func (c *Config) Validate() error {
	if err := c.Audio.Validate(); err != nil {
		return fmt.Errorf("audio config: %w", err)
	}

	if err := c.Segmentation.Validate(); err != nil {
		return fmt.Errorf("segmentation config: %w", err)
	}

	if err := c.Transcription.Validate(); err != nil {
		return fmt.Errorf("transcription config: %w", err)
	}

	if err := c.Metrics.Validate(); err != nil {
		return fmt.Errorf("metrics config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates audio capture configuration
func (a *AudioConfig) Validate() error {
	if a.InputSampleRate < 8000 {
		return fmt.Errorf("input_sample_rate must be at least 8000 Hz, got %d", a.InputSampleRate)
	}

	if a.TargetSampleRate < 8000 {
		return fmt.Errorf("target_sample_rate must be at least 8000 Hz, got %d", a.TargetSampleRate)
	}

	if a.TargetSampleRate > a.InputSampleRate {
		return fmt.Errorf("target_sample_rate (%d) cannot exceed input_sample_rate (%d)",
			a.TargetSampleRate, a.InputSampleRate)
	}

	if a.BlockSize < 64 || a.BlockSize > 16384 {
		return fmt.Errorf("block_size must be between 64 and 16384 samples, got %d", a.BlockSize)
	}

	if a.DeviceIndex < -1 {
		return fmt.Errorf("device_index must be -1 (default input) or a device index, got %d", a.DeviceIndex)
	}

	if a.QueueCapacity < 16 {
		return fmt.Errorf("queue_capacity must be at least 16 frames, got %d", a.QueueCapacity)
	}

	return nil
}

// Validate validates segmentation configuration
func (s *SegmentationConfig) Validate() error {
	if s.SilenceThreshold <= 0 || s.SilenceThreshold >= 1 {
		return fmt.Errorf("silence_threshold must be between 0 and 1 (exclusive), got %f", s.SilenceThreshold)
	}

	if s.SilenceDuration <= 0 {
		return fmt.Errorf("silence_duration must be positive, got %f", s.SilenceDuration)
	}

	if s.WindowDuration <= 0 {
		return fmt.Errorf("window_duration must be positive, got %f", s.WindowDuration)
	}

	if s.PollInterval <= 0 {
		return fmt.Errorf("poll_interval must be positive, got %f", s.PollInterval)
	}

	if s.PollInterval >= s.SilenceDuration {
		return fmt.Errorf("poll_interval (%f) must be shorter than silence_duration (%f)",
			s.PollInterval, s.SilenceDuration)
	}

	return nil
}

// Validate validates transcription configuration
func (t *TranscriptionConfig) Validate() error {
	if t.ModelPath == "" {
		return fmt.Errorf("model_path cannot be empty")
	}

	if t.Language == "" {
		return fmt.Errorf("language cannot be empty")
	}

	return nil
}

// Validate validates metrics configuration
func (m *MetricsConfig) Validate() error {
	if m.Enabled {
		if m.Port < 1 || m.Port > 65535 {
			return fmt.Errorf("port must be between 1 and 65535, got %d", m.Port)
		}

		if m.Address == "" {
			return fmt.Errorf("address cannot be empty when metrics are enabled")
		}
	}

	return nil
}

// Validate validates logging configuration
func (l *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[l.Level] {
		return fmt.Errorf("level must be one of [debug, info, warn, error], got '%s'", l.Level)
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("format must be 'json' or 'text', got '%s'", l.Format)
	}

	return nil
}

// GetSilenceDuration returns the silence gap as a time.Duration
func (s *SegmentationConfig) GetSilenceDuration() time.Duration {
	return time.Duration(s.SilenceDuration * float64(time.Second))
}

// GetWindowDuration returns the continuous-mode flush window as a time.Duration
func (s *SegmentationConfig) GetWindowDuration() time.Duration {
	return time.Duration(s.WindowDuration * float64(time.Second))
}

// GetPollInterval returns the empty-queue wait as a time.Duration
func (s *SegmentationConfig) GetPollInterval() time.Duration {
	return time.Duration(s.PollInterval * float64(time.Second))
}
