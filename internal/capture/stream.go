package capture

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gordonklaus/portaudio"

	"github.com/dj0le/whisper/internal/audio"
	"github.com/dj0le/whisper/internal/metrics"
)

// Config contains capture stream configuration
type Config struct {
	SampleRate       int
	BlockSize        int
	DeviceIndex      int // -1 selects the default input device
	QueueCapacity    int
	SilenceThreshold float32
}

// Stream is a mono microphone input stream. The driver callback copies each
// block into a Frame and enqueues it while recording is enabled; the frame
// channel is the only path by which audio crosses into the processing
// goroutine, in capture order.
type Stream struct {
	cfg       Config
	logger    *slog.Logger
	metrics   *metrics.Metrics
	stream    *portaudio.Stream
	frames    chan audio.Frame
	recording *atomic.Bool

	dropped  atomic.Uint64
	captured atomic.Uint64

	closeOnce sync.Once
	closeErr  error
}

// Open opens a mono input stream at the configured rate and block size.
// recording gates whether callback-delivered frames are enqueued at all.
// Stream open failures are terminal; there are no retries.
func Open(cfg Config, recording *atomic.Bool, logger *slog.Logger, m *metrics.Metrics) (*Stream, error) {
	if cfg.QueueCapacity < 1 {
		return nil, fmt.Errorf("queue capacity must be positive, got %d", cfg.QueueCapacity)
	}

	s := &Stream{
		cfg:       cfg,
		logger:    logger,
		metrics:   m,
		frames:    make(chan audio.Frame, cfg.QueueCapacity),
		recording: recording,
	}

	var err error
	if cfg.DeviceIndex < 0 {
		s.stream, err = portaudio.OpenDefaultStream(1, 0, float64(cfg.SampleRate), cfg.BlockSize, s.enqueue)
	} else {
		devices, derr := portaudio.Devices()
		if derr != nil {
			return nil, fmt.Errorf("failed to query audio devices: %w", derr)
		}
		if cfg.DeviceIndex >= len(devices) {
			return nil, fmt.Errorf("device index %d out of range (%d devices)", cfg.DeviceIndex, len(devices))
		}

		params := portaudio.LowLatencyParameters(devices[cfg.DeviceIndex], nil)
		params.Input.Channels = 1
		params.SampleRate = float64(cfg.SampleRate)
		params.FramesPerBuffer = cfg.BlockSize
		s.stream, err = portaudio.OpenStream(params, s.enqueue)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open input stream: %w", err)
	}

	return s, nil
}

// Start begins frame delivery.
func (s *Stream) Start() error {
	if err := s.stream.Start(); err != nil {
		return fmt.Errorf("failed to start input stream: %w", err)
	}

	s.logger.Info("Listening",
		slog.Int("sample_rate", s.cfg.SampleRate),
		slog.Int("block_size", s.cfg.BlockSize),
	)
	return nil
}

// enqueue is the portaudio callback body. It runs on the driver's thread and
// must never block: copy, try a non-blocking send, drop on overflow.
func (s *Stream) enqueue(in []float32) {
	if s.recording == nil || !s.recording.Load() {
		return
	}

	if peak := audio.Peak(in); peak > s.cfg.SilenceThreshold {
		s.logger.Debug("Audio level", slog.Float64("peak", float64(peak)))
	}

	frame := make(audio.Frame, len(in))
	copy(frame, in)

	select {
	case s.frames <- frame:
		s.captured.Add(1)
		if s.metrics != nil {
			s.metrics.FramesCaptured.Inc()
			s.metrics.QueueDepth.Set(float64(len(s.frames)))
		}
	default:
		s.dropped.Add(1)
		if s.metrics != nil {
			s.metrics.FramesDropped.Inc()
		}
	}
}

// Frames returns the queue of captured frames, FIFO in capture order.
func (s *Stream) Frames() <-chan audio.Frame {
	return s.frames
}

// Captured returns the number of frames enqueued so far.
func (s *Stream) Captured() uint64 {
	return s.captured.Load()
}

// Dropped returns the number of frames discarded on queue overflow.
func (s *Stream) Dropped() uint64 {
	return s.dropped.Load()
}

// Close stops and releases the stream. Idempotent and safe to call
// concurrently with shutdown of the capture loop.
func (s *Stream) Close() error {
	s.closeOnce.Do(func() {
		if s.stream == nil {
			return
		}
		if err := s.stream.Stop(); err != nil {
			s.closeErr = fmt.Errorf("failed to stop input stream: %w", err)
		}
		if err := s.stream.Close(); err != nil && s.closeErr == nil {
			s.closeErr = fmt.Errorf("failed to close input stream: %w", err)
		}
	})
	return s.closeErr
}
