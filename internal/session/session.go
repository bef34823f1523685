package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/dj0le/whisper/internal/capture"
	"github.com/dj0le/whisper/internal/config"
	"github.com/dj0le/whisper/internal/metrics"
	"github.com/dj0le/whisper/internal/output"
	"github.com/dj0le/whisper/internal/segment"
	"github.com/dj0le/whisper/internal/transcribe"
)

// joinTimeout bounds how long shutdown waits for the segmentation loop.
const joinTimeout = 2 * time.Second

// Session runs one transcription session from microphone open to shutdown.
// In continuous mode it records immediately and flushes on a fixed window;
// in interactive mode recording is toggled from the terminal and utterances
// close on silence gaps.
type Session struct {
	cfg         *config.Config
	interactive bool
	logger      *slog.Logger
	metrics     *metrics.Metrics

	recording atomic.Bool

	// in and out are the command terminal; replaced in tests
	in  io.Reader
	out io.Writer
}

// New creates a session. metrics may be nil.
func New(cfg *config.Config, interactive bool, logger *slog.Logger, m *metrics.Metrics) *Session {
	return &Session{
		cfg:         cfg,
		interactive: interactive,
		logger:      logger,
		metrics:     m,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// Run executes the session until ctx is cancelled or the user exits.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := capture.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize audio subsystem: %w", err)
	}
	defer capture.Terminate()

	s.logDevices()

	transcriber, err := transcribe.NewWhisper(transcribe.Config{
		ModelPath: s.cfg.Transcription.ModelPath,
		Language:  s.cfg.Transcription.Language,
	})
	if err != nil {
		return fmt.Errorf("failed to load transcription model: %w", err)
	}
	defer transcriber.Close()

	var server *metrics.Server
	if s.cfg.Metrics.Enabled {
		server = metrics.NewServer(metrics.ServerConfig{
			Address: s.cfg.Metrics.Address,
			Port:    s.cfg.Metrics.Port,
		}, s.logger)
		server.Start()
		defer func() {
			stopCtx, stopCancel := context.WithTimeout(context.Background(), joinTimeout)
			defer stopCancel()
			if err := server.Stop(stopCtx); err != nil {
				s.logger.Warn("Metrics server shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	sink := output.NewSink(output.Config{
		Clipboard: s.cfg.Output.Clipboard,
		Notify:    s.cfg.Output.Notify,
	}, s.logger, s.metrics)

	segCfg := segment.Config{
		InputSampleRate:  s.cfg.Audio.InputSampleRate,
		TargetSampleRate: s.cfg.Audio.TargetSampleRate,
		SilenceThreshold: s.cfg.Segmentation.SilenceThreshold,
		PollInterval:     s.cfg.Segmentation.GetPollInterval(),
		ArchiveDir:       s.cfg.Output.ArchiveDir,
	}
	if s.interactive {
		segCfg.SilenceDuration = s.cfg.Segmentation.GetSilenceDuration()
	} else {
		segCfg.WindowDuration = s.cfg.Segmentation.GetWindowDuration()
	}
	processor := segment.NewProcessor(segCfg, transcriber, sink, s.logger, s.metrics)

	stream, err := capture.Open(capture.Config{
		SampleRate:       s.cfg.Audio.InputSampleRate,
		BlockSize:        s.cfg.Audio.BlockSize,
		DeviceIndex:      s.cfg.Audio.DeviceIndex,
		QueueCapacity:    s.cfg.Audio.QueueCapacity,
		SilenceThreshold: s.cfg.Segmentation.SilenceThreshold,
	}, &s.recording, s.logger, s.metrics)
	if err != nil {
		return fmt.Errorf("failed to open audio stream: %w", err)
	}
	defer stream.Close()

	// Interactive sessions start idle and wait for the first toggle.
	s.recording.Store(!s.interactive)

	done := make(chan struct{})
	go func() {
		defer close(done)
		processor.Run(ctx, stream.Frames())
	}()

	if err := stream.Start(); err != nil {
		cancel()
		<-done
		return fmt.Errorf("failed to start audio stream: %w", err)
	}

	if s.interactive {
		fmt.Fprintln(s.out, "Press Enter to start/stop recording, type 'exit' to quit.")
		go s.readCommands(cancel)
	} else {
		s.logger.Info("Recording started",
			slog.Duration("window", s.cfg.Segmentation.GetWindowDuration()))
	}

	<-ctx.Done()

	if err := stream.Close(); err != nil {
		s.logger.Warn("Audio stream close failed", slog.String("error", err.Error()))
	}

	select {
	case <-done:
	case <-time.After(joinTimeout):
		s.logger.Warn("Segmentation loop did not stop in time")
	}

	s.logger.Info("Session finished",
		slog.Uint64("frames_captured", stream.Captured()),
		slog.Uint64("frames_dropped", stream.Dropped()))

	return nil
}

// readCommands serves the interactive terminal until EOF or an exit command.
func (s *Session) readCommands(cancel context.CancelFunc) {
	scanner := bufio.NewScanner(s.in)
	for scanner.Scan() {
		if !s.handleCommand(scanner.Text()) {
			cancel()
			return
		}
	}
	// Terminal closed; treat it like an exit command.
	cancel()
}

// handleCommand processes one line from the terminal. It returns false when
// the session should end.
func (s *Session) handleCommand(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "":
		if s.recording.Load() {
			s.recording.Store(false)
			fmt.Fprintln(s.out, "Recording stopped")
		} else {
			s.recording.Store(true)
			fmt.Fprintln(s.out, "Recording started")
		}
		return true

	case "exit":
		fmt.Fprintln(s.out, "Exiting")
		return false

	default:
		fmt.Fprintln(s.out, "Press Enter to toggle recording, or type 'exit'")
		return true
	}
}

// logDevices reports the available input devices at session start.
func (s *Session) logDevices() {
	devices, err := capture.ListDevices()
	if err != nil {
		s.logger.Warn("Failed to enumerate input devices", slog.String("error", err.Error()))
		return
	}

	for _, d := range devices {
		s.logger.Debug("Input device",
			slog.Int("index", d.Index),
			slog.String("name", d.Name),
			slog.Bool("default", d.IsDefault))
	}
}
