package output

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/atotto/clipboard"
	"github.com/gen2brain/beeep"

	"github.com/dj0le/whisper/internal/metrics"
	"github.com/dj0le/whisper/internal/segment"
)

// Clipboard abstracts the system clipboard so the sink can be tested on
// hosts without a clipboard backend.
type Clipboard interface {
	WriteAll(text string) error
}

// systemClipboard is the real clipboard backed by atotto/clipboard.
type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

// Notifier sends a desktop notification for a transcript.
type Notifier interface {
	Notify(title, message string) error
}

type desktopNotifier struct{}

func (desktopNotifier) Notify(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Config contains output sink configuration
type Config struct {
	Clipboard bool
	Notify    bool
}

// Sink prints transcripts and places them on the clipboard. It implements
// segment.Sink.
type Sink struct {
	w         io.Writer
	clipboard Clipboard // nil when disabled
	notifier  Notifier  // nil when disabled
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

// NewSink creates a sink writing to standard output. metrics may be nil.
func NewSink(cfg Config, logger *slog.Logger, m *metrics.Metrics) *Sink {
	s := &Sink{
		w:       os.Stdout,
		logger:  logger,
		metrics: m,
	}

	if cfg.Clipboard {
		s.clipboard = systemClipboard{}
	}
	if cfg.Notify {
		s.notifier = desktopNotifier{}
	}

	return s
}

// Deliver reports one utterance result to the user.
func (s *Sink) Deliver(res segment.Result) {
	switch res.Outcome {
	case segment.OutcomeTranscribed:
		fmt.Fprintf(s.w, "Transcription: %s\n", res.Text)
		s.copyToClipboard(res.Text)
		s.notify(res.Text)

	case segment.OutcomeNoSpeech:
		fmt.Fprintln(s.w, "No speech detected in audio")

	case segment.OutcomeTranscriptionFailed:
		fmt.Fprintf(s.w, "Transcription error: %v\n", res.Err)
	}
}

// copyToClipboard attempts the clipboard write. A missing backend is a
// reported condition, not an error: the transcript was already printed.
func (s *Sink) copyToClipboard(text string) {
	if s.clipboard == nil {
		return
	}

	if err := s.clipboard.WriteAll(text); err != nil {
		s.logger.Warn("Clipboard write failed", slog.String("error", err.Error()))
		if s.metrics != nil {
			s.metrics.ClipboardErrors.Inc()
		}
	}
}

func (s *Sink) notify(text string) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.Notify("whisper-mic", text); err != nil {
		s.logger.Warn("Notification failed", slog.String("error", err.Error()))
	}
}
