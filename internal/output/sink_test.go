package output

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/dj0le/whisper/internal/segment"
)

type fakeClipboard struct {
	writes []string
	err    error
}

func (f *fakeClipboard) WriteAll(text string) error {
	f.writes = append(f.writes, text)
	return f.err
}

type fakeNotifier struct {
	calls int
	err   error
}

func (f *fakeNotifier) Notify(title, message string) error {
	f.calls++
	return f.err
}

func testSink(w io.Writer, cb Clipboard, n Notifier) *Sink {
	return &Sink{
		w:         w,
		clipboard: cb,
		notifier:  n,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestDeliverTranscribedPrintsAndCopies(t *testing.T) {
	var buf bytes.Buffer
	cb := &fakeClipboard{}
	s := testSink(&buf, cb, nil)

	s.Deliver(segment.Result{
		Outcome: segment.OutcomeTranscribed,
		Text:    "hello world",
	})

	got := buf.String()
	if got != "Transcription: hello world\n" {
		t.Errorf("Expected transcript line, got %q", got)
	}

	if len(cb.writes) != 1 {
		t.Fatalf("Expected 1 clipboard write, got %d", len(cb.writes))
	}
	if cb.writes[0] != "hello world" {
		t.Errorf("Expected clipboard text 'hello world', got %q", cb.writes[0])
	}
}

func TestDeliverNoSpeech(t *testing.T) {
	var buf bytes.Buffer
	cb := &fakeClipboard{}
	s := testSink(&buf, cb, nil)

	s.Deliver(segment.Result{Outcome: segment.OutcomeNoSpeech})

	if buf.String() != "No speech detected in audio\n" {
		t.Errorf("Expected no-speech line, got %q", buf.String())
	}
	if len(cb.writes) != 0 {
		t.Errorf("Expected no clipboard writes, got %d", len(cb.writes))
	}
}

func TestDeliverTranscriptionFailed(t *testing.T) {
	var buf bytes.Buffer
	cb := &fakeClipboard{}
	s := testSink(&buf, cb, nil)

	s.Deliver(segment.Result{
		Outcome: segment.OutcomeTranscriptionFailed,
		Err:     errors.New("model not loaded"),
	})

	if !strings.Contains(buf.String(), "Transcription error: model not loaded") {
		t.Errorf("Expected error line, got %q", buf.String())
	}
	if len(cb.writes) != 0 {
		t.Errorf("Expected no clipboard writes, got %d", len(cb.writes))
	}
}

func TestClipboardFailureStillPrints(t *testing.T) {
	var buf bytes.Buffer
	cb := &fakeClipboard{err: errors.New("no clipboard backend")}
	s := testSink(&buf, cb, nil)

	s.Deliver(segment.Result{
		Outcome: segment.OutcomeTranscribed,
		Text:    "still here",
	})

	if !strings.Contains(buf.String(), "Transcription: still here") {
		t.Errorf("Expected transcript despite clipboard failure, got %q", buf.String())
	}
}

func TestClipboardDisabled(t *testing.T) {
	var buf bytes.Buffer
	s := testSink(&buf, nil, nil)

	s.Deliver(segment.Result{
		Outcome: segment.OutcomeTranscribed,
		Text:    "no clipboard",
	})

	if !strings.Contains(buf.String(), "Transcription: no clipboard") {
		t.Errorf("Expected transcript with clipboard disabled, got %q", buf.String())
	}
}

func TestNotifierCalledForTranscripts(t *testing.T) {
	var buf bytes.Buffer
	n := &fakeNotifier{}
	s := testSink(&buf, nil, n)

	s.Deliver(segment.Result{Outcome: segment.OutcomeTranscribed, Text: "ping"})
	s.Deliver(segment.Result{Outcome: segment.OutcomeNoSpeech})

	if n.calls != 1 {
		t.Errorf("Expected 1 notification, got %d", n.calls)
	}
}

func TestNotifierFailureIsNonFatal(t *testing.T) {
	var buf bytes.Buffer
	n := &fakeNotifier{err: errors.New("no notification daemon")}
	s := testSink(&buf, nil, n)

	s.Deliver(segment.Result{Outcome: segment.OutcomeTranscribed, Text: "ok"})

	if !strings.Contains(buf.String(), "Transcription: ok") {
		t.Errorf("Expected transcript despite notifier failure, got %q", buf.String())
	}
}
