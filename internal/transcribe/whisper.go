package transcribe

import (
	"fmt"
	"io"
	"strings"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"
)

// Transcriber converts a mono float32 sample sequence at the target rate
// into recognized text. The returned text may be empty when the engine
// finds no speech.
type Transcriber interface {
	Transcribe(samples []float32) (string, error)
	Close() error
}

// Config contains recognition engine configuration
type Config struct {
	ModelPath string
	Language  string
}

// Whisper implements Transcriber using the whisper.cpp Go bindings.
// The model is loaded once; each utterance gets its own decode context.
type Whisper struct {
	model    whisper.Model
	language string

	// whisper decode contexts are not safe for concurrent use
	mu sync.Mutex
}

// NewWhisper loads the ggml model at the configured path. The caller must
// Close the returned transcriber to release model resources.
func NewWhisper(cfg Config) (*Whisper, error) {
	if cfg.ModelPath == "" {
		return nil, fmt.Errorf("model path cannot be empty")
	}

	model, err := whisper.New(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load whisper model %s: %w", cfg.ModelPath, err)
	}

	return &Whisper{
		model:    model,
		language: cfg.Language,
	}, nil
}

// Transcribe runs a full decode over the given 16 kHz mono samples and
// returns the joined segment text. The call blocks for the duration of
// the decode.
func (w *Whisper) Transcribe(samples []float32) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	ctx, err := w.model.NewContext()
	if err != nil {
		return "", fmt.Errorf("failed to create decode context: %w", err)
	}

	if w.language != "" {
		if err := ctx.SetLanguage(w.language); err != nil {
			return "", fmt.Errorf("failed to set language %q: %w", w.language, err)
		}
	}

	if err := ctx.Process(samples, nil, nil, nil); err != nil {
		return "", fmt.Errorf("failed to process audio: %w", err)
	}

	var parts []string
	for {
		seg, err := ctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read segment: %w", err)
		}
		parts = append(parts, seg.Text)
	}

	return strings.TrimSpace(strings.Join(parts, " ")), nil
}

// Close releases the loaded model. Safe to call more than once.
func (w *Whisper) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.model == nil {
		return nil
	}

	err := w.model.Close()
	w.model = nil
	return err
}
