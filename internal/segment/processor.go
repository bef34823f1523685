package segment

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/dj0le/whisper/internal/audio"
	"github.com/dj0le/whisper/internal/metrics"
	"github.com/dj0le/whisper/internal/transcribe"
)

// Config contains segmentation loop configuration
type Config struct {
	InputSampleRate  int
	TargetSampleRate int
	SilenceThreshold float32

	// SilenceDuration closes an utterance after this much time without a
	// loud frame. Ignored when WindowDuration is set.
	SilenceDuration time.Duration

	// WindowDuration, when non-zero, flushes on accumulated audio time
	// instead of silence gaps (continuous mode).
	WindowDuration time.Duration

	// PollInterval bounds the wait on an empty frame queue.
	PollInterval time.Duration

	// ArchiveDir, when non-empty, receives one WAV file per utterance.
	ArchiveDir string
}

// Processor runs the segmentation and transcription loop. It is the only
// mutator of the utterance buffer; at most one utterance is in flight at a
// time.
type Processor struct {
	cfg         Config
	transcriber transcribe.Transcriber
	sink        Sink
	logger      *slog.Logger
	metrics     *metrics.Metrics

	// now is the loop's clock; replaced in tests
	now func() time.Time

	frames     []audio.Frame
	bufSamples int
	lastLoud   time.Time
}

// NewProcessor creates a segmentation processor. metrics may be nil.
func NewProcessor(cfg Config, t transcribe.Transcriber, sink Sink, logger *slog.Logger, m *metrics.Metrics) *Processor {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 100 * time.Millisecond
	}

	return &Processor{
		cfg:         cfg,
		transcriber: t,
		sink:        sink,
		logger:      logger,
		metrics:     m,
		now:         time.Now,
	}
}

// Run drains the frame queue until ctx is cancelled. An empty-queue timeout
// is the expected idle condition, not an error; the loop only exits on
// cancellation. A failure while processing one utterance never prevents the
// next from being processed.
func (p *Processor) Run(ctx context.Context, frames <-chan audio.Frame) {
	p.lastLoud = p.now()

	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				return
			}
			p.append(f)
		case <-time.After(p.cfg.PollInterval):
			// Idle; fall through so the silence timer can still close an
			// utterance that ended before the queue went quiet.
		}

		if p.shouldFlush() {
			p.flush()
		}
	}
}

// append adds one frame to the utterance buffer and refreshes the silence
// timer if the frame is loud.
func (p *Processor) append(f audio.Frame) {
	p.frames = append(p.frames, f)
	p.bufSamples += len(f)

	if audio.Peak(f) > p.cfg.SilenceThreshold {
		p.lastLoud = p.now()
	}
}

// shouldFlush reports whether the accumulated buffer forms a complete
// utterance.
func (p *Processor) shouldFlush() bool {
	if len(p.frames) == 0 {
		return false
	}

	if p.cfg.WindowDuration > 0 {
		return audio.Duration(p.bufSamples, p.cfg.InputSampleRate) >= p.cfg.WindowDuration
	}

	return p.now().Sub(p.lastLoud) >= p.cfg.SilenceDuration
}

// flush closes the current utterance: concatenate, silence-check, resample,
// transcribe, deliver. The buffer and silence timer are reset afterwards no
// matter how processing went.
func (p *Processor) flush() {
	samples := audio.Concat(p.frames)
	res := Result{
		UtteranceID:   uuid.NewString(),
		Frames:        len(p.frames),
		Samples:       len(samples),
		AudioDuration: audio.Duration(len(samples), p.cfg.InputSampleRate),
		Peak:          audio.Peak(samples),
	}

	p.frames = nil
	p.bufSamples = 0
	p.lastLoud = p.now()

	if res.Peak < p.cfg.SilenceThreshold {
		res.Outcome = OutcomeNoSpeech
		p.finish(res)
		return
	}

	p.logger.Info("Processing utterance",
		slog.String("utterance_id", res.UtteranceID),
		slog.Duration("audio_duration", res.AudioDuration),
		slog.Float64("peak", float64(res.Peak)),
	)

	resampled := audio.Normalize(audio.Resample(samples, p.cfg.InputSampleRate, p.cfg.TargetSampleRate))
	p.archive(res.UtteranceID, resampled)

	start := time.Now()
	text, err := p.transcriber.Transcribe(resampled)
	if p.metrics != nil {
		p.metrics.TranscriptionDuration.Observe(time.Since(start).Seconds())
	}

	switch {
	case err != nil:
		res.Outcome = OutcomeTranscriptionFailed
		res.Err = err
		p.logger.Error("Transcription failed",
			slog.String("utterance_id", res.UtteranceID),
			slog.String("error", err.Error()),
		)
	case text == "":
		res.Outcome = OutcomeNoSpeech
	default:
		res.Outcome = OutcomeTranscribed
		res.Text = text
	}

	p.finish(res)
}

// finish records metrics and hands the result to the sink.
func (p *Processor) finish(res Result) {
	if p.metrics != nil {
		p.metrics.UtterancesFlushed.WithLabelValues(res.Outcome.String()).Inc()
		p.metrics.UtteranceAudioSeconds.Observe(res.AudioDuration.Seconds())
	}

	p.sink.Deliver(res)
}

// archive saves the resampled utterance as a WAV file when an archive
// directory is configured. Archive failures are reported, never fatal.
func (p *Processor) archive(utteranceID string, samples []float32) {
	if p.cfg.ArchiveDir == "" {
		return
	}

	path := filepath.Join(p.cfg.ArchiveDir, utteranceID+".wav")
	if err := audio.WriteWAV(path, samples, p.cfg.TargetSampleRate); err != nil {
		p.logger.Warn("Failed to archive utterance",
			slog.String("utterance_id", utteranceID),
			slog.String("error", err.Error()),
		)
	}
}
