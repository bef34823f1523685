package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the transcription pipeline
type Metrics struct {
	// Capture metrics
	FramesCaptured prometheus.Counter
	FramesDropped  prometheus.Counter
	QueueDepth     prometheus.Gauge

	// Segmentation metrics
	UtterancesFlushed     *prometheus.CounterVec
	UtteranceAudioSeconds prometheus.Histogram

	// Transcription metrics
	TranscriptionDuration prometheus.Histogram

	// Output metrics
	ClipboardErrors prometheus.Counter
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		FramesCaptured: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mic_frames_captured_total",
			Help: "Total number of audio frames enqueued by the capture callback",
		}),
		FramesDropped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mic_frames_dropped_total",
			Help: "Total number of audio frames dropped because the frame queue was full",
		}),
		QueueDepth: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "mic_frame_queue_depth",
			Help: "Current number of frames waiting in the capture queue",
		}),
		UtterancesFlushed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "mic_utterances_flushed_total",
			Help: "Total number of flushed utterances by outcome",
		}, []string{"outcome"}),
		UtteranceAudioSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mic_utterance_audio_seconds",
			Help:    "Audio duration of flushed utterances in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		}),
		TranscriptionDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "mic_transcription_duration_seconds",
			Help:    "Wall-clock time spent in the recognition engine per utterance",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ClipboardErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "mic_clipboard_errors_total",
			Help: "Total number of failed clipboard writes",
		}),
	}
}
