package segment

import "time"

// Outcome classifies what happened to one flushed utterance
type Outcome int

const (
	// OutcomeTranscribed means the engine returned non-empty text
	OutcomeTranscribed Outcome = iota
	// OutcomeNoSpeech means the utterance was discarded as silence, or the
	// engine returned an empty transcript
	OutcomeNoSpeech
	// OutcomeTranscriptionFailed means the engine returned an error; the
	// utterance was discarded and the loop continued
	OutcomeTranscriptionFailed
)

// String returns the outcome label used in logs and metrics
func (o Outcome) String() string {
	switch o {
	case OutcomeTranscribed:
		return "transcribed"
	case OutcomeNoSpeech:
		return "no_speech"
	case OutcomeTranscriptionFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result describes one flushed utterance
type Result struct {
	UtteranceID   string
	Outcome       Outcome
	Text          string
	Err           error
	Frames        int
	Samples       int // sample count before resampling
	AudioDuration time.Duration
	Peak          float32
}

// Sink consumes utterance results. Delivery failures (a missing clipboard
// backend, say) are the sink's to report; they never propagate back into
// the segmentation loop.
type Sink interface {
	Deliver(Result)
}
