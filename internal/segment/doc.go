// Package segment implements the segmentation and transcription loop. It
// drains the frame queue, accumulates an utterance buffer, closes the
// utterance on a silence gap (or a fixed window in continuous mode), and
// dispatches the resampled audio to the recognition engine. Every flush
// produces an explicit Result so the output sink and tests can act on the
// outcome kind instead of parsing log text.
package segment
