// Package audio provides the sample-level building blocks of the pipeline.
// It defines the Frame type delivered by the capture callback, peak amplitude
// helpers used for silence detection, the linear-interpolation resampler, and
// WAV encoding for the optional utterance archive.
package audio
