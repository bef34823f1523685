package audio

import "time"

// Frame is one fixed-length block of mono float32 samples delivered by the
// capture device in a single hardware callback. A Frame is copied off the
// driver's buffer before it enters the pipeline and is never mutated after
// that copy.
type Frame []float32

// Peak returns the maximum absolute amplitude in samples.
// An empty slice has a peak of 0.
func Peak(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		if s < 0 {
			s = -s
		}
		if s > peak {
			peak = s
		}
	}
	return peak
}

// Concat flattens frames into a single contiguous sample sequence,
// preserving capture order.
func Concat(frames []Frame) []float32 {
	total := 0
	for _, f := range frames {
		total += len(f)
	}

	out := make([]float32, 0, total)
	for _, f := range frames {
		out = append(out, f...)
	}
	return out
}

// Duration returns the playback time of n samples at the given sample rate.
func Duration(n, sampleRate int) time.Duration {
	if sampleRate <= 0 || n <= 0 {
		return 0
	}
	return time.Duration(float64(n) / float64(sampleRate) * float64(time.Second))
}
