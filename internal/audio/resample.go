package audio

import "math"

// Resample converts a sample sequence from inRate to outRate using linear
// interpolation at evenly spaced query positions. The output length is
// round(len(samples) * outRate / inRate). This trades fidelity for
// simplicity: the recognition engine only needs rate-compatible input,
// not transparent resampling.
func Resample(samples []float32, inRate, outRate int) []float32 {
	if len(samples) == 0 {
		return nil
	}

	if inRate == outRate {
		out := make([]float32, len(samples))
		copy(out, samples)
		return out
	}

	outLen := int(math.Round(float64(len(samples)) * float64(outRate) / float64(inRate)))
	if outLen < 1 {
		return nil
	}

	out := make([]float32, outLen)
	if len(samples) == 1 || outLen == 1 {
		for i := range out {
			out[i] = samples[0]
		}
		return out
	}

	// Query positions span the full input range [0, len-1].
	step := float64(len(samples)-1) / float64(outLen-1)
	for i := range out {
		pos := float64(i) * step
		j := int(pos)
		if j >= len(samples)-1 {
			out[i] = samples[len(samples)-1]
			continue
		}
		frac := float32(pos - float64(j))
		out[i] = samples[j] + (samples[j+1]-samples[j])*frac
	}

	return out
}

// Normalize scales the sequence down in place so every sample fits in
// [-1, 1]. Sequences already within range are returned unchanged: quiet
// recordings are never amplified.
func Normalize(samples []float32) []float32 {
	peak := Peak(samples)
	if peak <= 1.0 {
		return samples
	}

	for i := range samples {
		samples[i] /= peak
	}
	return samples
}
