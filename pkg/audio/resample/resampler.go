// ABOUTME: Linear resampler with a box pre-filter for downsampling
// ABOUTME: Brings decoded input down to the 8kHz rate the speech codec expects
package resample

// Resampler performs linear interpolation to convert between sample rates.
// When downsampling by a factor of two or more, each input frame is first
// averaged with the following frames in its window to knock down content
// above the output Nyquist rate.
type Resampler struct {
	inputRate  int
	outputRate int
	channels   int
	ratio      float64
	taps       int
	position   float64
}

// New creates a new resampler
func New(inputRate, outputRate, channels int) *Resampler {
	ratio := float64(inputRate) / float64(outputRate)
	taps := 1
	if ratio >= 2 {
		taps = int(ratio)
	}
	return &Resampler{
		inputRate:  inputRate,
		outputRate: outputRate,
		channels:   channels,
		ratio:      ratio,
		taps:       taps,
	}
}

// Resample converts input samples to output sample rate.
// input and output are interleaved; the return value is the number of
// output samples written.
func (r *Resampler) Resample(input []int32, output []int32) int {
	if len(input) == 0 {
		return 0
	}

	inputFrames := len(input) / r.channels
	outputFrames := len(output) / r.channels

	outIdx := 0
	for outIdx < outputFrames {
		inputIdx := int(r.position)
		if inputIdx >= inputFrames-1 {
			break
		}

		frac := r.position - float64(inputIdx)
		for ch := 0; ch < r.channels; ch++ {
			s1 := r.tap(input, inputIdx, ch, inputFrames)
			s2 := r.tap(input, inputIdx+1, ch, inputFrames)
			output[outIdx*r.channels+ch] = int32(s1*(1.0-frac) + s2*frac)
		}

		outIdx++
		r.position += r.ratio
	}

	// Keep the fractional part for the next chunk
	r.position -= float64(int(r.position))

	return outIdx * r.channels
}

// tap returns the filtered value of one channel at an input frame
func (r *Resampler) tap(input []int32, frame, ch, frames int) float64 {
	if r.taps == 1 {
		return float64(input[frame*r.channels+ch])
	}

	var sum float64
	n := 0
	for k := frame; k < frame+r.taps && k < frames; k++ {
		sum += float64(input[k*r.channels+ch])
		n++
	}
	return sum / float64(n)
}

// OutputSamplesNeeded calculates how many output samples will be produced from input samples
func (r *Resampler) OutputSamplesNeeded(inputSamples int) int {
	inputFrames := inputSamples / r.channels
	outputFrames := int(float64(inputFrames) / r.ratio)
	return outputFrames * r.channels
}
