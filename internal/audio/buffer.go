// Package audio provides mono audio buffers for prompts, a minimal WAV
// codec, and batch padding helpers.
package audio

import "fmt"

// DefaultSampleRate is assumed for buffers constructed without an explicit rate.
const DefaultSampleRate = 16000

// Buffer holds single-channel PCM samples.
type Buffer struct {
	Samples    []float32
	SampleRate int
}

// New creates a mono buffer with the given samples and sample rate.
// A zero rate falls back to DefaultSampleRate.
func New(samples []float32, sampleRate int) *Buffer {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return &Buffer{Samples: samples, SampleRate: sampleRate}
}

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.Samples) }

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// Resolve returns the in-memory buffer if one is attached, otherwise loads
// the WAV file at path.
func Resolve(path string, buf *Buffer) (*Buffer, error) {
	if buf != nil {
		return buf, nil
	}
	if path == "" {
		return nil, fmt.Errorf("audio content is empty: no path and no buffer")
	}
	return Load(path)
}
