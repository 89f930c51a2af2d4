package audio

import "fmt"

// Batch holds a stack of equal-length padded buffers aligned by index.
type Batch struct {
	Data       [][]float32
	Lengths    []int // original, pre-padding sample counts
	SampleRate int
}

// Len returns the number of rows in the batch.
func (b *Batch) Len() int { return len(b.Data) }

// MaxLen returns the padded row length.
func (b *Batch) MaxLen() int {
	if len(b.Data) == 0 {
		return 0
	}
	return len(b.Data[0])
}

// Stack right-zero-pads all buffers to the maximum observed length and
// stacks them into a single batch. All buffers must share a sample rate.
func Stack(buffers []*Buffer) (*Batch, error) {
	if len(buffers) == 0 {
		return nil, fmt.Errorf("cannot stack an empty buffer list")
	}

	maxLen := 0
	rate := buffers[0].SampleRate
	for i, buf := range buffers {
		if buf == nil {
			return nil, fmt.Errorf("buffer %d is nil", i)
		}
		if buf.SampleRate != rate {
			return nil, fmt.Errorf("buffer %d sample rate %d does not match %d", i, buf.SampleRate, rate)
		}
		if buf.Len() > maxLen {
			maxLen = buf.Len()
		}
	}

	batch := &Batch{
		Data:       make([][]float32, len(buffers)),
		Lengths:    make([]int, len(buffers)),
		SampleRate: rate,
	}
	for i, buf := range buffers {
		row := make([]float32, maxLen)
		copy(row, buf.Samples)
		batch.Data[i] = row
		batch.Lengths[i] = buf.Len()
	}
	return batch, nil
}
