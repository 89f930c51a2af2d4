package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

const (
	riffHeaderSize = 12
	pcmFormat      = 1
)

// Load reads a 16-bit PCM WAV file into a mono Buffer. Files with more than
// one channel are rejected.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading audio file %s: %w", path, err)
	}
	buf, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return buf, nil
}

// Decode parses 16-bit PCM WAV bytes into a mono Buffer.
func Decode(data []byte) (*Buffer, error) {
	if len(data) < riffHeaderSize {
		return nil, fmt.Errorf("wav data too short: %d bytes", len(data))
	}
	if string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	var (
		sampleRate    int
		channels      int
		bitsPerSample int
		samples       []float32
		haveFmt       bool
		haveData      bool
	)

	// Walk the chunk list. Chunks are word-aligned.
	off := riffHeaderSize
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		body := off + 8
		if body+size > len(data) {
			return nil, fmt.Errorf("truncated %q chunk", id)
		}

		switch id {
		case "fmt ":
			if size < 16 {
				return nil, fmt.Errorf("fmt chunk too short: %d bytes", size)
			}
			format := int(binary.LittleEndian.Uint16(data[body : body+2]))
			if format != pcmFormat {
				return nil, fmt.Errorf("unsupported wav format %d: only PCM is supported", format)
			}
			channels = int(binary.LittleEndian.Uint16(data[body+2 : body+4]))
			sampleRate = int(binary.LittleEndian.Uint32(data[body+4 : body+8]))
			bitsPerSample = int(binary.LittleEndian.Uint16(data[body+14 : body+16]))
			haveFmt = true

		case "data":
			if !haveFmt {
				return nil, fmt.Errorf("data chunk before fmt chunk")
			}
			if channels != 1 {
				return nil, fmt.Errorf("audio must be single-channel, got %d channels", channels)
			}
			if bitsPerSample != 16 {
				return nil, fmt.Errorf("unsupported bit depth %d: only 16-bit PCM is supported", bitsPerSample)
			}
			n := size / 2
			samples = make([]float32, n)
			for i := 0; i < n; i++ {
				v := int16(binary.LittleEndian.Uint16(data[body+2*i : body+2*i+2]))
				samples[i] = float32(v) / math.MaxInt16
			}
			haveData = true
		}

		off = body + size
		if size%2 == 1 {
			off++
		}
	}

	if !haveFmt || !haveData {
		return nil, fmt.Errorf("wav file missing fmt or data chunk")
	}
	return &Buffer{Samples: samples, SampleRate: sampleRate}, nil
}

// WAV encodes the buffer as a 16-bit PCM WAV file.
func (b *Buffer) WAV() []byte {
	rate := b.SampleRate
	if rate <= 0 {
		rate = DefaultSampleRate
	}

	dataSize := len(b.Samples) * 2
	var out bytes.Buffer
	out.Grow(riffHeaderSize + 24 + 8 + dataSize)

	out.WriteString("RIFF")
	writeUint32(&out, uint32(36+dataSize))
	out.WriteString("WAVE")

	out.WriteString("fmt ")
	writeUint32(&out, 16)
	writeUint16(&out, pcmFormat)
	writeUint16(&out, 1) // mono
	writeUint32(&out, uint32(rate))
	writeUint32(&out, uint32(rate*2)) // byte rate
	writeUint16(&out, 2)              // block align
	writeUint16(&out, 16)             // bits per sample

	out.WriteString("data")
	writeUint32(&out, uint32(dataSize))
	for _, s := range b.Samples {
		v := s
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		writeUint16(&out, uint16(int16(v*math.MaxInt16)))
	}

	return out.Bytes()
}

func writeUint16(w *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	w.Write(b[:])
}

func writeUint32(w *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}
