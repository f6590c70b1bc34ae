// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
	"time"
)

// Buffer is a fully decoded mono waveform: amplitude values in [-1, 1]
// plus the sample rate they were captured at. Processing stages consume
// a Buffer and produce a new (possibly aliased) one; a Buffer is never
// shared between concurrent pipeline runs.
type Buffer struct {
	Samples []float32
	Rate    int
}

// Collect drains src into a Buffer at the source's native rate,
// averaging multi-channel input down to mono. bufSize controls the
// read granularity (4096 is a good default).
//
// Collect rejects streams containing NaN or Inf values with
// ErrNonFinite so later stages can assume finite amplitudes.
func Collect(src Source, bufSize int) (*Buffer, error) {
	if bufSize <= 0 {
		bufSize = 4096
	}

	mono := NewMonoMixer(src)
	samples := make([]float32, 0, bufSize)
	buf := make([]float32, bufSize)

	for {
		n, err := mono.ReadSamples(buf)
		for i := 0; i < n; i++ {
			v := buf[i]
			if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
				return nil, ErrNonFinite
			}
			samples = append(samples, v)
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	return &Buffer{Samples: samples, Rate: src.SampleRate()}, nil
}

// Len returns the number of samples.
func (b *Buffer) Len() int { return len(b.Samples) }

// Duration returns the playback length of the buffer.
func (b *Buffer) Duration() time.Duration {
	if b.Rate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.Rate) * float64(time.Second))
}

// Peak returns the maximum absolute amplitude in the buffer, 0 for an
// empty buffer.
func (b *Buffer) Peak() float32 {
	var peak float32
	for _, v := range b.Samples {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := make([]float32, len(b.Samples))
	copy(out, b.Samples)
	return &Buffer{Samples: out, Rate: b.Rate}
}

// bufferSource adapts a Buffer back into a streaming Source so that a
// fully decoded waveform can feed Source-based processors such as the
// Resampler.
type bufferSource struct {
	b   *Buffer
	pos int
}

func (s *bufferSource) SampleRate() int { return s.b.Rate }
func (s *bufferSource) Channels() int   { return 1 }
func (s *bufferSource) BufSize() int    { return 4096 }
func (s *bufferSource) Close() error    { return nil }

func (s *bufferSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.b.Samples) {
		return 0, io.EOF
	}
	n := copy(dst, s.b.Samples[s.pos:])
	s.pos += n
	return n, nil
}
