// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"math"
)

// ResampleBuffer converts b to dstRate using the streaming Resampler
// and returns a buffer of exactly round(len(b) * dstRate / b.Rate)
// samples, so the duration is preserved to within one sample of
// rounding. When dstRate equals the buffer's rate the input is
// returned unchanged.
func ResampleBuffer(b *Buffer, dstRate int) (*Buffer, error) {
	if b.Rate <= 0 || dstRate <= 0 {
		return nil, fmt.Errorf("resample %d -> %d: %w", b.Rate, dstRate, ErrInvalidRate)
	}
	if dstRate == b.Rate {
		return b, nil
	}

	want := int(math.Round(float64(len(b.Samples)) * float64(dstRate) / float64(b.Rate)))
	if len(b.Samples) == 0 || want == 0 {
		return &Buffer{Samples: nil, Rate: dstRate}, nil
	}

	resampler := NewResampler(&bufferSource{b: b}, dstRate)
	samples := make([]float32, 0, want)
	buf := make([]float32, 4096)

	for {
		n, err := resampler.ReadSamples(buf)
		samples = append(samples, buf[:n]...)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
	}

	// The streaming resampler can run a few frames short at the tail
	// (its interpolation window needs lookahead it no longer has) or a
	// frame long from rounding. Pin the length so duration is exact.
	if len(samples) > want {
		samples = samples[:want]
	}
	for len(samples) < want {
		last := float32(0)
		if len(samples) > 0 {
			last = samples[len(samples)-1]
		}
		samples = append(samples, last)
	}

	return &Buffer{Samples: samples, Rate: dstRate}, nil
}
