// SPDX-License-Identifier: EPL-2.0

package dsp

import "github.com/urduvox/urduvox/audio"

// DefaultSilenceThreshold is the amplitude below which a sample is
// considered silent, on the [-1, 1] scale.
const DefaultSilenceThreshold = 1e-4

// Trim removes leading and trailing regions whose absolute amplitude
// never exceeds threshold, keeping up to pad extra samples on each
// side. The returned buffer aliases the input's sample slice.
//
// A buffer with no sample above the threshold is returned unchanged:
// trimming an effectively silent clip is a no-op, not an error.
func Trim(b *audio.Buffer, threshold float32, pad int) *audio.Buffer {
	if pad < 0 {
		pad = 0
	}

	first, last := -1, -1
	for i, v := range b.Samples {
		if v < 0 {
			v = -v
		}
		if v > threshold {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	if first < 0 {
		return b
	}

	lo := first - pad
	if lo < 0 {
		lo = 0
	}
	hi := last + 1 + pad
	if hi > len(b.Samples) {
		hi = len(b.Samples)
	}

	return &audio.Buffer{Samples: b.Samples[lo:hi], Rate: b.Rate}
}
