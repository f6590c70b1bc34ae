// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"

	"github.com/urduvox/urduvox/audio"
)

// DefaultPeak is the default normalization ceiling, kept below 1.0 so
// a downstream lossy encode cannot clip.
const DefaultPeak = 0.98

// normEpsilon guards the peak division on an all-silent buffer.
const normEpsilon = 1e-9

// Normalize rescales b so its maximum absolute amplitude equals peak.
// An all-zero buffer stays all-zero. peak must lie in (0, 1].
func Normalize(b *audio.Buffer, peak float64) (*audio.Buffer, error) {
	if peak <= 0 || peak > 1 {
		return nil, fmt.Errorf("peak ceiling %g: %w", peak, ErrInvalidPeak)
	}

	scale := float32(peak / (float64(b.Peak()) + normEpsilon))

	out := make([]float32, len(b.Samples))
	for i, v := range b.Samples {
		out[i] = v * scale
	}

	return &audio.Buffer{Samples: out, Rate: b.Rate}, nil
}
