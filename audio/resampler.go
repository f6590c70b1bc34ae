// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/urduvox/urduvox/utils"
)

// Resampler converts a Source to a target sample rate by cubic
// interpolation over a sliding four-frame window, preserving the
// channel count. When downsampling (the common case here: 44.1kHz
// uploads down to the 16kHz conditioning rate) a one-pole low-pass
// prefilter knocks down energy above the destination Nyquist before
// interpolation.
type Resampler struct {
	src      Source
	srcRate  float64
	dstRate  float64
	step     float64 // source frames consumed per output frame
	channels int

	// Sliding interpolation window: window[0] is t-1, window[1] and
	// window[2] bracket the current position, window[3] is lookahead.
	window [4][]float32
	valid  [4]bool
	primed bool

	// Fractional position between window[1] and window[2].
	frac float64

	readBuf []float32
	eof     bool

	lpState []float32
	lpAlpha float32
}

// NewResampler wraps src, producing samples at dstRate.
func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		srcRate:  float64(src.SampleRate()),
		dstRate:  float64(dstRate),
		step:     step,
		channels: channels,
		readBuf:  make([]float32, 4096),
		lpState:  make([]float32, channels),
	}
	if step > 1.0 {
		// Downsampling: one-pole smoothing before interpolation.
		r.lpAlpha = 0.5
	}
	for i := range r.window {
		r.window[i] = make([]float32, channels)
	}
	return r
}

func (r *Resampler) SampleRate() int { return int(r.dstRate) }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// prime fills the interpolation window with the first source frames,
// duplicating the last valid frame when the stream is shorter than the
// window.
func (r *Resampler) prime() error {
	for i := 0; i < 4; i++ {
		n, err := r.src.ReadSamples(r.readBuf[:r.channels])
		if n > 0 {
			copy(r.window[i], r.readBuf[:n])
			r.valid[i] = true
			if i == 0 && r.lpAlpha > 0 {
				// Seed the filter so the first frames don't ramp from 0.
				copy(r.lpState, r.readBuf[:n])
			}
		}
		if err == io.EOF {
			r.eof = true
			if i == 0 {
				return io.EOF
			}
			for j := i; j < 4; j++ {
				copy(r.window[j], r.window[i-1])
				r.valid[j] = true
			}
			break
		}
		if err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	r.primed = true
	return nil
}

// advance slides the window one source frame forward.
func (r *Resampler) advance() error {
	if r.eof {
		return io.EOF
	}

	copy(r.window[0], r.window[1])
	copy(r.window[1], r.window[2])
	copy(r.window[2], r.window[3])
	r.valid[0], r.valid[1], r.valid[2] = r.valid[1], r.valid[2], r.valid[3]

	n, err := r.src.ReadSamples(r.readBuf[:r.channels])
	if n > 0 {
		copy(r.window[3], r.readBuf[:n])
		r.valid[3] = true
		if r.lpAlpha > 0 {
			for c := 0; c < r.channels; c++ {
				r.window[3][c] = r.lpAlpha*r.window[3][c] + (1-r.lpAlpha)*r.lpState[c]
				r.lpState[c] = r.window[3][c]
			}
		}
	} else {
		r.valid[3] = false
	}

	if err == io.EOF {
		r.eof = true
		if !r.valid[3] {
			return io.EOF
		}
	} else if err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.primed {
		if err := r.prime(); err != nil {
			if err == io.EOF {
				return 0, io.EOF
			}
			return 0, err
		}
	}

	written := 0
	frames := len(dst) / r.channels

	for written < frames {
		for r.frac >= 1.0 {
			r.frac -= 1.0
			if err := r.advance(); err != nil {
				if err == io.EOF {
					if written == 0 {
						return 0, io.EOF
					}
					return written * r.channels, io.EOF
				}
				return written * r.channels, err
			}
		}

		if !r.valid[1] || !r.valid[2] {
			if written == 0 {
				return 0, io.EOF
			}
			return written * r.channels, io.EOF
		}

		alpha := float32(r.frac)
		for c := 0; c < r.channels; c++ {
			y0 := r.window[1][c]
			if r.valid[0] {
				y0 = r.window[0][c]
			}
			y3 := r.window[2][c]
			if r.valid[3] {
				y3 = r.window[3][c]
			}
			dst[written*r.channels+c] = utils.CubicInterpolate(
				y0, r.window[1][c], r.window[2][c], y3, alpha)
		}

		written++
		r.frac += r.step
	}

	return written * r.channels, nil
}
