// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
)

// sliceSource serves pre-computed interleaved samples. Test fixtures
// build the exact frames they want to see on the other side.
type sliceSource struct {
	rate     int
	channels int
	data     []float32
	pos      int
}

func newSliceSource(rate, channels int, data []float32) *sliceSource {
	return &sliceSource{rate: rate, channels: channels, data: data}
}

// newToneSource builds a mono sine fixture at the given amplitude.
func newToneSource(rate, frames int, freq, amp float64) *sliceSource {
	data := make([]float32, frames)
	for i := range data {
		t := float64(i) / float64(rate)
		data[i] = float32(amp * math.Sin(2*math.Pi*freq*t))
	}
	return newSliceSource(rate, 1, data)
}

// newStereoSource interleaves fixed left/right values for every frame.
func newStereoSource(rate, frames int, left, right float32) *sliceSource {
	data := make([]float32, 0, frames*2)
	for i := 0; i < frames; i++ {
		data = append(data, left, right)
	}
	return newSliceSource(rate, 2, data)
}

// newConstantSource fills every channel of every frame with one value.
func newConstantSource(rate, channels, frames int, value float32) *sliceSource {
	data := make([]float32, frames*channels)
	for i := range data {
		data[i] = value
	}
	return newSliceSource(rate, channels, data)
}

func newSilentSource(rate, channels, frames int) *sliceSource {
	return newSliceSource(rate, channels, make([]float32, frames*channels))
}

func (s *sliceSource) SampleRate() int { return s.rate }
func (s *sliceSource) Channels() int   { return s.channels }
func (s *sliceSource) BufSize() int    { return 4096 }
func (s *sliceSource) Close() error    { return nil }

func (s *sliceSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.data) {
		return 0, io.EOF
	}
	n := copy(dst, s.data[s.pos:])
	s.pos += n
	return n, nil
}

// zeroChannelSource reports a malformed channel count, the way a
// decoder fed a corrupt header might.
type zeroChannelSource struct{ sliceSource }

func (s *zeroChannelSource) Channels() int { return 0 }
