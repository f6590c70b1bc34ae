// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// MonoMixer averages an interleaved multi-channel Source down to one
// channel. Reference uploads and backend responses are frequently
// stereo; everything past the loader works on mono, so this sits
// directly behind Collect.
type MonoMixer struct {
	src       Source
	interlace []float32
}

// NewMonoMixer wraps src. A mono src passes through untouched.
func NewMonoMixer(src Source) *MonoMixer {
	return &MonoMixer{
		src:       src,
		interlace: make([]float32, 4096),
	}
}

func (m *MonoMixer) SampleRate() int { return m.src.SampleRate() }
func (m *MonoMixer) Channels() int   { return 1 }
func (m *MonoMixer) BufSize() int    { return m.src.BufSize() }

func (m *MonoMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// ReadSamples fills dst with one averaged sample per source frame. A
// source reporting fewer than one channel is rejected rather than
// looped on: a zero-channel read would make no progress and a caller
// draining the stream would never terminate.
func (m *MonoMixer) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	channels := m.src.Channels()
	if channels < 1 {
		return 0, fmt.Errorf("%d channels: %w", channels, ErrNoChannels)
	}
	if channels == 1 {
		return m.src.ReadSamples(dst)
	}

	need := len(dst) * channels
	if cap(m.interlace) < need {
		m.interlace = make([]float32, need)
	}

	n, err := m.src.ReadSamples(m.interlace[:need])
	if n == 0 {
		return 0, err
	}

	frames := n / channels
	if channels == 2 {
		for f := 0; f < frames; f++ {
			dst[f] = (m.interlace[2*f] + m.interlace[2*f+1]) * 0.5
		}
		return frames, err
	}

	scale := 1 / float32(channels)
	for f := 0; f < frames; f++ {
		var sum float32
		base := f * channels
		for c := 0; c < channels; c++ {
			sum += m.interlace[base+c]
		}
		dst[f] = sum * scale
	}

	return frames, err
}
