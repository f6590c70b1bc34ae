// SPDX-License-Identifier: EPL-2.0

// Package audiotest provides deterministic in-memory audio sources for
// tests. It deliberately avoids importing the audio package; the
// generated sources satisfy audio.Source structurally.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates interleaved samples from a waveform function.
type MockSource struct {
	rate     int
	channels int
	total    int // frames to generate
	emitted  int // frames generated so far
	waveform func(frame, channel int) float32
}

// NewMockSource builds a source of total frames at rate, with waveform
// supplying the value for each (frame, channel) pair.
func NewMockSource(rate, channels, total int, waveform func(frame, channel int) float32) *MockSource {
	return &MockSource{
		rate:     rate,
		channels: channels,
		total:    total,
		waveform: waveform,
	}
}

// NewSilentSource generates all-zero frames.
func NewSilentSource(rate, channels, total int) *MockSource {
	return NewMockSource(rate, channels, total, func(frame, channel int) float32 {
		return 0
	})
}

// NewSineSource generates a full-scale sine at the given frequency,
// identical on every channel.
func NewSineSource(rate, channels, total int, freq float64) *MockSource {
	return NewMockSource(rate, channels, total, func(frame, channel int) float32 {
		t := float64(frame) / float64(rate)
		return float32(math.Sin(2 * math.Pi * freq * t))
	})
}

// NewConstantSource generates a fixed value on every channel.
func NewConstantSource(rate, channels, total int, value float32) *MockSource {
	return NewMockSource(rate, channels, total, func(frame, channel int) float32 {
		return value
	})
}

// NewSpeechSource approximates a speech clip for pipeline tests: lead
// frames of silence, then a voiced 220Hz tone at the given amplitude,
// then tail frames of silence.
func NewSpeechSource(rate, channels, lead, voiced, tail int, amp float64) *MockSource {
	return NewMockSource(rate, channels, lead+voiced+tail, func(frame, channel int) float32 {
		if frame < lead || frame >= lead+voiced {
			return 0
		}
		t := float64(frame-lead) / float64(rate)
		return float32(amp * math.Sin(2*math.Pi*220.0*t))
	})
}

func (m *MockSource) SampleRate() int { return m.rate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return 4096 }
func (m *MockSource) Close() error    { return nil }

// Reset rewinds the source so it can be drained again.
func (m *MockSource) Reset() { m.emitted = 0 }

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	if m.emitted >= m.total {
		return 0, io.EOF
	}

	frames := len(dst) / m.channels
	if remaining := m.total - m.emitted; frames > remaining {
		frames = remaining
	}

	for f := 0; f < frames; f++ {
		for c := 0; c < m.channels; c++ {
			dst[f*m.channels+c] = m.waveform(m.emitted+f, c)
		}
	}
	m.emitted += frames

	if m.emitted >= m.total {
		return frames * m.channels, io.EOF
	}
	return frames * m.channels, nil
}
