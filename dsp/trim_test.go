// SPDX-License-Identifier: EPL-2.0

package dsp_test

import (
	"testing"

	"github.com/urduvox/urduvox/audio"
	"github.com/urduvox/urduvox/dsp"
)

// paddedBuffer builds lead silent samples, then body voiced samples at
// the given amplitude, then tail silent samples.
func paddedBuffer(rate, lead, body, tail int, amp float32) *audio.Buffer {
	samples := make([]float32, 0, lead+body+tail)
	for i := 0; i < lead; i++ {
		samples = append(samples, 0)
	}
	for i := 0; i < body; i++ {
		samples = append(samples, amp)
	}
	for i := 0; i < tail; i++ {
		samples = append(samples, 0)
	}
	return &audio.Buffer{Samples: samples, Rate: rate}
}

func TestTrim_LeadingAndTrailing(t *testing.T) {
	t.Parallel()

	buf := paddedBuffer(16000, 1600, 8000, 3200, 0.5)
	out := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 0)

	if out.Len() != 8000 {
		t.Errorf("Len = %d, want 8000", out.Len())
	}
	if out.Rate != 16000 {
		t.Errorf("Rate = %d, want 16000", out.Rate)
	}
	for i, v := range out.Samples {
		if v != 0.5 {
			t.Fatalf("sample %d = %f, want 0.5", i, v)
		}
	}
}

func TestTrim_Padding(t *testing.T) {
	t.Parallel()

	buf := paddedBuffer(16000, 100, 50, 100, 0.5)

	out := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 30)
	if out.Len() != 50+2*30 {
		t.Errorf("Len = %d, want %d", out.Len(), 50+2*30)
	}

	// Padding larger than the available silence clamps to the buffer.
	out = dsp.Trim(buf, dsp.DefaultSilenceThreshold, 500)
	if out.Len() != buf.Len() {
		t.Errorf("Len = %d, want %d", out.Len(), buf.Len())
	}

	// Negative padding behaves like zero.
	out = dsp.Trim(buf, dsp.DefaultSilenceThreshold, -10)
	if out.Len() != 50 {
		t.Errorf("Len = %d, want 50", out.Len())
	}
}

func TestTrim_AllSilent(t *testing.T) {
	t.Parallel()

	// Two seconds of silence at 16kHz come back unchanged.
	buf := &audio.Buffer{Samples: make([]float32, 32000), Rate: 16000}
	out := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 0)

	if out != buf {
		t.Error("all-silent buffer should be returned unchanged")
	}
	if out.Len() != 32000 {
		t.Errorf("Len = %d, want 32000", out.Len())
	}
}

func TestTrim_Empty(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{Rate: 16000}
	out := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 0)
	if out.Len() != 0 {
		t.Errorf("Len = %d, want 0", out.Len())
	}
}

func TestTrim_ThresholdBoundary(t *testing.T) {
	t.Parallel()

	// Samples exactly at the threshold count as silent; only strictly
	// louder samples survive.
	thr := float32(0.01)
	buf := &audio.Buffer{
		Samples: []float32{thr, thr, 0.5, -0.5, thr, thr},
		Rate:    16000,
	}

	out := dsp.Trim(buf, thr, 0)
	if out.Len() != 2 {
		t.Fatalf("Len = %d, want 2", out.Len())
	}
	if out.Samples[0] != 0.5 || out.Samples[1] != -0.5 {
		t.Errorf("samples = %v, want [0.5 -0.5]", out.Samples)
	}
}

func TestTrim_NegativeAmplitude(t *testing.T) {
	t.Parallel()

	// A loud negative sample is voiced too.
	buf := &audio.Buffer{
		Samples: []float32{0, 0, -0.8, 0, 0},
		Rate:    16000,
	}
	out := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 0)
	if out.Len() != 1 || out.Samples[0] != -0.8 {
		t.Errorf("samples = %v, want [-0.8]", out.Samples)
	}
}
