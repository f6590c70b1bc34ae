// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"errors"
	"math"
	"testing"

	"github.com/urduvox/urduvox/audio"
)

func sineBuffer(rate, n int, freq float64) *audio.Buffer {
	samples := make([]float32, n)
	for i := range samples {
		t := float64(i) / float64(rate)
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*freq*t))
	}
	return &audio.Buffer{Samples: samples, Rate: rate}
}

func TestResampleBuffer_ExactLength(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		srcRate int
		dstRate int
		n       int
	}{
		{"Downsample44kTo16k", 44100, 16000, 44100},
		{"Upsample16kTo44k", 16000, 44100, 16000},
		{"Downsample48kTo16k", 48000, 16000, 24000},
		{"Upsample8kTo16k", 8000, 16000, 4000},
		{"AwkwardRatio", 22050, 16000, 12345},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			buf := sineBuffer(tc.srcRate, tc.n, 440.0)
			out, err := audio.ResampleBuffer(buf, tc.dstRate)
			if err != nil {
				t.Fatalf("ResampleBuffer failed: %v", err)
			}

			want := int(math.Round(float64(tc.n) * float64(tc.dstRate) / float64(tc.srcRate)))
			if out.Len() != want {
				t.Errorf("Len = %d, want %d", out.Len(), want)
			}
			if out.Rate != tc.dstRate {
				t.Errorf("Rate = %d, want %d", out.Rate, tc.dstRate)
			}
		})
	}
}

func TestResampleBuffer_SameRate(t *testing.T) {
	t.Parallel()

	buf := sineBuffer(16000, 1000, 440.0)
	out, err := audio.ResampleBuffer(buf, 16000)
	if err != nil {
		t.Fatalf("ResampleBuffer failed: %v", err)
	}
	if out != buf {
		t.Error("same-rate resample should return the input buffer")
	}
}

func TestResampleBuffer_InvalidRates(t *testing.T) {
	t.Parallel()

	buf := sineBuffer(16000, 100, 440.0)

	if _, err := audio.ResampleBuffer(buf, 0); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("dst=0: error = %v, want ErrInvalidRate", err)
	}
	if _, err := audio.ResampleBuffer(buf, -8000); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("dst<0: error = %v, want ErrInvalidRate", err)
	}

	bad := &audio.Buffer{Samples: []float32{0.1}, Rate: 0}
	if _, err := audio.ResampleBuffer(bad, 16000); !errors.Is(err, audio.ErrInvalidRate) {
		t.Errorf("src=0: error = %v, want ErrInvalidRate", err)
	}
}

func TestResampleBuffer_Empty(t *testing.T) {
	t.Parallel()

	buf := &audio.Buffer{Rate: 44100}
	out, err := audio.ResampleBuffer(buf, 16000)
	if err != nil {
		t.Fatalf("ResampleBuffer failed: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("Len = %d, want 0", out.Len())
	}
	if out.Rate != 16000 {
		t.Errorf("Rate = %d, want 16000", out.Rate)
	}
}

func TestResampleBuffer_AmplitudeBounded(t *testing.T) {
	t.Parallel()

	// A prefiltered cubic resampler should not blow up the signal: the
	// output of a 0.5-peak sine stays comfortably within [-1, 1].
	buf := sineBuffer(44100, 44100, 440.0)
	out, err := audio.ResampleBuffer(buf, 16000)
	if err != nil {
		t.Fatalf("ResampleBuffer failed: %v", err)
	}
	if peak := out.Peak(); peak > 1.0 {
		t.Errorf("peak = %f, want <= 1.0", peak)
	}
}
