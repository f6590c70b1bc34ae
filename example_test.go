// SPDX-License-Identifier: EPL-2.0

package urduvox_test

import (
	"bytes"
	"fmt"
	"math"

	"github.com/urduvox/urduvox"
	"github.com/urduvox/urduvox/audio"
	"github.com/urduvox/urduvox/dsp"
	"github.com/urduvox/urduvox/formats/wav"
)

// Example demonstrates the full post-processing chain on a synthetic
// clip: decode, trim silence, resample, normalize, re-encode.
func Example() {
	// Build a 44.1kHz clip: 0.1s of silence, 0.5s of a quiet tone,
	// 0.1s of silence.
	samples := make([]float32, 0, 4410+22050+4410)
	for i := 0; i < 4410; i++ {
		samples = append(samples, 0)
	}
	for i := 0; i < 22050; i++ {
		t := float64(i) / 44100.0
		samples = append(samples, float32(0.25*math.Sin(2*math.Pi*440.0*t)))
	}
	for i := 0; i < 4410; i++ {
		samples = append(samples, 0)
	}

	var clip bytes.Buffer
	wav.EncodeBuffer(&clip, &audio.Buffer{Samples: samples, Rate: 44100})

	// Container sniffing: no format tag needed.
	buf, err := urduvox.Decode(clip.Bytes(), "")
	if err != nil {
		fmt.Println("decode:", err)
		return
	}
	fmt.Printf("decoded: %d samples at %d Hz\n", buf.Len(), buf.Rate)

	trimmed := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 0)
	fmt.Printf("trimmed: %.2fs of audio\n", trimmed.Duration().Seconds())

	resampled, err := audio.ResampleBuffer(trimmed, 16000)
	if err != nil {
		fmt.Println("resample:", err)
		return
	}
	fmt.Printf("resampled: %d samples at %d Hz\n", resampled.Len(), resampled.Rate)

	normalized, err := dsp.Normalize(resampled, dsp.DefaultPeak)
	if err != nil {
		fmt.Println("normalize:", err)
		return
	}
	fmt.Printf("peak after normalize: %.2f\n", normalized.Peak())

	var out bytes.Buffer
	if err := wav.EncodeBuffer(&out, normalized); err != nil {
		fmt.Println("encode:", err)
		return
	}
	fmt.Printf("encoded: %d bytes\n", out.Len())

	// Output:
	// decoded: 30870 samples at 44100 Hz
	// trimmed: 0.50s of audio
	// resampled: 8000 samples at 16000 Hz
	// peak after normalize: 0.98
	// encoded: 16044 bytes
}
