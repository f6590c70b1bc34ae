// SPDX-License-Identifier: EPL-2.0

package dsp

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/window"

	"github.com/urduvox/urduvox/audio"
)

// Stretch divides the playback duration of b by factor while keeping
// pitch unchanged: factor > 1 speeds playback up, factor < 1 slows it
// down. The output length is exactly round(len(b)/factor) samples.
//
// A factor of exactly 1.0 returns b unchanged. Factors far outside the
// 0.75–1.25 range are accepted but degrade quality.
//
// The implementation is WSOLA: fixed synthesis hop of half a window,
// analysis position chosen by cross-correlation against the natural
// continuation of the previous segment, Hann-windowed overlap-add with
// per-sample weight normalization.
func Stretch(b *audio.Buffer, factor float64) (*audio.Buffer, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("speed factor %g: %w", factor, ErrInvalidSpeed)
	}
	if factor == 1.0 {
		return b, nil
	}

	in := b.Samples
	n := len(in)
	outLen := int(math.Round(float64(n) / factor))
	if n == 0 || outLen == 0 {
		return &audio.Buffer{Samples: nil, Rate: b.Rate}, nil
	}

	win := windowSize(b.Rate)
	if n < 2*win {
		// Too short for overlap-add analysis; nearest-sample copy.
		return stretchShort(b, outLen), nil
	}

	hop := win / 2
	search := win / 4
	coeffs := hannWindow(win)

	// Headroom of one window past outLen so the final frame can land.
	acc := make([]float32, outLen+win)
	weight := make([]float32, outLen+win)

	overlapAdd(acc, weight, in[:win], coeffs, 0)
	prev := 0

	for k := 1; ; k++ {
		outPos := k * hop
		if outPos >= outLen {
			break
		}

		nominal := int(math.Round(float64(outPos) * factor))
		lo := nominal - search
		hi := nominal + search
		if lo < 0 {
			lo = 0
		}
		if hi > n-win {
			hi = n - win
		}
		if lo > hi {
			break // input exhausted; tail is filled below
		}

		natural := prev + hop
		if natural > n-hop {
			natural = n - hop
		}

		best := bestMatch(in, natural, lo, hi, hop)
		overlapAdd(acc, weight, in[best:best+win], coeffs, outPos)
		prev = best
	}

	out := make([]float32, outLen)
	for i := range out {
		if weight[i] > 1e-6 {
			out[i] = acc[i] / weight[i]
			continue
		}
		// Window edges carry near-zero weight; fall back to the
		// nearest input sample.
		j := int(float64(i) * factor)
		if j >= n {
			j = n - 1
		}
		out[i] = in[j]
	}

	return &audio.Buffer{Samples: out, Rate: b.Rate}, nil
}

// windowSize picks an analysis window of roughly 50ms, even-length,
// never below 64 samples.
func windowSize(rate int) int {
	win := rate / 20
	if win < 64 {
		win = 64
	}
	if win%2 == 1 {
		win++
	}
	return win
}

// bestMatch returns the candidate offset in [lo, hi] whose first hop
// samples correlate best with the natural continuation of the
// previously copied segment at in[natural:natural+hop].
func bestMatch(in []float32, natural, lo, hi, hop int) int {
	ref := in[natural : natural+hop]
	best := lo
	bestScore := math.Inf(-1)

	for cand := lo; cand <= hi; cand++ {
		seg := in[cand : cand+hop]
		var score float64
		for i := 0; i < hop; i++ {
			score += float64(ref[i]) * float64(seg[i])
		}
		if score > bestScore {
			bestScore = score
			best = cand
		}
	}

	return best
}

func overlapAdd(acc, weight, seg, coeffs []float32, pos int) {
	for i, v := range seg {
		acc[pos+i] += v * coeffs[i]
		weight[pos+i] += coeffs[i]
	}
}

// hannWindow returns Hann coefficients of length n as float32.
func hannWindow(n int) []float32 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}
	window.Hann(w)

	out := make([]float32, n)
	for i, v := range w {
		out[i] = float32(v)
	}
	return out
}

// stretchShort handles buffers too short for WSOLA by nearest-sample
// index mapping. Pitch preservation is moot at this length.
func stretchShort(b *audio.Buffer, outLen int) *audio.Buffer {
	n := len(b.Samples)
	out := make([]float32, outLen)
	for i := range out {
		out[i] = b.Samples[i*n/outLen]
	}
	return &audio.Buffer{Samples: out, Rate: b.Rate}
}
