// SPDX-License-Identifier: EPL-2.0

// Package dsp implements the deterministic signal-processing stages
// that sit between raw decoded audio and the bytes handed back to the
// caller: silence trimming, peak normalization, and pitch-preserving
// time stretch.
//
// All functions operate on audio.Buffer values and never mutate their
// input from the caller's perspective; where cheap, the returned buffer
// may alias the input's sample slice (Trim) or be the input itself
// (identity cases).
//
// # Silence Trimming
//
//	trimmed := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 0)
//
// An effectively silent buffer is returned unchanged rather than
// failing; callers must tolerate a no-op trim.
//
// # Peak Normalization
//
//	out, err := dsp.Normalize(buf, dsp.DefaultPeak)
//
// The default ceiling of 0.98 sits deliberately below 1.0 so that a
// later lossy encode cannot push samples into clipping. An all-zero
// buffer normalizes to an all-zero buffer.
//
// # Time Stretch
//
//	out, err := dsp.Stretch(buf, 1.25) // 25% faster, same pitch
//
// Stretch uses waveform-similarity overlap-add (WSOLA): Hann-windowed
// segments are overlap-added at a fixed synthesis hop while the
// analysis position is chosen by cross-correlation within a small
// search radius, so waveform continuity is preserved and pitch does
// not shift. Plain resampling would change pitch along with duration.
package dsp
