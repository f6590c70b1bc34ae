// SPDX-License-Identifier: EPL-2.0

// Package audio holds the primitives the urduvox pipeline is built
// from: the streaming Source interface, the decoded Buffer type, and
// the processors that connect them.
//
// A Source yields interleaved float32 samples in [-1, 1]; format
// decoders and stream processors all implement it, so they chain. The
// post-processing stages (trimming, normalization, time stretch) need
// the whole waveform at once, so the bridge between the two worlds is
// Collect:
//
//	buf, err := audio.Collect(src, 4096)
//	out, err := audio.ResampleBuffer(buf, 16000)
//
// Collect mixes multi-channel input down to mono and rejects NaN/Inf
// samples with ErrNonFinite, so a Buffer is always a finite mono
// waveform at a known rate. ResampleBuffer preserves duration to
// within one sample of rounding, which the streaming Resampler alone
// does not guarantee at stream edges.
//
// For callers that truly stream, NewResampler and NewMonoMixer wrap a
// Source directly. The Registry maps format tags ("wav", "mp3", ...)
// to decoders; the urduvox root package wires one with every supported
// format.
//
// Streaming reads follow the io.Reader convention: io.EOF marks a
// normal end of stream and may accompany the final samples.
package audio
