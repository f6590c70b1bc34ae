// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and encodes WAV files. All pipeline output is
// WAV, and WAV is the preferred input for reference recordings.
//
// Canonical 16-bit PCM files (the 44-byte header layout every common
// encoder produces) decode on a streaming fast path. Anything else
// with a valid RIFF/WAVE signature falls back to the go-audio/wav
// decoder, which handles 8/24/32-bit PCM and non-canonical chunk
// orders at the cost of buffering the file in memory.
//
//	source, err := wav.Decoder{}.Decode(file)
//
// Decoded samples are float32 in [-1, 1]. A stream that is not a WAV
// file at all returns ErrNotWavFile; a WAV with a layout the pipeline
// cannot use (zero channels, zero rate, unknown bit depth) returns
// ErrUnsupportedWavLayout.
//
// Writing goes through WriteWAV16, which emits a canonical 16-bit
// mono or multi-channel file, or EncodeBuffer, which converts a
// decoded audio.Buffer and writes it in one step:
//
//	err := wav.EncodeBuffer(w, buf)
package wav
