// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams via
// github.com/jfreymuth/oggvorbis.
//
// Reference recordings exported from browsers or messaging apps often
// arrive as .ogg; this decoder feeds them into the conditioning path.
// Output is interleaved float32 in [-1, 1] at the file's channel count
// and native rate. Stereo files interleave [L0, R0, L1, R1, ...];
// audio.Collect averages the channels down to mono.
//
// Encoding is not supported.
package vorbis
