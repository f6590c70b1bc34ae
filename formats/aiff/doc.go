// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF files via github.com/go-audio/aiff.
//
// AIFF shows up in reference uploads from macOS recording tools. Only
// 16-bit PCM is accepted; other layouts return
// ErrOnlyPCM16bitSupported. Output is interleaved float32 in [-1, 1]
// at the file's channel count and native rate.
//
// The decoder needs to seek. Plain readers are buffered in memory
// first, which is acceptable for the short clips this pipeline handles.
package aiff
