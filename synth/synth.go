// SPDX-License-Identifier: EPL-2.0

// Package synth defines the boundary to the external speech-synthesis
// collaborator. A Synthesizer wraps one backend (a hosted TTS API or a
// local voice-cloning server) behind a single batch call; everything
// the pipeline knows about the backend goes through Request and Audio.
package synth

import (
	"context"
	"errors"
)

// ErrSynthesis marks a failed backend call: transport failure,
// non-200 status, or an unusable response body. Backends wrap it with
// detail so callers can match the kind without parsing messages.
var ErrSynthesis = errors.New("synthesis backend call failed")

// Audio is raw synthesized speech as returned by a backend, at a
// backend-determined sample rate.
type Audio struct {
	Data   []byte
	Format string // container tag, e.g. "wav" or "mp3"
}

// Request carries one synthesis invocation. Similarity, Stability,
// Style and Seed are cloning-conditioning parameters forwarded to the
// backend untouched; their effect is backend-defined and this package
// makes no attempt to interpret them.
type Request struct {
	Text     string
	Language string // BCP-47 tag, e.g. "ur"
	Voice    string // backend voice identifier; may be empty for the backend default

	// Reference is an optional standardized reference clip (WAV bytes)
	// for voice cloning. Backends without cloning support must reject a
	// request that carries one.
	Reference []byte

	Similarity float64
	Stability  float64
	Style      float64
	Seed       int
}

// Synthesizer converts text (and optionally a reference voice) into
// audio. Calls are synchronous: one request, one complete result.
// Implementations must be safe for concurrent use.
type Synthesizer interface {
	Synthesize(ctx context.Context, req Request) (*Audio, error)
}
