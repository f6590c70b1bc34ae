// SPDX-License-Identifier: EPL-2.0

// Package urduvox turns Urdu text into polished speech audio. It wraps
// two synthesis backends — a hosted text-to-speech API and a local
// XTTS-style voice-cloning server — in a deterministic audio
// post-processing pipeline: reference-clip standardization before the
// synthesis call, and time-stretch, peak-normalize, encode after it.
//
// # Supported Formats
//
// The package decodes the following audio containers:
//   - WAV (PCM) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF (PCM) via formats/aiff
//
// Output is always 16-bit PCM WAV.
//
// # Quick Start
//
// Decoding any supported byte stream into a mono buffer:
//
//	buf, err := urduvox.Decode(data, "") // "" sniffs the container
//	if err != nil {
//	    // empty, malformed, or unsupported input
//	}
//
// Running the full pipeline around a synthesis backend:
//
//	p, _ := pipeline.New(pipeline.DefaultConfig(), func() (synth.Synthesizer, error) {
//	    return xtts.New("http://localhost:8002", xtts.WithLanguage("ur")), nil
//	})
//	res, err := p.Run(ctx, synth.Request{Text: text, Reference: refClip})
//	// res.Data is a finished WAV; res.Filename carries a timestamp suffix.
//
// # Processing Stages
//
// The individual stages live in their own packages and can be used
// directly:
//
//	trimmed := dsp.Trim(buf, dsp.DefaultSilenceThreshold, 0)
//	out, _ := audio.ResampleBuffer(trimmed, 16000)
//	fast, _ := dsp.Stretch(out, 1.25)
//	loud, _ := dsp.Normalize(fast, dsp.DefaultPeak)
//	wav.EncodeBuffer(w, loud)
//
// Each stage consumes its input and produces a new (or passed-through)
// buffer; nothing is mutated behind the caller's back and no stage
// shares state between invocations.
package urduvox
