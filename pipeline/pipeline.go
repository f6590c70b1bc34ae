// SPDX-License-Identifier: EPL-2.0

// Package pipeline sequences the audio post-processing stages around
// one synthesis call: reference standardization (decode, trim,
// resample, re-encode) before the call, and finishing (decode,
// stretch, normalize, encode) after it.
//
// A Pipeline is stateless between invocations apart from one cached
// handle to the synthesis backend, created lazily exactly once and
// reused. Any stage failure aborts the whole run and surfaces a single
// typed error; partial results are never exposed.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/urduvox/urduvox"
	"github.com/urduvox/urduvox/audio"
	"github.com/urduvox/urduvox/dsp"
	"github.com/urduvox/urduvox/formats/wav"
	"github.com/urduvox/urduvox/synth"
)

// SynthFactory creates the synthesis backend on first use. It is
// invoked at most once per Pipeline.
type SynthFactory func() (synth.Synthesizer, error)

// Result is the final product of a successful run. The caller owns it;
// the pipeline keeps nothing.
type Result struct {
	Data       []byte
	Format     string
	SampleRate int
	Filename   string
}

// Option is a functional option for configuring a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// Pipeline runs the pre- and post-synthesis processing legs. Safe for
// concurrent use; each invocation works on its own buffers.
type Pipeline struct {
	cfg     Config
	log     *slog.Logger
	factory SynthFactory

	// Lazily created synthesizer handle, initialized at most once and
	// treated as read-only afterward.
	once   sync.Once
	syn    synth.Synthesizer
	synErr error
}

// New creates a Pipeline with the given per-invocation configuration.
// factory may be nil when only PrepareReference and Finalize are used.
func New(cfg Config, factory SynthFactory, opts ...Option) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:     cfg,
		log:     slog.Default(),
		factory: factory,
	}
	for _, o := range opts {
		o(p)
	}
	return p, nil
}

// synthesizer returns the cached backend handle, creating it on first
// call. A factory error is cached too: the pipeline never retries
// initialization.
func (p *Pipeline) synthesizer() (synth.Synthesizer, error) {
	p.once.Do(func() {
		if p.factory == nil {
			p.synErr = errors.New("no synthesizer configured")
			return
		}
		p.syn, p.synErr = p.factory()
	})
	if p.synErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollaborator, p.synErr)
	}
	return p.syn, nil
}

// PrepareReference standardizes an uploaded reference clip for the
// synthesis backend: decode (any supported container), trim
// leading/trailing silence, resample to the conditioning rate, and
// re-encode as 16-bit PCM WAV. format may be "" to sniff the
// container.
func (p *Pipeline) PrepareReference(data []byte, format string) ([]byte, error) {
	buf, err := urduvox.Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	trimmed := dsp.Trim(buf, float32(p.cfg.SilenceThreshold), p.cfg.TrimPadSamples)

	resampled, err := audio.ResampleBuffer(trimmed, p.cfg.TargetSampleRate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, err)
	}

	p.log.Debug("reference standardized",
		"in_samples", buf.Len(),
		"in_rate", buf.Rate,
		"out_samples", resampled.Len(),
		"out_rate", resampled.Rate,
	)

	var out bytes.Buffer
	if err := wav.EncodeBuffer(&out, resampled); err != nil {
		return nil, encodeError(err)
	}
	return out.Bytes(), nil
}

// encodeError maps a WAV encode failure into the taxonomy: an invalid
// buffer rate keeps its kind, anything else surfaces as an encode
// failure without a misleading tag.
func encodeError(err error) error {
	if errors.Is(err, audio.ErrInvalidRate) {
		return fmt.Errorf("%w: %v", ErrInvalidRate, err)
	}
	return fmt.Errorf("encode output: %w", err)
}

// Finalize post-processes raw synthesized audio: decode, time-stretch
// by the configured speed factor, optionally peak-normalize, and
// encode as 16-bit PCM WAV. format may be "" to sniff the container.
func (p *Pipeline) Finalize(raw []byte, format string) (*Result, error) {
	buf, err := urduvox.Decode(raw, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	stretched, err := dsp.Stretch(buf, p.cfg.SpeedFactor)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRate, err)
	}

	final := stretched
	if p.cfg.Normalize {
		final, err = dsp.Normalize(stretched, p.cfg.NormalizePeak)
		if err != nil {
			return nil, fmt.Errorf("normalize: %w", err)
		}
	}

	var out bytes.Buffer
	if err := wav.EncodeBuffer(&out, final); err != nil {
		return nil, encodeError(err)
	}

	p.log.Debug("output finalized",
		"rate", final.Rate,
		"samples", final.Len(),
		"speed", p.cfg.SpeedFactor,
		"normalized", p.cfg.Normalize,
	)

	return &Result{
		Data:       out.Bytes(),
		Format:     urduvox.FormatWAV,
		SampleRate: final.Rate,
		Filename:   outputFilename(p.cfg.OutputStem),
	}, nil
}

// Run executes the full pipeline: standardize the reference clip (when
// present), call the synthesis backend, and finalize its output. The
// request's Reference is replaced by its standardized form before the
// call; the rest of the request passes through untouched.
func (p *Pipeline) Run(ctx context.Context, req synth.Request) (*Result, error) {
	if req.Reference != nil {
		std, err := p.PrepareReference(req.Reference, "")
		if err != nil {
			return nil, err
		}
		req.Reference = std
	}

	syn, err := p.synthesizer()
	if err != nil {
		return nil, err
	}

	start := time.Now()
	raw, err := syn.Synthesize(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCollaborator, err)
	}

	p.log.Info("synthesis complete",
		"bytes", len(raw.Data),
		"format", raw.Format,
		"elapsed", time.Since(start),
	)

	return p.Finalize(raw.Data, raw.Format)
}

// outputFilename builds the suggested download name: stem plus a
// timestamp suffix.
func outputFilename(stem string) string {
	if stem == "" {
		stem = "urdu_tts"
	}
	return fmt.Sprintf("%s_%s.wav", stem, time.Now().Format("20060102_150405"))
}
