// SPDX-License-Identifier: EPL-2.0

// Package openai provides a hosted text-to-speech Synthesizer backed
// by the OpenAI speech endpoint. It has no cloning support; requests
// carrying reference audio are rejected.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/urduvox/urduvox/synth"
)

const (
	defaultBaseURL = "https://api.openai.com"
	speechEndpoint = "/v1/audio/speech"
	defaultModel   = "gpt-4o-mini-tts"
	defaultVoice   = "alloy"
	defaultFormat  = "wav"

	// requestTimeout is applied when the caller's context carries no
	// deadline of its own.
	requestTimeout = 90 * time.Second
)

// BuiltinVoices lists the voices available without custom voice access.
var BuiltinVoices = []string{"alloy", "verse", "aria", "ballad", "cove", "luna", "sage"}

// Option is a functional option for configuring the Synthesizer.
type Option func(*Synthesizer)

// WithModel sets the TTS model ID.
func WithModel(model string) Option {
	return func(s *Synthesizer) { s.model = model }
}

// WithVoice sets the default voice used when a request names none.
func WithVoice(voice string) Option {
	return func(s *Synthesizer) { s.voice = voice }
}

// WithFormat sets the response container ("wav" or "mp3").
func WithFormat(format string) Option {
	return func(s *Synthesizer) { s.format = format }
}

// WithBaseURL overrides the API base URL.
func WithBaseURL(u string) Option {
	return func(s *Synthesizer) { s.baseURL = strings.TrimRight(u, "/") }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Synthesizer) { s.httpClient = c }
}

// Synthesizer implements synth.Synthesizer against the OpenAI speech
// endpoint.
type Synthesizer struct {
	apiKey     string
	baseURL    string
	model      string
	voice      string
	format     string
	httpClient *http.Client
}

var _ synth.Synthesizer = (*Synthesizer)(nil)

// New creates a Synthesizer. apiKey must be non-empty.
func New(apiKey string, opts ...Option) (*Synthesizer, error) {
	if apiKey == "" {
		return nil, errors.New("openai: apiKey must not be empty")
	}
	s := &Synthesizer{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		model:      defaultModel,
		voice:      defaultVoice,
		format:     defaultFormat,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// speechRequest is the JSON body sent to POST /v1/audio/speech.
type speechRequest struct {
	Model          string  `json:"model"`
	Input          string  `json:"input"`
	Voice          string  `json:"voice"`
	ResponseFormat string  `json:"response_format"`
	Speed          float64 `json:"speed,omitempty"`
}

// Synthesize sends one speech request and returns the complete audio
// response.
func (s *Synthesizer) Synthesize(ctx context.Context, req synth.Request) (*synth.Audio, error) {
	if req.Reference != nil {
		return nil, errors.New("openai: reference audio is not supported; use the xtts backend for cloning")
	}
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New("openai: text must not be empty")
	}

	voice := req.Voice
	if voice == "" {
		voice = s.voice
	}

	body, err := json.Marshal(speechRequest{
		Model:          s.model,
		Input:          req.Text,
		Voice:          voice,
		ResponseFormat: s.format,
	})
	if err != nil {
		return nil, fmt.Errorf("openai: marshal request: %w", err)
	}

	reqCtx := ctx
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, requestTimeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, s.baseURL+speechEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("openai: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("openai: %w: POST %s: %v", synth.ErrSynthesis, speechEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("openai: %w: status %d: %s", synth.ErrSynthesis, resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("openai: %w: read response: %v", synth.ErrSynthesis, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("openai: %w: empty audio response", synth.ErrSynthesis)
	}

	return &synth.Audio{Data: data, Format: s.format}, nil
}
