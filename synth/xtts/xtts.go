// SPDX-License-Identifier: EPL-2.0

// Package xtts provides a Synthesizer backed by a local XTTS v2
// voice-cloning server. Synthesis is a single POST /tts_to_audio/
// call; a reference clip on the request is first registered via
// POST /clone_speaker and the resulting speaker name is used for
// synthesis. The speaker catalogue is available from
// GET /studio_speakers.
package xtts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/urduvox/urduvox/synth"
)

const (
	ttsEndpoint            = "/tts_to_audio/"
	cloneSpeakerEndpoint   = "/clone_speaker"
	studioSpeakersEndpoint = "/studio_speakers"

	defaultLanguage = "ur"
	defaultTimeout  = 60 * time.Second
)

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithLanguage sets the BCP-47 language code sent to the server when a
// request names none (e.g. "ur", "en").
func WithLanguage(lang string) Option {
	return func(c *Client) { c.language = lang }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// Client implements synth.Synthesizer against an XTTS v2 server.
type Client struct {
	serverURL  string
	language   string
	timeout    time.Duration
	httpClient *http.Client
}

var _ synth.Synthesizer = (*Client)(nil)

// New creates a Client talking to serverURL (e.g. "http://localhost:8002").
func New(serverURL string, opts ...Option) *Client {
	c := &Client{
		serverURL:  strings.TrimRight(serverURL, "/"),
		language:   defaultLanguage,
		timeout:    defaultTimeout,
		httpClient: &http.Client{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// ttsRequest is the JSON body sent to POST /tts_to_audio/. The
// conditioning fields are forwarded verbatim; the server defines their
// effect.
type ttsRequest struct {
	Text       string  `json:"text"`
	SpeakerID  string  `json:"speaker_id"`
	Language   string  `json:"language"`
	Similarity float64 `json:"similarity_boost,omitempty"`
	Stability  float64 `json:"stability,omitempty"`
	Style      float64 `json:"style,omitempty"`
	Seed       int     `json:"seed,omitempty"`
}

// cloneSpeakerResponse is the JSON body returned by POST /clone_speaker.
type cloneSpeakerResponse struct {
	Name string `json:"name"`
}

// Synthesize performs one synthesis call. When the request carries
// reference audio, the clip is registered as a cloned speaker first
// and that speaker is used; otherwise req.Voice names a studio
// speaker.
func (c *Client) Synthesize(ctx context.Context, req synth.Request) (*synth.Audio, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, errors.New("xtts: text must not be empty")
	}

	speaker := req.Voice
	if req.Reference != nil {
		name, err := c.CloneSpeaker(ctx, req.Reference)
		if err != nil {
			return nil, err
		}
		speaker = name
	}

	lang := req.Language
	if lang == "" {
		lang = c.language
	}

	body, err := json.Marshal(ttsRequest{
		Text:       req.Text,
		SpeakerID:  speaker,
		Language:   lang,
		Similarity: req.Similarity,
		Stability:  req.Stability,
		Style:      req.Style,
		Seed:       req.Seed,
	})
	if err != nil {
		return nil, fmt.Errorf("xtts: marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.serverURL+ttsEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("xtts: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/wav")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("xtts: %w: POST %s: %v", synth.ErrSynthesis, ttsEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("xtts: %w: POST %s returned status %d", synth.ErrSynthesis, ttsEndpoint, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("xtts: %w: read response: %v", synth.ErrSynthesis, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("xtts: %w: empty audio response", synth.ErrSynthesis)
	}

	return &synth.Audio{Data: data, Format: "wav"}, nil
}

// CloneSpeaker registers a reference clip (WAV bytes) with the server
// via POST /clone_speaker and returns the server-assigned speaker
// name.
func (c *Client) CloneSpeaker(ctx context.Context, sample []byte) (string, error) {
	if len(sample) == 0 {
		return "", errors.New("xtts: CloneSpeaker requires a non-empty audio sample")
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile("wav_files", "reference.wav")
	if err != nil {
		return "", fmt.Errorf("xtts: create form file: %w", err)
	}
	if _, err := fw.Write(sample); err != nil {
		return "", fmt.Errorf("xtts: write form file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("xtts: close multipart writer: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.serverURL+cloneSpeakerEndpoint, &body)
	if err != nil {
		return "", fmt.Errorf("xtts: create clone-speaker request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("xtts: %w: POST %s: %v", synth.ErrSynthesis, cloneSpeakerEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("xtts: %w: POST %s returned status %d", synth.ErrSynthesis, cloneSpeakerEndpoint, resp.StatusCode)
	}

	var cloneResp cloneSpeakerResponse
	if err := json.NewDecoder(resp.Body).Decode(&cloneResp); err != nil {
		return "", fmt.Errorf("xtts: decode clone-speaker response: %w", err)
	}
	if cloneResp.Name == "" {
		return "", errors.New("xtts: clone-speaker response missing name")
	}

	return cloneResp.Name, nil
}

// ListSpeakers returns the sorted names of the server's studio
// speakers.
func (c *Client) ListSpeakers(ctx context.Context) ([]string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.serverURL+studioSpeakersEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("xtts: create studio-speakers request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("xtts: %w: GET %s: %v", synth.ErrSynthesis, studioSpeakersEndpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("xtts: %w: GET %s returned status %d", synth.ErrSynthesis, studioSpeakersEndpoint, resp.StatusCode)
	}

	var speakers map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&speakers); err != nil {
		return nil, fmt.Errorf("xtts: decode studio-speakers response: %w", err)
	}

	names := make([]string, 0, len(speakers))
	for name := range speakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
