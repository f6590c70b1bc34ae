// SPDX-License-Identifier: EPL-2.0

package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/urduvox/urduvox/synth"
)

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := New(""); err == nil {
		t.Fatal("expected error for empty API key")
	}
	if _, err := New("sk-test"); err != nil {
		t.Fatalf("New failed: %v", err)
	}
}

func TestSynthesize(t *testing.T) {
	t.Parallel()

	var got speechRequest
	var auth string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != speechEndpoint {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
			return
		}
		auth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte("RIFFxxxxWAVE"))
	}))
	defer server.Close()

	s, err := New("sk-test", WithBaseURL(server.URL), WithVoice("sage"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	audio, err := s.Synthesize(context.Background(), synth.Request{Text: "salaam"})
	if err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}

	if auth != "Bearer sk-test" {
		t.Errorf("Authorization = %q, want Bearer sk-test", auth)
	}
	if got.Input != "salaam" {
		t.Errorf("Input = %q, want salaam", got.Input)
	}
	if got.Voice != "sage" {
		t.Errorf("Voice = %q, want sage", got.Voice)
	}
	if got.Model != defaultModel {
		t.Errorf("Model = %q, want %q", got.Model, defaultModel)
	}
	if got.ResponseFormat != "wav" {
		t.Errorf("ResponseFormat = %q, want wav", got.ResponseFormat)
	}
	if string(audio.Data) != "RIFFxxxxWAVE" {
		t.Errorf("Data = %q", audio.Data)
	}
	if audio.Format != "wav" {
		t.Errorf("Format = %q, want wav", audio.Format)
	}
}

func TestSynthesize_RequestVoiceOverridesDefault(t *testing.T) {
	t.Parallel()

	var got speechRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte("audio"))
	}))
	defer server.Close()

	s, err := New("sk-test", WithBaseURL(server.URL), WithVoice("alloy"))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), synth.Request{Text: "hi", Voice: "verse"}); err != nil {
		t.Fatalf("Synthesize failed: %v", err)
	}
	if got.Voice != "verse" {
		t.Errorf("Voice = %q, want verse", got.Voice)
	}
}

func TestSynthesize_RejectsReferenceAudio(t *testing.T) {
	t.Parallel()

	s, err := New("sk-test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = s.Synthesize(context.Background(), synth.Request{
		Text:      "hi",
		Reference: []byte("RIFF"),
	})
	if err == nil || !strings.Contains(err.Error(), "reference audio") {
		t.Errorf("error = %v, want reference-audio rejection", err)
	}
}

func TestSynthesize_EmptyText(t *testing.T) {
	t.Parallel()

	s, err := New("sk-test")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), synth.Request{Text: "   "}); err == nil {
		t.Error("expected error for blank text")
	}
}

func TestSynthesize_HTTPError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_api_key"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	s, err := New("sk-bad", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	_, err = s.Synthesize(context.Background(), synth.Request{Text: "hi"})
	if err == nil || !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %v, want status 401", err)
	}
	if !errors.Is(err, synth.ErrSynthesis) {
		t.Errorf("error = %v, want ErrSynthesis", err)
	}
}

func TestSynthesize_EmptyResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	s, err := New("sk-test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := s.Synthesize(context.Background(), synth.Request{Text: "hi"}); err == nil {
		t.Error("expected error for empty audio response")
	}
}

func TestSynthesize_ContextCancelled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	s, err := New("sk-test", WithBaseURL(server.URL))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.Synthesize(ctx, synth.Request{Text: "hi"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}
