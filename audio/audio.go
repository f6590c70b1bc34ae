// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"sync"
)

// Source is a readable stream of interleaved float32 samples in
// [-1, 1]. Decoders produce Sources; processors wrap them.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved samples and returns the
	// number of float32 values written (not frames). io.EOF may
	// accompany the final samples; n == 0 with io.EOF ends the stream.
	ReadSamples(dst []float32) (n int, err error)
	// BufSize is the read granularity the source prefers.
	BufSize() int
	// Close releases any resources.
	Close() error
}

// Decoder constructs a Source from an input reader.
type Decoder interface {
	Decode(r io.Reader) (Source, error)
}

// Registry maps format tags ("wav", "mp3", "ogg vorbis", "aiff") to
// decoders. Safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	codecs map[string]Decoder
}

func NewRegistry() *Registry {
	return &Registry{codecs: make(map[string]Decoder)}
}

func (r *Registry) Register(format string, d Decoder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codecs[format] = d
}

func (r *Registry) Get(format string) (Decoder, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.codecs[format]
	return d, ok
}
