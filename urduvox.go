// SPDX-License-Identifier: EPL-2.0

package urduvox

import (
	"bytes"
	"fmt"

	"github.com/urduvox/urduvox/audio"
	"github.com/urduvox/urduvox/formats/aiff"
	"github.com/urduvox/urduvox/formats/mp3"
	"github.com/urduvox/urduvox/formats/vorbis"
	"github.com/urduvox/urduvox/formats/wav"
)

// Format tags understood by the default registry.
const (
	FormatWAV    = "wav"
	FormatMP3    = "mp3"
	FormatVorbis = "ogg"
	FormatAIFF   = "aiff"
)

// NewRegistry returns a decoder registry with every supported format
// registered.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(FormatWAV, wav.Decoder{})
	r.Register(FormatMP3, mp3.Decoder{})
	r.Register(FormatVorbis, vorbis.Decoder{})
	r.Register(FormatAIFF, aiff.Decoder{})
	return r
}

// DetectFormat sniffs the container format from the leading bytes of
// an audio stream. The second return value is false when no supported
// container is recognized.
func DetectFormat(data []byte) (string, bool) {
	switch {
	case len(data) >= 12 && bytes.Equal(data[:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WAVE")):
		return FormatWAV, true
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("OggS")):
		return FormatVorbis, true
	case len(data) >= 4 && bytes.Equal(data[:4], []byte("FORM")):
		return FormatAIFF, true
	case len(data) >= 3 && bytes.Equal(data[:3], []byte("ID3")):
		return FormatMP3, true
	case len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0:
		// Bare MPEG frame sync, no ID3 tag.
		return FormatMP3, true
	}
	return "", false
}

var defaultRegistry = NewRegistry()

// Decode turns an audio byte stream into a mono Buffer at the stream's
// native sample rate. format is one of the Format tags above; pass ""
// to sniff the container from the stream's magic bytes.
//
// Empty, unrecognized, or malformed input is rejected with an error;
// Decode never returns a silently empty buffer for bad input.
func Decode(data []byte, format string) (*audio.Buffer, error) {
	if len(data) == 0 {
		return nil, ErrEmptyStream
	}

	if format == "" {
		sniffed, ok := DetectFormat(data)
		if !ok {
			return nil, ErrUnknownFormat
		}
		format = sniffed
	}

	dec, ok := defaultRegistry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%q: %w", format, ErrUnknownFormat)
	}

	src, err := dec.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", format, err)
	}
	defer src.Close()

	return audio.Collect(src, 4096)
}
