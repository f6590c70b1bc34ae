// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/urduvox/urduvox/audio"
)

// mp3Reader is the slice of gomp3.Decoder this source needs; tests
// substitute an in-memory PCM stream.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// source converts go-mp3's 16-bit little-endian byte stream into
// float32 samples. go-mp3 always emits interleaved stereo, even for
// mono files.
type source struct {
	dec        mp3Reader
	sampleRate int
	channels   int
	buf        []byte
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }

// BufSize reports capacity in samples, not bytes.
func (s *source) BufSize() int { return cap(s.buf) / 2 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n, err := s.dec.Read(s.buf)
	if n == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	samples := n / 2
	for i := 0; i < samples; i++ {
		v := int16(binary.LittleEndian.Uint16(s.buf[2*i:]))
		dst[i] = float32(v) / 32768.0
	}
	return samples, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   2,
		buf:        make([]byte, 8192),
	}, nil
}
