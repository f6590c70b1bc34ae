package vorbis

import (
	"fmt"
	"io"

	"github.com/jfreymuth/oggvorbis"

	"github.com/urduvox/urduvox/audio"
)

// oggReader is the slice of oggvorbis.Reader this source needs; tests
// substitute an in-memory float stream.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// source adapts oggvorbis, whose Read counts frames, to the
// audio.Source contract, which counts samples.
type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	frameBuf   []float32
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.frameBuf) }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	// Round down to whole frames so a short dst never splits one.
	need := (len(dst) / s.channels) * s.channels
	if cap(s.frameBuf) < need {
		s.frameBuf = make([]float32, need)
	}
	s.frameBuf = s.frameBuf[:need]

	frames, err := s.dec.Read(s.frameBuf)
	if frames == 0 {
		if err != nil {
			return 0, err
		}
		return 0, nil
	}

	n := frames * s.channels
	copy(dst, s.frameBuf[:n])
	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
		frameBuf:   make([]float32, 4096),
	}, nil
}
