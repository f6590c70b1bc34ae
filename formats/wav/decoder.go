// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	gowav "github.com/go-audio/wav"

	"github.com/urduvox/urduvox/audio"
)

type wavSource struct {
	r          io.Reader
	sampleRate int
	channels   int
	// assume PCM 16-bit
	buf []byte
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) Close() error    { return nil }
func (s *wavSource) BufSize() int    { return cap(s.buf) / 2 }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	// Read frames of int16 interleaved, convert to float32
	if len(s.buf) < len(dst)*2 {
		s.buf = make([]byte, len(dst)*2)
	}
	n, err := io.ReadFull(s.r, s.buf[:len(dst)*2])
	if err == io.ErrUnexpectedEOF {
		// Partial frame count
	} else if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			// convert what we have
		} else {
			return 0, fmt.Errorf("%w", err)
		}
	}

	samples := n / 2

	for i := 0; i < samples; i++ {
		var v int16
		b := s.buf[2*i : 2*i+2]
		v = int16(binary.LittleEndian.Uint16(b))
		dst[i] = float32(v) / 32768.0
	}

	if samples == 0 && (err == io.EOF || err == io.ErrUnexpectedEOF) {
		return 0, io.EOF
	}
	return samples, nil
}

// memSource serves samples already decoded into memory by the
// go-audio fallback path.
type memSource struct {
	samples    []float32
	sampleRate int
	channels   int
	pos        int
}

func (s *memSource) SampleRate() int { return s.sampleRate }
func (s *memSource) Channels() int   { return s.channels }
func (s *memSource) BufSize() int    { return 4096 }
func (s *memSource) Close() error    { return nil }

func (s *memSource) ReadSamples(dst []float32) (int, error) {
	if s.pos >= len(s.samples) {
		return 0, io.EOF
	}
	n := copy(dst, s.samples[s.pos:])
	s.pos += n
	return n, nil
}

type Decoder struct{}

// Decode parses a RIFF/WAVE stream. Canonical 44-byte PCM-16 files are
// decoded on a streaming fast path; anything else (extra LIST/fact
// chunks, other PCM bit depths) is handed to go-audio's chunk-walking
// decoder.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	header := make([]byte, 44)

	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	if !bytes.HasPrefix(header[:4], []byte("RIFF")) || !bytes.HasPrefix(header[8:12], []byte("WAVE")) {
		return nil, ErrNotWavFile
	}

	if canonicalPCM16(header) {
		sampleRate := int(binary.LittleEndian.Uint32(header[24:28]))
		channels := int(binary.LittleEndian.Uint16(header[22:24]))
		if sampleRate <= 0 || channels < 1 {
			return nil, fmt.Errorf("rate %d, channels %d: %w", sampleRate, channels, ErrUnsupportedWavLayout)
		}
		return &wavSource{
			r:          r,
			sampleRate: sampleRate,
			channels:   channels,
			buf:        make([]byte, 4096),
		}, nil
	}

	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	return decodeFallback(append(header, rest...))
}

// canonicalPCM16 reports whether the 44-byte header describes the
// canonical layout: fmt chunk at offset 12, PCM 16-bit, data chunk at
// offset 36.
func canonicalPCM16(header []byte) bool {
	if !bytes.HasPrefix(header[12:16], []byte("fmt ")) {
		return false
	}
	audioFormat := binary.LittleEndian.Uint16(header[20:22])
	bitsPerSample := binary.LittleEndian.Uint16(header[34:36])
	if audioFormat != 1 || bitsPerSample != 16 {
		return false
	}
	return bytes.HasPrefix(header[36:40], []byte("data"))
}

// decodeFallback decodes the whole file via go-audio/wav, which walks
// arbitrary chunk layouts and PCM bit depths.
func decodeFallback(data []byte) (audio.Source, error) {
	dec := gowav.NewDecoder(bytes.NewReader(data))

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	if buf.Format == nil || len(buf.Data) == 0 {
		return nil, ErrUnsupportedWavLayout
	}
	if buf.Format.SampleRate <= 0 || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("rate %d, channels %d: %w", buf.Format.SampleRate, buf.Format.NumChannels, ErrUnsupportedWavLayout)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}

	samples := make([]float32, len(buf.Data))
	switch bitDepth {
	case 8:
		// 8-bit WAV is unsigned PCM with silence at 0x80.
		for i, v := range buf.Data {
			samples[i] = (float32(v) - 128.0) / 128.0
		}
	case 16:
		for i, v := range buf.Data {
			samples[i] = float32(v) / 32768.0
		}
	case 24:
		for i, v := range buf.Data {
			samples[i] = float32(v) / 8388608.0
		}
	case 32:
		for i, v := range buf.Data {
			samples[i] = float32(v) / 2147483648.0
		}
	default:
		return nil, fmt.Errorf("bit depth %d: %w", bitDepth, ErrUnsupportedWavLayout)
	}

	return &memSource{
		samples:    samples,
		sampleRate: buf.Format.SampleRate,
		channels:   buf.Format.NumChannels,
	}, nil
}
