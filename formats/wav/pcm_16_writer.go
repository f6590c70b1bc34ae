// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

// writeChunkFrames is how many samples are serialized per Write call.
const writeChunkFrames = 8192

// WriteWAV16 serializes samples as a mono 16-bit PCM RIFF/WAVE stream
// at sampleRate: the canonical 44-byte header followed by
// little-endian payload. This is the container every pipeline output
// and standardized reference clip is written in.
func WriteWAV16(w io.Writer, sampleRate int, samples []int16) error {
	dataSize := uint32(len(samples) * 2)

	header := make([]byte, 44)
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 36+dataSize)
	copy(header[8:12], "WAVE")

	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], 16) // PCM fmt chunk size
	binary.LittleEndian.PutUint16(header[20:22], 1)  // PCM
	binary.LittleEndian.PutUint16(header[22:24], 1)  // mono
	binary.LittleEndian.PutUint32(header[24:28], uint32(sampleRate))
	binary.LittleEndian.PutUint32(header[28:32], uint32(sampleRate)*2) // byte rate
	binary.LittleEndian.PutUint16(header[32:34], 2)                    // block align
	binary.LittleEndian.PutUint16(header[34:36], 16)                   // bits per sample

	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], dataSize)

	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("%w", err)
	}
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), writeChunkFrames)*2)
	for off := 0; off < len(samples); off += writeChunkFrames {
		chunk := samples[off:min(off+writeChunkFrames, len(samples))]
		for i, s := range chunk {
			binary.LittleEndian.PutUint16(buf[2*i:2*i+2], uint16(s))
		}
		if _, err := w.Write(buf[:len(chunk)*2]); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}
