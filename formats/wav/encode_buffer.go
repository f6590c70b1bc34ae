// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	"github.com/urduvox/urduvox/audio"
	"github.com/urduvox/urduvox/utils"
)

// EncodeBuffer serializes a mono Buffer as 16-bit PCM WAV at the
// buffer's sample rate. Encoding then decoding the result yields the
// same amplitudes to within int16 quantization.
func EncodeBuffer(w io.Writer, b *audio.Buffer) error {
	if b.Rate <= 0 {
		return fmt.Errorf("encode at rate %d: %w", b.Rate, audio.ErrInvalidRate)
	}

	pcm16 := make([]int16, len(b.Samples))
	for i, v := range b.Samples {
		pcm16[i] = utils.Float32ToInt16(v)
	}

	return WriteWAV16(w, b.Rate, pcm16)
}
