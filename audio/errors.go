// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidRate    = errors.New("sample rate must be positive")
	ErrNoChannels     = errors.New("source must have at least one channel")
	ErrNonFinite      = errors.New("stream contains non-finite samples")
)
