// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	ErrInvalidSpeed = errors.New("speed factor must be positive")
	ErrInvalidPeak  = errors.New("peak ceiling must be in (0, 1]")
)
