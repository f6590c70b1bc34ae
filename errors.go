// SPDX-License-Identifier: EPL-2.0

package urduvox

import "errors"

var (
	ErrEmptyStream   = errors.New("empty audio stream")
	ErrUnknownFormat = errors.New("unsupported audio format")
)
