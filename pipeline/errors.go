// SPDX-License-Identifier: EPL-2.0

package pipeline

import "errors"

// The pipeline surfaces exactly one of these per failed invocation;
// every stage error is wrapped into its kind before leaving the
// orchestrator.
var (
	// ErrDecode marks input bytes that could not be decoded: empty,
	// malformed, or an unsupported codec.
	ErrDecode = errors.New("undecodable audio input")

	// ErrInvalidRate marks a non-positive sample rate or speed factor.
	ErrInvalidRate = errors.New("non-positive rate or speed factor")

	// ErrCollaborator marks a failed synthesis call. The cause
	// (network, model, quota) is opaque to the pipeline.
	ErrCollaborator = errors.New("synthesis call failed")
)
