// SPDX-License-Identifier: EPL-2.0

package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/urduvox/urduvox/audio"
)

func TestEncodeError_RateKeepsItsKind(t *testing.T) {
	t.Parallel()

	err := encodeError(fmt.Errorf("encode at rate 0: %w", audio.ErrInvalidRate))
	if !errors.Is(err, ErrInvalidRate) {
		t.Errorf("error = %v, want ErrInvalidRate", err)
	}
}

func TestEncodeError_OtherFailuresNotTaggedAsRate(t *testing.T) {
	t.Parallel()

	cause := errors.New("short write")
	err := encodeError(cause)
	if errors.Is(err, ErrInvalidRate) {
		t.Errorf("error = %v, must not be tagged ErrInvalidRate", err)
	}
	if !errors.Is(err, cause) {
		t.Errorf("error = %v, want wrapped cause", err)
	}
	if !strings.Contains(err.Error(), "encode output") {
		t.Errorf("error = %v, want encode-stage message", err)
	}
}
