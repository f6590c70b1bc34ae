// SPDX-License-Identifier: EPL-2.0

package pipeline

import "fmt"

// Config is the flat parameter record for one pipeline invocation.
// It is constructed once per request and read-only afterward.
type Config struct {
	// TargetSampleRate is the rate reference audio is standardized to
	// before it is handed to the synthesis backend.
	TargetSampleRate int

	// SilenceThreshold is the amplitude at or below which leading and
	// trailing samples of a reference clip are trimmed.
	SilenceThreshold float64

	// TrimPadSamples keeps this many samples of context on each side
	// of the trimmed region.
	TrimPadSamples int

	// Normalize enables peak normalization of the synthesized output.
	Normalize bool

	// NormalizePeak is the normalization ceiling in (0, 1].
	NormalizePeak float64

	// SpeedFactor divides the output duration without changing pitch.
	SpeedFactor float64

	// OutputStem is the filename stem for Result.Filename; a timestamp
	// suffix and .wav extension are appended.
	OutputStem string
}

// DefaultConfig returns the parameters used when the caller supplies
// none.
func DefaultConfig() Config {
	return Config{
		TargetSampleRate: 16000,
		SilenceThreshold: 1e-4,
		TrimPadSamples:   0,
		Normalize:        true,
		NormalizePeak:    0.98,
		SpeedFactor:      1.0,
		OutputStem:       "urdu_tts",
	}
}

// Validate rejects configurations no stage could honor. Rate and speed
// violations carry ErrInvalidRate so callers can match the taxonomy.
func (c Config) Validate() error {
	if c.TargetSampleRate <= 0 {
		return fmt.Errorf("target sample rate %d: %w", c.TargetSampleRate, ErrInvalidRate)
	}
	if c.SpeedFactor <= 0 {
		return fmt.Errorf("speed factor %g: %w", c.SpeedFactor, ErrInvalidRate)
	}
	if c.SilenceThreshold < 0 {
		return fmt.Errorf("silence threshold %g must not be negative", c.SilenceThreshold)
	}
	if c.TrimPadSamples < 0 {
		return fmt.Errorf("trim pad %d must not be negative", c.TrimPadSamples)
	}
	if c.Normalize && (c.NormalizePeak <= 0 || c.NormalizePeak > 1) {
		return fmt.Errorf("normalize peak %g must be in (0, 1]", c.NormalizePeak)
	}
	return nil
}
