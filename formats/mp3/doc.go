// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MP3 streams via github.com/hajimehoshi/go-mp3.
//
// Synthesis backends occasionally hand back MP3 instead of WAV, and
// reference uploads are often MP3; this decoder lets both enter the
// pipeline. Output is always stereo interleaved float32 in [-1, 1] at
// the file's native rate (go-mp3 upmixes mono internally):
//
//	source, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    return err
//	}
//	buf, err := audio.Collect(source, 0)
//
// Collect averages the stereo pair down to the mono waveform the rest
// of the pipeline works on. Encoding MP3 is not supported; pipeline
// output is always WAV.
package mp3
