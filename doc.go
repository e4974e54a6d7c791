// SPDX-License-Identifier: EPL-2.0

// Package audwave records, plays and draws 16-bit PCM audio.
//
// The root package is the loading facade: it decodes any supported resource
// into a Clip of mono 16-bit samples at a chosen rate. The drawing and device
// code lives in the subpackages.
//
// # Supported Formats
//
//   - raw little-endian 16-bit PCM (.pcm, .raw) via formats/raw
//   - WAV (integer PCM, 16/24/32-bit) via formats/wav
//   - AIFF (PCM 16-bit) via formats/aiff
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//
// # Quick Start
//
//	clip, err := audwave.Load("sample.wav", pcm.DefaultSampleRate)
//	if err != nil {
//		return err
//	}
//	table, _ := clip.Extremes(800)
//	path := waveform.BuildContour(table, 200)
//
// # Packages
//
//   - pcm: Source pipeline, resampling, mixing and sample conversion
//   - waveform: min/max downsampling, contour and live geometry, View state
//   - render: raster and terminal renderers
//   - device: capture and playback controllers over portaudio and oto
//   - config: environment based configuration
package audwave
