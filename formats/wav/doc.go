// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes WAV files through github.com/go-audio/wav.
//
// Decoding accepts integer PCM at 16, 24 or 32 bits with any channel count
// and sample rate:
//
//	src, err := wav.Decoder{}.Decode(file)
//
// Writing produces mono 16-bit PCM, either in one call or incrementally while
// a recording is in progress:
//
//	f, _ := os.Create("take.wav")
//	w := wav.NewWriter(f, 44100)
//	w.Write(chunk)
//	w.Close()
package wav
