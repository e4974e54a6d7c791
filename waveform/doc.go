// SPDX-License-Identifier: EPL-2.0

// Package waveform turns 16-bit mono PCM into drawable geometry.
//
// The playback view reduces a whole clip to one (min, max) pair per pixel
// column with ComputeExtremes and joins the pairs into a single filled
// silhouette with BuildContour:
//
//	table, err := waveform.ComputeExtremes(samples, 800)
//	path := waveform.BuildContour(table, 200)
//
// The recording view instead draws each incoming chunk as a polyline
// (LiveSegments) and keeps the last few chunks in a History so older ones can
// be drawn fainter.
//
// Every function here is pure and safe to call from any goroutine. View is the
// only stateful type and guards itself with a mutex.
package waveform
