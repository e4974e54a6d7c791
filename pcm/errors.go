// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrInvalidRate    = errors.New("sample rate must be positive")
	ErrUnknownFormat  = errors.New("unknown audio format")
	// ErrNoProgress is returned when a source keeps returning no samples
	// without signalling the end of the stream.
	ErrNoProgress = errors.New("source returned no samples")
)
