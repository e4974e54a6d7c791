// SPDX-License-Identifier: EPL-2.0

package device

import "errors"

var (
	ErrAlreadyRunning     = errors.New("already running")
	ErrBackendUnavailable = errors.New("audio backend not available")
	ErrUnknownBackend     = errors.New("unknown audio backend")
	ErrFormatMismatch     = errors.New("audio context already open with a different format")
)
