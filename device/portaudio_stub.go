// SPDX-License-Identifier: EPL-2.0

//go:build noportaudio

package device

import "fmt"

// OpenPortAudioInput is unavailable in builds tagged noportaudio.
func OpenPortAudioInput(Config) (Input, error) {
	return nil, fmt.Errorf("%w: portaudio (built with -tags noportaudio)", ErrBackendUnavailable)
}

// OpenPortAudioOutput is unavailable in builds tagged noportaudio.
func OpenPortAudioOutput(Config) (Output, error) {
	return nil, fmt.Errorf("%w: portaudio (built with -tags noportaudio)", ErrBackendUnavailable)
}
