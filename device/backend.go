// SPDX-License-Identifier: EPL-2.0

package device

import (
	"fmt"
	"strings"
)

const (
	BackendOto       = "oto"
	BackendPortAudio = "portaudio"
)

// OutputBackend resolves a playback backend by name.
func OutputBackend(name string) (OutputOpener, error) {
	switch strings.ToLower(name) {
	case BackendOto:
		return OpenOtoOutput, nil
	case BackendPortAudio:
		return OpenPortAudioOutput, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}

// InputBackend resolves a capture backend by name. oto is playback only.
func InputBackend(name string) (InputOpener, error) {
	switch strings.ToLower(name) {
	case BackendPortAudio:
		return OpenPortAudioInput, nil
	case BackendOto:
		return nil, fmt.Errorf("%w: oto cannot capture", ErrBackendUnavailable)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
	}
}
