// SPDX-License-Identifier: EPL-2.0

package waveform

import "errors"

var ErrInvalidWidth = errors.New("waveform width must be positive")
