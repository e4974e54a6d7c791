// SPDX-License-Identifier: EPL-2.0

package raw

import "errors"

var ErrInvalidLayout = errors.New("raw PCM needs a positive sample rate and channel count")
