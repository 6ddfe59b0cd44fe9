// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrInvalidChannels   = errors.New("channel count must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
	ErrPartialFrame      = errors.New("sample count is not a multiple of channels")
)
