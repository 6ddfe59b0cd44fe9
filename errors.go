// SPDX-License-Identifier: EPL-2.0

package oggopus

import "errors"

var (
	ErrMalformed        = errors.New("malformed container")
	ErrInvalidComments  = errors.New("invalid OpusTags comment block")
	ErrNoIdentification = errors.New("no Opus identification header found")
)
