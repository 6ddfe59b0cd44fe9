// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	ErrNoOpusStream    = errors.New("no Opus stream with headers found")
	ErrNoPacketDecoder = errors.New("no Opus packet decoder configured")
	ErrInvalidChannels = errors.New("Opus header declares zero channels")
)
