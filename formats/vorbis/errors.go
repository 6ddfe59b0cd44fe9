// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var ErrNoVorbisStream = errors.New("no Vorbis stream with headers found")
