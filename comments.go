// SPDX-License-Identifier: EPL-2.0

package oggopus

import (
	"bytes"
	"encoding/binary"
	"strings"
)

// Comments is the decoded form of an OpusTags packet.
type Comments struct {
	Vendor string

	// User holds the raw "KEY=value" entries in stream order.
	User []string
}

// Lookup returns the values of every entry whose key matches key, compared
// case-insensitively.
func (c Comments) Lookup(key string) []string {
	var out []string
	for _, e := range c.User {
		k, v, ok := strings.Cut(e, "=")
		if ok && strings.EqualFold(k, key) {
			out = append(out, v)
		}
	}
	return out
}

// ParseComments decodes the raw tags block returned by Demuxer.Tags.
// Data after the last comment (allowed by the format for padding or binary
// extensions) is ignored.
func ParseComments(tags []byte) (Comments, error) {
	if !bytes.HasPrefix(tags, []byte(commentMagic)) {
		return Comments{}, ErrInvalidComments
	}
	r := tags[len(commentMagic):]

	next := func() ([]byte, bool) {
		if len(r) < 4 {
			return nil, false
		}
		n := binary.LittleEndian.Uint32(r)
		r = r[4:]
		if uint64(n) > uint64(len(r)) {
			return nil, false
		}
		s := r[:n]
		r = r[n:]
		return s, true
	}

	vendor, ok := next()
	if !ok {
		return Comments{}, ErrInvalidComments
	}
	if len(r) < 4 {
		return Comments{}, ErrInvalidComments
	}
	count := binary.LittleEndian.Uint32(r)
	r = r[4:]

	// Every entry needs at least its 4-byte length.
	if uint64(count) > uint64(len(r)/4) {
		return Comments{}, ErrInvalidComments
	}

	c := Comments{Vendor: string(vendor), User: make([]string, 0, count)}
	for range count {
		e, ok := next()
		if !ok {
			return Comments{}, ErrInvalidComments
		}
		c.User = append(c.User, string(e))
	}
	return c, nil
}
