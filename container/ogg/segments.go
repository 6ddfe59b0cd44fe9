// SPDX-License-Identifier: EPL-2.0

package ogg

// payloadLen returns the total payload size described by a lacing table.
// The sum is bounded by MaxSegments*255, so it cannot overflow an int.
func payloadLen(table []byte) int {
	n := 0
	for _, v := range table {
		n += int(v)
	}
	return n
}

// skipTail measures the leading run of a continued page that finishes a
// packet whose head was never seen: every 255 segment plus the one that
// terminates the run.
func skipTail(table []byte) (segments, size int) {
	for _, v := range table {
		segments++
		size += int(v)
		if v < maxLacing {
			break
		}
	}
	return segments, size
}

// nextRun measures the packet fragment starting at segment i. complete is
// false when the run reaches the end of the table on a 255 value, which
// means the packet continues on a later page.
func nextRun(table []byte, i int) (end, size int, complete bool) {
	for end = i; end < len(table); {
		v := table[end]
		end++
		size += int(v)
		if v < maxLacing {
			return end, size, true
		}
	}
	return end, size, false
}
