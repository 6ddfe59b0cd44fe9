// SPDX-License-Identifier: EPL-2.0

// Package bytequeue implements the staging buffer the Ogg scanner reads from:
// bytes are appended at the tail and drained from the head.
package bytequeue

import "slices"

const minCapacity = 4096

// Queue is a growable ring of bytes. The zero value is ready to use.
//
// Storage wraps around the end of the backing slice, so a logical window may
// be split in two physical pieces. All read methods stitch the pieces back
// together.
type Queue struct {
	buf  []byte
	head int
	n    int
}

// Len returns the number of buffered bytes.
func (q *Queue) Len() int { return q.n }

// Push appends p to the tail of the queue.
func (q *Queue) Push(p []byte) {
	if len(p) == 0 {
		return
	}
	q.grow(q.n + len(p))

	tail := (q.head + q.n) % len(q.buf)
	c := copy(q.buf[tail:], p)
	copy(q.buf, p[c:])
	q.n += len(p)
}

// Drain discards the first n bytes. Draining more than Len empties the queue.
func (q *Queue) Drain(n int) {
	if n <= 0 {
		return
	}
	if n >= q.n {
		q.head, q.n = 0, 0
		return
	}
	q.head = (q.head + n) % len(q.buf)
	q.n -= n
}

// Byte returns the byte at logical offset i. It panics if i is out of range.
func (q *Queue) Byte(i int) byte {
	if i < 0 || i >= q.n {
		panic("bytequeue: index out of range")
	}
	return q.buf[(q.head+i)%len(q.buf)]
}

// Peek fills dst with the bytes starting at logical offset off.
// It reports false, leaving dst untouched, when fewer than len(dst) bytes are
// buffered past off.
func (q *Queue) Peek(dst []byte, off int) bool {
	if off < 0 || len(dst) > q.n-off {
		return false
	}
	q.copyOut(dst, off)
	return true
}

// AppendRange appends n bytes starting at logical offset off to dst.
// It reports false and returns dst unchanged when the range is not buffered.
func (q *Queue) AppendRange(dst []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || n > q.n-off {
		return dst, false
	}
	l := len(dst)
	dst = slices.Grow(dst, n)[:l+n]
	q.copyOut(dst[l:], off)
	return dst, true
}

func (q *Queue) copyOut(dst []byte, off int) {
	if len(dst) == 0 {
		return
	}
	start := (q.head + off) % len(q.buf)
	c := copy(dst, q.buf[start:])
	copy(dst[c:], q.buf)
}

// grow makes room for at least need bytes, unwrapping the ring into the new
// backing slice.
func (q *Queue) grow(need int) {
	if need <= len(q.buf) {
		return
	}
	size := max(len(q.buf)*2, minCapacity)
	for size < need {
		size *= 2
	}
	buf := make([]byte, size)
	if q.n > 0 {
		q.copyOut(buf[:q.n], 0)
	}
	q.buf = buf
	q.head = 0
}
