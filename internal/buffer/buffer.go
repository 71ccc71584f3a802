// Package buffer provides a bounded writer over a caller-owned byte slice.
//
// A Sink keeps two cursors: the logical length, which grows with every
// emission, and the number of bytes physically copied. Once an emission does
// not fit, the sink stops copying for good while the logical length keeps
// counting, so the caller can learn the full size and retry.
package buffer

// Sink accumulates output into a fixed-capacity buffer.
//
// The last byte of the buffer is reserved for the NUL terminator, so an
// emission is copied only when logical+len(emission) < capacity. Emissions
// are never split.
type Sink struct {
	buf     []byte
	n       int // logical length
	written int
	full    bool
}

// New creates a Sink over dst. A nil or empty dst yields a pure counter.
func New(dst []byte) *Sink {
	return &Sink{buf: dst}
}

// Reset rebinds the sink to dst and clears both cursors.
func (s *Sink) Reset(dst []byte) {
	s.buf = dst
	s.n = 0
	s.written = 0
	s.full = false
}

// WriteString emits str as a single unit.
func (s *Sink) WriteString(str string) {
	if s.fits(len(str)) {
		copy(s.buf[s.written:], str)
		s.written += len(str)
	}
	s.n += len(str)
}

// Write emits p as a single unit. It never fails.
func (s *Sink) Write(p []byte) (int, error) {
	if s.fits(len(p)) {
		copy(s.buf[s.written:], p)
		s.written += len(p)
	}
	s.n += len(p)
	return len(p), nil
}

// WriteByte emits one byte. It never fails.
func (s *Sink) WriteByte(c byte) error {
	if s.fits(1) {
		s.buf[s.written] = c
		s.written++
	}
	s.n++
	return nil
}

// fits reports whether n more bytes may be copied, latching the sink on the
// first refusal.
func (s *Sink) fits(n int) bool {
	if s.full {
		return false
	}
	if s.n+n < len(s.buf) {
		return true
	}
	s.full = true
	return false
}

// Len returns the logical length: the bytes an unbounded buffer would hold.
func (s *Sink) Len() int {
	return s.n
}

// Written returns the number of bytes actually copied.
func (s *Sink) Written() int {
	return s.written
}

// Cap returns the capacity of the underlying buffer.
func (s *Sink) Cap() int {
	return len(s.buf)
}

// Truncated reports whether any emission was dropped.
func (s *Sink) Truncated() bool {
	return s.full
}

// Bytes returns the copied prefix of the buffer.
func (s *Sink) Bytes() []byte {
	return s.buf[:s.written]
}

// Terminate writes the NUL terminator right after the copied bytes.
// Written() is always below the capacity, so the terminator always fits.
func (s *Sink) Terminate() {
	if len(s.buf) == 0 {
		return
	}
	s.buf[s.written] = 0
}
