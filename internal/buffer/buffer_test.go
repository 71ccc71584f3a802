package buffer

import (
	"testing"
)

func TestSink_WritesWithinCapacity(t *testing.T) {
	dst := make([]byte, 16)
	s := New(dst)
	s.WriteString("<b>")
	_ = s.WriteByte('x')
	_, _ = s.Write([]byte("</b>"))
	s.Terminate()

	if got := string(s.Bytes()); got != "<b>x</b>" {
		t.Errorf("Bytes() = %q, want %q", got, "<b>x</b>")
	}
	if s.Len() != 8 || s.Written() != 8 {
		t.Errorf("Len() = %d, Written() = %d, want 8 and 8", s.Len(), s.Written())
	}
	if s.Truncated() {
		t.Error("Truncated() = true, want false")
	}
	if dst[8] != 0 {
		t.Errorf("dst[8] = %d, want NUL", dst[8])
	}
}

// TestSink_ReservesTerminator 容量恰好等于输出长度时必须截断，为 NUL 预留一个字节
func TestSink_ReservesTerminator(t *testing.T) {
	dst := make([]byte, 4)
	s := New(dst)
	s.WriteString("abcd")
	s.Terminate()

	if s.Written() != 0 {
		t.Errorf("Written() = %d, want 0", s.Written())
	}
	if s.Len() != 4 {
		t.Errorf("Len() = %d, want 4", s.Len())
	}
	if !s.Truncated() {
		t.Error("Truncated() = false, want true")
	}
	if dst[0] != 0 {
		t.Errorf("dst[0] = %d, want NUL", dst[0])
	}
}

func TestSink_NeverSplitsAnEmission(t *testing.T) {
	dst := make([]byte, 6)
	s := New(dst)
	s.WriteString("ab")
	s.WriteString("</code>")
	s.Terminate()

	if got := string(s.Bytes()); got != "ab" {
		t.Errorf("Bytes() = %q, want %q", got, "ab")
	}
	if s.Len() != 9 {
		t.Errorf("Len() = %d, want 9", s.Len())
	}
	if dst[2] != 0 {
		t.Errorf("dst[2] = %d, want NUL", dst[2])
	}
}

func TestSink_LatchesAfterFirstRefusal(t *testing.T) {
	dst := make([]byte, 8)
	s := New(dst)
	s.WriteString("abc")
	s.WriteString("defghij") // refused
	_ = s.WriteByte('k')     // would fit on its own, still refused
	s.WriteString("l")

	if got := string(s.Bytes()); got != "abc" {
		t.Errorf("Bytes() = %q, want %q", got, "abc")
	}
	if s.Len() != 12 {
		t.Errorf("Len() = %d, want 12", s.Len())
	}
}

func TestSink_ZeroCapacityCounts(t *testing.T) {
	s := New(nil)
	s.WriteString("hello")
	_ = s.WriteByte('!')
	s.Terminate()

	if s.Len() != 6 {
		t.Errorf("Len() = %d, want 6", s.Len())
	}
	if s.Written() != 0 {
		t.Errorf("Written() = %d, want 0", s.Written())
	}
	if s.Cap() != 0 {
		t.Errorf("Cap() = %d, want 0", s.Cap())
	}
}

func TestSink_Reset(t *testing.T) {
	s := New(make([]byte, 2))
	s.WriteString("too long")
	s.Reset(make([]byte, 16))
	s.WriteString("ok")

	if s.Truncated() {
		t.Error("Truncated() = true after Reset")
	}
	if got := string(s.Bytes()); got != "ok" {
		t.Errorf("Bytes() = %q, want %q", got, "ok")
	}
}

func TestSink_Invariants(t *testing.T) {
	chunks := []string{"&lt;", "a", "<pre>", "", "xyz", "</pre>", "&amp;"}
	for capacity := 0; capacity <= 24; capacity++ {
		s := New(make([]byte, capacity))
		for _, c := range chunks {
			s.WriteString(c)
		}
		s.Terminate()
		if s.Written() > s.Len() {
			t.Errorf("cap %d: Written() %d > Len() %d", capacity, s.Written(), s.Len())
		}
		if capacity > 0 && s.Written() >= capacity {
			t.Errorf("cap %d: Written() %d not below capacity", capacity, s.Written())
		}
		if !s.Truncated() && s.Written() != s.Len() {
			t.Errorf("cap %d: untruncated but Written() %d != Len() %d", capacity, s.Written(), s.Len())
		}
	}
}
