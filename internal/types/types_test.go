package types

import "testing"

func TestSpanTags(t *testing.T) {
	tests := []struct {
		span        Span
		name        string
		open, close string
	}{
		{SpanPre, "pre", "<pre>", "</pre>"},
		{SpanStrike, "s", "<s>", "</s>"},
		{SpanBold, "b", "<b>", "</b>"},
		{SpanItalic, "i", "<i>", "</i>"},
		{SpanCode, "code", "<code>", "</code>"},
		{SpanLink, "a", `<a href="`, "</a>"},
		{Span(99), "unknown", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.span.String(); got != tt.name {
				t.Errorf("String() = %q, want %q", got, tt.name)
			}
			if got := tt.span.Open(); got != tt.open {
				t.Errorf("Open() = %q, want %q", got, tt.open)
			}
			if got := tt.span.Close(); got != tt.close {
				t.Errorf("Close() = %q, want %q", got, tt.close)
			}
		})
	}
}

func TestEscape(t *testing.T) {
	for c, want := range map[byte]string{'<': "&lt;", '>': "&gt;", '&': "&amp;", '"': "", 'a': "", '\n': ""} {
		if got := Escape(c); got != want {
			t.Errorf("Escape(%q) = %q, want %q", c, got, want)
		}
	}
}
