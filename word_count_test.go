package tghtml

import (
	"testing"
	"unicode/utf16"
)

// TestUTF16Len 测试 UTF-16 长度计算
func TestUTF16Len(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"cjk", "你好", 2},
		{"bmp emoji", "☑️", 2},
		{"supplementary emoji", "📌", 2},
		{"mixed", "A📌B", 4},
		{"flag", "🇺🇸", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UTF16Len(tt.text); got != tt.want {
				t.Errorf("UTF16Len(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

// TestUTF16Len_MatchesEncode 测试 UTF16Len 是否匹配 UTF-16 编码长度
func TestUTF16Len_MatchesEncode(t *testing.T) {
	for _, s := range []string{"", "hello", "你好世界", "📌✅🔗", "A📌B你好C", "test 🇺🇸 flag"} {
		t.Run(s, func(t *testing.T) {
			want := len(utf16.Encode([]rune(s)))
			if got := UTF16Len(s); got != want {
				t.Errorf("UTF16Len(%q) = %d, want %d", s, got, want)
			}
		})
	}
}

// TestCountText 测试 HTML 可见文本长度
func TestCountText(t *testing.T) {
	tests := []struct {
		html string
		want int
	}{
		{"", 0},
		{"plain", 5},
		{"<b>bold</b>", 4},
		{`<a href="https://example.com">docs</a>`, 4},
		{"5 &gt; 3 &amp; 2 &lt; 9", 13},
		{"a & b", 5},
		{"<pre>📌</pre>", 2},
		{"broken <b", 9},
	}
	for _, tt := range tests {
		t.Run(tt.html, func(t *testing.T) {
			if got := CountText(tt.html); got != tt.want {
				t.Errorf("CountText(%q) = %d, want %d", tt.html, got, tt.want)
			}
		})
	}
}

// TestCountText_Converted 测试转换结果的可见长度不超过字节长度
func TestCountText_Converted(t *testing.T) {
	for _, md := range []string{"**bold** and *it*", "`a < b`", "[x](http://y)", "你好 **世界**"} {
		html := HTML(md)
		if got := CountText(html); got > len(html) {
			t.Errorf("CountText(%q) = %d > %d bytes", html, got, len(html))
		}
	}
}
