package tghtml

import (
	"strings"
	"unicode/utf8"
)

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Telegram measures message length in UTF-16 code units, not Go string bytes
// or runes. Characters outside the BMP (codepoint > 0xFFFF) take 2 UTF-16
// code units (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	count := 0
	for _, r := range text {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// CountText 计算 HTML 消息在 Telegram 中的有效长度（UTF-16 code units）
//
// Telegram 先解析标签和实体，再对可见文本计数：标签本身不计入，
// &lt; &gt; &amp; 各计为一个字符。只识别 Convert 会产生的三个实体。
func CountText(html string) int {
	count := 0
	for i := 0; i < len(html); {
		switch html[i] {
		case '<':
			end := strings.IndexByte(html[i:], '>')
			if end < 0 {
				return count + UTF16Len(html[i:])
			}
			i += end + 1
			continue
		case '&':
			if n := entityLen(html[i:]); n > 0 {
				count++
				i += n
				continue
			}
		}
		r, size := utf8.DecodeRuneInString(html[i:])
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
		i += size
	}
	return count
}

func entityLen(s string) int {
	for _, e := range []string{"&lt;", "&gt;", "&amp;"} {
		if strings.HasPrefix(s, e) {
			return len(e)
		}
	}
	return 0
}
