package converter

import (
	"bytes"

	"github.com/riverfjs/tghtml/internal/buffer"
	"github.com/riverfjs/tghtml/internal/types"
)

const fence = "```"

// Convert scans src left to right and emits Telegram HTML into out.
//
// Markers are recognized with fixed precedence: fence open, fence close,
// code-block body, inline code, link, ~~, **, *, __, literal byte. Emphasis
// markers toggle one flag per kind rather than maintaining a nesting stack,
// so interleaved spans close in toggle order. Any span still open at the end
// of input is closed in the order pre, s, b, i.
//
// Convert does not terminate the buffer; the caller owns that.
func Convert(src []byte, out *buffer.Sink) {
	sc := scanner{src: src, out: out}
	sc.run()
	sc.finish()
}

// scanner holds the per-call state. A fresh one is created for every Convert.
type scanner struct {
	src []byte
	out *buffer.Sink
	pos int

	bold   bool
	italic bool
	strike bool
	pre    bool

	// layout records block positions when non-nil.
	layout *Layout
}

func (sc *scanner) run() {
	for sc.pos < len(sc.src) {
		c := sc.src[sc.pos]
		switch {
		case sc.fenceAt():
			if sc.pre {
				sc.closeFence()
			} else {
				sc.openFence()
			}
		case sc.pre:
			sc.escape(c)
			sc.pos++
		case c == '`' && sc.inlineCode():
		case c == '[' && sc.link():
		case sc.pairAt('~'):
			sc.toggle(&sc.strike, types.SpanStrike, 2)
		case sc.pairAt('*'):
			sc.toggle(&sc.bold, types.SpanBold, 2)
		case c == '*':
			sc.toggle(&sc.italic, types.SpanItalic, 1)
		case sc.pairAt('_'):
			sc.toggle(&sc.bold, types.SpanBold, 2)
		default:
			sc.escape(c)
			sc.pos++
		}
	}
}

func (sc *scanner) finish() {
	if sc.pre {
		sc.out.WriteString(types.SpanPre.Close())
	}
	if sc.strike {
		sc.out.WriteString(types.SpanStrike.Close())
	}
	if sc.bold {
		sc.out.WriteString(types.SpanBold.Close())
	}
	if sc.italic {
		sc.out.WriteString(types.SpanItalic.Close())
	}
}

func (sc *scanner) fenceAt() bool {
	rest := sc.src[sc.pos:]
	return len(rest) >= len(fence) && rest[0] == '`' && rest[1] == '`' && rest[2] == '`'
}

func (sc *scanner) pairAt(c byte) bool {
	return sc.pos+1 < len(sc.src) && sc.src[sc.pos] == c && sc.src[sc.pos+1] == c
}

// openFence consumes the fence and the rest of its line; the language tag is
// dropped.
func (sc *scanner) openFence() {
	start := sc.pos
	sc.pos += len(fence)
	if nl := bytes.IndexByte(sc.src[sc.pos:], '\n'); nl >= 0 {
		sc.pos += nl + 1
	} else {
		sc.pos = len(sc.src)
	}
	sc.out.WriteString(types.SpanPre.Open())
	sc.pre = true
	if sc.layout != nil {
		n := len(sc.src)
		sc.layout.fences = append(sc.layout.fences, Fence{Open: start, Body: sc.pos, Close: n, End: n})
	}
}

func (sc *scanner) closeFence() {
	at := sc.pos
	sc.pos += len(fence)
	if sc.pos < len(sc.src) && sc.src[sc.pos] == '\n' {
		sc.pos++
	}
	if sc.layout != nil {
		f := &sc.layout.fences[len(sc.layout.fences)-1]
		f.Close, f.End = at, sc.pos
	}
	sc.out.WriteString(types.SpanPre.Close())
	sc.pre = false
}

// inlineCode emits a code span when a closing backtick exists anywhere later
// in the input, newlines included.
func (sc *scanner) inlineCode() bool {
	start := sc.pos + 1
	end := bytes.IndexByte(sc.src[start:], '`')
	if end < 0 {
		return false
	}
	end += start

	sc.out.WriteString(types.SpanCode.Open())
	sc.escapeAll(sc.src[start:end])
	sc.out.WriteString(types.SpanCode.Close())
	sc.span(sc.pos, end+1)
	sc.pos = end + 1
	return true
}

// link emits an anchor for [text](target). The ] must appear before the next
// newline and be followed directly by (; the ) may be on a later line. The
// target is copied raw.
func (sc *scanner) link() bool {
	closeBracket := -1
	for q := sc.pos + 1; q < len(sc.src) && sc.src[q] != '\n'; q++ {
		if sc.src[q] == ']' {
			closeBracket = q
			break
		}
	}
	if closeBracket < 0 || closeBracket+1 >= len(sc.src) || sc.src[closeBracket+1] != '(' {
		return false
	}
	targetStart := closeBracket + 2
	targetEnd := bytes.IndexByte(sc.src[targetStart:], ')')
	if targetEnd < 0 {
		return false
	}
	targetEnd += targetStart

	sc.out.WriteString(types.LinkOpen)
	_, _ = sc.out.Write(sc.src[targetStart:targetEnd])
	sc.out.WriteString(types.LinkOpenEnd)
	sc.escapeAll(sc.src[sc.pos+1 : closeBracket])
	sc.out.WriteString(types.SpanLink.Close())
	sc.span(sc.pos, targetEnd+1)
	sc.pos = targetEnd + 1
	return true
}

func (sc *scanner) span(start, end int) {
	if sc.layout != nil {
		sc.layout.spans = append(sc.layout.spans, [2]int{start, end})
	}
}

func (sc *scanner) toggle(flag *bool, span types.Span, width int) {
	if *flag {
		sc.out.WriteString(span.Close())
	} else {
		sc.out.WriteString(span.Open())
	}
	*flag = !*flag
	sc.pos += width
}

func (sc *scanner) escape(c byte) {
	if e := types.Escape(c); e != "" {
		sc.out.WriteString(e)
		return
	}
	_ = sc.out.WriteByte(c)
}

func (sc *scanner) escapeAll(p []byte) {
	for _, c := range p {
		sc.escape(c)
	}
}
