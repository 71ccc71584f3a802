package converter

import (
	"bytes"
	"sort"

	"github.com/riverfjs/tghtml/internal/buffer"
)

// Fence is a code block as the scanner reads it. All fields are byte offsets
// into the input.
type Fence struct {
	Open int // opening ```
	Body int // first byte after the opening line

	// TextStart and TextEnd bound the non-blank part of the body. They are
	// equal to Close and Body when the body is blank.
	TextStart, TextEnd int

	Close int // closing ```, or len(src) when unterminated
	End   int // after the closing ``` and its newline
}

// Layout records where the scanner sees code blocks, inline code and links,
// so callers can cut the input without changing how each part is read.
type Layout struct {
	fences []Fence
	spans  [][2]int // inline code and links, [start, end)
}

// Scan runs the scanner over src without writing output and returns its
// layout.
func Scan(src []byte) *Layout {
	l := &Layout{}
	var out buffer.Sink
	sc := scanner{src: src, out: &out, layout: l}
	sc.run()

	for i := range l.fences {
		f := &l.fences[i]
		body := src[f.Body:f.Close]
		f.TextStart = f.Close - len(bytes.TrimLeft(body, " \t\r\n"))
		f.TextEnd = f.Body + len(bytes.TrimRight(body, " \t\r\n"))
	}
	return l
}

// Fences returns the code blocks in input order.
func (l *Layout) Fences() []Fence {
	return l.fences
}

// InFence reports whether offset p lies inside a code block body. A piece
// of input starting at p is only read as code if it reopens the block.
func (l *Layout) InFence(p int) bool {
	f, ok := l.fenceAt(p)
	return ok && f.Body < p && p < f.Close
}

// CanCut reports whether the input may be cut at p. Cuts inside inline code,
// links and fence lines are refused, and so are cuts that would leave a
// blank code block on either side.
func (l *Layout) CanCut(p int) bool {
	i := sort.Search(len(l.spans), func(i int) bool { return l.spans[i][1] > p })
	if i < len(l.spans) && l.spans[i][0] < p {
		return false
	}
	if f, ok := l.fenceAt(p); ok {
		return f.TextStart < p && p < f.TextEnd
	}
	return true
}

// fenceAt returns the fence whose extent strictly contains p.
func (l *Layout) fenceAt(p int) (Fence, bool) {
	i := sort.Search(len(l.fences), func(i int) bool { return l.fences[i].End > p })
	if i < len(l.fences) && l.fences[i].Open < p {
		return l.fences[i], true
	}
	return Fence{}, false
}
