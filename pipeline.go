package tghtml

import (
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/riverfjs/tghtml/internal/converter"
	"github.com/riverfjs/tghtml/internal/parser"
)

const (
	reopenFence = "```\n"
	closeFence  = "\n```"
)

// Split 将 Markdown 拆分为若干段，每段转换后的 HTML 长度不超过 maxLen
//
// 拆分优先级：
// 1. 段落边界（空行之后，不在代码块、行内代码或链接内）
// 2. 行首，以及行中出现的代码块起始 ```
// 3. 按 UTF-8 字符边界硬拆分
//
// 每段尽量装入更多内容。代码块被拆开时，前一段以 "\n```" 结束，
// 后一段以 "```\n" 重新打开，这些字节同样计入 maxLen。
// 每段首尾的换行被去掉，空白段被丢弃。长度按 HTML 字节数计算，
// 不会小于 Telegram 按 UTF-16 计算的长度。
func Split(markdown string, maxLen int) []string {
	pieces := split(markdown, maxLen)
	out := make([]string, 0, len(pieces))
	for _, p := range pieces {
		out = append(out, p.markdown())
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// piece 是拆分结果的一段；open/close 表示需要补上的代码块标记
type piece struct {
	text        string
	open, close bool
}

func (p piece) markdown() string {
	s := p.text
	if p.open {
		s = reopenFence + s
	}
	if p.close {
		s += closeFence
	}
	return s
}

func split(markdown string, maxLen int) []piece {
	if maxLen <= 0 {
		maxLen = DefaultMaxMessageLength
	}

	var pieces []piece
	emit := func(p piece) {
		if strings.TrimSpace(p.text) != "" {
			pieces = append(pieces, p)
		}
	}

	whole := piece{text: strings.Trim(markdown, "\n")}
	if Len(whole.markdown()) <= maxLen {
		emit(whole)
		return pieces
	}

	s := newSplitter(markdown, maxLen)
	for start := 0; start < len(markdown); {
		end, reopen := s.next(start)
		emit(s.piece(start, end, reopen))
		start = end
	}
	return pieces
}

// splitter 按贪心策略寻找每段的结束位置
type splitter struct {
	src    string
	maxLen int
	layout *converter.Layout

	// 候选切分点，升序，最后一个是 len(src)
	paragraphs []int
	lines      []int
}

func newSplitter(src string, maxLen int) *splitter {
	b := []byte(src)
	s := &splitter{src: src, maxLen: maxLen, layout: converter.Scan(b)}
	s.paragraphs = append(parser.SplitPoints(b), len(src))
	s.lines = s.lineStarts()
	return s
}

// lineStarts 返回可切分的行首，以及行中代码块的起始位置
func (s *splitter) lineStarts() []int {
	var starts []int
	for i := 0; i+1 < len(s.src); i++ {
		if s.src[i] == '\n' && s.layout.CanCut(i+1) {
			starts = append(starts, i+1)
		}
	}
	for _, f := range s.layout.Fences() {
		if f.Open > 0 {
			starts = append(starts, f.Open)
		}
	}
	sort.Ints(starts)
	return append(slices.Compact(starts), len(s.src))
}

// next 返回从 start 开始的一段的结束位置，以及该段是否补代码块标记。
// 补上标记后放不下任何内容时，改为不补标记再试；仍放不下则只取一个字符。
func (s *splitter) next(start int) (int, bool) {
	for _, reopen := range []bool{true, false} {
		if end := s.farthest(s.paragraphs, start, reopen); end > start {
			return end, reopen
		}
		if end := s.farthest(s.lines, start, reopen); end > start {
			return end, reopen
		}
		if end := s.hardCut(start, reopen); end > start {
			return end, reopen
		}
	}
	_, size := utf8.DecodeRuneInString(s.src[start:])
	return start + size, false
}

// farthest 返回 start 之后最远的可容纳候选点，遇到第一个放不下的即停止。
// 链接目标中的 & 不转义，HTML 长度并不随内容单调增长。
func (s *splitter) farthest(candidates []int, start int, reopen bool) int {
	best := -1
	for i := sort.SearchInts(candidates, start+1); i < len(candidates); i++ {
		if !s.fits(start, candidates[i], reopen) {
			break
		}
		best = candidates[i]
	}
	return best
}

// hardCut 二分查找最长的可容纳前缀，再回退到字符边界。
// 优先避开行内代码、链接和代码块起止行，实在不行才切开它们。
func (s *splitter) hardCut(start int, reopen bool) int {
	lo, hi := start, len(s.src)+1
	for hi-lo > 1 {
		mid := lo + (hi-lo)/2
		if s.fits(start, mid, reopen) {
			lo = mid
		} else {
			hi = mid
		}
	}
	for _, safe := range []bool{true, false} {
		for end := lo; end > start; end-- {
			if s.boundary(end, safe) && s.fits(start, end, reopen) {
				return end
			}
		}
	}
	return -1
}

func (s *splitter) boundary(p int, safe bool) bool {
	if p < len(s.src) && !utf8.RuneStart(s.src[p]) {
		return false
	}
	return !safe || s.layout.CanCut(p)
}

func (s *splitter) fits(start, end int, reopen bool) bool {
	return Len(s.piece(start, end, reopen).markdown()) <= s.maxLen
}

// piece 截取 [start, end)；reopen 为 true 时，按代码块内外补上标记
func (s *splitter) piece(start, end int, reopen bool) piece {
	p := piece{text: strings.Trim(s.src[start:end], "\n")}
	if reopen {
		p.open = s.layout.InFence(start)
		p.close = end < len(s.src) && s.layout.InFence(end)
	}
	return p
}
