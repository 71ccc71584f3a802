package parser

import (
	"sort"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/riverfjs/tghtml/internal/converter"
)

// StandardOptions goldmark 扩展配置
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.GFM,            // GitHub Flavored Markdown (tables, strikethrough, tasklists)
		extension.DefinitionList, // 定义列表
		extension.Footnote,       // 脚注
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
}

// The goldmark instance is configuration only; Parse creates per-call state.
var (
	markdownInstance goldmark.Markdown
	markdownOnce     sync.Once
)

func markdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdownInstance = goldmark.New(StandardOptions...)
	})
	return markdownInstance
}

// Parse 仅解析为 AST，不遍历
func Parse(source []byte) ast.Node {
	return markdown().Parser().Parse(text.NewReader(source))
}

// CodeRanges returns the byte ranges [start, stop) covered by the content
// lines of code blocks and raw HTML blocks, in document order.
func CodeRanges(source []byte) [][2]int {
	var ranges [][2]int
	_ = ast.Walk(Parse(source), func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock, *ast.HTMLBlock:
			lines := n.Lines()
			if lines.Len() > 0 {
				ranges = append(ranges, [2]int{lines.At(0).Start, lines.At(lines.Len() - 1).Stop})
			}
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	sort.Slice(ranges, func(i, j int) bool { return ranges[i][0] < ranges[j][0] })
	return ranges
}

// SplitPoints returns the offsets of non-blank lines that follow a blank
// line. goldmark supplies the paragraph structure; an offset is dropped when
// it falls inside a goldmark code range, or when the converter would read it
// as inside a code block, inline code span or link. The converter opens a
// block on ``` anywhere in a line, so its layout decides.
func SplitPoints(source []byte) []int {
	ranges := CodeRanges(source)
	layout := converter.Scan(source)
	var points []int

	prevBlank := false
	for start := 0; start < len(source); {
		end := start
		for end < len(source) && source[end] != '\n' {
			end++
		}
		blank := isBlank(source[start:end])
		if start > 0 && prevBlank && !blank && !insideCode(ranges, start) &&
			layout.CanCut(start) && !layout.InFence(start) {
			points = append(points, start)
		}
		prevBlank = blank
		start = end + 1
	}
	return points
}

// insideCode reports whether a cut at offset p would fall within a range or
// right before its closing fence.
func insideCode(ranges [][2]int, p int) bool {
	for _, r := range ranges {
		if r[0] < p && p <= r[1] {
			return true
		}
		if r[0] >= p {
			break
		}
	}
	return false
}

func isBlank(line []byte) bool {
	for _, c := range line {
		if c != ' ' && c != '\t' && c != '\r' {
			return false
		}
	}
	return true
}
