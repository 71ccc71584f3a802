package types

// Span 表示 Telegram HTML 方言中的一种成对标签
type Span int

const (
	// Toggle spans, in the order they are force-closed at end of input.
	SpanPre Span = iota
	SpanStrike
	SpanBold
	SpanItalic
	SpanCode
	SpanLink
)

// String returns the tag name.
func (s Span) String() string {
	switch s {
	case SpanPre:
		return "pre"
	case SpanStrike:
		return "s"
	case SpanBold:
		return "b"
	case SpanItalic:
		return "i"
	case SpanCode:
		return "code"
	case SpanLink:
		return "a"
	default:
		return "unknown"
	}
}

// Open returns the opening tag. Links carry an href and are opened with
// LinkOpen/LinkOpenEnd instead.
func (s Span) Open() string {
	switch s {
	case SpanPre:
		return "<pre>"
	case SpanStrike:
		return "<s>"
	case SpanBold:
		return "<b>"
	case SpanItalic:
		return "<i>"
	case SpanCode:
		return "<code>"
	case SpanLink:
		return LinkOpen
	default:
		return ""
	}
}

// Close returns the closing tag.
func (s Span) Close() string {
	switch s {
	case SpanPre:
		return "</pre>"
	case SpanStrike:
		return "</s>"
	case SpanBold:
		return "</b>"
	case SpanItalic:
		return "</i>"
	case SpanCode:
		return "</code>"
	case SpanLink:
		return "</a>"
	default:
		return ""
	}
}

// Anchor tag halves; the raw target goes between them.
const (
	LinkOpen    = `<a href="`
	LinkOpenEnd = `">`
)

// Escape returns the entity for c, or "" when c is emitted verbatim.
// Only <, > and & are special in Telegram HTML outside attributes.
func Escape(c byte) string {
	switch c {
	case '<':
		return "&lt;"
	case '>':
		return "&gt;"
	case '&':
		return "&amp;"
	default:
		return ""
	}
}
