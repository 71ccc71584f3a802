package tghtml

import (
	"github.com/riverfjs/tghtml/internal/buffer"
	"github.com/riverfjs/tghtml/internal/converter"
)

// Convert 将 Markdown 转换为 Telegram HTML，写入调用方提供的缓冲区
//
// 参数:
//   - dst: 输出缓冲区，len(dst) 即容量；转换结束后以 NUL 结尾
//   - src: 原始 Markdown 文本
//
// 返回:
//   - int: 逻辑长度，即缓冲区无限大时应写入的字节数（不含 NUL）
//
// 返回值 >= len(dst) 表示输出被截断：dst 只包含第一个放不下的片段之前的
// 完整片段，不会出现半个标签或实体。用至少 result+1 字节的缓冲区重新调用
// 即可得到完整结果。src 为 nil 或 dst 为空时不做任何事，返回 0。
//
// Convert 不保留调用间状态，也不分配内存；只要各自使用不同的缓冲区，
// 并发调用是安全的。
func Convert(dst, src []byte) int {
	if src == nil || len(dst) == 0 {
		return 0
	}
	var out buffer.Sink
	out.Reset(dst)
	converter.Convert(src, &out)
	out.Terminate()
	return out.Len()
}

// Len 返回 Convert 对 markdown 报告的逻辑长度，不写入任何内容
func Len(markdown string) int {
	var out buffer.Sink
	converter.Convert([]byte(markdown), &out)
	return out.Len()
}

// HTML 返回完整的转换结果
//
// 先用栈上的小缓冲区转换；若被截断，则按返回的逻辑长度分配缓冲区重试。
func HTML(markdown string) string {
	src := []byte(markdown)
	var small [512]byte
	n := Convert(small[:], src)
	if n < len(small) {
		return string(small[:n])
	}
	dst := make([]byte, n+1)
	n = Convert(dst, src)
	return string(dst[:n])
}
