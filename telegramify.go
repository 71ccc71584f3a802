// Package tghtml 将 AI 助手输出的 Markdown 转换为 Telegram HTML
//
// 这个包提供了将 LLM 回复中常见的 Markdown 子集转换为 Telegram Bot API
// parse_mode=HTML 所接受的受限 HTML 的功能。
//
// 核心功能：
//   - 单遍扫描转换，写入调用方提供的定长缓冲区，永不越界
//   - 即使输出被截断，也返回完整的逻辑长度
//   - 按 Markdown 段落边界拆分长消息
//
// 输出只包含以下标签：<b> <i> <s> <code> <pre> <a href="...">，
// 以及 &lt; &gt; &amp; 三个实体。
//
// 主要 API：
//   - Convert(): 写入定长缓冲区，返回逻辑长度
//   - HTML(): 返回完整字符串
//   - Telegramify(): 拆分并并发转换，返回可直接发送的消息列表
//
// 示例：
//
//	// 定长缓冲区
//	buf := make([]byte, 4096)
//	n := tghtml.Convert(buf, []byte(reply))
//	if n >= len(buf) {
//	    // 被截断，按 n+1 重新分配
//	}
//
//	// 完整处理（含拆分）
//	messages, err := tghtml.Telegramify(ctx, reply)
package tghtml

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Telegramify 将 Markdown 转换为可直接发送的 Telegram HTML 消息列表
//
// 文本先拆分为若干段，使每段的 HTML 长度不超过最大消息长度，然后并发转换。
// 代码块跨段时，每段各自闭合并重新打开代码块。
// 返回的消息顺序与原文一致。
//
// 参数：
//   - ctx: 上下文，取消后返回 ctx.Err()
//   - markdown: 原始 Markdown 文本
//   - opts: 可选项，包括最大消息长度、并发数和日志记录器
//
// 返回：
//   - []string: HTML 消息列表
//   - error: 仅在上下文取消时返回
func Telegramify(ctx context.Context, markdown string, opts ...Option) ([]string, error) {
	options := applyOptions(opts...)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pieces := Split(markdown, options.MaxMessageLength)
	messages := make([]string, len(pieces))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(options.Concurrency)
	for i, piece := range pieces {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			messages[i] = HTML(piece)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	visible := 0
	for _, m := range messages {
		visible += CountText(m)
	}
	options.Logger.Debug("markdown converted",
		zap.Int("input_bytes", len(markdown)),
		zap.Int("text_length", visible),
		zap.Int("messages", len(messages)),
		zap.Int("max_message_length", options.MaxMessageLength))
	return messages, nil
}
