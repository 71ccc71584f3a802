package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/riverfjs/tghtml"
	"github.com/riverfjs/tghtml/internal/prompt"
)

func (a *app) convertCmd() *cobra.Command {
	var (
		capacity int
		split    bool
	)
	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert markdown from a file or stdin to Telegram HTML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			switch {
			case capacity > 0:
				dst := make([]byte, capacity)
				n := tghtml.Convert(dst, src)
				fmt.Fprintln(out, string(terminated(dst)))
				if n >= capacity {
					warn(cmd.ErrOrStderr(), "output truncated, %d bytes needed, capacity %d", n+1, capacity)
				}
			case split:
				messages, err := tghtml.Telegramify(cmd.Context(), string(src),
					tghtml.WithMaxMessageLength(a.cfg.Telegram.MaxMessageLength),
					tghtml.WithConcurrency(a.cfg.Telegram.Concurrency),
					tghtml.WithLogger(a.logger))
				if err != nil {
					return err
				}
				for i, m := range messages {
					if i > 0 {
						fmt.Fprintln(out, "---")
					}
					fmt.Fprintln(out, m)
				}
			default:
				fmt.Fprintln(out, tghtml.HTML(string(src)))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&capacity, "capacity", 0, "Convert into a fixed buffer of this many bytes")
	cmd.Flags().BoolVar(&split, "split", false, "Split into Telegram-sized messages separated by ---")
	cmd.MarkFlagsMutuallyExclusive("capacity", "split")
	return cmd
}

func (a *app) promptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prompt",
		Short: "Print the system prompt built from the workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asm := a.assembler()
			size := a.cfg.Prompt.BufferSize
			dst := make([]byte, size)
			n := asm.BuildSystemPrompt(dst)
			fmt.Fprint(cmd.OutOrStdout(), string(terminated(dst)))
			if n >= size {
				warn(cmd.ErrOrStderr(), "system prompt truncated, %d bytes needed, buffer %d", n+1, size)
			}
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	var user string
	cmd := &cobra.Command{
		Use:   "history [file]",
		Short: "Append a user message to a serialized history",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			history, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			size := a.cfg.History.BufferSize
			dst := make([]byte, size)
			n := a.assembler().BuildMessageHistory(string(history), user, dst)
			if n >= size {
				return fmt.Errorf("history needs %d bytes, buffer is %d", n+1, size)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(dst[:n]))
			return nil
		},
	}
	cmd.Flags().StringVarP(&user, "user", "u", "", "New user message")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}

// assembler builds a prompt assembler from the loaded config.
func (a *app) assembler() *prompt.Assembler {
	asm := prompt.New(os.DirFS(a.cfg.Workspace), a.logger)
	asm.Name = a.cfg.Prompt.Name
	asm.Files = a.cfg.Prompt.Bootstrap
	asm.RecentDays = a.cfg.Prompt.RecentDays
	asm.Template = a.cfg.Prompt.Template

	if asm.Template == "" && a.cfg.Prompt.TemplateFile != "" {
		path := a.cfg.Prompt.TemplateFile
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.cfg.Workspace, path)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			a.logger.Warn("template file skipped", zap.String("path", path), zap.Error(err))
		} else {
			asm.Template = string(data)
		}
	}
	return asm
}

// readInput reads the file named by args, or stdin when there is none or it is "-".
func readInput(cmd *cobra.Command, args []string) ([]byte, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return data, nil
}

// terminated returns dst up to its NUL terminator.
func terminated(dst []byte) []byte {
	if i := bytes.IndexByte(dst, 0); i >= 0 {
		return dst[:i]
	}
	return dst
}
