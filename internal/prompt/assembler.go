// Package prompt assembles the assistant's system prompt and message history.
//
// Assembly is best-effort: a missing bootstrap file, an unreadable memory
// snippet or a broken history never fails the call. The affected part is
// replaced by empty or default content so the assistant keeps working with
// partial context.
package prompt

import (
	"fmt"
	"io/fs"
	"strings"

	"go.uber.org/zap"

	"github.com/riverfjs/tghtml/internal/buffer"
	"github.com/riverfjs/tghtml/internal/memory"
)

// Bootstrap is an optional workspace file appended to the system prompt
// under its own heading.
type Bootstrap struct {
	Path    string `yaml:"path"`
	Heading string `yaml:"heading"`
}

// DefaultBootstrap lists the personality and user-info files.
var DefaultBootstrap = []Bootstrap{
	{Path: "SOUL.md", Heading: "Personality"},
	{Path: "USER.md", Heading: "User Info"},
}

// DefaultRecentDays is how many days of notes go into the prompt.
const DefaultRecentDays = 3

// Assembler builds prompts from a workspace.
type Assembler struct {
	// FS is the workspace; bootstrap paths are relative to it.
	FS fs.FS

	// Memory supplies the long-term memory and recent notes. May be nil.
	Memory memory.Reader

	Files      []Bootstrap
	RecentDays int

	// Template is a text/template for the head of the prompt. Empty means
	// DefaultTemplate.
	Template string
	Name     string

	Logger *zap.Logger
}

// New creates an Assembler over the workspace fsys with default files,
// template and a FileStore for memory.
func New(fsys fs.FS, logger *zap.Logger) *Assembler {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := memory.NewFileStore(fsys)
	store.Logger = logger
	return &Assembler{
		FS:         fsys,
		Memory:     store,
		Files:      DefaultBootstrap,
		RecentDays: DefaultRecentDays,
		Name:       DefaultName,
		Logger:     logger,
	}
}

func (a *Assembler) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

// SystemPrompt returns the full system prompt.
func (a *Assembler) SystemPrompt() string {
	sections := a.sections()
	prompt := strings.Join(sections, "")
	a.logger().Info("system prompt built",
		zap.Int("bytes", len(prompt)),
		zap.Int("sections", len(sections)))
	return prompt
}

// BuildSystemPrompt writes the system prompt into dst and NUL-terminates it.
// Each section is written whole or not at all; after the first section that
// does not fit nothing more is written. The return value is the full prompt
// length, so a result >= len(dst) means the prompt was cut.
func (a *Assembler) BuildSystemPrompt(dst []byte) int {
	out := buffer.New(dst)
	for _, section := range a.sections() {
		out.WriteString(section)
	}
	out.Terminate()
	if out.Truncated() {
		a.logger().Warn("system prompt truncated",
			zap.Int("bytes", out.Len()),
			zap.Int("capacity", len(dst)),
			zap.Int("written", out.Written()))
	}
	return out.Len()
}

// sections returns the prompt parts in order: template, bootstrap files,
// long-term memory, recent notes.
func (a *Assembler) sections() []string {
	sections := []string{a.head()}

	for _, file := range a.Files {
		data, err := fs.ReadFile(a.FS, file.Path)
		if err != nil {
			a.logger().Debug("bootstrap file skipped", zap.String("path", file.Path), zap.Error(err))
			continue
		}
		sections = append(sections, fmt.Sprintf("\n## %s\n\n%s", file.Heading, data))
	}

	if a.Memory == nil {
		return sections
	}
	if long, err := a.Memory.LongTerm(); err != nil {
		a.logger().Warn("long-term memory skipped", zap.Error(err))
	} else if long != "" {
		sections = append(sections, fmt.Sprintf("\n## Long-term Memory\n\n%s\n", long))
	}

	days := a.RecentDays
	if days <= 0 {
		days = DefaultRecentDays
	}
	if recent, err := a.Memory.Recent(days); err != nil {
		a.logger().Warn("recent notes skipped", zap.Error(err))
	} else if recent != "" {
		sections = append(sections, fmt.Sprintf("\n## Recent Notes\n\n%s\n", recent))
	}
	return sections
}

// head renders the configured template, falling back to DefaultTemplate when
// it does not parse or execute.
func (a *Assembler) head() string {
	name := a.Name
	if name == "" {
		name = DefaultName
	}
	if a.Template != "" {
		head, err := renderTemplate(a.Template, name)
		if err == nil {
			return head
		}
		a.logger().Warn("prompt template invalid, using default", zap.Error(err))
	}
	head, err := renderTemplate(DefaultTemplate, name)
	if err != nil {
		// DefaultTemplate is covered by tests; this is unreachable.
		return DefaultTemplate
	}
	return head
}
