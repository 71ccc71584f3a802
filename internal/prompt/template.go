package prompt

import (
	"strings"
	"text/template"

	"github.com/riverfjs/tghtml/internal/memory"
)

// DefaultName is the assistant name used when none is configured.
const DefaultName = "Mimi"

// DefaultTemplate is the fixed head of the system prompt.
const DefaultTemplate = `# {{.Name}}

You are {{.Name}}, a personal AI assistant running on a small always-on device.
You communicate through Telegram.

Be helpful, accurate, and concise.

## Formatting
Replies are shown in Telegram. Use only **bold**, *italic*, ~~strikethrough~~,
` + "`inline code`" + `, fenced code blocks and [links](https://example.com).
Do not use tables, headings or nested lists.

## Memory Guidelines
Your long-term memory is at {{.MemoryFile}}. Update it when you learn something
important about the user.
Daily notes are at {{.DailyDir}}/<YYYY-MM-DD>.md. Read a file before editing it so
existing content is kept.
`

// templateData is what a prompt template can reference.
type templateData struct {
	Name       string
	MemoryFile string
	DailyDir   string
}

func renderTemplate(text, name string) (string, error) {
	tmpl, err := template.New("system").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	err = tmpl.Execute(&sb, templateData{
		Name:       name,
		MemoryFile: memory.LongTermFile,
		DailyDir:   memory.DailyDir,
	})
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
