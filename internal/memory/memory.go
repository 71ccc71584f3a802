// Package memory reads the assistant's long-term memory and dated daily notes
// from a workspace. Writing memory is the assistant's job through its file
// tools; this package only reads.
package memory

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// LongTermFile is the long-term memory file, relative to the workspace.
	LongTermFile = "memory/MEMORY.md"

	// DailyDir holds one note file per day named YYYY-MM-DD.md.
	DailyDir = "memory/daily"

	// DateLayout names daily note files.
	DateLayout = "2006-01-02"
)

// Reader provides memory snippets for the system prompt.
type Reader interface {
	LongTerm() (string, error)
	Recent(days int) (string, error)
}

// FileStore reads memory from a workspace file system.
type FileStore struct {
	FS  fs.FS
	Now func() time.Time

	// Logger receives skipped daily notes. Nil discards them.
	Logger *zap.Logger
}

// NewFileStore creates a FileStore over fsys using the wall clock.
func NewFileStore(fsys fs.FS) *FileStore {
	return &FileStore{FS: fsys, Now: time.Now}
}

// LongTerm returns the long-term memory file, or "" if it does not exist.
func (s *FileStore) LongTerm() (string, error) {
	return s.read(LongTermFile)
}

// Recent returns the notes of today and the previous days-1 days, newest
// first. Each note is headed by its date. Days without a file are skipped,
// and so are days whose file cannot be read; those are logged at warn level.
func (s *FileStore) Recent(days int) (string, error) {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	today := now()

	var notes []string
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i).Format(DateLayout)
		name := path.Join(DailyDir, date+".md")
		note, err := s.read(name)
		if err != nil {
			s.logger().Warn("daily note skipped", zap.String("path", name), zap.Error(err))
			continue
		}
		if note == "" {
			continue
		}
		notes = append(notes, fmt.Sprintf("### %s\n\n%s", date, note))
	}
	return strings.Join(notes, "\n\n"), nil
}

func (s *FileStore) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *FileStore) read(name string) (string, error) {
	data, err := fs.ReadFile(s.FS, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", name, err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}
