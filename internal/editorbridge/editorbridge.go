// Package editorbridge round-trips a value through the user's external text
// editor: write to a scoped temp file, let the caller suspend its own UI
// around running the editor, then detect whether the content actually
// changed via a content hash and release the temp file on every exit path.
package editorbridge

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/studiowebux/redis-nav/internal/format"
)

// Bridge owns the scoped temp directory external edits are staged in.
type Bridge struct {
	dir string
}

// New creates a Bridge with its own temp directory under the OS temp root.
func New() (*Bridge, error) {
	dir := filepath.Join(os.TempDir(), "redis-nav")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create editor temp dir: %w", err)
	}
	return &Bridge{dir: dir}, nil
}

// Session is one in-flight round trip: a temp file staged for editing, with
// enough state to detect a no-op on Finish.
type Session struct {
	Path       string
	beforeHash uint64
}

// Prepare stages value in a sanitized temp file and returns a Session plus
// the *exec.Cmd to run, which the caller should hand to tea.ExecProcess so
// the TUI suspends around it rather than racing it for the terminal.
func (b *Bridge) Prepare(key string, value []byte) (*Session, *exec.Cmd, error) {
	ext := extensionFor(value)
	path := filepath.Join(b.dir, sanitizeFilename(key)+ext)

	if err := os.WriteFile(path, value, 0644); err != nil {
		return nil, nil, fmt.Errorf("write temp file: %w", err)
	}

	editor := resolveEditor()
	cmd := exec.Command(editor, path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return &Session{Path: path, beforeHash: xxhash.Sum64(value)}, cmd, nil
}

// Finish reads the edited file back, reports whether it changed, and
// removes the temp file regardless of outcome. Err is EditorAbort-shaped
// (§7): a non-zero editor exit reported by the caller should be passed in
// as execErr so Finish can surface it without reading a possibly-partial
// file.
func (s *Session) Finish(execErr error) (newValue []byte, changed bool, err error) {
	defer os.Remove(s.Path)

	if execErr != nil {
		return nil, false, fmt.Errorf("launch editor: %w", execErr)
	}

	newValue, err = os.ReadFile(s.Path)
	if err != nil {
		return nil, false, fmt.Errorf("read back temp file: %w", err)
	}

	if xxhash.Sum64(newValue) == s.beforeHash {
		return nil, false, nil
	}
	return newValue, true, nil
}

func extensionFor(value []byte) string {
	switch format.Detect(value) {
	case format.Json:
		return ".json"
	case format.Xml, format.Html:
		return ".xml"
	default:
		return ".txt"
	}
}

// sanitizeFilename keeps only alphanumerics, '-', and '_', replacing
// everything else with '_', and caps the result at 50 runes.
func sanitizeFilename(key string) string {
	var b strings.Builder
	n := 0
	for _, r := range key {
		if n >= 50 {
			break
		}
		n++
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "value"
	}
	return b.String()
}

// resolveEditor checks $EDITOR then $VISUAL then a platform default.
func resolveEditor() string {
	if e := os.Getenv("EDITOR"); e != "" {
		return e
	}
	if v := os.Getenv("VISUAL"); v != "" {
		return v
	}
	if runtime.GOOS == "windows" {
		return "notepad"
	}
	return "vi"
}
