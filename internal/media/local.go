package media

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// LocalStorer writes uploads to a directory on disk and hands back
// /uploads/... paths that ServeUpload resolves again.
type LocalStorer struct {
	dir string
}

func NewLocalStorer(dir string) (*LocalStorer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &LocalStorer{dir: dir}, nil
}

func (l *LocalStorer) Store(ctx context.Context, fileName string, content io.Reader, size int64) (string, error) {
	if _, err := ValidateFilename(fileName); err != nil {
		return "", err
	}

	// Nano-timestamp prefix keeps two uploads of the same filename from
	// clobbering each other.
	stored := fmt.Sprintf("%d-%s", time.Now().UnixNano(), sanitizeFileName(fileName))
	dest := filepath.Join(l.dir, stored)

	f, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("store upload: %w", err)
	}
	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(dest)
		return "", fmt.Errorf("store upload: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(dest)
		return "", fmt.Errorf("store upload: %w", err)
	}

	return "/uploads/" + stored, nil
}

// Resolve maps a requested upload name back to its path on disk,
// rejecting anything that could escape the uploads directory.
func (l *LocalStorer) Resolve(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", os.ErrNotExist
	}
	path := filepath.Join(l.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if info.IsDir() {
		return "", os.ErrNotExist
	}
	return path, nil
}

func sanitizeFileName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	base = unsafeFileChars.ReplaceAllString(base, "-")
	base = strings.Trim(base, "-.")
	if base == "" {
		base = "upload"
	}
	return base
}
