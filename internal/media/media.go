package media

import (
	"context"
	"errors"
	"io"
	"strings"
)

var ErrInvalidType = errors.New("unsupported file type")

// The allowlist is extension-string matching only; nothing sniffs the
// bytes, so a renamed file passes. Matches the upload contract of the
// site frontend.
var allowedExtensions = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// Storer persists an uploaded image and returns the URL it will be
// served from. Implementations validate the filename before touching
// disk or network.
type Storer interface {
	Store(ctx context.Context, fileName string, content io.Reader, size int64) (string, error)
}

// ValidateFilename returns the lowercased extension, or ErrInvalidType
// when the name has no extension or one outside the image allowlist.
func ValidateFilename(name string) (string, error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return "", ErrInvalidType
	}
	ext := strings.ToLower(name[idx+1:])
	if _, ok := allowedExtensions[ext]; !ok {
		return "", ErrInvalidType
	}
	return ext, nil
}

func ContentType(ext string) string {
	if ct, ok := allowedExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}
