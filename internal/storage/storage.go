// Package storage persists uploaded images. The local backend writes into
// a directory served under /uploads; the S3 backend puts objects into a
// public bucket of an S3-compatible store.
package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Backend stores an uploaded file under name and returns the URL clients
// should use to fetch it.
type Backend interface {
	Save(ctx context.Context, name, contentType string, body io.Reader, size int64) (string, error)
}

// defaultExt is used when the uploaded file has no extension.
const defaultExt = ".png"

// FileName builds the stored name for a user's upload:
// u_<userID>_<8 hex chars><ext>. The extension is taken from the original
// filename and lower-cased.
func FileName(userID int64, original string) (string, error) {
	var buf [4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("random name: %w", err)
	}
	ext := strings.ToLower(filepath.Ext(filepath.Base(original)))
	if ext == "" || ext == "." {
		ext = defaultExt
	}
	return fmt.Sprintf("u_%d_%s%s", userID, hex.EncodeToString(buf[:]), ext), nil
}

// Local writes uploads into a directory on disk.
type Local struct {
	dir string
}

// NewLocal creates a local backend rooted at dir. The directory must exist.
func NewLocal(dir string) *Local {
	return &Local{dir: dir}
}

// Save writes body to <dir>/<name> and returns /uploads/<name>.
func (l *Local) Save(_ context.Context, name, _ string, body io.Reader, _ int64) (string, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid upload name %q", name)
	}

	f, err := os.OpenFile(filepath.Join(l.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close upload: %w", err)
	}
	return "/uploads/" + name, nil
}
