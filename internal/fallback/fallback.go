// Package fallback stores CSV backups of lead records that could not be
// delivered to the webhook.
package fallback

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rootwave/site/internal/lead"
)

// Dir writes backups as files into an existing directory.
type Dir struct {
	path string
}

// NewDir returns a writer for path. The directory must already exist.
func NewDir(path string) (*Dir, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("fallback directory is required")
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("fallback directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("fallback path %s is not a directory", path)
	}
	return &Dir{path: path}, nil
}

// Path returns the target directory.
func (d *Dir) Path() string {
	return d.path
}

// Write creates name inside the directory. Existing files are not replaced.
func (d *Dir) Write(name string, data []byte) error {
	if name == "" || name != filepath.Base(name) {
		return fmt.Errorf("invalid fallback file name %q", name)
	}
	full := filepath.Join(d.path, name)
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", full, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", full, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", full, err)
	}
	slog.Info("csv backup written", "file", full, "bytes", len(data))
	return nil
}

// Chain offers a backup to every writer. It is applied when at least one
// writer succeeds.
type Chain []lead.FallbackWriter

// Write runs every writer. Errors are returned, joined, only when no writer
// succeeded.
func (c Chain) Write(name string, data []byte) error {
	var errs []error
	applied := false
	for _, w := range c {
		if w == nil {
			continue
		}
		if err := w.Write(name, data); err != nil {
			slog.Warn("csv backup writer failed", "file", name, "error", err)
			errs = append(errs, err)
			continue
		}
		applied = true
	}
	if applied {
		return nil
	}
	if len(errs) == 0 {
		return errors.New("no fallback writers configured")
	}
	return errors.Join(errs...)
}
