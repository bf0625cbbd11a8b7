// Package uploads stores media payloads in a flat directory. Writes are
// two-phase: the payload is staged under a temporary name, the caller commits
// the metadata row, then the file is promoted into place. A failed commit
// discards the staged file, so no row ever references a missing payload.
package uploads

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"groovy/errs"
)

const stagingSuffix = ".tmp"

// Store writes one file per song into dir.
type Store struct {
	dir string
}

// New creates the upload directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Sanitize reduces a client-supplied filename to a safe flat name: path
// components are dropped and anything outside [A-Za-z0-9._-] becomes an
// underscore. Returns errs.ErrInvalidUpload when nothing usable remains.
func Sanitize(name string) (string, error) {
	// Take the last path component under both separator conventions.
	name = name[strings.LastIndexByte(name, '/')+1:]
	name = name[strings.LastIndexByte(name, '\\')+1:]

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return "", errs.ErrInvalidUpload
	}
	return out, nil
}

// Stage writes the payload under name plus a staging suffix. The exclusive
// create flag turns a concurrent double-write into an error instead of a
// silent overwrite.
func (s *Store) Stage(name string, r io.Reader) error {
	f, err := os.OpenFile(s.Path(name)+stagingSuffix, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("stage %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("stage %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("stage %s: %w", name, err)
	}
	return nil
}

// Promote moves a staged file into its final place.
func (s *Store) Promote(name string) error {
	if err := os.Rename(s.Path(name)+stagingSuffix, s.Path(name)); err != nil {
		return fmt.Errorf("promote %s: %w", name, err)
	}
	return nil
}

// Discard removes a staged file after a failed metadata commit.
func (s *Store) Discard(name string) {
	os.Remove(s.Path(name) + stagingSuffix)
}

// Remove deletes a committed file.
func (s *Store) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Path returns the absolute location of a committed file.
func (s *Store) Path(name string) string {
	return filepath.Join(s.dir, name)
}
