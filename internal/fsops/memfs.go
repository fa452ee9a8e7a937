package fsops

import (
	"os"
	"path/filepath"
)

// MemFS is an in-memory FS used by tests. Errors can be injected per
// operation and path to exercise storage failure paths.
type MemFS struct {
	files map[string][]byte
	dirs  map[string]bool
	fail  map[string]error
}

// NewMemFS creates an empty MemFS.
func NewMemFS() *MemFS {
	return &MemFS{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
		fail:  make(map[string]error),
	}
}

// Operation names accepted by FailOn.
const (
	OpRead  = "read"
	OpWrite = "write"
	OpCopy  = "copy"
)

// FailOn makes op on path return err until cleared with FailOn(op, path, nil).
func (fs *MemFS) FailOn(op, path string, err error) {
	key := op + ":" + path
	if err == nil {
		delete(fs.fail, key)
		return
	}
	fs.fail[key] = err
}

func (fs *MemFS) injected(op, path string) error {
	return fs.fail[op+":"+path]
}

// SetFile stores content at path directly, bypassing failure injection.
func (fs *MemFS) SetFile(path string, data []byte) {
	fs.files[path] = append([]byte(nil), data...)
}

// File returns the content at path and whether it exists.
func (fs *MemFS) File(path string) ([]byte, bool) {
	data, ok := fs.files[path]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// MkdirAll records the directory and its parent.
func (fs *MemFS) MkdirAll(path string, perm os.FileMode) error {
	fs.dirs[path] = true
	parent := filepath.Dir(path)
	if parent != path && parent != "." {
		fs.dirs[parent] = true
	}
	return nil
}

// Copy copies file content from src to dst.
func (fs *MemFS) Copy(src, dst string) error {
	if err := fs.injected(OpCopy, src); err != nil {
		return err
	}
	content, ok := fs.files[src]
	if !ok {
		return os.ErrNotExist
	}
	fs.files[dst] = append([]byte(nil), content...)
	return nil
}

// AtomicWrite replaces the content at path.
func (fs *MemFS) AtomicWrite(path string, data []byte, perm os.FileMode) error {
	if err := fs.injected(OpWrite, path); err != nil {
		return err
	}
	fs.files[path] = append([]byte(nil), data...)
	return nil
}

// ReadFile returns a copy of the content at path.
func (fs *MemFS) ReadFile(path string) ([]byte, error) {
	if err := fs.injected(OpRead, path); err != nil {
		return nil, err
	}
	if content, ok := fs.files[path]; ok {
		return append([]byte(nil), content...), nil
	}
	return nil, os.ErrNotExist
}

// Exists reports whether a file or directory is recorded at path.
func (fs *MemFS) Exists(path string) (bool, error) {
	_, hasFile := fs.files[path]
	return hasFile || fs.dirs[path], nil
}
