// Package fsx abstracts the file system operations the selection tree
// and digest generator depend on, so tests and alternative hosts can
// inject their own implementation.
package fsx

import (
	"os"
	"time"
)

// DirEntry represents a single directory entry.
type DirEntry struct {
	Name  string
	IsDir bool
}

// FileInfo holds file metadata.
type FileInfo struct {
	Name    string
	IsDir   bool
	Size    int64
	ModTime time.Time
}

// FS is the file system capability. All paths are absolute.
type FS interface {
	ReadDir(path string) ([]DirEntry, error)
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Stat(path string) (FileInfo, error)
}

// OS implements FS against the local file system.
type OS struct{}

// NewOS returns an FS backed by the host operating system.
func NewOS() *OS {
	return &OS{}
}

// ReadDir lists the immediate children of the directory at path,
// sorted by filename as os.ReadDir guarantees.
func (*OS) ReadDir(path string) ([]DirEntry, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	result := make([]DirEntry, len(entries))
	for i, e := range entries {
		result[i] = DirEntry{
			Name:  e.Name(),
			IsDir: e.IsDir(),
		}
	}
	return result, nil
}

// ReadFile reads the full contents of the file at path.
func (*OS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// WriteFile writes data to path, creating or truncating the file.
func (*OS) WriteFile(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// Stat returns metadata for the file or directory at path.
func (*OS) Stat(path string) (FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return FileInfo{}, err
	}
	return FileInfo{
		Name:    info.Name(),
		IsDir:   info.IsDir(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
	}, nil
}
