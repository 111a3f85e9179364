// Package fs defines the filesystem abstraction used by pgpitr.
// It provides the FS interface and the FileInfo/DirEntry types shared
// across the system.
package fs

import (
	"context"
	"time"
)

type FileInfo struct {
	Path  string
	Size  int64
	MTime time.Time
	Inode uint64
	IsDir bool
}

type DirEntry struct {
	Name  string
	IsDir bool
}

type FS interface {
	Stat(path string) (FileInfo, error)
	ReadDir(path string) ([]DirEntry, error)
	Mkdir(path string) error
	MkdirAll(path string) error
	RemoveAll(path string) error
	CopyFile(ctx context.Context, src, dst string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	AppendFile(path string, data []byte) error
}
