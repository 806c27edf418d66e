package files

import (
	"os"
	"path/filepath"
	"time"
)

// DirEntryOption sets metadata reported by DirEntry.Info.
type DirEntryOption func(*fileInfo)

func Size(v int64) DirEntryOption {
	return func(info *fileInfo) {
		info.size = v
	}
}

func ModTime(v time.Time) DirEntryOption {
	return func(info *fileInfo) {
		info.modTime = v
	}
}

// NewDirEntry creates an in-memory os.DirEntry for stores and tests that do not list an OS directory.
func NewDirEntry(name string, isDir bool, o ...DirEntryOption) DirEntry {
	if parent, _ := filepath.Split(name); parent != "" {
		// It's OK to have panic here.
		panic("dir entry name can not have path: " + name)
	}
	info := &fileInfo{name: name, isDir: isDir}
	for _, opt := range o {
		opt(info)
	}
	return DirEntry{info: info}
}

var _ os.DirEntry = (*DirEntry)(nil)

type DirEntry struct {
	info *fileInfo
}

func (d DirEntry) Name() string { return d.info.Name() }
func (d DirEntry) IsDir() bool  { return d.info.IsDir() }
func (d DirEntry) Type() os.FileMode {
	return d.info.Mode().Type()
}
func (d DirEntry) Info() (os.FileInfo, error) {
	return d.info, nil
}

var _ os.FileInfo = (*fileInfo)(nil)

type fileInfo struct {
	name    string
	isDir   bool
	size    int64
	modTime time.Time
}

func (f *fileInfo) Name() string { return f.name }
func (f *fileInfo) Size() int64  { return f.size }
func (f *fileInfo) Mode() os.FileMode {
	if f.isDir {
		return os.ModeDir | 0o755
	}
	return 0o644
}
func (f *fileInfo) ModTime() time.Time { return f.modTime }
func (f *fileInfo) IsDir() bool        { return f.isDir }
func (f *fileInfo) Sys() any           { return nil }
