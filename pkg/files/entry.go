package files

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/filetug/twinpane/pkg/fsutils"
)

// Entry is one file or folder as listed in a directory snapshot.
// It is immutable: a change on disk produces a new Entry with the same Key.
type Entry struct {
	Kind Kind

	// Root is the browsing root, in directory form.
	Root string

	// RelativePath is "/" for the root and "/" + path within root otherwise.
	RelativePath string
}

// NewEntry normalizes root to directory form and relPath to a leading "/" without a trailing one.
func NewEntry(kind Kind, root, relPath string) Entry {
	relPath = "/" + strings.Trim(relPath, "/")
	return Entry{
		Kind:         kind,
		Root:         fsutils.DirForm(root),
		RelativePath: relPath,
	}
}

// NewEntryFromPath builds an entry for an absolute path below root.
func NewEntryFromPath(kind Kind, root, absPath string) (Entry, error) {
	relPath, ok := fsutils.RelativeTo(root, absPath)
	if !ok {
		return Entry{}, fmt.Errorf("%w: %s", ErrOutsideRoot, absPath)
	}
	return NewEntry(kind, root, relPath), nil
}

// AbsolutePath is the normalized absolute path; folders end with a separator.
func (e Entry) AbsolutePath() string {
	if e.Kind.IsFolder() {
		return fsutils.AppendFolderPath(e.Root, e.RelativePath)
	}
	if p, ok := fsutils.AppendFilePath(e.Root, e.RelativePath); ok {
		return p
	}
	return fsutils.DirForm(e.Root)
}

// Key identifies the entry regardless of possibly stale size metadata.
func (e Entry) Key() string {
	return e.AbsolutePath()
}

func (e Entry) Equal(other Entry) bool {
	return e.Key() == other.Key()
}

func (e Entry) URL() url.URL {
	return url.URL{Scheme: "file", Path: e.AbsolutePath()}
}

func (e Entry) Filename() string {
	if e.RelativePath == "/" {
		return ""
	}
	return path.Base(e.RelativePath)
}

// DisplayName is the filename with percent-encoding removed when it decodes cleanly.
func (e Entry) DisplayName() string {
	name := e.Filename()
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}

// Extension is the filename extension without the dot, or "" when there is none.
func (e Entry) Extension() string {
	return strings.TrimPrefix(path.Ext(e.Filename()), ".")
}

// ParentPath is the root-relative path of the folder holding the entry.
func (e Entry) ParentPath() string {
	if e.RelativePath == "/" {
		return "/"
	}
	return path.Dir(e.RelativePath)
}

func (e Entry) IsFolder() bool {
	return e.Kind.IsFolder()
}

func (e Entry) SpecializedKind() Kind {
	return Specialize(e.Kind, e.Extension())
}

func (e Entry) IsPreviewable() bool {
	return e.SpecializedKind().IsPreviewable()
}

func (e Entry) SizeForDisplay() (value, unit string) {
	return e.Kind.SizeForDisplay()
}

func (e Entry) String() string {
	return e.Kind.String() + " " + e.AbsolutePath()
}
