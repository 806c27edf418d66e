// Package history keeps the browsing history of one pane.
package history

import (
	"path"

	"github.com/filetug/twinpane/pkg/fsutils"
)

// ExistsFunc reports whether a location can be visited.
type ExistsFunc func(p string) bool

// DirExists is the default ExistsFunc; it checks for a directory on the local filesystem.
func DirExists(p string) bool {
	ok, err := fsutils.DirExists(p)
	return err == nil && ok
}

// State is what a presentation layer needs to render navigation controls.
type State struct {
	CurrentPath     string
	CanBack         bool
	CanForward      bool
	CanParent       bool
	CanRoot         bool
	CanHistoryStart bool
	CanHistoryEnd   bool
	NumberOfVisited int
	CursorPosition  int
}

// Navigator is a browser-like history over absolute directory paths.
// Index 0 of the visited list is always the root.
// Guarded operations that fail their guard leave everything unchanged and return the current location.
type Navigator struct {
	root    string
	visited []string
	cursor  int
	exists  ExistsFunc
}

type Option func(*Navigator)

func WithExists(f ExistsFunc) Option {
	return func(n *Navigator) {
		n.exists = f
	}
}

// New creates a navigator positioned at root.
func New(root string, o ...Option) *Navigator {
	n := &Navigator{
		root:   normalize(root),
		exists: DirExists,
	}
	for _, opt := range o {
		opt(n)
	}
	n.ResetToRoot()
	return n
}

// NewWithPath creates a navigator whose fixed root is relPath below root.
func NewWithPath(root, relPath string, o ...Option) *Navigator {
	return New(fsutils.AppendFolderPath(normalize(root), relPath), o...)
}

func normalize(p string) string {
	if p == "" {
		return "/"
	}
	return fsutils.DirForm(path.Clean(p))
}

func (n *Navigator) Root() string {
	return n.root
}

func (n *Navigator) Current() string {
	return n.visited[n.cursor]
}

func (n *Navigator) Cursor() int {
	return n.cursor
}

// History returns a copy of the visited locations.
func (n *Navigator) History() []string {
	visited := make([]string, len(n.visited))
	copy(visited, n.visited)
	return visited
}

// CurrentFilePath is the current location relative to the root; "/" at the root.
func (n *Navigator) CurrentFilePath() string {
	if rel, ok := n.RelativePath(n.Current()); ok {
		return rel
	}
	return "/"
}

// RelativePath returns p relative to the root, or false when p is outside it.
func (n *Navigator) RelativePath(p string) (string, bool) {
	return fsutils.RelativeTo(n.root, p)
}

func (n *Navigator) IsAtRoot() bool {
	return n.Current() == n.root
}

func (n *Navigator) ResetToRoot() string {
	n.visited = []string{n.root}
	n.cursor = 0
	return n.Current()
}

// CanBrowseTo reports whether p exists and lies within the root.
func (n *Navigator) CanBrowseTo(p string) bool {
	if p == "" {
		return false
	}
	p = normalize(p)
	return fsutils.IsWithin(n.root, p) && n.exists(p)
}

// BrowseTo makes p the current location, dropping any forward history.
func (n *Navigator) BrowseTo(p string) string {
	if !n.CanBrowseTo(p) {
		return n.Current()
	}
	n.visited = append(n.visited[:n.cursor+1], normalize(p))
	n.cursor++
	return n.Current()
}

func (n *Navigator) CanBrowseBack() bool {
	return n.cursor > 0
}

func (n *Navigator) BrowseBack() string {
	if n.CanBrowseBack() {
		n.cursor--
	}
	return n.Current()
}

func (n *Navigator) CanBrowseForward() bool {
	return n.cursor < len(n.visited)-1
}

func (n *Navigator) BrowseForward() string {
	if n.CanBrowseForward() {
		n.cursor++
	}
	return n.Current()
}

func (n *Navigator) CanBrowseToParent() bool {
	return !n.IsAtRoot()
}

func (n *Navigator) BrowseToParent() string {
	if !n.CanBrowseToParent() {
		return n.Current()
	}
	return n.BrowseTo(fsutils.ParentDir(n.Current()))
}

func (n *Navigator) CanBrowseToRoot() bool {
	return !n.IsAtRoot()
}

// BrowseToRoot visits the root like any other location, dropping forward history.
// CanBrowseToRoot is for enabling controls only; it does not guard this call.
func (n *Navigator) BrowseToRoot() string {
	return n.BrowseTo(n.root)
}

func (n *Navigator) CanBrowseToHistoryStart() bool {
	return n.cursor > 0
}

// BrowseToHistoryStart moves the cursor to the first location without truncating.
func (n *Navigator) BrowseToHistoryStart() string {
	if n.CanBrowseToHistoryStart() {
		n.cursor = 0
	}
	return n.Current()
}

func (n *Navigator) CanBrowseToHistoryEnd() bool {
	return n.cursor < len(n.visited)-1
}

// BrowseToHistoryEnd moves the cursor to the last location without truncating.
func (n *Navigator) BrowseToHistoryEnd() string {
	if n.CanBrowseToHistoryEnd() {
		n.cursor = len(n.visited) - 1
	}
	return n.Current()
}

func (n *Navigator) State() State {
	return State{
		CurrentPath:     n.CurrentFilePath(),
		CanBack:         n.CanBrowseBack(),
		CanForward:      n.CanBrowseForward(),
		CanParent:       n.CanBrowseToParent(),
		CanRoot:         n.CanBrowseToRoot(),
		CanHistoryStart: n.CanBrowseToHistoryStart(),
		CanHistoryEnd:   n.CanBrowseToHistoryEnd(),
		NumberOfVisited: len(n.visited),
		CursorPosition:  n.cursor,
	}
}
