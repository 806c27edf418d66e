package osfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/filetug/twinpane/pkg/files"
	"github.com/filetug/twinpane/pkg/fsutils"
	"github.com/otiai10/copy"
)

var osReadDir = os.ReadDir
var osHostname = os.Hostname
var osLstat = os.Lstat
var osRemoveAll = os.RemoveAll
var copyCopy = copy.Copy

var _ files.Store = (*Store)(nil)

// Store is a local filesystem store sandboxed to a root directory.
// Every path it is given must resolve to the root or below it.
type Store struct {
	title string
	root  string
}

func (s Store) RootURL() url.URL {
	return url.URL{
		Scheme: "file",
		Path:   s.root,
	}
}

func (s Store) RootTitle() string {
	return strings.TrimSuffix(s.title, ".station")
}

// Root returns the sandbox root in directory form.
func (s Store) Root() string {
	return s.root
}

func (s Store) resolve(p string) (string, error) {
	cleaned := path.Clean("/" + strings.TrimPrefix(filepath.ToSlash(p), "/"))
	if !fsutils.IsWithin(s.root, cleaned) {
		return "", fmt.Errorf("%w: %s", files.ErrOutsideRoot, p)
	}
	return filepath.FromSlash(cleaned), nil
}

func (s Store) ReadDir(ctx context.Context, name string) ([]os.DirEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	osPath, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return osReadDir(osPath)
}

func (s Store) Exists(ctx context.Context, p string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	osPath, err := s.resolve(p)
	if err != nil {
		return false, err
	}
	_, err = osLstat(osPath)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Copy copies a file or a folder tree. Without overwrite an occupied destination yields files.ErrExists.
func (s Store) Copy(ctx context.Context, src, dst string, overwrite bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	srcPath, err := s.resolve(src)
	if err != nil {
		return err
	}
	dstPath, err := s.resolve(dst)
	if err != nil {
		return err
	}
	if srcPath == dstPath {
		return fmt.Errorf("%w: cannot copy %s onto itself", files.ErrExists, src)
	}
	srcInfo, err := osLstat(srcPath)
	if err != nil {
		return err
	}
	dstInfo, err := osLstat(dstPath)
	switch {
	case err == nil && !overwrite:
		return fmt.Errorf("%w: %s", files.ErrExists, dst)
	case err == nil && dstInfo.IsDir() != srcInfo.IsDir():
		// A file cannot replace a folder in place (or the reverse), so clear the way first.
		if err = osRemoveAll(dstPath); err != nil {
			return err
		}
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return err
	}
	if srcInfo.IsDir() && fsutils.IsWithin(fsutils.DirForm(filepath.ToSlash(srcPath)), filepath.ToSlash(dstPath)) {
		return fmt.Errorf("cannot copy folder %s into itself", src)
	}
	return copyCopy(srcPath, dstPath, copy.Options{
		OnDirExists: func(_, _ string) copy.DirExistsAction {
			return copy.Replace
		},
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Shallow
		},
		PreserveTimes: true,
	})
}

// Delete removes a file or a folder tree. Deleting a missing path is an error.
func (s Store) Delete(ctx context.Context, p string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	osPath, err := s.resolve(p)
	if err != nil {
		return err
	}
	if fsutils.DirForm(filepath.ToSlash(osPath)) == s.root {
		return fmt.Errorf("refusing to delete store root %s", s.root)
	}
	if _, err = osLstat(osPath); err != nil {
		return err
	}
	return osRemoveAll(osPath)
}

// NewStore creates a store sandboxed to root. A relative root is made absolute.
func NewStore(root string) *Store {
	if root == "" {
		panic("osfile store root can not be empty")
	}
	if abs, err := filepath.Abs(fsutils.ExpandHome(root)); err == nil {
		root = abs
	}
	store := Store{root: fsutils.DirForm(filepath.ToSlash(root))}
	var err error
	if store.title, err = osHostname(); err != nil {
		store.title = err.Error()
	}
	return &store
}
