package files

import (
	"context"
	"errors"
	"net/url"
	"os"
)

var (
	// ErrExists is returned by Store.Copy when the destination is occupied and overwrite was not requested.
	ErrExists = errors.New("destination already exists")

	// ErrOutsideRoot is returned when a path escapes the store root.
	ErrOutsideRoot = errors.New("path is outside of the store root")
)

//go:generate mockgen -source=store.go -destination=mock_store.go -package=files

// Store is the filesystem a pane browses and mutates.
// All paths are absolute and slash separated.
type Store interface {
	RootTitle() string
	RootURL() url.URL
	ReadDir(ctx context.Context, name string) ([]os.DirEntry, error)
	Exists(ctx context.Context, path string) (bool, error)
	Copy(ctx context.Context, src, dst string, overwrite bool) error
	Delete(ctx context.Context, path string) error
}
