package transfer

import (
	"context"

	"github.com/filetug/twinpane/pkg/files"
)

// Target is where dragged items land.
type Target interface {
	// ValidateDrop reports whether the dragged items can be dropped here now.
	ValidateDrop() bool

	// ProposeOperation tells the dragging side what a drop here would do.
	ProposeOperation() Operation

	// PerformDrop starts the drop and reports whether anything will happen.
	PerformDrop() bool
}

// Interaction is how the presentation layer answers the prompts of a Drop.
type Interaction interface {
	AcceptDrop(ctx context.Context) error
	CancelDrop() error
	AcceptItem(ctx context.Context) error
	RejectItem(ctx context.Context) error
	RenameItem(ctx context.Context, name string) error
}

// Role is the part a drop target plays on screen.
type Role int

const (
	RoleForbidden Role = iota
	RoleBrowser
	RoleFolder
	RoleFile
	RoleTrash
)

func (r Role) String() string {
	switch r {
	case RoleBrowser:
		return "browser"
	case RoleFolder:
		return "folder"
	case RoleFile:
		return "file"
	case RoleTrash:
		return "trash"
	default:
		return "forbidden"
	}
}

// ForbiddenTarget accepts nothing.
type ForbiddenTarget struct{}

func (ForbiddenTarget) ValidateDrop() bool          { return true }
func (ForbiddenTarget) ProposeOperation() Operation { return OpForbidden }
func (ForbiddenTarget) PerformDrop() bool           { return false }

// FileTarget is an entry that is not a folder; dropping on it does nothing.
type FileTarget struct {
	File  files.Entry
	Items []files.Entry
}

func (t FileTarget) ValidateDrop() bool          { return len(t.Items) > 0 }
func (t FileTarget) ProposeOperation() Operation { return OpForbidden }
func (t FileTarget) PerformDrop() bool           { return false }

// NewTarget selects the target variant for role.
// destination is the folder to copy into for RoleBrowser and RoleFolder and is ignored otherwise.
func NewTarget(role Role, store files.Store, items []files.Entry, destination files.Entry, callbacks Callbacks, o ...Option) Target {
	switch role {
	case RoleBrowser, RoleFolder:
		if !destination.IsFolder() {
			return FileTarget{File: destination, Items: items}
		}
		return NewCopyDrop(store, items, destination.AbsolutePath(), callbacks, o...)
	case RoleFile:
		return FileTarget{File: destination, Items: items}
	case RoleTrash:
		return NewTrashDrop(store, items, callbacks, o...)
	default:
		return ForbiddenTarget{}
	}
}
