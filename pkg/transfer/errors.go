package transfer

import (
	"errors"
	"fmt"

	"github.com/filetug/twinpane/pkg/files"
)

var (
	// ErrDropCancelled reports a drop cancelled before any item was touched.
	ErrDropCancelled = errors.New("drop cancelled")

	// ErrDropUnsuccessful reports a finished drop in which at least one item failed.
	// The item errors are joined to it.
	ErrDropUnsuccessful = errors.New("drop unsuccessful")

	// ErrInvalidState is returned by an operation called in a state that does not allow it.
	ErrInvalidState = errors.New("operation is not valid in the current drop state")

	ErrInvalidName = errors.New("invalid file name")
)

// ItemError is the failure of a single item of a drop.
type ItemError struct {
	Entry files.Entry
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("drop failed for %s: %v", e.Entry.DisplayName(), e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
