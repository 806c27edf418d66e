package transfer

import (
	"context"

	"github.com/filetug/twinpane/pkg/files"
)

// TrashDrop deletes every dropped item in one pass once the drop is accepted.
// There is no destination and therefore never a conflict to confirm.
type TrashDrop struct {
	batch
}

var _ Drop = (*TrashDrop)(nil)

func NewTrashDrop(store files.Store, items []files.Entry, callbacks Callbacks, o ...Option) *TrashDrop {
	d := &TrashDrop{batch: newBatch("delete", store, items, callbacks, o)}
	d.self = d
	return d
}

func (d *TrashDrop) ValidateDrop() bool {
	return d.validateDrop()
}

func (d *TrashDrop) ProposeOperation() Operation {
	return OpMove
}

// AcceptDrop attempts every deletion, reporting each item as it goes.
// The drop is unsuccessful if any deletion failed.
func (d *TrashDrop) AcceptDrop(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}
	for _, item := range d.items {
		d.itemDone(item, d.store.Delete(ctx, item.AbsolutePath()))
	}
	d.finish()
	return nil
}

func (d *TrashDrop) ConfirmingSourceItem() (files.Entry, bool) {
	return files.Entry{}, false
}

func (d *TrashDrop) ConfirmingDestinationName() (string, bool) {
	return "", false
}

func (d *TrashDrop) AcceptItem(context.Context) error {
	return ErrInvalidState
}

func (d *TrashDrop) RejectItem(context.Context) error {
	return ErrInvalidState
}

func (d *TrashDrop) RenameItem(context.Context, string) error {
	return ErrInvalidState
}
