package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/filetug/twinpane/pkg/files"
	"github.com/filetug/twinpane/pkg/fsutils"
	"github.com/filetug/twinpane/pkg/metrics"
	"go.uber.org/zap"
)

// CopyDrop copies the dropped items into a destination folder, strictly in order.
// When a name is taken it pauses in StateConfirmingItem until the conflict is resolved.
// All operations are synchronous and must be called from one goroutine.
type CopyDrop struct {
	batch
	destination string

	queue      []files.Entry
	chosenName string
	overwrite  bool
}

var _ Drop = (*CopyDrop)(nil)

// NewCopyDrop creates a drop into the destination folder. An empty destination can not be dropped on.
func NewCopyDrop(store files.Store, items []files.Entry, destination string, callbacks Callbacks, o ...Option) *CopyDrop {
	d := &CopyDrop{batch: newBatch(OpCopy.String(), store, items, callbacks, o)}
	if destination != "" {
		d.destination = fsutils.DirForm(destination)
	}
	d.self = d
	return d
}

func (d *CopyDrop) Destination() string {
	return d.destination
}

func (d *CopyDrop) ValidateDrop() bool {
	return d.destination != "" && d.validateDrop()
}

func (d *CopyDrop) ProposeOperation() Operation {
	return OpCopy
}

// ConfirmingSourceItem is the item waiting for a conflict decision.
func (d *CopyDrop) ConfirmingSourceItem() (files.Entry, bool) {
	if d.state != StateConfirmingItem || len(d.queue) == 0 {
		return files.Entry{}, false
	}
	return d.queue[0], true
}

// ConfirmingDestinationName is the conflicting name currently proposed for that item.
func (d *CopyDrop) ConfirmingDestinationName() (string, bool) {
	if d.state != StateConfirmingItem {
		return "", false
	}
	return d.chosenName, true
}

// AcceptDrop starts copying after the drop was confirmed.
func (d *CopyDrop) AcceptDrop(ctx context.Context) error {
	if err := d.begin(); err != nil {
		return err
	}
	d.queue = append(d.queue[:0], d.items...)
	d.drain(ctx)
	return nil
}

// AcceptItem overwrites the existing destination with the confirming item.
func (d *CopyDrop) AcceptItem(ctx context.Context) error {
	if d.state != StateConfirmingItem {
		return ErrInvalidState
	}
	d.setState(StatePerformingDrop)
	d.overwrite = true
	d.copyFront(ctx, d.chosenName)
	d.drain(ctx)
	return nil
}

// RejectItem skips the confirming item.
func (d *CopyDrop) RejectItem(ctx context.Context) error {
	if d.state != StateConfirmingItem {
		return ErrInvalidState
	}
	d.setState(StatePerformingDrop)
	d.logger.Debug("item skipped", zap.String("item", d.queue[0].AbsolutePath()))
	d.metrics.RecordTransferItem(d.op, metrics.ResultSkipped)
	d.pop()
	d.drain(ctx)
	return nil
}

// RenameItem copies the confirming item under name.
// If name is taken as well the drop keeps confirming, now with name.
func (d *CopyDrop) RenameItem(ctx context.Context, name string) error {
	if d.state != StateConfirmingItem {
		return ErrInvalidState
	}
	if err := validateName(name); err != nil {
		return err
	}
	item := d.queue[0]
	exists, err := d.store.Exists(ctx, d.destinationPath(name))
	if err != nil {
		d.setState(StatePerformingDrop)
		d.itemDone(item, err)
		d.pop()
		d.drain(ctx)
		return nil
	}
	if exists {
		d.chosenName = name
		d.confirm(item)
		return nil
	}
	d.setState(StatePerformingDrop)
	d.copyFront(ctx, name)
	d.drain(ctx)
	return nil
}

// drain processes queued items until the queue is empty or an item needs a decision.
func (d *CopyDrop) drain(ctx context.Context) {
	for len(d.queue) > 0 {
		if d.state != StatePerformingDrop {
			return
		}
		item := d.queue[0]
		name := item.Filename()
		exists, err := d.store.Exists(ctx, d.destinationPath(name))
		if err != nil {
			d.itemDone(item, err)
			d.pop()
			continue
		}
		if exists {
			d.chosenName = name
			d.confirm(item)
			return
		}
		d.copyFront(ctx, name)
	}
	if d.state == StatePerformingDrop {
		d.finish()
	}
}

func (d *CopyDrop) confirm(item files.Entry) {
	d.setState(StateConfirmingItem)
	d.logger.Debug("name conflict", zap.String("item", item.AbsolutePath()), zap.String("name", d.chosenName))
	if d.callbacks.OnConfirmItem != nil {
		d.callbacks.OnConfirmItem(d, item, d.chosenName)
	}
}

// copyFront copies the front item under name and removes it from the queue.
func (d *CopyDrop) copyFront(ctx context.Context, name string) {
	item := d.queue[0]
	err := d.store.Copy(ctx, item.AbsolutePath(), d.destinationPath(name), d.overwrite)
	d.pop()
	d.itemDone(item, err)
}

func (d *CopyDrop) pop() {
	d.queue = d.queue[1:]
	d.overwrite = false
	d.chosenName = ""
}

func (d *CopyDrop) destinationPath(name string) string {
	p, _ := fsutils.AppendFilePath(d.destination, name)
	return p
}

func validateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	case strings.ContainsAny(name, "/\\"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidName, name)
	}
	return nil
}
