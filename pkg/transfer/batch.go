// Package transfer performs drops of file entries onto targets, one item at a time.
package transfer

import (
	"errors"
	"slices"

	"github.com/filetug/twinpane/pkg/files"
	"github.com/filetug/twinpane/pkg/metrics"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Drop is an interactive, multi-step drop as seen by the presentation layer.
type Drop interface {
	Target
	ID() string
	State() State
	NumberOfItems() int
	ItemNames() []string
	ConfirmingSourceItem() (files.Entry, bool)
	ConfirmingDestinationName() (string, bool)
	Interaction
}

// Callbacks connect a drop to the presentation layer. Any of them may be nil.
type Callbacks struct {
	// OnConfirmDrop asks whether the whole drop should go ahead.
	// Answer with AcceptDrop or CancelDrop.
	OnConfirmDrop func(d Drop)

	// OnConfirmItem asks how to resolve a name conflict at the destination.
	// Answer with AcceptItem, RejectItem or RenameItem.
	OnConfirmItem func(d Drop, item files.Entry, name string)

	// OnDropped reports each processed item; err is nil on success.
	OnDropped func(d Drop, item files.Entry, err error)

	// OnComplete reports the end of the drop; err is nil when every item succeeded.
	OnComplete func(d Drop, err error)
}

type Option func(*batch)

func WithLogger(logger *zap.Logger) Option {
	return func(b *batch) {
		b.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(b *batch) {
		b.metrics = m
	}
}

// batch is the state shared by the interactive drop variants.
type batch struct {
	self      Drop
	id        string
	op        string
	store     files.Store
	items     []files.Entry
	callbacks Callbacks
	logger    *zap.Logger
	metrics   *metrics.Metrics

	state    State
	failures []error
}

func newBatch(op string, store files.Store, items []files.Entry, callbacks Callbacks, o []Option) batch {
	b := batch{
		id:        uuid.NewString(),
		op:        op,
		store:     store,
		items:     slices.Clone(items),
		callbacks: callbacks,
	}
	for _, opt := range o {
		opt(&b)
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	b.logger = b.logger.With(zap.String("drop", b.id), zap.String("op", op))
	return b
}

func (b *batch) ID() string {
	return b.id
}

func (b *batch) State() State {
	return b.state
}

func (b *batch) NumberOfItems() int {
	return len(b.items)
}

// ItemNames returns the display names of the dropped items in drop order.
func (b *batch) ItemNames() []string {
	names := make([]string, len(b.items))
	for i, item := range b.items {
		names[i] = item.DisplayName()
	}
	return names
}

func (b *batch) setState(state State) {
	if b.state == state {
		return
	}
	b.logger.Debug("drop state changed", zap.Stringer("from", b.state), zap.Stringer("to", state))
	b.state = state
}

func (b *batch) validateDrop() bool {
	return len(b.items) > 0 && b.state == StateIdle
}

// PerformDrop asks for confirmation of the whole drop. It never touches the filesystem.
// An invalid drop resets the state to idle and reports false.
func (b *batch) PerformDrop() bool {
	if !b.self.ValidateDrop() {
		b.setState(StateIdle)
		return false
	}
	b.setState(StatePerformDropRequested)
	if b.callbacks.OnConfirmDrop != nil {
		b.callbacks.OnConfirmDrop(b.self)
	}
	return true
}

// CancelDrop abandons a drop that was not accepted yet.
func (b *batch) CancelDrop() error {
	if b.state != StatePerformDropRequested {
		return ErrInvalidState
	}
	b.setState(StateIdle)
	b.logger.Info("drop cancelled", zap.Int("items", len(b.items)))
	b.metrics.RecordTransferBatch(b.op, metrics.ResultCancelled)
	b.complete(ErrDropCancelled)
	return nil
}

func (b *batch) begin() error {
	if b.state != StatePerformDropRequested || len(b.items) == 0 {
		return ErrInvalidState
	}
	b.failures = nil
	b.setState(StatePerformingDrop)
	return nil
}

func (b *batch) itemDone(item files.Entry, err error) {
	if err != nil {
		itemErr := &ItemError{Entry: item, Err: err}
		b.failures = append(b.failures, itemErr)
		b.logger.Warn("drop failed for item", zap.String("item", item.AbsolutePath()), zap.Error(err))
		b.metrics.RecordTransferItem(b.op, metrics.ResultError)
		err = itemErr
	} else {
		b.metrics.RecordTransferItem(b.op, metrics.ResultSuccess)
	}
	if b.callbacks.OnDropped != nil {
		b.callbacks.OnDropped(b.self, item, err)
	}
}

func (b *batch) finish() {
	b.setState(StateIdle)
	var err error
	if len(b.failures) > 0 {
		err = errors.Join(append([]error{ErrDropUnsuccessful}, b.failures...)...)
		b.metrics.RecordTransferBatch(b.op, metrics.ResultError)
	} else {
		b.metrics.RecordTransferBatch(b.op, metrics.ResultSuccess)
	}
	b.logger.Info("drop finished", zap.Int("items", len(b.items)), zap.Int("failed", len(b.failures)))
	b.complete(err)
}

func (b *batch) complete(err error) {
	if b.callbacks.OnComplete != nil {
		b.callbacks.OnComplete(b.self, err)
	}
}
