// Package selection tracks the entries chosen in one pane for a pending drop.
package selection

import (
	"slices"

	"github.com/filetug/twinpane/pkg/events"
	"github.com/filetug/twinpane/pkg/files"
)

// Set keeps entries unique by files.Entry.Key, in insertion order.
// Changes are announced with events.EventSelectionChanged when a registry is given.
type Set struct {
	name    string
	items   []files.Entry
	indexes map[string]int
	events  *events.Registry
}

// Change is the payload of the events published by a Set.
type Change struct {
	Name  string
	Count int
}

// New creates an empty set. name identifies the owning pane in published events.
func New(name string, registry *events.Registry) *Set {
	return &Set{
		name:    name,
		indexes: make(map[string]int),
		events:  registry,
	}
}

func (s *Set) Name() string {
	return s.name
}

// Add selects entry. It reports false when it was already selected.
func (s *Set) Add(entry files.Entry) bool {
	key := entry.Key()
	if _, ok := s.indexes[key]; ok {
		return false
	}
	s.indexes[key] = len(s.items)
	s.items = append(s.items, entry)
	s.notify(events.EventSelectionChanged)
	return true
}

// Remove deselects entry. It reports false when it was not selected.
func (s *Set) Remove(entry files.Entry) bool {
	i, ok := s.indexes[entry.Key()]
	if !ok {
		return false
	}
	s.items = slices.Delete(s.items, i, i+1)
	s.reindex()
	s.notify(events.EventSelectionChanged)
	return true
}

// Toggle flips the selection of entry and reports whether it is now selected.
func (s *Set) Toggle(entry files.Entry) bool {
	if s.Remove(entry) {
		return false
	}
	return s.Add(entry)
}

func (s *Set) Clear() {
	s.items = nil
	clear(s.indexes)
	s.notify(events.EventSelectionChanged)
}

func (s *Set) IsSelected(entry files.Entry) bool {
	_, ok := s.indexes[entry.Key()]
	return ok
}

func (s *Set) IsEmpty() bool {
	return len(s.items) == 0
}

func (s *Set) Len() int {
	return len(s.items)
}

// Items returns a copy of the selected entries in insertion order.
func (s *Set) Items() []files.Entry {
	return slices.Clone(s.items)
}

// DropCompleted clears the selection after a drop finished or was cancelled.
func (s *Set) DropCompleted() {
	s.Clear()
	s.notify(events.EventDropCompleted)
}

func (s *Set) reindex() {
	clear(s.indexes)
	for i, item := range s.items {
		s.indexes[item.Key()] = i
	}
}

func (s *Set) notify(event events.Event) {
	if s.events == nil {
		return
	}
	s.events.Notify(event, Change{Name: s.name, Count: len(s.items)})
}
