package opsview

import (
	"github.com/ITRS-Group/ov-cmdb-sync/internal/ui"
)

// List is an ordered collection of one entity type, keyed by identity
// (name, or matpath for host groups).
type List[T Object] struct {
	items []T
}

func NewList[T Object](items ...T) *List[T] {
	return &List[T]{items: items}
}

func (l *List[T]) Items() []T { return l.items }
func (l *List[T]) Len() int   { return len(l.items) }

func (l *List[T]) Append(items ...T) {
	l.items = append(l.items, items...)
}

// Keys returns the identity keys in list order.
func (l *List[T]) Keys() []string {
	keys := make([]string, 0, len(l.items))
	for _, obj := range l.items {
		keys = append(keys, obj.Key())
	}
	return keys
}

// Merge folds one or more lists into this one. Incoming elements take
// precedence over same-key elements already present; the result holds
// the incoming elements in order, then the non-duplicate remainder.
func (l *List[T]) Merge(others ...*List[T]) {
	for _, other := range others {
		l.mergeSingle(other)
	}
}

func (l *List[T]) mergeSingle(other *List[T]) {
	seen := make(map[string]struct{}, other.Len())
	joined := make([]T, 0, l.Len()+other.Len())

	for _, obj := range other.items {
		seen[obj.Key()] = struct{}{}
		joined = append(joined, obj)
	}
	for _, obj := range l.items {
		if _, dup := seen[obj.Key()]; !dup {
			joined = append(joined, obj)
		}
	}

	l.items = joined
}

// WithoutDuplicates keeps the first occurrence per identity key,
// preserving order. Idempotent.
func (l *List[T]) WithoutDuplicates() {
	seen := make(map[string]struct{}, len(l.items))
	unique := l.items[:0]

	for _, obj := range l.items {
		if _, dup := seen[obj.Key()]; dup {
			ui.Debug("removing duplicate %s '%s'", obj.Kind(), obj.Key())
			continue
		}
		seen[obj.Key()] = struct{}{}
		unique = append(unique, obj)
	}

	l.items = unique
}

// WithoutExisting drops elements already present in Opsview, using the
// client's inventory cache (populated lazily on first access).
func (l *List[T]) WithoutExisting(c *Client) error {
	if len(l.items) == 0 {
		return nil
	}

	inv, err := c.Known(l.items[0].Kind())
	if err != nil {
		return err
	}

	remaining := l.items[:0]
	for _, obj := range l.items {
		if inv.Has(obj.Key()) {
			ui.Debug("%s '%s' already exists in Opsview", obj.Kind(), obj.Key())
			continue
		}
		remaining = append(remaining, obj)
	}

	l.items = remaining
	return nil
}

// JSON returns the bulk representation the create endpoint accepts.
func (l *List[T]) JSON(shallow bool) map[string]any {
	objects := make([]map[string]any, 0, len(l.items))
	for _, obj := range l.items {
		objects = append(objects, obj.JSON(shallow))
	}
	return map[string]any{"list": objects}
}

// Creator is a collection that can be bulk-created in Opsview,
// possibly after prerequisite collections derived from its elements.
type Creator interface {
	Prerequisites() []Creator
	Create(c *Client) error
}

// createObjects submits a processed collection in one bulk call and
// invalidates the affected inventory.
func createObjects[T Object](c *Client, kind Kind, l *List[T], label string) error {
	if l.Len() == 0 {
		ui.Info("No %ss to create after processing.", label)
		return nil
	}

	ui.Info("Creating %d %s(s) in Opsview", l.Len(), label)
	for _, obj := range l.Items() {
		ui.Action("create", label+" '"+obj.ObjectName()+"'")
	}

	if _, err := c.PostJSON(kind.Endpoint(), l.JSON(true)); err != nil {
		return err
	}

	c.Invalidate(kind)
	return nil
}
