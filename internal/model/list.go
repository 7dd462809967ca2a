package model

import (
	"github.com/openbcf/bcf/internal/xmltree"
)

// ListItem is one dirty-trackable member of a SimpleList. Each appended
// label, reference link or related-topic GUID carries its own state tag so
// the writer can reconcile individual additions.
type ListItem[T comparable] struct {
	base
	value T
	def   T
}

func (i *ListItem[T]) Value() T { return i.value }

// Set stores a new value, marks the item and returns the previous value.
func (i *ListItem[T]) Set(v T) T {
	old := i.value
	i.value = v
	i.touch()
	return old
}

func (i *ListItem[T]) IsDefault() bool { return i.value == i.def }

func (i *ListItem[T]) Equal(other *ListItem[T]) bool {
	return other != nil && i.value == other.value && i.tag == other.tag
}

func (i *ListItem[T]) Search(id uint64) Node {
	if i.id == id {
		return i
	}
	return nil
}

func (i *ListItem[T]) StateList() []StateEntry { return ownEntry(i) }

// Element renders the item, or nil when the value equals the list default
// or the item is marked Deleted.
func (i *ListItem[T]) Element() *xmltree.Element {
	if i.IsDefault() || i.state == Deleted {
		return nil
	}
	return xmltree.NewText(i.tag, formatValue(i.value))
}

// SimpleList is an ordered sequence of scalar leaves sharing one XML tag,
// e.g. the repeated Labels elements of a Topic. Members are wrapped in
// ListItems so they participate in state aggregation and identity search
// individually.
type SimpleList[T comparable] struct {
	base
	def   T
	items []*ListItem[T]
}

// NewSimpleList creates a list wrapper seeded with values, all Original.
func NewSimpleList[T comparable](values []T, tag string, def T, parent Node) *SimpleList[T] {
	l := &SimpleList[T]{base: newBase(tag, parent, Original), def: def}
	for _, v := range values {
		l.items = append(l.items, l.newItem(v, Original))
	}
	return l
}

func (l *SimpleList[T]) newItem(v T, state State) *ListItem[T] {
	return &ListItem[T]{base: newBase(l.tag, l, state), value: v, def: l.def}
}

func (l *SimpleList[T]) Len() int { return len(l.items) }

// Values returns the member values in order, excluding deleted items.
func (l *SimpleList[T]) Values() []T {
	out := make([]T, 0, len(l.items))
	for _, it := range l.items {
		if it.state == Deleted {
			continue
		}
		out = append(out, it.value)
	}
	return out
}

// Items returns the underlying members in order.
func (l *SimpleList[T]) Items() []*ListItem[T] { return l.items }

// Append adds a value with the given state and returns the new item.
func (l *SimpleList[T]) Append(v T, state State) *ListItem[T] {
	item := l.newItem(v, state)
	l.items = append(l.items, item)
	return item
}

// Remove unlinks the item with the given internal id. Returns false when no
// member matches.
func (l *SimpleList[T]) Remove(id uint64) bool {
	for i, it := range l.items {
		if it.id == id {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}

// Equal compares tag name and member values element-wise.
func (l *SimpleList[T]) Equal(other *SimpleList[T]) bool {
	if other == nil || l.tag != other.tag || len(l.items) != len(other.items) {
		return false
	}
	for i := range l.items {
		if l.items[i].value != other.items[i].value {
			return false
		}
	}
	return true
}

func (l *SimpleList[T]) Search(id uint64) Node {
	if l.id == id {
		return l
	}
	for _, it := range l.items {
		if found := it.Search(id); found != nil {
			return found
		}
	}
	return nil
}

func (l *SimpleList[T]) StateList() []StateEntry {
	entries := ownEntry(l)
	for _, it := range l.items {
		entries = append(entries, it.StateList()...)
	}
	return entries
}

// Elements renders the members as repeated XML elements, skipping values
// equal to the list default.
func (l *SimpleList[T]) Elements() []*xmltree.Element {
	var out []*xmltree.Element
	for _, it := range l.items {
		if it.state == Deleted {
			continue
		}
		if el := it.Element(); el != nil {
			out = append(out, el)
		}
	}
	return out
}

func (l *SimpleList[T]) clone(parent Node) *SimpleList[T] {
	cpy := &SimpleList[T]{base: l.base.cloneBase(), def: l.def}
	cpy.parent = parent
	for _, it := range l.items {
		itemCpy := &ListItem[T]{base: it.base.cloneBase(), value: it.value, def: it.def}
		itemCpy.parent = cpy
		cpy.items = append(cpy.items, itemCpy)
	}
	return cpy
}
