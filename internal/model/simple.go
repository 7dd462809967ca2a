package model

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/xmltree"
)

// Uri is a file path or URL referenced from the model. It is kept as a
// distinct type so setters can tell paths apart from arbitrary strings.
type Uri string

func (u Uri) String() string { return string(u) }

// formatValue renders a scalar the way the BCF schemas expect it as XML
// text: lowercase booleans, canonical UUIDs, shortest float form.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case Uri:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case uuid.UUID:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// SimpleElement wraps a scalar leaf value together with its XML tag and
// declared default. It is the atomic unit of change tracking: the writer
// reconciles exactly the wrappers whose state diverged from Original.
type SimpleElement[T comparable] struct {
	base
	value T
	def   T
}

// NewSimpleElement creates a leaf element wrapper. def is the
// schema-declared default; a value equal to def is omitted on
// serialization.
func NewSimpleElement[T comparable](value T, tag string, def T, parent Node) *SimpleElement[T] {
	return &SimpleElement[T]{base: newBase(tag, parent, Original), value: value, def: def}
}

func (e *SimpleElement[T]) Value() T   { return e.value }
func (e *SimpleElement[T]) Default() T { return e.def }

// Set stores a new value, flips the wrapper to Modified (Added stays Added)
// and returns the previous value for the update queue.
func (e *SimpleElement[T]) Set(v T) T {
	old := e.value
	e.value = v
	e.touch()
	return old
}

// IsDefault reports whether the current value equals the declared default.
func (e *SimpleElement[T]) IsDefault() bool { return e.value == e.def }

// Equal compares value and tag name. Internal ids do not participate.
func (e *SimpleElement[T]) Equal(other *SimpleElement[T]) bool {
	return other != nil && e.value == other.value && e.tag == other.tag
}

func (e *SimpleElement[T]) Search(id uint64) Node {
	if e.id == id {
		return e
	}
	return nil
}

func (e *SimpleElement[T]) StateList() []StateEntry { return ownEntry(e) }

// Element renders the wrapper as an XML element, or nil when the value
// equals the declared default (schema optionality) or the wrapper is
// marked Deleted.
func (e *SimpleElement[T]) Element() *xmltree.Element {
	if e.IsDefault() || e.state == Deleted {
		return nil
	}
	return xmltree.NewText(e.tag, formatValue(e.value))
}

func (e *SimpleElement[T]) String() string {
	return fmt.Sprintf("%s: %v", e.tag, e.value)
}

func (e *SimpleElement[T]) clone(parent Node) *SimpleElement[T] {
	cpy := *e
	cpy.base = e.base.cloneBase()
	cpy.parent = parent
	return &cpy
}

// Attribute wraps a scalar serialized as an XML attribute rather than a
// child element. Same change-tracking and default-omission contract as
// SimpleElement.
type Attribute[T comparable] struct {
	base
	value T
	def   T
}

// NewAttribute creates an attribute wrapper.
func NewAttribute[T comparable](value T, name string, def T, parent Node) *Attribute[T] {
	return &Attribute[T]{base: newBase(name, parent, Original), value: value, def: def}
}

func (a *Attribute[T]) Value() T   { return a.value }
func (a *Attribute[T]) Default() T { return a.def }

// Set stores a new value, marks the wrapper and returns the previous value.
func (a *Attribute[T]) Set(v T) T {
	old := a.value
	a.value = v
	a.touch()
	return old
}

func (a *Attribute[T]) IsDefault() bool { return a.value == a.def }

func (a *Attribute[T]) Equal(other *Attribute[T]) bool {
	return other != nil && a.value == other.value && a.tag == other.tag
}

func (a *Attribute[T]) Search(id uint64) Node {
	if a.id == id {
		return a
	}
	return nil
}

func (a *Attribute[T]) StateList() []StateEntry { return ownEntry(a) }

// Apply sets the attribute on el unless the value equals the declared
// default or the wrapper is marked Deleted.
func (a *Attribute[T]) Apply(el *xmltree.Element) {
	if !a.IsDefault() && a.state != Deleted {
		el.SetAttr(a.tag, formatValue(a.value))
	}
}

func (a *Attribute[T]) clone(parent Node) *Attribute[T] {
	cpy := *a
	cpy.base = a.base.cloneBase()
	cpy.parent = parent
	return &cpy
}
