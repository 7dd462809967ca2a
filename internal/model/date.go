package model

import (
	"fmt"
	"time"

	"github.com/openbcf/bcf/internal/xmltree"
)

// Timestamp layouts mandated by the BCF schemas: ISO-8601 with seconds
// precision for datetimes, a bare calendar date for DueDate.
const (
	DateTimeLayout = time.RFC3339
	DateOnlyLayout = "2006-01-02"
)

// DateElement wraps a timestamp leaf. The zero time is the declared default
// and means "not set"; time.Time needs Equal semantics, so it gets its own
// wrapper instead of reusing SimpleElement.
type DateElement struct {
	base
	value    time.Time
	dateOnly bool
}

// NewDateElement creates a seconds-precision timestamp wrapper.
func NewDateElement(value time.Time, tag string, parent Node) *DateElement {
	return &DateElement{base: newBase(tag, parent, Original), value: value}
}

// NewDateOnlyElement creates a calendar-date wrapper (used for DueDate).
func NewDateOnlyElement(value time.Time, tag string, parent Node) *DateElement {
	return &DateElement{base: newBase(tag, parent, Original), value: value, dateOnly: true}
}

func (e *DateElement) Value() time.Time { return e.value }

// Set stores a new timestamp, marks the wrapper and returns the previous
// value.
func (e *DateElement) Set(v time.Time) time.Time {
	old := e.value
	e.value = v
	e.touch()
	return old
}

// IsDefault reports whether the timestamp was never set.
func (e *DateElement) IsDefault() bool { return e.value.IsZero() }

func (e *DateElement) Equal(other *DateElement) bool {
	return other != nil && e.value.Equal(other.value) && e.tag == other.tag
}

func (e *DateElement) Search(id uint64) Node {
	if e.id == id {
		return e
	}
	return nil
}

func (e *DateElement) StateList() []StateEntry { return ownEntry(e) }

// Format renders the timestamp in its schema layout.
func (e *DateElement) Format() string {
	if e.dateOnly {
		return e.value.Format(DateOnlyLayout)
	}
	return e.value.Format(DateTimeLayout)
}

// Element renders the wrapper as an XML element, or nil when unset or
// marked Deleted.
func (e *DateElement) Element() *xmltree.Element {
	if e.IsDefault() || e.state == Deleted {
		return nil
	}
	return xmltree.NewText(e.tag, e.Format())
}

func (e *DateElement) String() string {
	return fmt.Sprintf("%s: %s", e.tag, e.Format())
}

func (e *DateElement) clone(parent Node) *DateElement {
	cpy := *e
	cpy.base = e.base.cloneBase()
	cpy.parent = parent
	return &cpy
}
