// Package xmltree provides a small mutable XML element tree.
//
// The BCF model serializes itself by building element trees node by node,
// because which children appear depends on runtime state (schema-optional
// fields are omitted when they hold their declared default). encoding/xml's
// struct marshalling cannot express that, so the model builds xmltree
// elements and this package handles encoding, decoding and escaping.
package xmltree

import "strings"

// Attr is a single XML attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is one node of an XML document.
type Element struct {
	Tag      string
	Attrs    []Attr
	Text     string
	Children []*Element
}

// New creates an element with the given tag.
func New(tag string) *Element {
	return &Element{Tag: tag}
}

// NewText creates an element with the given tag and text content.
func NewText(tag, text string) *Element {
	return &Element{Tag: tag, Text: text}
}

// SetAttr sets an attribute, replacing any existing attribute with the same
// name. Returns the element for chaining.
func (e *Element) SetAttr(name, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Name == name {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Attr returns the value of the named attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// AttrOr returns the value of the named attribute, or fallback if absent.
func (e *Element) AttrOr(name, fallback string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return fallback
}

// Add appends children to the element. Nil children are skipped, which lets
// callers append the result of conditional builders directly.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// AddText appends a child element with text content and returns the parent.
func (e *Element) AddText(tag, text string) *Element {
	return e.Add(NewText(tag, text))
}

// Child returns the first child with the given tag, or nil.
func (e *Element) Child(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// ChildText returns the trimmed text of the first child with the given tag,
// or the empty string if no such child exists.
func (e *Element) ChildText(tag string) string {
	if c := e.Child(tag); c != nil {
		return strings.TrimSpace(c.Text)
	}
	return ""
}

// ChildrenNamed returns all children with the given tag, in document order.
func (e *Element) ChildrenNamed(tag string) []*Element {
	var out []*Element
	for _, c := range e.Children {
		if c.Tag == tag {
			out = append(out, c)
		}
	}
	return out
}
