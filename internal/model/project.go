package model

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/xmltree"
)

// Project is the root aggregate: one open BCF archive. It owns the ordered
// markup list (file order of the archive's topic directories) and the
// project metadata from project.bcf.
type Project struct {
	base
	guid         uuid.UUID
	name         *SimpleElement[string]
	extSchemaSrc *SimpleElement[Uri]
	markups      []*Markup
}

// NewProject creates a project root. A project has no containing object.
func NewProject(guid uuid.UUID, name string, extSchemaSrc Uri, state State) *Project {
	p := &Project{base: newBase("Project", nil, state), guid: guid}
	p.name = NewSimpleElement(name, "Name", "", p)
	p.extSchemaSrc = NewSimpleElement(extSchemaSrc, "ExtensionSchema", Uri(""), p)
	return p
}

func (p *Project) GUID() uuid.UUID                { return p.guid }
func (p *Project) GUIDEquals(guid uuid.UUID) bool { return p.guid == guid }
func (p *Project) Name() string                   { return p.name.Value() }
func (p *Project) ExtensionSchema() Uri           { return p.extSchemaSrc.Value() }
func (p *Project) Markups() []*Markup             { return p.markups }

// SetName updates the project name and returns the previous value.
func (p *Project) SetName(v string) string { return p.name.Set(v) }

// NameField exposes the underlying wrapper for the update queue.
func (p *Project) NameField() *SimpleElement[string] { return p.name }

// AddMarkup appends a markup and re-parents it.
func (p *Project) AddMarkup(m *Markup) {
	m.SetParent(p)
	p.markups = append(p.markups, m)
}

// RemoveMarkup unlinks the markup with the given internal id.
func (p *Project) RemoveMarkup(id uint64) bool {
	for i, m := range p.markups {
		if m.InternalID() == id {
			p.markups = append(p.markups[:i], p.markups[i+1:]...)
			return true
		}
	}
	return false
}

// MarkupByTopicGUID returns the first markup whose topic matches guid, or
// nil.
func (p *Project) MarkupByTopicGUID(guid uuid.UUID) *Markup {
	for _, m := range p.markups {
		if m.Topic().GUIDEquals(guid) {
			return m
		}
	}
	return nil
}

// Equal requires guid, name, extension schema and the full markup list to
// match element-wise.
func (p *Project) Equal(other *Project) bool {
	if other == nil || p.guid != other.guid ||
		!p.name.Equal(other.name) ||
		!p.extSchemaSrc.Equal(other.extSchemaSrc) ||
		len(p.markups) != len(other.markups) {
		return false
	}
	for i := range p.markups {
		if !p.markups[i].Equal(other.markups[i]) {
			return false
		}
	}
	return true
}

func (p *Project) String() string {
	return fmt.Sprintf("Project(guid=%s, name=%q, topics=%d)",
		p.guid, p.name.Value(), len(p.markups))
}

// Search finds the live node with the given internal id, delegating to
// member markups in order and short-circuiting on first match. Returns nil
// when no node matches.
func (p *Project) Search(id uint64) Node {
	if p.id == id {
		return p
	}
	if found := searchNodes(id, p.name, p.extSchemaSrc); found != nil {
		return found
	}
	for _, m := range p.markups {
		if found := m.Search(id); found != nil {
			return found
		}
	}
	return nil
}

// SearchNode locates the live counterpart of n, typically a node plucked
// from a deep-copied graph. Identity is the internal id, never field
// values.
func (p *Project) SearchNode(n Node) Node {
	if n == nil {
		return nil
	}
	return p.Search(n.InternalID())
}

func (p *Project) StateList() []StateEntry {
	entries := ownEntry(p)
	entries = append(entries, p.name.StateList()...)
	entries = append(entries, p.extSchemaSrc.StateList()...)
	for _, m := range p.markups {
		entries = append(entries, m.StateList()...)
	}
	return entries
}

// Element renders the project.bcf document root (project.xsd:
// ProjectExtension wrapping Project).
func (p *Project) Element() *xmltree.Element {
	root := xmltree.New("ProjectExtension")
	proj := xmltree.New(p.tag)
	proj.SetAttr("ProjectId", p.guid.String())
	proj.Add(p.name.Element())
	root.Add(proj)
	if p.extSchemaSrc.IsDefault() {
		// The schema requires the element even when no extension is set.
		root.Add(xmltree.NewText("ExtensionSchema", ""))
	} else {
		root.Add(p.extSchemaSrc.Element())
	}
	return root
}

// Clone deep-copies the whole graph. Internal ids are preserved so that
// SearchNode can relate nodes across the copy and the original; parents are
// re-stamped within the copy and share nothing with the source.
func (p *Project) Clone() *Project {
	cpy := &Project{base: p.base.cloneBase(), guid: p.guid}
	cpy.name = p.name.clone(cpy)
	cpy.extSchemaSrc = p.extSchemaSrc.clone(cpy)
	for _, m := range p.markups {
		mc := m.Clone()
		mc.SetParent(cpy)
		cpy.markups = append(cpy.markups, mc)
	}
	return cpy
}

// Unlink removes n from its parent's collection after the writer has
// committed the deletion. Leaf wrappers are not unlinked; they stay in
// place and only their XML rendering disappears.
func (p *Project) Unlink(n Node) bool {
	live := p.SearchNode(n)
	if live == nil {
		return false
	}
	parent := live.Parent()
	switch t := live.(type) {
	case *Markup:
		return p.RemoveMarkup(t.InternalID())
	case *Comment:
		if m, ok := parent.(*Markup); ok {
			return m.RemoveComment(t.InternalID())
		}
	case *ViewpointReference:
		if m, ok := parent.(*Markup); ok {
			return m.RemoveViewpoint(t.InternalID())
		}
	case *Header:
		if m, ok := parent.(*Markup); ok {
			return m.RemoveHeader(t.InternalID())
		}
	case *HeaderFile:
		if h, ok := parent.(*Header); ok {
			return h.RemoveFile(t.InternalID())
		}
	case *DocumentReference:
		if topic, ok := parent.(*Topic); ok {
			return topic.RemoveDocumentReference(t.InternalID())
		}
	}
	// List items unlink through their owning list.
	if ancestor := listOwner(live); ancestor != nil {
		return ancestor.removeItem(live.InternalID())
	}
	return false
}

// itemRemover is satisfied by SimpleList instantiations so Unlink can
// remove list members without knowing the element type.
type itemRemover interface {
	removeItem(id uint64) bool
}

func (l *SimpleList[T]) removeItem(id uint64) bool { return l.Remove(id) }

func listOwner(n Node) itemRemover {
	if r, ok := n.Parent().(itemRemover); ok {
		return r
	}
	return nil
}
