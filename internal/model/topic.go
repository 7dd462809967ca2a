package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/xmltree"
)

// NilGUID is the default sentinel for optional GUID fields.
var NilGUID = uuid.Nil

// DocumentReference links a topic to a supporting document
// (markup.xsd:TopicDocumentReference).
type DocumentReference struct {
	base
	guid        *Attribute[uuid.UUID]  // "Guid", optional
	external    *Attribute[bool]       // "isExternal", default false
	reference   *SimpleElement[Uri]    // "ReferencedDocument"
	description *SimpleElement[string] // "Description"
}

// NewDocumentReference creates a document reference.
func NewDocumentReference(guid uuid.UUID, external bool, reference Uri, description string, parent Node, state State) *DocumentReference {
	d := &DocumentReference{base: newBase("DocumentReference", parent, state)}
	d.guid = NewAttribute(guid, "Guid", NilGUID, d)
	d.external = NewAttribute(external, "isExternal", false, d)
	d.reference = NewSimpleElement(reference, "ReferencedDocument", Uri(""), d)
	d.description = NewSimpleElement(description, "Description", "", d)
	return d
}

func (d *DocumentReference) GUID() uuid.UUID    { return d.guid.Value() }
func (d *DocumentReference) External() bool     { return d.external.Value() }
func (d *DocumentReference) Reference() Uri     { return d.reference.Value() }
func (d *DocumentReference) Description() string { return d.description.Value() }

// SetDescription updates the description and returns the previous value.
func (d *DocumentReference) SetDescription(v string) string { return d.description.Set(v) }

// SetReference updates the referenced document path and returns the
// previous value.
func (d *DocumentReference) SetReference(v Uri) Uri { return d.reference.Set(v) }

// DescriptionField exposes the underlying wrapper for the update queue.
func (d *DocumentReference) DescriptionField() *SimpleElement[string] { return d.description }

// ReferenceField exposes the underlying wrapper for the update queue.
func (d *DocumentReference) ReferenceField() *SimpleElement[Uri] { return d.reference }

func (d *DocumentReference) Equal(other *DocumentReference) bool {
	return other != nil &&
		d.guid.Value() == other.guid.Value() &&
		d.external.Value() == other.external.Value() &&
		d.reference.Value() == other.reference.Value() &&
		d.description.Value() == other.description.Value()
}

func (d *DocumentReference) String() string {
	return fmt.Sprintf("DocumentReference(guid=%s, external=%v, reference=%s, description=%s)",
		d.guid.Value(), d.external.Value(), d.reference.Value(), d.description.Value())
}

func (d *DocumentReference) Search(id uint64) Node {
	if d.id == id {
		return d
	}
	return searchNodes(id, d.guid, d.external, d.reference, d.description)
}

func (d *DocumentReference) StateList() []StateEntry {
	entries := ownEntry(d)
	entries = append(entries, d.guid.StateList()...)
	entries = append(entries, d.external.StateList()...)
	entries = append(entries, d.reference.StateList()...)
	entries = append(entries, d.description.StateList()...)
	return entries
}

// Element renders the reference with schema optional-omission rules.
func (d *DocumentReference) Element() *xmltree.Element {
	el := xmltree.New(d.tag)
	d.guid.Apply(el)
	d.external.Apply(el)
	el.Add(d.reference.Element())
	el.Add(d.description.Element())
	return el
}

// Clone reconstructs the reference without copying the containing object.
func (d *DocumentReference) Clone() *DocumentReference {
	cpy := &DocumentReference{base: d.base.cloneBase()}
	cpy.guid = d.guid.clone(cpy)
	cpy.external = d.external.clone(cpy)
	cpy.reference = d.reference.clone(cpy)
	cpy.description = d.description.clone(cpy)
	return cpy
}

// BimSnippet embeds a piece of schema-described model data in a topic
// (markup.xsd:BimSnippet).
type BimSnippet struct {
	base
	snippetType *Attribute[string]  // "SnippetType", required by schema
	external    *Attribute[bool]    // "isExternal", default false
	reference   *SimpleElement[Uri] // "Reference"
	schema      *SimpleElement[Uri] // "ReferenceSchema"
}

// NewBimSnippet creates a snippet record.
func NewBimSnippet(snippetType string, external bool, reference, schema Uri, parent Node, state State) *BimSnippet {
	b := &BimSnippet{base: newBase("BimSnippet", parent, state)}
	b.snippetType = NewAttribute(snippetType, "SnippetType", "", b)
	b.external = NewAttribute(external, "isExternal", false, b)
	b.reference = NewSimpleElement(reference, "Reference", Uri(""), b)
	b.schema = NewSimpleElement(schema, "ReferenceSchema", Uri(""), b)
	return b
}

func (b *BimSnippet) SnippetType() string { return b.snippetType.Value() }
func (b *BimSnippet) External() bool      { return b.external.Value() }
func (b *BimSnippet) Reference() Uri      { return b.reference.Value() }
func (b *BimSnippet) Schema() Uri         { return b.schema.Value() }

func (b *BimSnippet) Equal(other *BimSnippet) bool {
	return other != nil &&
		b.snippetType.Value() == other.snippetType.Value() &&
		b.external.Value() == other.external.Value() &&
		b.reference.Value() == other.reference.Value() &&
		b.schema.Value() == other.schema.Value()
}

func (b *BimSnippet) String() string {
	return fmt.Sprintf("BimSnippet(type=%s, isExternal=%v, reference=%s, referenceSchema=%s)",
		b.snippetType.Value(), b.external.Value(), b.reference.Value(), b.schema.Value())
}

func (b *BimSnippet) Search(id uint64) Node {
	if b.id == id {
		return b
	}
	return searchNodes(id, b.snippetType, b.external, b.reference, b.schema)
}

func (b *BimSnippet) StateList() []StateEntry {
	entries := ownEntry(b)
	entries = append(entries, b.snippetType.StateList()...)
	entries = append(entries, b.external.StateList()...)
	entries = append(entries, b.reference.StateList()...)
	entries = append(entries, b.schema.StateList()...)
	return entries
}

// Element renders the snippet. SnippetType and isExternal are emitted
// unconditionally: the schema requires the former, and the original files
// always carry the latter here.
func (b *BimSnippet) Element() *xmltree.Element {
	el := xmltree.New(b.tag)
	el.SetAttr("SnippetType", b.snippetType.Value())
	el.SetAttr("isExternal", formatValue(b.external.Value()))
	el.Add(b.reference.Element())
	el.Add(b.schema.Element())
	return el
}

// Clone reconstructs the snippet without copying the containing object.
func (b *BimSnippet) Clone() *BimSnippet {
	cpy := &BimSnippet{base: b.base.cloneBase()}
	cpy.snippetType = b.snippetType.clone(cpy)
	cpy.external = b.external.clone(cpy)
	cpy.reference = b.reference.clone(cpy)
	cpy.schema = b.schema.clone(cpy)
	return cpy
}

// TopicData carries the full field set for constructing a Topic. Index uses
// -1 as the "no ordering index" sentinel; callers building a TopicData by
// hand must set it explicitly.
type TopicData struct {
	GUID           uuid.UUID
	Title          string
	Date           time.Time
	Author         string
	Type           string
	Status         string
	Priority       string
	Index          int
	Labels         []string
	ReferenceLinks []string
	ModDate        time.Time
	ModAuthor      string
	DueDate        time.Time
	Assignee       string
	Description    string
	Stage          string
	RelatedTopics  []uuid.UUID
}

// Topic holds all metadata of one issue (markup.xsd:Topic).
type Topic struct {
	base
	guid           uuid.UUID
	title          *SimpleElement[string]
	date           *DateElement
	author         *SimpleElement[string]
	topicType      *Attribute[string]
	status         *Attribute[string]
	referenceLinks *SimpleList[string]
	docRefs        []*DocumentReference
	priority       *SimpleElement[string]
	index          *SimpleElement[int]
	labels         *SimpleList[string]
	modDate        *DateElement
	modAuthor      *SimpleElement[string]
	dueDate        *DateElement
	assignee       *SimpleElement[string]
	description    *SimpleElement[string]
	stage          *SimpleElement[string]
	relatedTopics  *SimpleList[uuid.UUID]
	bimSnippet     *BimSnippet
}

// DefaultIndex is the sentinel for topics without an ordering index.
const DefaultIndex = -1

// NewTopic creates a topic from the full field set.
func NewTopic(d TopicData, parent Node, state State) *Topic {
	t := &Topic{base: newBase("Topic", parent, state), guid: d.GUID}
	t.title = NewSimpleElement(d.Title, "Title", "", t)
	t.date = NewDateElement(d.Date, "Date", t)
	t.author = NewSimpleElement(d.Author, "Author", "", t)
	t.topicType = NewAttribute(d.Type, "TopicType", "", t)
	t.status = NewAttribute(d.Status, "TopicStatus", "", t)
	t.referenceLinks = NewSimpleList(d.ReferenceLinks, "ReferenceLink", "", t)
	t.priority = NewSimpleElement(d.Priority, "Priority", "", t)
	t.index = NewSimpleElement(d.Index, "Index", DefaultIndex, t)
	t.labels = NewSimpleList(d.Labels, "Labels", "", t)
	t.modDate = NewDateElement(d.ModDate, "ModifiedDate", t)
	t.modAuthor = NewSimpleElement(d.ModAuthor, "ModifiedAuthor", "", t)
	t.dueDate = NewDateOnlyElement(d.DueDate, "DueDate", t)
	t.assignee = NewSimpleElement(d.Assignee, "AssignedTo", "", t)
	t.description = NewSimpleElement(d.Description, "Description", "", t)
	t.stage = NewSimpleElement(d.Stage, "Stage", "", t)
	t.relatedTopics = NewSimpleList(d.RelatedTopics, "RelatedTopic", NilGUID, t)
	return t
}

func (t *Topic) GUID() uuid.UUID                { return t.guid }
func (t *Topic) GUIDEquals(guid uuid.UUID) bool { return t.guid == guid }

func (t *Topic) Title() string       { return t.title.Value() }
func (t *Topic) Date() time.Time     { return t.date.Value() }
func (t *Topic) Author() string      { return t.author.Value() }
func (t *Topic) Type() string        { return t.topicType.Value() }
func (t *Topic) Status() string      { return t.status.Value() }
func (t *Topic) Priority() string    { return t.priority.Value() }
func (t *Topic) Index() int          { return t.index.Value() }
func (t *Topic) ModDate() time.Time  { return t.modDate.Value() }
func (t *Topic) ModAuthor() string   { return t.modAuthor.Value() }
func (t *Topic) DueDate() time.Time  { return t.dueDate.Value() }
func (t *Topic) Assignee() string    { return t.assignee.Value() }
func (t *Topic) Description() string { return t.description.Value() }
func (t *Topic) Stage() string       { return t.stage.Value() }

func (t *Topic) Labels() *SimpleList[string]            { return t.labels }
func (t *Topic) ReferenceLinks() *SimpleList[string]    { return t.referenceLinks }
func (t *Topic) RelatedTopics() *SimpleList[uuid.UUID]  { return t.relatedTopics }
func (t *Topic) DocumentReferences() []*DocumentReference { return t.docRefs }
func (t *Topic) BimSnippet() *BimSnippet                { return t.bimSnippet }

// HasIndex reports whether the topic carries an explicit ordering index.
func (t *Topic) HasIndex() bool { return !t.index.IsDefault() }

// Setters mark the touched wrapper and return the previous value.

func (t *Topic) SetTitle(v string) string       { return t.title.Set(v) }
func (t *Topic) SetStatus(v string) string      { return t.status.Set(v) }
func (t *Topic) SetType(v string) string        { return t.topicType.Set(v) }
func (t *Topic) SetPriority(v string) string    { return t.priority.Set(v) }
func (t *Topic) SetIndex(v int) int             { return t.index.Set(v) }
func (t *Topic) SetAssignee(v string) string    { return t.assignee.Set(v) }
func (t *Topic) SetDescription(v string) string { return t.description.Set(v) }
func (t *Topic) SetStage(v string) string       { return t.stage.Set(v) }
func (t *Topic) SetDueDate(v time.Time) time.Time { return t.dueDate.Set(v) }
func (t *Topic) SetModDate(v time.Time) time.Time { return t.modDate.Set(v) }
func (t *Topic) SetModAuthor(v string) string   { return t.modAuthor.Set(v) }

// Field accessors expose the underlying wrappers for the update queue.

func (t *Topic) TitleField() *SimpleElement[string]       { return t.title }
func (t *Topic) StatusField() *Attribute[string]          { return t.status }
func (t *Topic) TypeField() *Attribute[string]            { return t.topicType }
func (t *Topic) PriorityField() *SimpleElement[string]    { return t.priority }
func (t *Topic) IndexField() *SimpleElement[int]          { return t.index }
func (t *Topic) AssigneeField() *SimpleElement[string]    { return t.assignee }
func (t *Topic) DescriptionField() *SimpleElement[string] { return t.description }
func (t *Topic) StageField() *SimpleElement[string]       { return t.stage }
func (t *Topic) DueDateField() *DateElement               { return t.dueDate }
func (t *Topic) ModDateField() *DateElement               { return t.modDate }
func (t *Topic) ModAuthorField() *SimpleElement[string]   { return t.modAuthor }

// SetBimSnippet attaches (or clears) the embedded snippet, re-parenting it.
func (t *Topic) SetBimSnippet(b *BimSnippet) {
	t.bimSnippet = b
	if b != nil {
		b.SetParent(t)
	}
}

// AddDocumentReference appends a document reference and re-parents it.
func (t *Topic) AddDocumentReference(d *DocumentReference) {
	d.SetParent(t)
	t.docRefs = append(t.docRefs, d)
}

// RemoveDocumentReference unlinks the reference with the given internal id.
func (t *Topic) RemoveDocumentReference(id uint64) bool {
	for i, d := range t.docRefs {
		if d.InternalID() == id {
			t.docRefs = append(t.docRefs[:i], t.docRefs[i+1:]...)
			return true
		}
	}
	return false
}

// Equal compares every field member, modAuthor included (the source this
// model derives from effectively skipped modAuthor; that was a defect, not
// a contract).
func (t *Topic) Equal(other *Topic) bool {
	if other == nil || t.guid != other.guid {
		return false
	}
	if len(t.docRefs) != len(other.docRefs) {
		return false
	}
	for i := range t.docRefs {
		if !t.docRefs[i].Equal(other.docRefs[i]) {
			return false
		}
	}
	return t.title.Equal(other.title) &&
		t.date.Equal(other.date) &&
		t.author.Equal(other.author) &&
		t.topicType.Equal(other.topicType) &&
		t.status.Equal(other.status) &&
		t.priority.Equal(other.priority) &&
		t.index.Equal(other.index) &&
		t.labels.Equal(other.labels) &&
		t.referenceLinks.Equal(other.referenceLinks) &&
		t.modDate.Equal(other.modDate) &&
		t.modAuthor.Equal(other.modAuthor) &&
		t.dueDate.Equal(other.dueDate) &&
		t.assignee.Equal(other.assignee) &&
		t.description.Equal(other.description) &&
		t.stage.Equal(other.stage) &&
		t.relatedTopics.Equal(other.relatedTopics) &&
		equalOrNil(t.bimSnippet, other.bimSnippet, (*BimSnippet).Equal)
}

func (t *Topic) String() string {
	return fmt.Sprintf("Topic(guid=%s, title=%q, status=%s, author=%s)",
		t.guid, t.title.Value(), t.status.Value(), t.author.Value())
}

func (t *Topic) Search(id uint64) Node {
	if t.id == id {
		return t
	}
	members := []Node{
		t.title, t.date, t.author, t.topicType, t.status, t.priority,
		t.index, t.modDate, t.modAuthor, t.dueDate, t.assignee,
		t.description, t.stage,
	}
	if t.bimSnippet != nil {
		members = append(members, t.bimSnippet)
	}
	if found := searchNodes(id, members...); found != nil {
		return found
	}
	if found := t.referenceLinks.Search(id); found != nil {
		return found
	}
	for _, d := range t.docRefs {
		if found := d.Search(id); found != nil {
			return found
		}
	}
	if found := t.labels.Search(id); found != nil {
		return found
	}
	return t.relatedTopics.Search(id)
}

func (t *Topic) StateList() []StateEntry {
	entries := ownEntry(t)
	entries = append(entries, t.title.StateList()...)
	entries = append(entries, t.date.StateList()...)
	entries = append(entries, t.author.StateList()...)
	entries = append(entries, t.topicType.StateList()...)
	entries = append(entries, t.status.StateList()...)
	entries = append(entries, t.referenceLinks.StateList()...)
	for _, d := range t.docRefs {
		entries = append(entries, d.StateList()...)
	}
	entries = append(entries, t.priority.StateList()...)
	entries = append(entries, t.index.StateList()...)
	entries = append(entries, t.labels.StateList()...)
	entries = append(entries, t.modDate.StateList()...)
	entries = append(entries, t.modAuthor.StateList()...)
	entries = append(entries, t.dueDate.StateList()...)
	entries = append(entries, t.assignee.StateList()...)
	entries = append(entries, t.description.StateList()...)
	entries = append(entries, t.stage.StateList()...)
	entries = append(entries, t.relatedTopics.StateList()...)
	if t.bimSnippet != nil {
		entries = append(entries, t.bimSnippet.StateList()...)
	}
	return entries
}

// Element renders the topic in markup.xsd element order. Title, Date and
// Author are required by the schema and always emitted; every other field
// is omitted at its declared default.
func (t *Topic) Element() *xmltree.Element {
	el := xmltree.New(t.tag)
	el.SetAttr("Guid", t.guid.String())
	t.topicType.Apply(el)
	t.status.Apply(el)

	el.Add(t.referenceLinks.Elements()...)
	el.AddText("Title", t.title.Value())
	el.Add(t.priority.Element())
	el.Add(t.index.Element())
	el.Add(t.labels.Elements()...)
	el.AddText("Date", t.date.Format())
	el.AddText("Author", t.author.Value())
	if !t.modDate.IsDefault() {
		el.Add(t.modDate.Element())
		el.Add(t.modAuthor.Element())
	}
	el.Add(t.dueDate.Element())
	el.Add(t.assignee.Element())
	el.Add(t.stage.Element())
	el.Add(t.description.Element())
	if t.bimSnippet != nil && t.bimSnippet.State() != Deleted {
		el.Add(t.bimSnippet.Element())
	}
	for _, d := range t.docRefs {
		if d.State() == Deleted {
			continue
		}
		el.Add(d.Element())
	}
	el.Add(t.relatedTopics.Elements()...)
	return el
}

// Clone reconstructs the topic without copying the containing object. All
// member parents are re-stamped onto the copy.
func (t *Topic) Clone() *Topic {
	cpy := &Topic{base: t.base.cloneBase(), guid: t.guid}
	cpy.title = t.title.clone(cpy)
	cpy.date = t.date.clone(cpy)
	cpy.author = t.author.clone(cpy)
	cpy.topicType = t.topicType.clone(cpy)
	cpy.status = t.status.clone(cpy)
	cpy.referenceLinks = t.referenceLinks.clone(cpy)
	cpy.priority = t.priority.clone(cpy)
	cpy.index = t.index.clone(cpy)
	cpy.labels = t.labels.clone(cpy)
	cpy.modDate = t.modDate.clone(cpy)
	cpy.modAuthor = t.modAuthor.clone(cpy)
	cpy.dueDate = t.dueDate.clone(cpy)
	cpy.assignee = t.assignee.clone(cpy)
	cpy.description = t.description.clone(cpy)
	cpy.stage = t.stage.clone(cpy)
	cpy.relatedTopics = t.relatedTopics.clone(cpy)
	for _, d := range t.docRefs {
		dc := d.Clone()
		dc.SetParent(cpy)
		cpy.docRefs = append(cpy.docRefs, dc)
	}
	if t.bimSnippet != nil {
		cpy.bimSnippet = t.bimSnippet.Clone()
		cpy.bimSnippet.SetParent(cpy)
	}
	return cpy
}
