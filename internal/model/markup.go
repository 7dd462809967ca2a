package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/openbcf/bcf/internal/xmltree"
)

// CommentDateLayout is the layout used by Comment.String. External callers
// parse that rendering back, so the format is a contract.
const CommentDateLayout = "2006-01-02 15:04:05"

// HeaderFile names one IFC model file a markup refers to
// (markup.xsd:Header/File). isExternal defaults to true here, unlike
// everywhere else in the schema.
type HeaderFile struct {
	base
	ifcProject    *Attribute[string]
	ifcSpatialEl  *Attribute[string]
	external      *Attribute[bool]
	filename      *SimpleElement[string]
	time          *DateElement
	reference     *SimpleElement[Uri]
}

// HeaderFileData carries the field set for constructing a HeaderFile.
type HeaderFileData struct {
	IfcProject                 string
	IfcSpatialStructureElement string
	External                   bool
	Filename                   string
	Time                       time.Time
	Reference                  Uri
}

// NewHeaderFile creates a header file entry.
func NewHeaderFile(d HeaderFileData, parent Node, state State) *HeaderFile {
	f := &HeaderFile{base: newBase("File", parent, state)}
	f.ifcProject = NewAttribute(d.IfcProject, "IfcProject", "", f)
	f.ifcSpatialEl = NewAttribute(d.IfcSpatialStructureElement, "IfcSpatialStructureElement", "", f)
	f.external = NewAttribute(d.External, "isExternal", true, f)
	f.filename = NewSimpleElement(d.Filename, "Filename", "", f)
	f.time = NewDateElement(d.Time, "Date", f)
	f.reference = NewSimpleElement(d.Reference, "Reference", Uri(""), f)
	return f
}

func (f *HeaderFile) IfcProject() string { return f.ifcProject.Value() }
func (f *HeaderFile) IfcSpatialStructureElement() string {
	return f.ifcSpatialEl.Value()
}
func (f *HeaderFile) External() bool  { return f.external.Value() }
func (f *HeaderFile) Filename() string { return f.filename.Value() }
func (f *HeaderFile) Time() time.Time { return f.time.Value() }
func (f *HeaderFile) Reference() Uri  { return f.reference.Value() }

// SetReference updates the file path and returns the previous value.
func (f *HeaderFile) SetReference(v Uri) Uri { return f.reference.Set(v) }

// SetFilename updates the display name and returns the previous value.
func (f *HeaderFile) SetFilename(v string) string { return f.filename.Set(v) }

// ReferenceField exposes the underlying wrapper for the update queue.
func (f *HeaderFile) ReferenceField() *SimpleElement[Uri] { return f.reference }

func (f *HeaderFile) Equal(other *HeaderFile) bool {
	return other != nil &&
		f.ifcProject.Value() == other.ifcProject.Value() &&
		f.ifcSpatialEl.Value() == other.ifcSpatialEl.Value() &&
		f.external.Value() == other.external.Value() &&
		f.filename.Value() == other.filename.Value() &&
		f.time.Value().Equal(other.time.Value()) &&
		f.reference.Value() == other.reference.Value()
}

func (f *HeaderFile) String() string {
	return fmt.Sprintf("HeaderFile(filename=%s, isExternal=%v, reference=%s)",
		f.filename.Value(), f.external.Value(), f.reference.Value())
}

func (f *HeaderFile) Search(id uint64) Node {
	if f.id == id {
		return f
	}
	return searchNodes(id, f.ifcProject, f.ifcSpatialEl, f.external,
		f.filename, f.time, f.reference)
}

func (f *HeaderFile) StateList() []StateEntry {
	entries := ownEntry(f)
	entries = append(entries, f.ifcProject.StateList()...)
	entries = append(entries, f.ifcSpatialEl.StateList()...)
	entries = append(entries, f.external.StateList()...)
	entries = append(entries, f.filename.StateList()...)
	entries = append(entries, f.time.StateList()...)
	entries = append(entries, f.reference.StateList()...)
	return entries
}

func (f *HeaderFile) Element() *xmltree.Element {
	el := xmltree.New(f.tag)
	f.external.Apply(el)
	f.ifcSpatialEl.Apply(el)
	f.ifcProject.Apply(el)
	el.Add(f.filename.Element())
	el.Add(f.time.Element())
	el.Add(f.reference.Element())
	return el
}

// Clone reconstructs the entry without copying the containing object.
func (f *HeaderFile) Clone() *HeaderFile {
	cpy := &HeaderFile{base: f.base.cloneBase()}
	cpy.ifcProject = f.ifcProject.clone(cpy)
	cpy.ifcSpatialEl = f.ifcSpatialEl.clone(cpy)
	cpy.external = f.external.clone(cpy)
	cpy.filename = f.filename.clone(cpy)
	cpy.time = f.time.clone(cpy)
	cpy.reference = f.reference.clone(cpy)
	return cpy
}

// Header lists the IFC model files a markup belongs to
// (markup.xsd:Header).
type Header struct {
	base
	files []*HeaderFile
}

// NewHeader creates a header and re-parents its files.
func NewHeader(files []*HeaderFile, parent Node, state State) *Header {
	h := &Header{base: newBase("Header", parent, state), files: files}
	for _, f := range h.files {
		f.SetParent(h)
	}
	return h
}

func (h *Header) Files() []*HeaderFile { return h.files }

// AddFile appends a file entry and re-parents it.
func (h *Header) AddFile(f *HeaderFile) {
	f.SetParent(h)
	h.files = append(h.files, f)
}

// RemoveFile unlinks the entry with the given internal id.
func (h *Header) RemoveFile(id uint64) bool {
	for i, f := range h.files {
		if f.InternalID() == id {
			h.files = append(h.files[:i], h.files[i+1:]...)
			return true
		}
	}
	return false
}

func (h *Header) Equal(other *Header) bool {
	if other == nil || len(h.files) != len(other.files) {
		return false
	}
	for i := range h.files {
		if !h.files[i].Equal(other.files[i]) {
			return false
		}
	}
	return true
}

func (h *Header) Search(id uint64) Node {
	if h.id == id {
		return h
	}
	for _, f := range h.files {
		if found := f.Search(id); found != nil {
			return found
		}
	}
	return nil
}

func (h *Header) StateList() []StateEntry {
	entries := ownEntry(h)
	for _, f := range h.files {
		entries = append(entries, f.StateList()...)
	}
	return entries
}

func (h *Header) Element() *xmltree.Element {
	el := xmltree.New(h.tag)
	for _, f := range h.files {
		if f.State() == Deleted {
			continue
		}
		el.Add(f.Element())
	}
	return el
}

// Clone reconstructs the header without copying the containing object.
func (h *Header) Clone() *Header {
	cpy := &Header{base: h.base.cloneBase()}
	for _, f := range h.files {
		fc := f.Clone()
		fc.SetParent(cpy)
		cpy.files = append(cpy.files, fc)
	}
	return cpy
}

// ViewpointReference points at one viewpoint file of a topic directory plus
// its snapshot image and ordering index (markup.xsd:ViewPoint). The
// serialized tag is the plural "Viewpoints". The embedded Viewpoint is the
// parsed content of the referenced .bcfv file, if it has been loaded.
type ViewpointReference struct {
	base
	guid      uuid.UUID
	file      *SimpleElement[Uri]
	snapshot  *SimpleElement[Uri]
	index     *SimpleElement[int]
	viewpoint *Viewpoint
}

// NewViewpointReference creates a reference. Pass DefaultIndex when no
// ordering index applies.
func NewViewpointReference(guid uuid.UUID, file, snapshot Uri, index int, parent Node, state State) *ViewpointReference {
	r := &ViewpointReference{base: newBase("Viewpoints", parent, state), guid: guid}
	r.file = NewSimpleElement(file, "Viewpoint", Uri(""), r)
	r.snapshot = NewSimpleElement(snapshot, "Snapshot", Uri(""), r)
	r.index = NewSimpleElement(index, "Index", DefaultIndex, r)
	return r
}

func (r *ViewpointReference) GUID() uuid.UUID                { return r.guid }
func (r *ViewpointReference) GUIDEquals(guid uuid.UUID) bool { return r.guid == guid }
func (r *ViewpointReference) File() Uri                      { return r.file.Value() }
func (r *ViewpointReference) Snapshot() Uri                  { return r.snapshot.Value() }
func (r *ViewpointReference) Index() int                     { return r.index.Value() }
func (r *ViewpointReference) Viewpoint() *Viewpoint          { return r.viewpoint }

// SetFile accepts a Uri or a plain string path and returns the previous
// value. Any other type fails with ErrInvalidArgument.
func (r *ViewpointReference) SetFile(v any) (Uri, error) {
	switch t := v.(type) {
	case Uri:
		return r.file.Set(t), nil
	case string:
		return r.file.Set(Uri(t)), nil
	default:
		return "", fmt.Errorf("set viewpoint file: %w: %T", ErrInvalidArgument, v)
	}
}

// SetSnapshot updates the snapshot path and returns the previous value.
func (r *ViewpointReference) SetSnapshot(v Uri) Uri { return r.snapshot.Set(v) }

// SetViewpoint attaches (or clears) the parsed viewpoint content and
// re-parents it to the reference.
func (r *ViewpointReference) SetViewpoint(v *Viewpoint) {
	r.viewpoint = v
	if v != nil {
		v.SetParent(r)
	}
}

// FileField exposes the underlying wrapper for the update queue.
func (r *ViewpointReference) FileField() *SimpleElement[Uri] { return r.file }

// SnapshotField exposes the underlying wrapper for the update queue.
func (r *ViewpointReference) SnapshotField() *SimpleElement[Uri] { return r.snapshot }

func (r *ViewpointReference) Equal(other *ViewpointReference) bool {
	return other != nil &&
		r.guid == other.guid &&
		r.file.Value() == other.file.Value() &&
		r.snapshot.Value() == other.snapshot.Value() &&
		r.index.Value() == other.index.Value() &&
		equalOrNil(r.viewpoint, other.viewpoint, (*Viewpoint).Equal)
}

func (r *ViewpointReference) String() string {
	return fmt.Sprintf("ViewpointReference(guid=%s, file=%s, snapshot=%s, index=%d)",
		r.guid, r.file.Value(), r.snapshot.Value(), r.index.Value())
}

func (r *ViewpointReference) Search(id uint64) Node {
	if r.id == id {
		return r
	}
	members := []Node{r.file, r.snapshot, r.index}
	if r.viewpoint != nil {
		members = append(members, r.viewpoint)
	}
	return searchNodes(id, members...)
}

func (r *ViewpointReference) StateList() []StateEntry {
	entries := ownEntry(r)
	entries = append(entries, r.file.StateList()...)
	entries = append(entries, r.snapshot.StateList()...)
	entries = append(entries, r.index.StateList()...)
	if r.viewpoint != nil {
		entries = append(entries, r.viewpoint.StateList()...)
	}
	return entries
}

func (r *ViewpointReference) Element() *xmltree.Element {
	el := xmltree.New(r.tag)
	el.SetAttr("Guid", r.guid.String())
	el.Add(r.file.Element())
	el.Add(r.snapshot.Element())
	el.Add(r.index.Element())
	return el
}

// Clone reconstructs the reference, including any loaded viewpoint content,
// without copying the containing object.
func (r *ViewpointReference) Clone() *ViewpointReference {
	cpy := &ViewpointReference{base: r.base.cloneBase(), guid: r.guid}
	cpy.file = r.file.clone(cpy)
	cpy.snapshot = r.snapshot.clone(cpy)
	cpy.index = r.index.clone(cpy)
	if r.viewpoint != nil {
		cpy.viewpoint = r.viewpoint.Clone()
		cpy.viewpoint.SetParent(cpy)
	}
	return cpy
}

// Comment is a single remark in a topic's thread (markup.xsd:Comment). The
// viewpoint member is a reference into the containing markup's viewpoint
// list, never owned by the comment.
type Comment struct {
	base
	guid      uuid.UUID
	text      *SimpleElement[string]
	date      *DateElement
	author    *SimpleElement[string]
	modDate   *DateElement
	modAuthor *SimpleElement[string]
	viewpoint *ViewpointReference
}

// NewComment creates a comment.
func NewComment(guid uuid.UUID, text string, date time.Time, author string, parent Node, state State) *Comment {
	c := &Comment{base: newBase("Comment", parent, state), guid: guid}
	c.text = NewSimpleElement(text, "Comment", "", c)
	c.date = NewDateElement(date, "Date", c)
	c.author = NewSimpleElement(author, "Author", "", c)
	c.modDate = NewDateElement(time.Time{}, "ModifiedDate", c)
	c.modAuthor = NewSimpleElement("", "ModifiedAuthor", "", c)
	return c
}

func (c *Comment) GUID() uuid.UUID                { return c.guid }
func (c *Comment) GUIDEquals(guid uuid.UUID) bool { return c.guid == guid }
func (c *Comment) Text() string                   { return c.text.Value() }
func (c *Comment) Date() time.Time                { return c.date.Value() }
func (c *Comment) Author() string                 { return c.author.Value() }
func (c *Comment) ModDate() time.Time             { return c.modDate.Value() }
func (c *Comment) ModAuthor() string              { return c.modAuthor.Value() }
func (c *Comment) Viewpoint() *ViewpointReference { return c.viewpoint }

// Setters mark the touched wrapper and return the previous value.

func (c *Comment) SetText(v string) string         { return c.text.Set(v) }
func (c *Comment) SetModDate(v time.Time) time.Time { return c.modDate.Set(v) }
func (c *Comment) SetModAuthor(v string) string    { return c.modAuthor.Set(v) }

// SetViewpoint links the comment to a viewpoint reference owned by the
// containing markup. Pass nil to clear the link.
func (c *Comment) SetViewpoint(r *ViewpointReference) { c.viewpoint = r }

// Field accessors expose the underlying wrappers for the update queue.

func (c *Comment) TextField() *SimpleElement[string]      { return c.text }
func (c *Comment) ModDateField() *DateElement             { return c.modDate }
func (c *Comment) ModAuthorField() *SimpleElement[string] { return c.modAuthor }

func (c *Comment) Equal(other *Comment) bool {
	return other != nil &&
		c.guid == other.guid &&
		c.text.Equal(other.text) &&
		c.date.Equal(other.date) &&
		c.author.Equal(other.author) &&
		c.modDate.Equal(other.modDate) &&
		c.modAuthor.Equal(other.modAuthor) &&
		equalOrNil(c.viewpoint, other.viewpoint, (*ViewpointReference).Equal)
}

// String renders "{text} -- {author}, {date}", appending
// " modified on {modDate}" when a modification was recorded. External
// callers parse this back, so the format must stay stable.
func (c *Comment) String() string {
	s := fmt.Sprintf("%s -- %s, %s", c.text.Value(), c.author.Value(),
		c.date.Value().Format(CommentDateLayout))
	if !c.modDate.IsDefault() {
		s = fmt.Sprintf("%s modified on %s", s,
			c.modDate.Value().Format(CommentDateLayout))
	}
	return s
}

// Search covers the comment's own wrappers. The linked viewpoint reference
// is owned and searched by the containing markup.
func (c *Comment) Search(id uint64) Node {
	if c.id == id {
		return c
	}
	return searchNodes(id, c.text, c.date, c.author, c.modDate, c.modAuthor)
}

// StateList covers the comment's own wrappers; the linked viewpoint
// reference reports through the containing markup.
func (c *Comment) StateList() []StateEntry {
	entries := ownEntry(c)
	entries = append(entries, c.date.StateList()...)
	entries = append(entries, c.author.StateList()...)
	entries = append(entries, c.text.StateList()...)
	entries = append(entries, c.modDate.StateList()...)
	entries = append(entries, c.modAuthor.StateList()...)
	return entries
}

// Element renders the comment. Date, Author and Comment are schema-required
// and always emitted; the viewpoint link serializes as an empty Viewpoint
// element carrying only the Guid attribute.
func (c *Comment) Element() *xmltree.Element {
	el := xmltree.New(c.tag)
	el.SetAttr("Guid", c.guid.String())
	el.AddText("Date", c.date.Format())
	el.AddText("Author", c.author.Value())
	el.AddText("Comment", c.text.Value())
	if c.viewpoint != nil && c.viewpoint.State() != Deleted {
		el.Add(xmltree.New("Viewpoint").SetAttr("Guid", c.viewpoint.GUID().String()))
	}
	if !c.modDate.IsDefault() {
		el.Add(c.modDate.Element())
		el.Add(c.modAuthor.Element())
	}
	return el
}

// Clone reconstructs the comment without copying the containing object. The
// viewpoint link is carried over as-is; Markup.Clone re-links it to the
// cloned viewpoint list afterwards.
func (c *Comment) Clone() *Comment {
	cpy := &Comment{base: c.base.cloneBase(), guid: c.guid}
	cpy.text = c.text.clone(cpy)
	cpy.date = c.date.clone(cpy)
	cpy.author = c.author.clone(cpy)
	cpy.modDate = c.modDate.clone(cpy)
	cpy.modAuthor = c.modAuthor.clone(cpy)
	cpy.viewpoint = c.viewpoint
	return cpy
}

// Markup is one topic directory of an archive: the markup.bcf file content
// plus its loaded viewpoint files (markup.xsd:Markup).
type Markup struct {
	base
	header     *Header
	topic      *Topic
	comments   []*Comment
	viewpoints []*ViewpointReference
}

// NewMarkup creates a markup and re-stamps every member's containing object
// to itself. Forgetting the re-stamp breaks identity search and the writer
// traversal later, so all list mutation goes through Add/Remove helpers.
func NewMarkup(topic *Topic, header *Header, comments []*Comment, viewpoints []*ViewpointReference, parent Node, state State) *Markup {
	m := &Markup{
		base:       newBase("Markup", parent, state),
		header:     header,
		topic:      topic,
		comments:   comments,
		viewpoints: viewpoints,
	}
	if m.topic != nil {
		m.topic.SetParent(m)
	}
	if m.header != nil {
		m.header.SetParent(m)
	}
	for _, c := range m.comments {
		c.SetParent(m)
	}
	for _, v := range m.viewpoints {
		v.SetParent(m)
	}
	return m
}

func (m *Markup) Topic() *Topic                      { return m.topic }
func (m *Markup) Header() *Header                    { return m.header }
func (m *Markup) Comments() []*Comment               { return m.comments }
func (m *Markup) Viewpoints() []*ViewpointReference  { return m.viewpoints }

// TopicGUID returns the GUID naming this markup's directory in the archive.
func (m *Markup) TopicGUID() uuid.UUID { return m.topic.GUID() }

// SetHeader attaches (or clears) the header and re-parents it.
func (m *Markup) SetHeader(h *Header) {
	m.header = h
	if h != nil {
		h.SetParent(m)
	}
}

// RemoveHeader clears the header when its internal id matches.
func (m *Markup) RemoveHeader(id uint64) bool {
	if m.header != nil && m.header.InternalID() == id {
		m.header = nil
		return true
	}
	return false
}

// AddComment appends a comment and re-parents it.
func (m *Markup) AddComment(c *Comment) {
	c.SetParent(m)
	m.comments = append(m.comments, c)
}

// RemoveComment unlinks the comment with the given internal id.
func (m *Markup) RemoveComment(id uint64) bool {
	for i, c := range m.comments {
		if c.InternalID() == id {
			m.comments = append(m.comments[:i], m.comments[i+1:]...)
			return true
		}
	}
	return false
}

// AddViewpoint appends a viewpoint reference and re-parents it.
func (m *Markup) AddViewpoint(r *ViewpointReference) {
	r.SetParent(m)
	m.viewpoints = append(m.viewpoints, r)
}

// RemoveViewpoint unlinks the reference with the given internal id and
// clears any comment links pointing at it.
func (m *Markup) RemoveViewpoint(id uint64) bool {
	for i, r := range m.viewpoints {
		if r.InternalID() != id {
			continue
		}
		m.viewpoints = append(m.viewpoints[:i], m.viewpoints[i+1:]...)
		for _, c := range m.comments {
			if c.viewpoint == r {
				c.viewpoint = nil
			}
		}
		return true
	}
	return false
}

// ViewpointRefByGUID returns the first reference matching guid, or nil.
// Uniqueness is not enforced by the model; first match wins.
func (m *Markup) ViewpointRefByGUID(guid uuid.UUID) *ViewpointReference {
	for _, r := range m.viewpoints {
		if r.GUIDEquals(guid) {
			return r
		}
	}
	return nil
}

// CommentByGUID returns the first comment matching guid, or nil.
func (m *Markup) CommentByGUID(guid uuid.UUID) *Comment {
	for _, c := range m.comments {
		if c.GUIDEquals(guid) {
			return c
		}
	}
	return nil
}

// ViewpointFiles returns the file paths of all viewpoint references that
// carry one, paired with their reference.
func (m *Markup) ViewpointFiles() map[Uri]*ViewpointReference {
	out := make(map[Uri]*ViewpointReference)
	for _, r := range m.viewpoints {
		if r.File() != "" {
			out[r.File()] = r
		}
	}
	return out
}

// SnapshotFiles returns the snapshot paths of all viewpoint references that
// carry one, in list order.
func (m *Markup) SnapshotFiles() []string {
	var out []string
	for _, r := range m.viewpoints {
		if r.Snapshot() != "" {
			out = append(out, string(r.Snapshot()))
		}
	}
	return out
}

func (m *Markup) Equal(other *Markup) bool {
	if other == nil ||
		!equalOrNil(m.header, other.header, (*Header).Equal) ||
		!equalOrNil(m.topic, other.topic, (*Topic).Equal) {
		return false
	}
	if len(m.comments) != len(other.comments) || len(m.viewpoints) != len(other.viewpoints) {
		return false
	}
	for i := range m.comments {
		if !m.comments[i].Equal(other.comments[i]) {
			return false
		}
	}
	for i := range m.viewpoints {
		if !m.viewpoints[i].Equal(other.viewpoints[i]) {
			return false
		}
	}
	return true
}

func (m *Markup) String() string {
	return fmt.Sprintf("Markup(topic=%s, comments=%d, viewpoints=%d)",
		m.topic.GUID(), len(m.comments), len(m.viewpoints))
}

func (m *Markup) Search(id uint64) Node {
	if m.id == id {
		return m
	}
	if m.header != nil {
		if found := m.header.Search(id); found != nil {
			return found
		}
	}
	if found := m.topic.Search(id); found != nil {
		return found
	}
	for _, c := range m.comments {
		if found := c.Search(id); found != nil {
			return found
		}
	}
	for _, r := range m.viewpoints {
		if found := r.Search(id); found != nil {
			return found
		}
	}
	return nil
}

func (m *Markup) StateList() []StateEntry {
	entries := ownEntry(m)
	entries = append(entries, m.topic.StateList()...)
	if m.header != nil {
		entries = append(entries, m.header.StateList()...)
	}
	for _, c := range m.comments {
		entries = append(entries, c.StateList()...)
	}
	for _, r := range m.viewpoints {
		entries = append(entries, r.StateList()...)
	}
	return entries
}

// Element renders the markup.bcf document root. Members marked Deleted are
// dropped; the writer rewrites whole files from the model, so suppression
// here is what removes their XML nodes on commit.
func (m *Markup) Element() *xmltree.Element {
	el := xmltree.New(m.tag)
	if m.header != nil && m.header.State() != Deleted {
		el.Add(m.header.Element())
	}
	el.Add(m.topic.Element())
	for _, c := range m.comments {
		if c.State() == Deleted {
			continue
		}
		el.Add(c.Element())
	}
	for _, r := range m.viewpoints {
		if r.State() == Deleted {
			continue
		}
		el.Add(r.Element())
	}
	return el
}

// Clone reconstructs the markup without copying the containing object.
// Comment viewpoint links are re-pointed at the cloned viewpoint list so
// the copy shares nothing with the source graph.
func (m *Markup) Clone() *Markup {
	cpy := &Markup{base: m.base.cloneBase()}
	if m.topic != nil {
		cpy.topic = m.topic.Clone()
		cpy.topic.SetParent(cpy)
	}
	if m.header != nil {
		cpy.header = m.header.Clone()
		cpy.header.SetParent(cpy)
	}
	cloned := make(map[*ViewpointReference]*ViewpointReference, len(m.viewpoints))
	for _, r := range m.viewpoints {
		rc := r.Clone()
		rc.SetParent(cpy)
		cloned[r] = rc
		cpy.viewpoints = append(cpy.viewpoints, rc)
	}
	for _, c := range m.comments {
		cc := c.Clone()
		cc.SetParent(cpy)
		cc.viewpoint = cloned[c.viewpoint]
		cpy.comments = append(cpy.comments, cc)
	}
	return cpy
}
