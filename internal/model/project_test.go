package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testProject(t *testing.T) *Project {
	t.Helper()
	p := NewProject(uuid.MustParse("00000000-0000-0000-0000-0000000000ff"), "Office tower", "extension.xsd", Original)
	p.AddMarkup(testMarkup(t))
	return p
}

func TestProjectSearchByIdentity(t *testing.T) {
	p := testProject(t)
	title := p.Markups()[0].Topic().TitleField()

	// Searching with a node plucked from a deep copy must return the live
	// node carrying the same internal id, not an equal-valued sibling.
	cpy := p.Clone()
	copiedTitle := cpy.Markups()[0].Topic().TitleField()
	found := p.SearchNode(copiedTitle)
	if found != Node(title) {
		t.Fatalf("SearchNode returned %v, want the live title wrapper", found)
	}
}

func TestProjectSearchMissReturnsNil(t *testing.T) {
	p := testProject(t)
	stray := NewSimpleElement("x", "Title", "", nil)
	if got := p.SearchNode(stray); got != nil {
		t.Fatalf("SearchNode for a foreign node = %v, want nil", got)
	}
	if got := p.SearchNode(nil); got != nil {
		t.Fatalf("SearchNode(nil) = %v, want nil", got)
	}
}

func TestProjectCloneDeepEquals(t *testing.T) {
	p := testProject(t)
	m := p.Markups()[0]
	c := NewComment(uuid.New(), "note", time.Date(2026, 2, 2, 8, 0, 0, 0, time.UTC), "a@b.com", nil, Original)
	m.AddComment(c)

	cpy := p.Clone()
	if !p.Equal(cpy) {
		t.Fatal("clone not deep-equal to source")
	}

	cpy.Markups()[0].Comments()[0].SetText("edited")
	if p.Markups()[0].Comments()[0].Text() != "note" {
		t.Fatal("mutating the clone changed the source comment")
	}
	if p.Equal(cpy) {
		t.Fatal("source still equal after clone mutation")
	}
}

func TestProjectUnlink(t *testing.T) {
	p := testProject(t)
	m := p.Markups()[0]
	c := NewComment(uuid.New(), "bye", time.Now(), "a@b.com", nil, Original)
	m.AddComment(c)

	// Unlink takes a node from any copy; the live comment must go away.
	cpy := p.Clone()
	target := cpy.Markups()[0].Comments()[0]
	if !p.Unlink(target) {
		t.Fatal("Unlink did not find the live comment")
	}
	if len(m.Comments()) != 0 {
		t.Fatalf("comment list has %d entries after Unlink", len(m.Comments()))
	}
}

func TestProjectUnlinkListItem(t *testing.T) {
	p := testProject(t)
	labels := p.Markups()[0].Topic().Labels()
	item := labels.Items()[0]

	if !p.Unlink(item) {
		t.Fatal("Unlink did not find the label item")
	}
	if labels.Len() != 0 {
		t.Fatalf("label list has %d entries after Unlink", labels.Len())
	}
}

func TestProjectStateListAggregation(t *testing.T) {
	p := testProject(t)
	if entries := p.StateList(); len(entries) != 0 {
		t.Fatalf("pristine project StateList() = %+v, want empty", entries)
	}

	topic := p.Markups()[0].Topic()
	topic.SetTitle("renamed")
	c := NewComment(uuid.New(), "new", time.Now(), "a@b.com", nil, Added)
	p.Markups()[0].AddComment(c)

	entries := p.StateList()
	if len(entries) != 2 {
		t.Fatalf("StateList() returned %d entries, want 2: %+v", len(entries), entries)
	}
	states := map[uint64]State{}
	for _, e := range entries {
		states[e.Node.InternalID()] = e.State
	}
	if states[topic.TitleField().InternalID()] != Modified {
		t.Fatal("modified title missing from aggregate")
	}
	if states[c.InternalID()] != Added {
		t.Fatal("added comment missing from aggregate")
	}
}

func TestProjectElement(t *testing.T) {
	p := testProject(t)
	el := p.Element()

	if el.Tag != "ProjectExtension" {
		t.Fatalf("root tag = %q", el.Tag)
	}
	proj := el.Child("Project")
	if proj == nil {
		t.Fatal("missing Project child")
	}
	if got, _ := proj.Attr("ProjectId"); got != p.GUID().String() {
		t.Fatalf("ProjectId = %q", got)
	}
	if got := proj.ChildText("Name"); got != "Office tower" {
		t.Fatalf("Name = %q", got)
	}
	if el.Child("ExtensionSchema") == nil {
		t.Fatal("missing ExtensionSchema child")
	}
}
