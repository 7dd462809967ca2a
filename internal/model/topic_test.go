package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func testTopic(t *testing.T) *Topic {
	t.Helper()
	return NewTopic(TopicData{
		GUID:   uuid.MustParse("00000000-0000-0000-0000-000000000001"),
		Title:  "Clashing duct",
		Date:   time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
		Author: "a@b.com",
		Type:   "Issue",
		Status: "Open",
		Index:  DefaultIndex,
		Labels: []string{"mep"},
	}, nil, Original)
}

func TestTopicSetterMarksOnlyTouchedField(t *testing.T) {
	topic := testTopic(t)

	old := topic.SetStatus("Closed")
	if old != "Open" {
		t.Fatalf("SetStatus returned %q, want %q", old, "Open")
	}

	entries := topic.StateList()
	if len(entries) != 1 {
		t.Fatalf("StateList() returned %d entries, want 1: %+v", len(entries), entries)
	}
	if entries[0].Node != topic.StatusField() || entries[0].State != Modified {
		t.Fatalf("StateList() = %+v, want the status attribute as Modified", entries[0])
	}
	if topic.TitleField().State() != Original {
		t.Fatal("sibling field flipped state")
	}
}

func TestTopicElementOmitsDefaults(t *testing.T) {
	topic := testTopic(t)
	el := topic.Element()

	if el.Child("Priority") != nil {
		t.Fatal("empty Priority serialized")
	}
	if el.Child("Index") != nil {
		t.Fatal("default index serialized")
	}
	if el.Child("ModifiedDate") != nil || el.Child("ModifiedAuthor") != nil {
		t.Fatal("unset modification fields serialized")
	}
	if got := el.ChildText("Title"); got != "Clashing duct" {
		t.Fatalf("Title = %q", got)
	}
	if got, _ := el.Attr("TopicStatus"); got != "Open" {
		t.Fatalf("TopicStatus attr = %q", got)
	}
	if got := el.ChildText("Date"); got != "2026-01-15T09:00:00Z" {
		t.Fatalf("Date = %q", got)
	}
}

func TestTopicDueDateSerializesDateOnly(t *testing.T) {
	topic := testTopic(t)
	topic.SetDueDate(time.Date(2026, 2, 1, 13, 45, 0, 0, time.UTC))

	if got := topic.Element().ChildText("DueDate"); got != "2026-02-01" {
		t.Fatalf("DueDate = %q, want date-only form", got)
	}
}

func TestTopicCloneIndependence(t *testing.T) {
	topic := testTopic(t)
	dr := NewDocumentReference(uuid.New(), false, "docs/spec.pdf", "design doc", topic, Original)
	topic.AddDocumentReference(dr)

	cpy := topic.Clone()
	if cpy.Parent() != nil {
		t.Fatal("clone kept the original parent")
	}
	if !topic.Equal(cpy) {
		t.Fatal("clone not equal to source")
	}
	if cpy.InternalID() != topic.InternalID() {
		t.Fatal("clone did not preserve the internal id")
	}

	cpy.SetTitle("changed")
	cpy.Labels().Append("new", Added)
	cpy.DocumentReferences()[0].SetDescription("changed")

	if topic.Title() != "Clashing duct" {
		t.Fatal("mutating the clone changed the source title")
	}
	if topic.Labels().Len() != 1 {
		t.Fatal("mutating the clone changed the source labels")
	}
	if topic.DocumentReferences()[0].Description() != "design doc" {
		t.Fatal("mutating the clone changed the source document reference")
	}
	if got := cpy.DocumentReferences()[0].Parent(); got != cpy {
		t.Fatal("cloned document reference not re-parented to the clone")
	}
}

func TestTopicEqualIncludesModAuthor(t *testing.T) {
	a := testTopic(t)
	b := a.Clone()
	b.SetModAuthor("c@d.com")
	if a.Equal(b) {
		t.Fatal("topics with different modification authors compared equal")
	}
}

func TestTopicSearchFindsNestedWrapper(t *testing.T) {
	topic := testTopic(t)
	label := topic.Labels().Items()[0]

	found := topic.Search(label.InternalID())
	if found != Node(label) {
		t.Fatalf("Search returned %v, want the label item", found)
	}
	if topic.Search(^uint64(0)) != nil {
		t.Fatal("Search invented a node for an unknown id")
	}
}

func TestBimSnippetAlwaysWritesRequiredAttrs(t *testing.T) {
	b := NewBimSnippet("clash", false, "snippet.ifc", "http://example.com/schema", nil, Original)
	el := b.Element()

	if got, ok := el.Attr("SnippetType"); !ok || got != "clash" {
		t.Fatalf("SnippetType attr = %q, %v", got, ok)
	}
	if got, ok := el.Attr("isExternal"); !ok || got != "false" {
		t.Fatalf("isExternal attr = %q, %v; want explicit \"false\"", got, ok)
	}
}
