package model

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func testMarkup(t *testing.T) *Markup {
	t.Helper()
	return NewMarkup(testTopic(t), nil, nil, nil, nil, Original)
}

func TestCommentString(t *testing.T) {
	date := time.Date(2026, 1, 20, 14, 5, 9, 0, time.UTC)
	c := NewComment(uuid.New(), "Looks fine", date, "a@b.com", nil, Added)

	want := "Looks fine -- a@b.com, 2026-01-20 14:05:09"
	if got := c.String(); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}

	c.SetModDate(time.Date(2026, 1, 21, 8, 0, 0, 0, time.UTC))
	got := c.String()
	if !strings.HasPrefix(got, want) || !strings.HasSuffix(got, " modified on 2026-01-21 08:00:00") {
		t.Fatalf("modified String() = %q", got)
	}
}

func TestCommentElement(t *testing.T) {
	date := time.Date(2026, 1, 20, 14, 5, 9, 0, time.UTC)
	c := NewComment(uuid.MustParse("00000000-0000-0000-0000-00000000000a"), "", date, "a@b.com", nil, Original)
	el := c.Element()

	// Comment is schema-required and written even when empty.
	if el.Child("Comment") == nil {
		t.Fatal("empty Comment element omitted")
	}
	if el.Child("ModifiedDate") != nil {
		t.Fatal("unset ModifiedDate serialized")
	}

	vp := NewViewpointReference(uuid.MustParse("00000000-0000-0000-0000-00000000000b"), "viewpoint.bcfv", "", DefaultIndex, nil, Original)
	c.SetViewpoint(vp)
	el = c.Element()
	link := el.Child("Viewpoint")
	if link == nil {
		t.Fatal("viewpoint link not serialized")
	}
	if got, _ := link.Attr("Guid"); got != vp.GUID().String() {
		t.Fatalf("viewpoint link Guid = %q", got)
	}
	if link.Text != "" || len(link.Children) != 0 {
		t.Fatal("viewpoint link must be an empty element with only a Guid")
	}
}

func TestViewpointReferenceSetFile(t *testing.T) {
	r := NewViewpointReference(uuid.New(), "old.bcfv", "", DefaultIndex, nil, Original)

	old, err := r.SetFile("new.bcfv")
	if err != nil {
		t.Fatalf("SetFile(string) failed: %v", err)
	}
	if old != "old.bcfv" {
		t.Fatalf("SetFile returned %q, want previous value", old)
	}

	if _, err := r.SetFile(Uri("uri.bcfv")); err != nil {
		t.Fatalf("SetFile(Uri) failed: %v", err)
	}
	if r.File() != "uri.bcfv" {
		t.Fatalf("File() = %q", r.File())
	}

	if _, err := r.SetFile(42); err == nil {
		t.Fatal("SetFile(int) succeeded, want ErrInvalidArgument")
	}
}

func TestViewpointRefByGUIDFirstMatch(t *testing.T) {
	m := testMarkup(t)
	first := NewViewpointReference(uuid.MustParse("00000000-0000-0000-0000-000000000010"), "a.bcfv", "", 0, nil, Original)
	second := NewViewpointReference(uuid.MustParse("00000000-0000-0000-0000-000000000020"), "b.bcfv", "", 1, nil, Original)
	m.AddViewpoint(first)
	m.AddViewpoint(second)

	if got := m.ViewpointRefByGUID(second.GUID()); got != second {
		t.Fatalf("lookup of second GUID returned %v, want the second reference", got)
	}
	if got := m.ViewpointRefByGUID(uuid.New()); got != nil {
		t.Fatalf("lookup of unknown GUID returned %v, want nil", got)
	}
}

func TestMarkupReStampsMembers(t *testing.T) {
	topic := testTopic(t)
	c := NewComment(uuid.New(), "hi", time.Now(), "a@b.com", nil, Original)
	vp := NewViewpointReference(uuid.New(), "v.bcfv", "", DefaultIndex, nil, Original)
	h := NewHeader([]*HeaderFile{NewHeaderFile(HeaderFileData{Filename: "model.ifc", External: true}, nil, Original)}, nil, Original)

	m := NewMarkup(topic, h, []*Comment{c}, []*ViewpointReference{vp}, nil, Original)

	if topic.Parent() != m || h.Parent() != m || c.Parent() != m || vp.Parent() != m {
		t.Fatal("markup construction did not re-stamp member parents")
	}
	if h.Files()[0].Parent() != h {
		t.Fatal("header file not parented to the header")
	}
}

func TestMarkupCloneRelinksCommentViewpoints(t *testing.T) {
	m := testMarkup(t)
	vp := NewViewpointReference(uuid.New(), "v.bcfv", "snap.png", 0, nil, Original)
	m.AddViewpoint(vp)
	c := NewComment(uuid.New(), "see viewpoint", time.Now(), "a@b.com", nil, Original)
	c.SetViewpoint(vp)
	m.AddComment(c)

	cpy := m.Clone()
	gotVP := cpy.Comments()[0].Viewpoint()
	if gotVP == vp {
		t.Fatal("cloned comment still points at the source viewpoint")
	}
	if gotVP != cpy.Viewpoints()[0] {
		t.Fatal("cloned comment not re-linked to the cloned viewpoint list")
	}
	if cpy.Comments()[0].Parent() != cpy || cpy.Viewpoints()[0].Parent() != cpy {
		t.Fatal("cloned members not re-parented to the clone")
	}
}

func TestMarkupRemoveViewpointClearsCommentLinks(t *testing.T) {
	m := testMarkup(t)
	vp := NewViewpointReference(uuid.New(), "v.bcfv", "", DefaultIndex, nil, Original)
	m.AddViewpoint(vp)
	c := NewComment(uuid.New(), "text", time.Now(), "a@b.com", nil, Original)
	c.SetViewpoint(vp)
	m.AddComment(c)

	if !m.RemoveViewpoint(vp.InternalID()) {
		t.Fatal("RemoveViewpoint did not find the reference")
	}
	if c.Viewpoint() != nil {
		t.Fatal("dangling comment link after viewpoint removal")
	}
}

func TestHeaderFileExternalDefaultsTrue(t *testing.T) {
	f := NewHeaderFile(HeaderFileData{External: true, Filename: "m.ifc"}, nil, Original)
	el := f.Element()
	if _, ok := el.Attr("isExternal"); ok {
		t.Fatal("isExternal written at its default (true)")
	}

	f2 := NewHeaderFile(HeaderFileData{External: false, Filename: "m.ifc"}, nil, Original)
	got, ok := f2.Element().Attr("isExternal")
	if !ok || got != "false" {
		t.Fatalf("isExternal = %q, %v; want explicit \"false\"", got, ok)
	}
}
