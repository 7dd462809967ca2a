package xmltree

import (
	"strings"
	"testing"
)

func TestBuildAndQuery(t *testing.T) {
	root := New("Markup").
		Add(New("Topic").SetAttr("Guid", "abc").SetAttr("TopicStatus", "Open").
			AddText("Title", "Clashing duct"))
	root.Add(nil) // nil children are skipped

	topic := root.Child("Topic")
	if topic == nil {
		t.Fatal("Child(Topic) = nil")
	}
	if got, ok := topic.Attr("Guid"); !ok || got != "abc" {
		t.Fatalf("Attr(Guid) = (%q, %v)", got, ok)
	}
	if got := topic.AttrOr("TopicType", "Issue"); got != "Issue" {
		t.Fatalf("AttrOr fallback = %q", got)
	}
	if got := topic.ChildText("Title"); got != "Clashing duct" {
		t.Fatalf("ChildText(Title) = %q", got)
	}
	if got := topic.ChildText("Missing"); got != "" {
		t.Fatalf("ChildText(Missing) = %q", got)
	}
	if len(root.Children) != 1 {
		t.Fatalf("nil child was appended: %d children", len(root.Children))
	}
}

func TestSetAttrReplaces(t *testing.T) {
	e := New("File").SetAttr("isExternal", "true").SetAttr("isExternal", "false")
	if len(e.Attrs) != 1 {
		t.Fatalf("attr count = %d", len(e.Attrs))
	}
	if got, _ := e.Attr("isExternal"); got != "false" {
		t.Fatalf("Attr(isExternal) = %q", got)
	}
}

func TestMarshalParseRoundTrip(t *testing.T) {
	root := New("Markup").
		Add(New("Topic").SetAttr("Guid", "abc").
			AddText("Title", `Duct <clips> "beam" & more`).
			AddText("Labels", "mech").
			AddText("Labels", "structural"))

	data, err := Marshal(root)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.HasPrefix(string(data), "<?xml") {
		t.Fatalf("missing declaration:\n%s", data)
	}

	parsed, err := ParseBytes(data)
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	topic := parsed.Child("Topic")
	if topic == nil {
		t.Fatal("round trip lost the Topic element")
	}
	if got := topic.ChildText("Title"); got != `Duct <clips> "beam" & more` {
		t.Fatalf("escaped text round trip = %q", got)
	}
	labels := topic.ChildrenNamed("Labels")
	if len(labels) != 2 || labels[0].Text != "mech" || labels[1].Text != "structural" {
		t.Fatalf("repeated children = %+v", labels)
	}
}

func TestParseStripsNamespaceDeclarations(t *testing.T) {
	doc := `<?xml version="1.0"?>
<Markup xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">
  <Topic Guid="abc"/>
</Markup>`

	root, err := ParseBytes([]byte(doc))
	if err != nil {
		t.Fatalf("ParseBytes: %v", err)
	}
	if len(root.Attrs) != 0 {
		t.Fatalf("namespace declaration kept: %+v", root.Attrs)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := ParseBytes([]byte("")); err == nil {
		t.Error("empty document accepted")
	}
	if _, err := ParseBytes([]byte("<a><b></a>")); err == nil {
		t.Error("mismatched tags accepted")
	}
}
