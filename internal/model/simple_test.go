package model

import (
	"testing"
	"time"

	"github.com/openbcf/bcf/internal/xmltree"
)

func TestSimpleElementSet(t *testing.T) {
	e := NewSimpleElement("open", "TopicStatus", "", nil)
	if e.State() != Original {
		t.Fatalf("new element state = %v, want Original", e.State())
	}

	old := e.Set("closed")
	if old != "open" {
		t.Fatalf("Set returned %q, want previous value %q", old, "open")
	}
	if e.Value() != "closed" {
		t.Fatalf("Value() = %q, want %q", e.Value(), "closed")
	}
	if e.State() != Modified {
		t.Fatalf("state after Set = %v, want Modified", e.State())
	}
}

func TestSimpleElementAddedStaysAdded(t *testing.T) {
	e := NewSimpleElement("draft", "Title", "", nil)
	e.SetState(Added)
	e.Set("final")
	if e.State() != Added {
		t.Fatalf("state after Set on Added = %v, want Added", e.State())
	}
}

func TestSimpleElementDefaultOmission(t *testing.T) {
	e := NewSimpleElement("", "Priority", "", nil)
	if el := e.Element(); el != nil {
		t.Fatalf("Element() at default = %v, want nil", el)
	}

	e.Set("high")
	el := e.Element()
	if el == nil {
		t.Fatal("Element() with non-default value = nil")
	}
	if el.Tag != "Priority" || el.Text != "high" {
		t.Fatalf("Element() = <%s>%s</>, want <Priority>high</>", el.Tag, el.Text)
	}
}

func TestAttributeApplyOmitsDefault(t *testing.T) {
	a := NewAttribute(false, "isExternal", false, nil)
	el := xmltree.New("File")
	a.Apply(el)
	if _, ok := el.Attr("isExternal"); ok {
		t.Fatal("Apply wrote attribute at default value")
	}

	a.Set(true)
	a.Apply(el)
	got, ok := el.Attr("isExternal")
	if !ok || got != "true" {
		t.Fatalf("Apply wrote %q, want lowercase \"true\"", got)
	}
}

func TestDateElementEqual(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	utc := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	shifted := utc.In(loc)

	a := NewDateElement(utc, "Date", nil)
	b := NewDateElement(shifted, "Date", nil)
	if !a.Equal(b) {
		t.Fatal("equal instants in different zones compared unequal")
	}
}

func TestDateElementFormats(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)

	dt := NewDateElement(ts, "Date", nil)
	if got := dt.Format(); got != "2026-03-01T10:30:00Z" {
		t.Fatalf("datetime Format() = %q", got)
	}

	d := NewDateOnlyElement(ts, "DueDate", nil)
	if got := d.Format(); got != "2026-03-01" {
		t.Fatalf("date-only Format() = %q", got)
	}
}

func TestSimpleListAppendAndValues(t *testing.T) {
	l := NewSimpleList([]string{"arch", "mep"}, "Labels", "", nil)
	if l.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", l.Len())
	}

	item := l.Append("structural", Added)
	if item.State() != Added {
		t.Fatalf("appended item state = %v, want Added", item.State())
	}

	got := l.Values()
	want := []string{"arch", "mep", "structural"}
	if len(got) != len(want) {
		t.Fatalf("Values() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Values()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSimpleListValuesSkipDeleted(t *testing.T) {
	l := NewSimpleList([]string{"a", "b"}, "Labels", "", nil)
	l.Items()[0].SetState(Deleted)
	got := l.Values()
	if len(got) != 1 || got[0] != "b" {
		t.Fatalf("Values() = %v, want [b]", got)
	}
	if els := l.Elements(); len(els) != 1 {
		t.Fatalf("Elements() rendered %d nodes, want 1", len(els))
	}
}

func TestStateListReportsOnlyDirty(t *testing.T) {
	l := NewSimpleList([]string{"a", "b"}, "Labels", "", nil)
	if entries := l.StateList(); len(entries) != 0 {
		t.Fatalf("pristine list StateList() = %v, want empty", entries)
	}

	l.Items()[1].Set("c")
	entries := l.StateList()
	if len(entries) != 1 {
		t.Fatalf("StateList() returned %d entries, want 1", len(entries))
	}
	if entries[0].State != Modified || entries[0].Node != l.Items()[1] {
		t.Fatalf("StateList() = %+v, want the modified item only", entries[0])
	}
	if l.Items()[0].State() != Original {
		t.Fatal("sibling item state changed")
	}
}
